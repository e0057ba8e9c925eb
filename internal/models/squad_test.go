package models

import (
	"errors"
	"testing"

	"github.com/napolitain/battle-lnk/internal/errx"
)

func TestNewUnitGroup(t *testing.T) {
	g := NewUnitGroup("north", "lord", Warrior, 25, 10)

	if len(g.Squads) != 3 {
		t.Fatalf("got %d squads, want 3", len(g.Squads))
	}
	sizes := []int{10, 10, 5}
	for i, s := range g.Squads {
		if s.CurrentSize != sizes[i] || s.MaxSize != 10 || s.Type != Warrior {
			t.Errorf("squad %d = %+v", i, s)
		}
	}
	if g.Squads[2].ID != "north/warrior-3" {
		t.Errorf("squad id = %q", g.Squads[2].ID)
	}
	if g.Strength() != 25 || g.StrengthOf(Archer) != 0 {
		t.Errorf("Strength = %d, StrengthOf(archer) = %d", g.Strength(), g.StrengthOf(Archer))
	}
	if err := g.Validate(); err != nil {
		t.Errorf("fresh group invalid: %v", err)
	}
}

func TestNewUnitGroupDefaults(t *testing.T) {
	g := NewUnitGroup("g", "p", Archer, 15, 0)
	if len(g.Squads) != 2 || g.Squads[0].MaxSize != DefaultSquadSize {
		t.Errorf("squads = %+v", g.Squads)
	}

	empty := NewUnitGroup("g", "p", Archer, 0, 10)
	if len(empty.Squads) != 0 || empty.Strength() != 0 {
		t.Errorf("empty group = %+v", empty)
	}
}

func TestUnitGroupDivisionAndClone(t *testing.T) {
	g := NewUnitGroup("mixed", "p", Warrior, 12, 10)
	g.Squads = append(g.Squads, NewUnitGroup("mixed", "p", Archer, 7, 10).Squads...)

	if got := g.Division(); got != (Division{Warrior: 12, Archer: 7}) {
		t.Errorf("Division = %+v", got)
	}

	c := g.Clone()
	c.Squads[0].CurrentSize = 0
	if g.Squads[0].CurrentSize != 10 {
		t.Error("Clone shares squad storage")
	}
}

func TestSquadValidate(t *testing.T) {
	tests := []struct {
		name  string
		squad Squad
		ok    bool
	}{
		{"full", Squad{ID: "a", Type: Warrior, CurrentSize: 10, MaxSize: 10}, true},
		{"empty", Squad{ID: "a", Type: Archer, CurrentSize: 0, MaxSize: 10}, true},
		{"over capacity", Squad{ID: "a", Type: Warrior, CurrentSize: 11, MaxSize: 10}, false},
		{"negative", Squad{ID: "a", Type: Warrior, CurrentSize: -1, MaxSize: 10}, false},
		{"unknown type", Squad{ID: "a", Type: "cavalry", CurrentSize: 1, MaxSize: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.squad.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errx.ErrInvalidInput) {
				t.Errorf("err = %v, want InvalidInput", err)
			}
		})
	}
}
