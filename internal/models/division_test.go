package models

import (
	"errors"
	"testing"

	"github.com/napolitain/battle-lnk/internal/errx"
)

func TestDivisionAccessors(t *testing.T) {
	var d Division
	d.Set(Warrior, 12)
	d.Add(Archer, 5)
	d.Add(Archer, 3)
	d.Remove(Warrior, 20)

	if d.Warrior != 0 || d.Archer != 8 {
		t.Errorf("got %+v, want warrior 0 archer 8", d)
	}
	if d.Total() != 8 || d.IsEmpty() {
		t.Errorf("Total = %d, IsEmpty = %v", d.Total(), d.IsEmpty())
	}
	if got := d.Get(UnitType("catapult")); got != 0 {
		t.Errorf("unknown type count = %d", got)
	}
}

func TestDivisionSub(t *testing.T) {
	a := Division{Warrior: 10, Archer: 3}
	b := Division{Warrior: 4, Archer: 7}
	if got := a.Sub(b); got != (Division{Warrior: 6, Archer: 0}) {
		t.Errorf("Sub = %+v", got)
	}
}

func TestDivisionValidate(t *testing.T) {
	if err := (Division{Warrior: 1}).Validate(); err != nil {
		t.Errorf("valid division rejected: %v", err)
	}
	err := Division{Archer: -1}.Validate()
	if !errors.Is(err, errx.ErrInvalidInput) {
		t.Errorf("negative archers: err = %v, want InvalidInput", err)
	}
}

func TestTroopsDivision(t *testing.T) {
	tests := []struct {
		name    string
		troops  Troops
		ceiling Division
		want    Division
	}{
		{"whole counts", Troops{Warrior: 4, Archer: 2}, Division{Warrior: 10, Archer: 10}, Division{Warrior: 4, Archer: 2}},
		{"float noise above a whole count", Troops{Warrior: 4.0000001}, Division{Warrior: 10}, Division{Warrior: 4}},
		{"fraction survives", Troops{Warrior: 0.2, Archer: 3.4}, Division{Warrior: 10, Archer: 10}, Division{Warrior: 1, Archer: 4}},
		{"capped at ceiling", Troops{Warrior: 3.5}, Division{Warrior: 3}, Division{Warrior: 3}},
		{"wiped out", Troops{}, Division{Warrior: 5, Archer: 5}, Division{}},
		{"negative clamps to zero", Troops{Warrior: -1}, Division{Warrior: 5}, Division{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.troops.Division(tt.ceiling); got != tt.want {
				t.Errorf("Division(%+v) = %+v, want %+v", tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestTroopsSetClamps(t *testing.T) {
	tr := Division{Warrior: 5, Archer: 2}.Troops()
	tr.Set(Warrior, -3)
	if tr.Warrior != 0 || tr.Total() != 2 {
		t.Errorf("got %+v", tr)
	}
}
