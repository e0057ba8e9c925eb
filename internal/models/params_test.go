package models

import (
	"errors"
	"math"
	"testing"

	"github.com/napolitain/battle-lnk/internal/errx"
)

func TestDefaultsAreValid(t *testing.T) {
	bp := DefaultBattleParameters()
	if err := bp.Validate(); err != nil {
		t.Errorf("default battle parameters: %v", err)
	}
	sp := DefaultSiegeParameters()
	if err := sp.Validate(); err != nil {
		t.Errorf("default siege parameters: %v", err)
	}
	if err := DefaultStatTable().Validate(); err != nil {
		t.Errorf("default stat table: %v", err)
	}
}

func TestBattleParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BattleParameters)
	}{
		{"negative skirmish ticks", func(p *BattleParameters) { p.SkirmishTicks = -1 }},
		{"zero melee safety", func(p *BattleParameters) { p.MeleeSafetyTicks = 0 }},
		{"negative casualty rate", func(p *BattleParameters) { p.BaseCasualtyRate = -0.1 }},
		{"NaN pursuit base", func(p *BattleParameters) { p.PursuitBase = math.NaN() }},
		{"break above 100", func(p *BattleParameters) { p.BreakPct = 101 }},
		{"variance of one", func(p *BattleParameters) { p.RNGVariance = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultBattleParameters()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, errx.ErrInvalidInput) {
				t.Errorf("err = %v, want InvalidInput", err)
			}
		})
	}
}

func TestSiegeParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SiegeParameters)
	}{
		{"negative rounds", func(p *SiegeParameters) { p.MaxRounds = -1 }},
		{"melee ends before skirmish", func(p *SiegeParameters) { p.InnerMeleeLastStep = 1 }},
		{"infinite wall damage", func(p *SiegeParameters) { p.WallDamageFactor = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultSiegeParameters()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, errx.ErrInvalidInput) {
				t.Errorf("err = %v, want InvalidInput", err)
			}
		})
	}
}

func TestStatTableValidate(t *testing.T) {
	st := DefaultStatTable()
	st.Archer.MeleeDefence = -2
	if err := st.Validate(); !errors.Is(err, errx.ErrInvalidInput) {
		t.Errorf("err = %v, want InvalidInput", err)
	}
	if got := st.Get(UnitType("ram")); got != (UnitStats{}) {
		t.Errorf("unknown type stats = %+v", got)
	}
}

func TestFortressStateValidate(t *testing.T) {
	f := FortressState{FortHP: 500, MaxFortHP: 1000, ArcherSlots: 4, GarrisonArchers: 9, GarrisonWarriors: 3}
	if err := f.Validate(); err != nil {
		t.Fatalf("valid fortress rejected: %v", err)
	}
	if f.ActiveArchers() != 4 {
		t.Errorf("ActiveArchers = %d, want 4", f.ActiveArchers())
	}
	if f.Garrison() != (Division{Warrior: 3, Archer: 9}) {
		t.Errorf("Garrison = %+v", f.Garrison())
	}

	bad := []FortressState{
		{FortHP: -1},
		{FortHP: 1200, MaxFortHP: 1000},
		{FortHP: 10, ArcherSlots: -1},
		{FortHP: 10, GarrisonWarriors: -5},
	}
	for _, b := range bad {
		if err := b.Validate(); !errors.Is(err, errx.ErrInvalidInput) {
			t.Errorf("%+v: err = %v, want InvalidInput", b, err)
		}
	}
}

func TestSiegeResultLosses(t *testing.T) {
	r := &SiegeBattleResult{
		InitialAttackers: 50,
		FinalAttackers:   12,
		InitialGarrison:  Division{Warrior: 20, Archer: 10},
		FinalGarrison:    Division{Warrior: 5, Archer: 10},
	}
	if r.AttackerLosses() != 38 {
		t.Errorf("AttackerLosses = %d", r.AttackerLosses())
	}
	if r.GarrisonLosses() != (Division{Warrior: 15}) {
		t.Errorf("GarrisonLosses = %+v", r.GarrisonLosses())
	}
}
