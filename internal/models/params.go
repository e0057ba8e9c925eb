package models

import (
	"math"

	"github.com/napolitain/battle-lnk/internal/errx"
)

// BattleParameters are the tunable constants of a field engagement.
// BreakPct is a percentage of starting morale; RNGVariance is the half-width
// of the per-tick noise factor around 1.0.
type BattleParameters struct {
	SkirmishTicks       int     `yaml:"skirmish_ticks" mapstructure:"skirmish_ticks" json:"skirmish_ticks"`
	PursuitTicks        int     `yaml:"pursuit_ticks" mapstructure:"pursuit_ticks" json:"pursuit_ticks"`
	MeleeSafetyTicks    int     `yaml:"melee_safety_ticks" mapstructure:"melee_safety_ticks" json:"melee_safety_ticks"`
	BaseCasualtyRate    float64 `yaml:"base_casualty_rate" mapstructure:"base_casualty_rate" json:"base_casualty_rate"`
	MoralePerCasualty   float64 `yaml:"morale_per_casualty" mapstructure:"morale_per_casualty" json:"morale_per_casualty"`
	AdvantageMoraleTick float64 `yaml:"advantage_morale_tick" mapstructure:"advantage_morale_tick" json:"advantage_morale_tick"`
	BreakPct            float64 `yaml:"break_pct" mapstructure:"break_pct" json:"break_pct"`
	RNGVariance         float64 `yaml:"rng_variance" mapstructure:"rng_variance" json:"rng_variance"`
	PursuitBase         float64 `yaml:"pursuit_base" mapstructure:"pursuit_base" json:"pursuit_base"`
}

// DefaultBattleParameters returns the stock field battle tuning
func DefaultBattleParameters() BattleParameters {
	return BattleParameters{
		SkirmishTicks:       3,
		PursuitTicks:        3,
		MeleeSafetyTicks:    500,
		BaseCasualtyRate:    0.5,
		MoralePerCasualty:   1.0,
		AdvantageMoraleTick: 1.0,
		BreakPct:            35,
		RNGVariance:         0.1,
		PursuitBase:         0.25,
	}
}

// Validate rejects parameters that cannot drive a bounded simulation
func (p *BattleParameters) Validate() error {
	if p.SkirmishTicks < 0 || p.PursuitTicks < 0 {
		return invalidf("tick caps must be non-negative (skirmish=%d pursuit=%d)", p.SkirmishTicks, p.PursuitTicks)
	}
	if p.MeleeSafetyTicks <= 0 {
		return invalidf("melee_safety_ticks must be positive, got %d", p.MeleeSafetyTicks)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"base_casualty_rate", p.BaseCasualtyRate},
		{"morale_per_casualty", p.MoralePerCasualty},
		{"advantage_morale_tick", p.AdvantageMoraleTick},
		{"pursuit_base", p.PursuitBase},
	} {
		if !nonNegative(f.value) {
			return invalidf("%s must be non-negative, got %v", f.name, f.value)
		}
	}
	if !nonNegative(p.BreakPct) || p.BreakPct > 100 {
		return invalidf("break_pct must be within [0,100], got %v", p.BreakPct)
	}
	if !nonNegative(p.RNGVariance) || p.RNGVariance >= 1 {
		return invalidf("rng_variance must be within [0,1), got %v", p.RNGVariance)
	}
	return nil
}

// SiegeParameters are the constants of a siege against a fortress
type SiegeParameters struct {
	MaxRounds          int     `yaml:"max_rounds" mapstructure:"max_rounds" json:"max_rounds"`
	BaseCasualtyRate   float64 `yaml:"base_casualty_rate" mapstructure:"base_casualty_rate" json:"base_casualty_rate"`
	WallDamageFactor   float64 `yaml:"wall_damage_factor" mapstructure:"wall_damage_factor" json:"wall_damage_factor"`
	InnerSkirmishSteps int     `yaml:"inner_skirmish_steps" mapstructure:"inner_skirmish_steps" json:"inner_skirmish_steps"`
	InnerMeleeLastStep int     `yaml:"inner_melee_last_step" mapstructure:"inner_melee_last_step" json:"inner_melee_last_step"`
	InnerMaxSteps      int     `yaml:"inner_max_steps" mapstructure:"inner_max_steps" json:"inner_max_steps"`
	PursuitBase        float64 `yaml:"pursuit_base" mapstructure:"pursuit_base" json:"pursuit_base"`
}

// DefaultSiegeParameters returns the stock siege constants
func DefaultSiegeParameters() SiegeParameters {
	return SiegeParameters{
		MaxRounds:          30,
		BaseCasualtyRate:   1.0,
		WallDamageFactor:   0.2,
		InnerSkirmishSteps: 3,
		InnerMeleeLastStep: 13,
		InnerMaxSteps:      50,
		PursuitBase:        0.25,
	}
}

// Validate checks round/step caps and rates
func (p *SiegeParameters) Validate() error {
	if p.MaxRounds < 0 || p.InnerMaxSteps < 0 {
		return invalidf("round/step caps must be non-negative (rounds=%d steps=%d)", p.MaxRounds, p.InnerMaxSteps)
	}
	if p.InnerSkirmishSteps < 0 || p.InnerMeleeLastStep < p.InnerSkirmishSteps {
		return invalidf("inner phase boundaries out of order (skirmish=%d melee_last=%d)",
			p.InnerSkirmishSteps, p.InnerMeleeLastStep)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"base_casualty_rate", p.BaseCasualtyRate},
		{"wall_damage_factor", p.WallDamageFactor},
		{"pursuit_base", p.PursuitBase},
	} {
		if !nonNegative(f.value) {
			return invalidf("%s must be non-negative, got %v", f.name, f.value)
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalidf(format string, args ...any) error {
	return errx.InvalidInput(format, args...)
}
