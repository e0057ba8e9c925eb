package combat

import (
	"fmt"

	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

// side is the running state of one division during a field battle
type side struct {
	initial     models.Division
	troops      models.Troops
	morale      float64
	startMorale float64
	threshold   float64
}

func newSide(d models.Division, stats models.StatTable, breakPct float64) *side {
	s := &side{initial: d, troops: d.Troops()}
	for _, ut := range models.AllUnitTypes() {
		s.startMorale += float64(d.Get(ut)) / 100 * stats.Get(ut).MoralePer100
	}
	s.morale = s.startMorale
	s.threshold = breakPct / 100 * s.startMorale
	return s
}

func (s *side) destroyed() bool {
	return s.troops.Total() <= 0
}

// broken reports whether morale has fallen to the break threshold. A side
// that never had morale cannot fall, so it never breaks.
func (s *side) broken() bool {
	return s.startMorale > 0 && s.morale <= s.threshold
}

func (s *side) out() bool {
	return s.destroyed() || s.broken()
}

func (s *side) drain(amount float64) {
	s.morale = max(0, s.morale-amount)
}

func (s *side) report() models.SideReport {
	final := s.troops.Division(s.initial)
	return models.SideReport{
		Initial:        s.initial,
		Final:          final,
		Losses:         s.initial.Sub(final),
		InitialMorale:  s.startMorale,
		FinalMorale:    s.morale,
		BreakThreshold: s.threshold,
	}
}

// field is one field battle in progress
type field struct {
	attacker *side
	defender *side
	stats    models.StatTable
	params   models.BattleParameters
	rng      Rand

	tick     int
	timeline []models.TickRecord
}

// Resolve runs a field battle between attacker and defender to completion:
// skirmish, melee, then pursuit of the loser. It never mutates its inputs.
// The only failure is InvalidInput, reported before any simulation.
func Resolve(attacker, defender models.Division, stats models.StatTable, params models.BattleParameters, rng Rand) (*models.BattleResult, error) {
	if err := attacker.Validate(); err != nil {
		return nil, fmt.Errorf("attacker: %w", err)
	}
	if err := defender.Validate(); err != nil {
		return nil, fmt.Errorf("defender: %w", err)
	}
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.RNGVariance > 0 && rng == nil {
		return nil, errx.InvalidInput("random source required when rng_variance is %v", params.RNGVariance)
	}

	f := &field{
		attacker: newSide(attacker, stats, params.BreakPct),
		defender: newSide(defender, stats, params.BreakPct),
		stats:    stats,
		params:   params,
		rng:      rng,
		timeline: []models.TickRecord{},
	}
	return f.run(), nil
}

func (f *field) run() *models.BattleResult {
	if !f.attacker.destroyed() && !f.defender.destroyed() {
		f.fight(models.PhaseSkirmish, f.params.SkirmishTicks)
		if !f.decided() {
			f.fight(models.PhaseMelee, f.params.MeleeSafetyTicks)
		}
	}

	winner := f.winner()
	switch winner {
	case models.WinnerAttacker:
		f.pursue(f.attacker, f.defender)
	case models.WinnerDefender:
		f.pursue(f.defender, f.attacker)
	}

	return &models.BattleResult{
		Attacker: f.attacker.report(),
		Defender: f.defender.report(),
		Winner:   winner,
		Ticks:    f.tick,
		Timeline: f.timeline,
	}
}

func (f *field) decided() bool {
	return f.attacker.out() || f.defender.out()
}

// fight runs up to limit ticks of phase, stopping once a side is broken or destroyed
func (f *field) fight(phase models.Phase, limit int) {
	for i := 0; i < limit && !f.decided(); i++ {
		a, d := f.attacker, f.defender
		ex := clash(a.troops, d.troops, phase, f.stats, f.params.BaseCasualtyRate, f.noise(), f.noise())

		a.troops = applyLosses(a.troops, ex.onA)
		d.troops = applyLosses(d.troops, ex.onB)

		// Each side's drain depends on the opponent's ratio against it,
		// not on its own advantage.
		a.drain(f.params.MoralePerCasualty*ex.onA + advantageDrain(f.params.AdvantageMoraleTick, ex.ratioOnA))
		d.drain(f.params.MoralePerCasualty*ex.onB + advantageDrain(f.params.AdvantageMoraleTick, ex.ratioOnB))

		f.record(phase, ex.onA, ex.onB)
	}
}

// winner applies the tie-break order once skirmish and melee are over
func (f *field) winner() models.Winner {
	a, d := f.attacker, f.defender
	switch {
	case a.out() && d.out():
		return models.WinnerDraw
	case a.out():
		return models.WinnerDefender
	case d.out():
		return models.WinnerAttacker
	case a.morale > d.morale:
		return models.WinnerAttacker
	case d.morale > a.morale:
		return models.WinnerDefender
	case a.troops.Total() > d.troops.Total():
		return models.WinnerAttacker
	case d.troops.Total() > a.troops.Total():
		return models.WinnerDefender
	}
	return models.WinnerDraw
}

// pursue lets the winner cut down the fleeing loser for up to PursuitTicks
func (f *field) pursue(winner, loser *side) {
	for i := 0; i < f.params.PursuitTicks && !loser.destroyed(); i++ {
		cas := pursuitCasualties(f.params.PursuitBase, pursuitPower(winner.troops, f.stats), loser.troops.Total())
		loser.troops = applyLosses(loser.troops, cas)
		loser.drain(f.params.MoralePerCasualty * cas)

		if loser == f.attacker {
			f.record(models.PhasePursuit, cas, 0)
		} else {
			f.record(models.PhasePursuit, 0, cas)
		}
	}
}

// noise draws 1 + U(-variance, +variance); exactly 1 when variance is 0
func (f *field) noise() float64 {
	v := f.params.RNGVariance
	if v <= 0 {
		return 1
	}
	return 1 + (f.rng.Float64()*2-1)*v
}

func (f *field) record(phase models.Phase, onAttacker, onDefender float64) {
	f.tick++
	f.timeline = append(f.timeline, models.TickRecord{
		Tick:               f.tick,
		Phase:              phase,
		Attacker:           f.attacker.troops,
		Defender:           f.defender.troops,
		AttackerMorale:     f.attacker.morale,
		DefenderMorale:     f.defender.morale,
		AttackerCasualties: onAttacker,
		DefenderCasualties: onDefender,
	})
}
