package combat

import (
	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

// ResolveSiege runs an assault of attackers (fighting as warriors) against a
// fortress: the outer wall siege, then, if the walls fall with a garrison
// inside, the inner battle. The siege is deterministic.
func ResolveSiege(attackers int, fortress models.FortressState, stats models.StatTable, params models.SiegeParameters) (*models.SiegeBattleResult, error) {
	if attackers < 0 {
		return nil, errx.InvalidInput("attackers must be non-negative, got %d", attackers)
	}
	if err := fortress.Validate(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	garrison := fortress.Garrison()
	res := &models.SiegeBattleResult{
		InitialFortHP:    fortress.FortHP,
		InitialAttackers: attackers,
		InitialGarrison:  garrison,
		OuterTimeline:    []models.SiegeRound{},
		InnerTimeline:    []models.InnerStep{},
	}

	remaining, hp := outerSiege(res, float64(attackers), fortress, stats, params)
	res.FinalFortHP = hp

	defenders := garrison.Troops()
	switch {
	case remaining <= 0 && hp > 0:
		res.Outcome = models.OutcomeWallsHold
	case hp <= 0 && remaining > 0 && !garrison.IsEmpty():
		var att models.Troops
		att, defenders = innerBattle(res, models.Troops{Warrior: remaining}, defenders, stats, params)
		remaining = att.Total()
		res.Outcome = innerOutcome(remaining, defenders.Total())
	case hp <= 0 && remaining > 0:
		res.Outcome = models.OutcomeFalls
	default:
		res.Outcome = models.OutcomeStalemate
	}

	res.FinalAttackers = models.Troops{Warrior: remaining}.Division(models.Division{Warrior: attackers}).Warrior
	res.FinalGarrison = defenders.Division(garrison)
	return res, nil
}

// outerSiege runs the wall phase: archers on the walls shoot, survivors batter
// the walls. Returns the attackers left and the remaining fort HP.
func outerSiege(res *models.SiegeBattleResult, attackers float64, fortress models.FortressState, stats models.StatTable, params models.SiegeParameters) (float64, float64) {
	hp := fortress.FortHP
	active := fortress.ActiveArchers()
	volley := float64(active) / 100 * stats.Archer.SkirmishAttack * params.BaseCasualtyRate
	ram := stats.Warrior.MeleeAttack * params.WallDamageFactor * params.BaseCasualtyRate

	for round := 1; round <= params.MaxRounds && hp > 0 && attackers > 0; round++ {
		killed := min(volley, attackers)
		attackers -= killed

		damage := min(attackers*ram, hp)
		hp -= damage

		res.Rounds = round
		res.OuterTimeline = append(res.OuterTimeline, models.SiegeRound{
			Round:           round,
			FortHP:          hp,
			Attackers:       attackers,
			ActiveArchers:   active,
			AttackersKilled: killed,
			FortDamage:      damage,
		})
	}
	return attackers, hp
}

// innerPhase maps a 1-based step to its phase by fixed boundaries
func innerPhase(step int, params models.SiegeParameters) models.Phase {
	switch {
	case step <= params.InnerSkirmishSteps:
		return models.PhaseSkirmish
	case step <= params.InnerMeleeLastStep:
		return models.PhaseMelee
	}
	return models.PhasePursuit
}

// innerBattle fights inside the fallen walls with the same clash primitive as
// a field battle, but phases change on fixed step counts instead of morale.
func innerBattle(res *models.SiegeBattleResult, att, def models.Troops, stats models.StatTable, params models.SiegeParameters) (models.Troops, models.Troops) {
	for step := 1; step <= params.InnerMaxSteps && att.Total() > 0 && def.Total() > 0; step++ {
		phase := innerPhase(step, params)

		var onAtt, onDef float64
		if phase == models.PhasePursuit {
			onAtt, onDef = innerPursuit(att, def, stats, params.PursuitBase)
		} else {
			ex := clash(att, def, phase, stats, params.BaseCasualtyRate, 1, 1)
			onAtt, onDef = ex.onA, ex.onB
		}

		att = applyLosses(att, onAtt)
		def = applyLosses(def, onDef)

		res.Steps = step
		res.InnerTimeline = append(res.InnerTimeline, models.InnerStep{
			Step:               step,
			Phase:              phase,
			DefenderWarriors:   def.Warrior,
			DefenderArchers:    def.Archer,
			Attackers:          att.Total(),
			AttackerCasualties: onAtt,
			DefenderCasualties: onDef,
		})
	}
	return att, def
}

// innerPursuit lets the side with the better melee ratio chase the other,
// using its melee attack as pursuit power. Ties favour the defenders.
func innerPursuit(att, def models.Troops, stats models.StatTable, base float64) (onAtt, onDef float64) {
	pa := phasePower(att, models.PhasePursuit, stats)
	pd := phasePower(def, models.PhasePursuit, stats)
	if ratio(pa.attack, pd.defence) > ratio(pd.attack, pa.defence) {
		return 0, pursuitCasualties(base, pa.attack, def.Total())
	}
	return pursuitCasualties(base, pd.attack, att.Total()), 0
}

func innerOutcome(attackers, defenders float64) models.SiegeOutcome {
	switch {
	case defenders > 0 && attackers <= 0:
		return models.OutcomeInnerHolds
	case attackers > 0 && defenders <= 0:
		return models.OutcomeFalls
	}
	return models.OutcomeStalemate
}
