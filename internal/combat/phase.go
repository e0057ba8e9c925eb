// Package combat resolves field battles and sieges. Every entry point is a
// pure function of its arguments: no package state, no I/O.
package combat

import (
	"math"

	"github.com/napolitain/battle-lnk/internal/models"
)

// Rand is the random source used for per-tick noise. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// power is the effective attack (EA) and effective defence (ED) of one side
type power struct {
	attack  float64
	defence float64
}

// phasePower sums (count/100) * coefficient over the unit types present.
// Skirmish uses skirmish coefficients; melee and pursuit use melee ones.
// For a mixed force this equals the share-weighted blend of the per-type
// coefficients scaled by total strength.
func phasePower(t models.Troops, phase models.Phase, stats models.StatTable) power {
	var p power
	for _, ut := range models.AllUnitTypes() {
		n := t.Get(ut) / 100
		if n <= 0 {
			continue
		}
		s := stats.Get(ut)
		if phase == models.PhaseSkirmish {
			p.attack += n * s.SkirmishAttack
			p.defence += n * s.SkirmishDefence
		} else {
			p.attack += n * s.MeleeAttack
			p.defence += n * s.MeleeDefence
		}
	}
	return p
}

// pursuitPower sums (count/100) * pursuit coefficient
func pursuitPower(t models.Troops, stats models.StatTable) float64 {
	var p float64
	for _, ut := range models.AllUnitTypes() {
		p += t.Get(ut) / 100 * stats.Get(ut).Pursuit
	}
	return p
}

// ratio is the opponent's EA over the target's ED. A target without defence
// facing any attack is fully exposed.
func ratio(attack, defence float64) float64 {
	if defence <= 0 {
		if attack > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return attack / defence
}

// casualties inflicted on a target of strength target, capped at target
func casualties(rate, opponentStrength, r, noise, target float64) float64 {
	scale := rate * (opponentStrength / 100) * noise
	if scale <= 0 || r <= 0 || target <= 0 {
		return 0
	}
	if math.IsInf(r, 1) {
		return target
	}
	return min(scale*r, target)
}

// pursuitCasualties is the flat pursuit formula: base * pursuerPower divided
// by the fleeing side's strength in hundreds, capped at that strength
func pursuitCasualties(base, pursuerPower, target float64) float64 {
	if target <= 0 || base <= 0 || pursuerPower <= 0 {
		return 0
	}
	return min(base*pursuerPower/(target/100), target)
}

// advantageDrain is the morale lost for being outmatched
func advantageDrain(perTick, r float64) float64 {
	if perTick <= 0 || r <= 1 {
		return 0
	}
	return perTick * (r - 1)
}

// applyLosses removes cas from t proportionally to its type composition
func applyLosses(t models.Troops, cas float64) models.Troops {
	total := t.Total()
	if cas <= 0 || total <= 0 {
		return t
	}
	if cas >= total {
		return models.Troops{}
	}
	out := t
	for _, ut := range models.AllUnitTypes() {
		n := t.Get(ut)
		out.Set(ut, n-cas*n/total)
	}
	return out
}

// exchange is the outcome of one simultaneous clash
type exchange struct {
	onA, onB           float64 // casualties taken
	ratioOnA, ratioOnB float64 // opponent EA over own ED
}

// clash is the shared per-tick casualty primitive used by field battles and
// the inner siege battle. noiseA scales casualties taken by a, noiseB by b.
func clash(a, b models.Troops, phase models.Phase, stats models.StatTable, rate, noiseA, noiseB float64) exchange {
	pa := phasePower(a, phase, stats)
	pb := phasePower(b, phase, stats)

	ex := exchange{
		ratioOnA: ratio(pb.attack, pa.defence),
		ratioOnB: ratio(pa.attack, pb.defence),
	}
	ex.onA = casualties(rate, b.Total(), ex.ratioOnA, noiseA, a.Total())
	ex.onB = casualties(rate, a.Total(), ex.ratioOnB, noiseB, b.Total())
	return ex
}
