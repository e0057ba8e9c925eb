// Package losses turns casualty totals into concrete squad and group losses.
package losses

import (
	"math"

	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

// Rand picks squads for losses past the first pass. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// softCapShare is the fraction of a loss total one squad may absorb before
// the others are preferred
const softCapShare = 0.33

// DistributeLosses spreads losses over the squads of group and returns the
// updated group; group itself is left untouched.
//
// Every non-empty squad first takes one loss in order. The rest go one at a
// time to a random non-empty squad still under the soft cap, or to any
// non-empty squad once all are at it. rng may be nil when no random pick is
// needed.
func DistributeLosses(group models.UnitGroup, losses int, rng Rand) (models.UnitGroup, error) {
	if losses < 0 {
		return models.UnitGroup{}, errx.InvalidInput("losses must be non-negative, got %d", losses)
	}
	if err := group.Validate(); err != nil {
		return models.UnitGroup{}, err
	}

	out := group.Clone()
	if losses == 0 {
		return out, nil
	}
	if losses >= out.Strength() {
		for i := range out.Squads {
			out.Squads[i].CurrentSize = 0
		}
		return out, nil
	}
	if rng == nil && losses > nonEmpty(out.Squads) {
		return models.UnitGroup{}, errx.InvalidInput("random source required to spread %d losses over %d squads", losses, nonEmpty(out.Squads))
	}

	softCap := max(1, int(math.Floor(float64(losses)*softCapShare)))
	absorbed := make([]int, len(out.Squads))
	remaining := losses

	for i := range out.Squads {
		if remaining == 0 {
			break
		}
		if out.Squads[i].IsEmpty() {
			continue
		}
		out.Squads[i].CurrentSize--
		absorbed[i]++
		remaining--
	}

	eligible := make([]int, 0, len(out.Squads))
	for ; remaining > 0; remaining-- {
		eligible = eligible[:0]
		for i, s := range out.Squads {
			if !s.IsEmpty() && absorbed[i] < softCap {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			for i, s := range out.Squads {
				if !s.IsEmpty() {
					eligible = append(eligible, i)
				}
			}
		}
		i := eligible[rng.IntN(len(eligible))]
		out.Squads[i].CurrentSize--
		absorbed[i]++
	}
	return out, nil
}

// TrimByType removes up to losses units of type t from squads, sweeping the
// matching squads in order and taking one unit from each per sweep. It
// returns the new squads and how many units were actually removed. A
// non-positive loss count removes nothing.
func TrimByType(squads []models.Squad, t models.UnitType, losses int) ([]models.Squad, int) {
	out := make([]models.Squad, len(squads))
	copy(out, squads)

	removed := 0
	for removed < losses {
		swept := false
		for i := range out {
			if removed == losses {
				break
			}
			if out[i].Type != t || out[i].CurrentSize <= 0 {
				continue
			}
			out[i].CurrentSize--
			removed++
			swept = true
		}
		if !swept {
			break
		}
	}
	return out, removed
}

func nonEmpty(squads []models.Squad) int {
	n := 0
	for _, s := range squads {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}
