package garrison

import (
	"fmt"

	"github.com/napolitain/battle-lnk/internal/losses"
	"github.com/napolitain/battle-lnk/internal/models"
)

// ApplyDivisionLosses spreads per-type losses from a battle result across
// groups: each type's total is split between groups by what they field of
// that type, then trimmed out of their squads. The input groups are not
// modified.
func ApplyDivisionLosses(groups []models.UnitGroup, lost models.Division) ([]models.UnitGroup, error) {
	if err := lost.Validate(); err != nil {
		return nil, err
	}

	out := make([]models.UnitGroup, len(groups))
	for i, g := range groups {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("group %s: %w", g.ID, err)
		}
		out[i] = g.Clone()
	}

	for _, ut := range models.AllUnitTypes() {
		n := lost.Get(ut)
		if n == 0 {
			continue
		}

		shares := make([]losses.GroupShare, len(out))
		for i, g := range out {
			shares[i] = losses.GroupShare{GroupID: g.ID, Available: g.StrengthOf(ut)}
		}
		allocs, err := losses.DistributeAcrossGroups(shares, float64(n))
		if err != nil {
			return nil, err
		}

		for i, a := range allocs {
			if a.Losses == 0 {
				continue
			}
			out[i].Squads, _ = losses.TrimByType(out[i].Squads, ut, a.Losses)
		}
	}
	return out, nil
}

// ApplyGroupLosses removes n units from a single group, spread over its
// squads regardless of type
func ApplyGroupLosses(group models.UnitGroup, n int, rng losses.Rand) (models.UnitGroup, error) {
	return losses.DistributeLosses(group, n, rng)
}
