package losses

import (
	"math"
	"sort"

	"github.com/napolitain/battle-lnk/internal/errx"
)

// GroupShare is how many units of one type a group can lose
type GroupShare struct {
	GroupID   string `json:"group_id"`
	Available int    `json:"available"`
}

// Allocation is the number of losses assigned to one group
type Allocation struct {
	GroupID string `json:"group_id"`
	Losses  int    `json:"losses"`
}

// DistributeAcrossGroups splits totalLosses (rounded to the nearest unit)
// across groups in proportion to what each has available, using the
// largest-remainder method. Allocations come back in input order and always
// sum to min(total, sum of available). Equal remainders keep input order.
func DistributeAcrossGroups(shares []GroupShare, totalLosses float64) ([]Allocation, error) {
	if math.IsNaN(totalLosses) || totalLosses < 0 {
		return nil, errx.InvalidInput("total losses must be non-negative, got %v", totalLosses)
	}

	sum := 0
	for _, s := range shares {
		if s.Available < 0 {
			return nil, errx.InvalidInput("group %q has negative availability %d", s.GroupID, s.Available)
		}
		sum += s.Available
	}

	out := make([]Allocation, len(shares))
	for i, s := range shares {
		out[i].GroupID = s.GroupID
	}
	if sum == 0 {
		return out, nil
	}

	target := sum
	if rounded := math.Round(totalLosses); rounded < float64(sum) {
		target = int(rounded)
	}
	if target == 0 {
		return out, nil
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, 0, len(shares))
	assigned := 0
	for i, s := range shares {
		exact := float64(s.Available) * float64(target) / float64(sum)
		whole := min(int(math.Floor(exact)), s.Available)
		out[i].Losses = whole
		assigned += whole
		rems = append(rems, remainder{index: i, frac: exact - float64(whole)})
	}

	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac > rems[b].frac
	})

	// Float rounding can leave more than one unit per group outstanding, so
	// keep sweeping until the target is met. sum >= target guarantees room.
	for assigned < target {
		for _, r := range rems {
			if assigned == target {
				break
			}
			if out[r.index].Losses >= shares[r.index].Available {
				continue
			}
			out[r.index].Losses++
			assigned++
		}
	}
	return out, nil
}
