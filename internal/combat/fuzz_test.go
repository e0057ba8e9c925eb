package combat

import (
	"math/rand/v2"
	"testing"

	"github.com/napolitain/battle-lnk/internal/models"
)

// FuzzResolve checks conservation and the tick caps over arbitrary forces
func FuzzResolve(f *testing.F) {
	f.Add(uint16(100), uint16(0), uint16(10), uint16(0), uint64(1))
	f.Add(uint16(0), uint16(0), uint16(0), uint16(0), uint64(2))
	f.Add(uint16(500), uint16(500), uint16(500), uint16(500), uint64(3))
	f.Add(uint16(65535), uint16(1), uint16(1), uint16(65535), uint64(4))

	stats := models.DefaultStatTable()
	params := models.DefaultBattleParameters()

	f.Fuzz(func(t *testing.T, aw, aa, dw, da uint16, seed uint64) {
		attacker := models.Division{Warrior: int(aw), Archer: int(aa)}
		defender := models.Division{Warrior: int(dw), Archer: int(da)}

		res, err := Resolve(attacker, defender, stats, params, rand.New(rand.NewPCG(seed, seed)))
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}

		for _, ut := range models.AllUnitTypes() {
			if res.Attacker.Final.Get(ut) > attacker.Get(ut) || res.Attacker.Final.Get(ut) < 0 {
				t.Errorf("attacker %s: %d -> %d", ut, attacker.Get(ut), res.Attacker.Final.Get(ut))
			}
			if res.Defender.Final.Get(ut) > defender.Get(ut) || res.Defender.Final.Get(ut) < 0 {
				t.Errorf("defender %s: %d -> %d", ut, defender.Get(ut), res.Defender.Final.Get(ut))
			}
		}

		if n := countPhase(res.Timeline, models.PhaseSkirmish); n > params.SkirmishTicks {
			t.Errorf("skirmish ran %d ticks", n)
		}
		if n := countPhase(res.Timeline, models.PhaseMelee); n > params.MeleeSafetyTicks {
			t.Errorf("melee ran %d ticks", n)
		}
		if n := countPhase(res.Timeline, models.PhasePursuit); n > params.PursuitTicks {
			t.Errorf("pursuit ran %d ticks", n)
		}
		if res.Attacker.FinalMorale < 0 || res.Defender.FinalMorale < 0 {
			t.Errorf("negative morale: %v / %v", res.Attacker.FinalMorale, res.Defender.FinalMorale)
		}
	})
}

// FuzzResolveSiege checks the round and step caps and that nobody is revived
func FuzzResolveSiege(f *testing.F) {
	f.Add(uint16(50), uint16(2000), uint8(10), uint16(20), uint16(10))
	f.Add(uint16(1000), uint16(1), uint8(0), uint16(1000), uint16(0))
	f.Add(uint16(0), uint16(0), uint8(0), uint16(0), uint16(0))
	f.Add(uint16(65535), uint16(65535), uint8(255), uint16(65535), uint16(65535))

	stats := models.DefaultStatTable()
	params := models.DefaultSiegeParameters()

	f.Fuzz(func(t *testing.T, attackers, hp uint16, slots uint8, warriors, archers uint16) {
		fortress := models.FortressState{
			FortHP:           float64(hp),
			ArcherSlots:      int(slots),
			GarrisonWarriors: int(warriors),
			GarrisonArchers:  int(archers),
		}

		res, err := ResolveSiege(int(attackers), fortress, stats, params)
		if err != nil {
			t.Fatalf("ResolveSiege: %v", err)
		}

		if res.Rounds > params.MaxRounds || len(res.OuterTimeline) != res.Rounds {
			t.Errorf("rounds = %d, timeline = %d", res.Rounds, len(res.OuterTimeline))
		}
		if res.Steps > params.InnerMaxSteps || len(res.InnerTimeline) != res.Steps {
			t.Errorf("steps = %d, timeline = %d", res.Steps, len(res.InnerTimeline))
		}
		if res.FinalAttackers < 0 || res.FinalAttackers > int(attackers) {
			t.Errorf("attackers %d -> %d", attackers, res.FinalAttackers)
		}
		if res.FinalGarrison.Warrior > int(warriors) || res.FinalGarrison.Archer > int(archers) {
			t.Errorf("garrison grew: %+v", res.FinalGarrison)
		}
		if res.FinalFortHP < 0 || res.FinalFortHP > float64(hp) {
			t.Errorf("fort hp %v -> %v", hp, res.FinalFortHP)
		}
		switch res.Outcome {
		case models.OutcomeWallsHold, models.OutcomeInnerHolds, models.OutcomeFalls, models.OutcomeStalemate:
		default:
			t.Errorf("unknown outcome %q", res.Outcome)
		}
	})
}
