package models

// Phase is a stage of an engagement
type Phase string

const (
	PhaseSkirmish Phase = "skirmish"
	PhaseMelee    Phase = "melee"
	PhasePursuit  Phase = "pursuit"
)

// Winner tags the result of a field battle
type Winner string

const (
	WinnerAttacker Winner = "attacker"
	WinnerDefender Winner = "defender"
	WinnerDraw     Winner = "draw"
)

// SiegeOutcome tags the result of a siege
type SiegeOutcome string

const (
	OutcomeWallsHold  SiegeOutcome = "walls_hold"
	OutcomeInnerHolds SiegeOutcome = "inner_holds"
	OutcomeFalls      SiegeOutcome = "falls"
	OutcomeStalemate  SiegeOutcome = "stalemate"
)

// SideReport summarizes one side of a field battle
type SideReport struct {
	Initial        Division `json:"initial"`
	Final          Division `json:"final"`
	Losses         Division `json:"losses"`
	InitialMorale  float64  `json:"initial_morale"`
	FinalMorale    float64  `json:"final_morale"`
	BreakThreshold float64  `json:"break_threshold"`
}

// TickRecord is one timeline entry of a field battle.
// Casualties are those taken by the named side during the tick.
type TickRecord struct {
	Tick               int     `json:"tick"`
	Phase              Phase   `json:"phase"`
	Attacker           Troops  `json:"attacker"`
	Defender           Troops  `json:"defender"`
	AttackerMorale     float64 `json:"attacker_morale"`
	DefenderMorale     float64 `json:"defender_morale"`
	AttackerCasualties float64 `json:"attacker_casualties"`
	DefenderCasualties float64 `json:"defender_casualties"`
}

// BattleResult is the full outcome of a field battle
type BattleResult struct {
	Attacker SideReport   `json:"attacker"`
	Defender SideReport   `json:"defender"`
	Winner   Winner       `json:"winner"`
	Ticks    int          `json:"ticks"`
	Timeline []TickRecord `json:"timeline"`
}

// SiegeRound is one round of the outer wall siege
type SiegeRound struct {
	Round           int     `json:"round"`
	FortHP          float64 `json:"fort_hp"`
	Attackers       float64 `json:"attackers"`
	ActiveArchers   int     `json:"active_archers"`
	AttackersKilled float64 `json:"attackers_killed"`
	FortDamage      float64 `json:"fort_damage"`
}

// InnerStep is one step of the battle inside fallen walls
type InnerStep struct {
	Step               int     `json:"step"`
	Phase              Phase   `json:"phase"`
	DefenderWarriors   float64 `json:"defender_warriors"`
	DefenderArchers    float64 `json:"defender_archers"`
	Attackers          float64 `json:"attackers"`
	AttackerCasualties float64 `json:"attacker_casualties"`
	DefenderCasualties float64 `json:"defender_casualties"`
}

// SiegeBattleResult is the full outcome of a siege
type SiegeBattleResult struct {
	Outcome          SiegeOutcome `json:"outcome"`
	Rounds           int          `json:"rounds"`
	Steps            int          `json:"steps"`
	InitialFortHP    float64      `json:"initial_fort_hp"`
	FinalFortHP      float64      `json:"final_fort_hp"`
	InitialAttackers int          `json:"initial_attackers"`
	FinalAttackers   int          `json:"final_attackers"`
	InitialGarrison  Division     `json:"initial_garrison"`
	FinalGarrison    Division     `json:"final_garrison"`
	OuterTimeline    []SiegeRound `json:"outer_timeline"`
	InnerTimeline    []InnerStep  `json:"inner_timeline"`
}

// AttackerLosses returns how many attackers did not survive
func (r *SiegeBattleResult) AttackerLosses() int {
	return max(0, r.InitialAttackers-r.FinalAttackers)
}

// GarrisonLosses returns the per-type garrison losses
func (r *SiegeBattleResult) GarrisonLosses() Division {
	return r.InitialGarrison.Sub(r.FinalGarrison)
}
