package models

// FortressState is the siege-relevant snapshot of a fortified position
type FortressState struct {
	FortHP           float64 `yaml:"fort_hp" json:"fort_hp"`
	MaxFortHP        float64 `yaml:"max_fort_hp" json:"max_fort_hp"` // 0 means uncapped
	ArcherSlots      int     `yaml:"archer_slots" json:"archer_slots"`
	GarrisonWarriors int     `yaml:"garrison_warriors" json:"garrison_warriors"`
	GarrisonArchers  int     `yaml:"garrison_archers" json:"garrison_archers"`
}

// Garrison returns the defending force as a division
func (f FortressState) Garrison() Division {
	return Division{Warrior: f.GarrisonWarriors, Archer: f.GarrisonArchers}
}

// ActiveArchers is the number of defending archers that can shoot from the walls
func (f FortressState) ActiveArchers() int {
	return min(f.GarrisonArchers, f.ArcherSlots)
}

// Validate rejects negative values and HP above the cap
func (f FortressState) Validate() error {
	if !nonNegative(f.FortHP) || !nonNegative(f.MaxFortHP) {
		return invalidf("fort hp must be non-negative (hp=%v max=%v)", f.FortHP, f.MaxFortHP)
	}
	if f.MaxFortHP > 0 && f.FortHP > f.MaxFortHP {
		return invalidf("fort hp %v exceeds cap %v", f.FortHP, f.MaxFortHP)
	}
	if f.ArcherSlots < 0 {
		return invalidf("archer slots must be non-negative, got %d", f.ArcherSlots)
	}
	return f.Garrison().Validate()
}
