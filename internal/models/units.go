package models

// UnitType represents a combat unit type
type UnitType string

const (
	Warrior UnitType = "warrior"
	Archer  UnitType = "archer"
)

// AllUnitTypes returns all unit types in deterministic order
func AllUnitTypes() []UnitType {
	return []UnitType{Warrior, Archer}
}

// Valid reports whether ut is a known unit type
func (ut UnitType) Valid() bool {
	switch ut {
	case Warrior, Archer:
		return true
	}
	return false
}

// UnitStats holds the combat coefficients of one unit type.
// Attack and defence values are expressed per 100 units.
type UnitStats struct {
	SkirmishAttack  float64 `yaml:"skirmish_attack" mapstructure:"skirmish_attack" json:"skirmish_attack"`
	SkirmishDefence float64 `yaml:"skirmish_defence" mapstructure:"skirmish_defence" json:"skirmish_defence"`
	MeleeAttack     float64 `yaml:"melee_attack" mapstructure:"melee_attack" json:"melee_attack"`
	MeleeDefence    float64 `yaml:"melee_defence" mapstructure:"melee_defence" json:"melee_defence"`
	Pursuit         float64 `yaml:"pursuit" mapstructure:"pursuit" json:"pursuit"`
	MoralePer100    float64 `yaml:"morale_per_100" mapstructure:"morale_per_100" json:"morale_per_100"`
}

func (s UnitStats) validate(ut UnitType) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"skirmish_attack", s.SkirmishAttack},
		{"skirmish_defence", s.SkirmishDefence},
		{"melee_attack", s.MeleeAttack},
		{"melee_defence", s.MeleeDefence},
		{"pursuit", s.Pursuit},
		{"morale_per_100", s.MoralePer100},
	}
	for _, f := range fields {
		if !nonNegative(f.value) {
			return invalidf("%s.%s must be non-negative, got %v", ut, f.name, f.value)
		}
	}
	return nil
}

// StatTable is the per-unit-type stat table (strict typing, no maps)
type StatTable struct {
	Warrior UnitStats `yaml:"warrior" mapstructure:"warrior" json:"warrior"`
	Archer  UnitStats `yaml:"archer" mapstructure:"archer" json:"archer"`
}

// Get returns the stats for a unit type
func (t StatTable) Get(ut UnitType) UnitStats {
	switch ut {
	case Warrior:
		return t.Warrior
	case Archer:
		return t.Archer
	}
	return UnitStats{}
}

// Validate rejects negative or NaN coefficients
func (t StatTable) Validate() error {
	for _, ut := range AllUnitTypes() {
		if err := t.Get(ut).validate(ut); err != nil {
			return err
		}
	}
	return nil
}

// DefaultStatTable returns the stock unit stats
func DefaultStatTable() StatTable {
	return StatTable{
		Warrior: UnitStats{
			SkirmishAttack:  4,
			SkirmishDefence: 8,
			MeleeAttack:     15,
			MeleeDefence:    12,
			Pursuit:         10,
			MoralePer100:    110,
		},
		Archer: UnitStats{
			SkirmishAttack:  30,
			SkirmishDefence: 6,
			MeleeAttack:     6,
			MeleeDefence:    6,
			Pursuit:         4,
			MoralePer100:    90,
		},
	}
}
