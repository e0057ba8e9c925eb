package models

import "math"

// Division is an unstructured force: per-type unit counts only (no maps)
type Division struct {
	Warrior int `yaml:"warrior" mapstructure:"warrior" json:"warrior"`
	Archer  int `yaml:"archer" mapstructure:"archer" json:"archer"`
}

// Get returns count for a unit type
func (d Division) Get(ut UnitType) int {
	switch ut {
	case Warrior:
		return d.Warrior
	case Archer:
		return d.Archer
	}
	return 0
}

// Set sets count for a unit type
func (d *Division) Set(ut UnitType, count int) {
	switch ut {
	case Warrior:
		d.Warrior = count
	case Archer:
		d.Archer = count
	}
}

// Add adds units of a type
func (d *Division) Add(ut UnitType, count int) {
	d.Set(ut, d.Get(ut)+count)
}

// Remove removes units of a type (floors at 0)
func (d *Division) Remove(ut UnitType, count int) {
	d.Set(ut, max(0, d.Get(ut)-count))
}

// Total returns total count of all units
func (d Division) Total() int {
	return d.Warrior + d.Archer
}

// IsEmpty returns true if the division has no units
func (d Division) IsEmpty() bool {
	return d.Total() == 0
}

// Sub returns the per-type difference d - o, floored at 0
func (d Division) Sub(o Division) Division {
	var out Division
	for _, ut := range AllUnitTypes() {
		out.Set(ut, max(0, d.Get(ut)-o.Get(ut)))
	}
	return out
}

// Validate rejects negative counts
func (d Division) Validate() error {
	for _, ut := range AllUnitTypes() {
		if n := d.Get(ut); n < 0 {
			return invalidf("%s count must be non-negative, got %d", ut, n)
		}
	}
	return nil
}

// Troops converts the division to fractional counts
func (d Division) Troops() Troops {
	return Troops{Warrior: float64(d.Warrior), Archer: float64(d.Archer)}
}

// Troops holds fractional per-type counts used while a battle is running
type Troops struct {
	Warrior float64 `json:"warrior"`
	Archer  float64 `json:"archer"`
}

// Get returns count for a unit type
func (t Troops) Get(ut UnitType) float64 {
	switch ut {
	case Warrior:
		return t.Warrior
	case Archer:
		return t.Archer
	}
	return 0
}

// Set sets count for a unit type, clamped at 0
func (t *Troops) Set(ut UnitType, count float64) {
	count = max(0, count)
	switch ut {
	case Warrior:
		t.Warrior = count
	case Archer:
		t.Archer = count
	}
}

// Total returns the summed strength
func (t Troops) Total() float64 {
	return t.Warrior + t.Archer
}

// survivorEpsilon absorbs float noise so 4.0000001 survivors count as 4
const survivorEpsilon = 1e-6

// Division converts to whole units. Any fractional remainder counts as a
// survivor, and a type never exceeds ceiling, so a result derived from an
// integer division never grows past it.
func (t Troops) Division(ceiling Division) Division {
	var out Division
	for _, ut := range AllUnitTypes() {
		n := int(math.Ceil(t.Get(ut) - survivorEpsilon))
		out.Set(ut, max(0, min(n, ceiling.Get(ut))))
	}
	return out
}
