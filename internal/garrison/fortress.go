// Package garrison is the caller side of the engine: it keeps fortresses and
// their stationed unit groups, runs sieges against them and writes losses
// back into the groups.
package garrison

import (
	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

// Fortress is a fortified position with its stationed unit groups
type Fortress struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	FortHP      float64            `yaml:"fort_hp" json:"fort_hp"`
	MaxFortHP   float64            `yaml:"max_fort_hp" json:"max_fort_hp"`
	ArcherSlots int                `yaml:"archer_slots" json:"archer_slots"`
	Groups      []models.UnitGroup `yaml:"groups" json:"groups"`
}

// Garrison sums the stationed groups by unit type
func (f Fortress) Garrison() models.Division {
	var d models.Division
	for _, g := range f.Groups {
		for _, ut := range models.AllUnitTypes() {
			d.Add(ut, g.StrengthOf(ut))
		}
	}
	return d
}

// State is the snapshot the siege resolver works on
func (f Fortress) State() models.FortressState {
	d := f.Garrison()
	return models.FortressState{
		FortHP:           f.FortHP,
		MaxFortHP:        f.MaxFortHP,
		ArcherSlots:      f.ArcherSlots,
		GarrisonWarriors: d.Warrior,
		GarrisonArchers:  d.Archer,
	}
}

// Clone returns a deep copy of the fortress and its groups
func (f Fortress) Clone() Fortress {
	out := f
	out.Groups = make([]models.UnitGroup, len(f.Groups))
	for i, g := range f.Groups {
		out.Groups[i] = g.Clone()
	}
	return out
}

// Validate checks identity, walls and every stationed group
func (f Fortress) Validate() error {
	if f.ID == "" {
		return errx.InvalidInput("fortress id is required")
	}
	for _, g := range f.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return f.State().Validate()
}
