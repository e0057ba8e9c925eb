package loader

import (
	"fmt"
	"path/filepath"

	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/garrison"
	"github.com/napolitain/battle-lnk/internal/models"
)

// groupYAML describes a stationed group by type and head count; squads are
// raised from it
type groupYAML struct {
	ID        string          `yaml:"id"`
	Owner     string          `yaml:"owner"`
	Type      models.UnitType `yaml:"type"`
	Count     int             `yaml:"count"`
	SquadSize int             `yaml:"squad_size"` // 0 means DefaultSquadSize
}

type fortressYAML struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	FortHP      float64     `yaml:"fort_hp"`
	MaxFortHP   float64     `yaml:"max_fort_hp"`
	ArcherSlots int         `yaml:"archer_slots"`
	Garrison    []groupYAML `yaml:"garrison"`
}

type fortressesFile struct {
	Fortresses []fortressYAML `yaml:"fortresses"`
}

// LoadFortresses loads fortress definitions from fortresses.yaml
func LoadFortresses(dataDir string) ([]garrison.Fortress, error) {
	var file fortressesFile
	if err := loadYAML(filepath.Join(dataDir, "fortresses.yaml"), &file); err != nil {
		return nil, err
	}

	out := make([]garrison.Fortress, 0, len(file.Fortresses))
	seen := make(map[string]bool, len(file.Fortresses))
	for _, raw := range file.Fortresses {
		if seen[raw.ID] {
			return nil, errx.InvalidInput("duplicate fortress %q", raw.ID)
		}
		seen[raw.ID] = true

		f := garrison.Fortress{
			ID:          raw.ID,
			Name:        raw.Name,
			FortHP:      raw.FortHP,
			MaxFortHP:   raw.MaxFortHP,
			ArcherSlots: raw.ArcherSlots,
		}
		for _, g := range raw.Garrison {
			if !g.Type.Valid() {
				return nil, errx.InvalidInput("fortress %q: group %q has unknown type %q", raw.ID, g.ID, g.Type)
			}
			if g.Count < 0 || g.SquadSize < 0 {
				return nil, errx.InvalidInput("fortress %q: group %q has negative size", raw.ID, g.ID)
			}
			f.Groups = append(f.Groups, models.NewUnitGroup(g.ID, g.Owner, g.Type, g.Count, g.SquadSize))
		}

		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("fortress %q: %w", raw.ID, err)
		}
		out = append(out, f)
	}
	return out, nil
}
