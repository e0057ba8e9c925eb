// Package loader reads the static game data files under data/.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

type encountersFile struct {
	Encounters []models.Encounter `yaml:"encounters"`
}

// LoadEncounters loads the static enemy compositions from encounters.yaml
func LoadEncounters(dataDir string) ([]models.Encounter, error) {
	var file encountersFile
	if err := loadYAML(filepath.Join(dataDir, "encounters.yaml"), &file); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(file.Encounters))
	for _, e := range file.Encounters {
		if e.Name == "" {
			return nil, errx.InvalidInput("encounter without a name")
		}
		if seen[e.Name] {
			return nil, errx.InvalidInput("duplicate encounter %q", e.Name)
		}
		seen[e.Name] = true

		switch e.Kind {
		case models.KindField, models.KindRaid, models.KindScout:
		default:
			return nil, errx.InvalidInput("encounter %q has unknown kind %q", e.Name, e.Kind)
		}
		if err := e.Enemy.Validate(); err != nil {
			return nil, fmt.Errorf("encounter %q: %w", e.Name, err)
		}
	}
	return file.Encounters, nil
}

// FindEncounter returns the encounter with the given name
func FindEncounter(encounters []models.Encounter, name string) (models.Encounter, error) {
	for _, e := range encounters {
		if e.Name == name {
			return e, nil
		}
	}
	return models.Encounter{}, errx.NotFound("encounter %q", name)
}
