package models

// EncounterKind classifies a static enemy encounter
type EncounterKind string

const (
	KindField EncounterKind = "field"
	KindRaid  EncounterKind = "raid"
	KindScout EncounterKind = "scout"
)

// Encounter is a static enemy composition a player can march against
type Encounter struct {
	Name        string        `yaml:"name" json:"name"`
	Kind        EncounterKind `yaml:"kind" json:"kind"`
	Enemy       Division      `yaml:"enemy" json:"enemy"`
	Description string        `yaml:"description" json:"description,omitempty"`
}
