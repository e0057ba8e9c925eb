package models

import "fmt"

// DefaultSquadSize is the capacity of a freshly raised squad
const DefaultSquadSize = 10

// Squad is a fixed-capacity, typed sub-unit inside a UnitGroup
type Squad struct {
	ID          string   `yaml:"id" json:"id"`
	Type        UnitType `yaml:"type" json:"type"`
	CurrentSize int      `yaml:"current_size" json:"current_size"`
	MaxSize     int      `yaml:"max_size" json:"max_size"`
}

// IsEmpty returns true if the squad has no one left
func (s Squad) IsEmpty() bool {
	return s.CurrentSize <= 0
}

// Validate checks 0 <= CurrentSize <= MaxSize and a known type
func (s Squad) Validate() error {
	if !s.Type.Valid() {
		return invalidf("squad %q has unknown type %q", s.ID, s.Type)
	}
	if s.MaxSize < 0 || s.CurrentSize < 0 || s.CurrentSize > s.MaxSize {
		return invalidf("squad %q size %d out of range [0,%d]", s.ID, s.CurrentSize, s.MaxSize)
	}
	return nil
}

// UnitGroup ("banner") is an ordered collection of squads with one owner
type UnitGroup struct {
	ID     string  `yaml:"id" json:"id"`
	Owner  string  `yaml:"owner" json:"owner"`
	Squads []Squad `yaml:"squads" json:"squads"`
}

// Strength returns the sum of squad sizes
func (g UnitGroup) Strength() int {
	total := 0
	for _, s := range g.Squads {
		total += s.CurrentSize
	}
	return total
}

// StrengthOf returns the summed size of squads of one type
func (g UnitGroup) StrengthOf(ut UnitType) int {
	total := 0
	for _, s := range g.Squads {
		if s.Type == ut {
			total += s.CurrentSize
		}
	}
	return total
}

// Division aggregates the group's squads by type
func (g UnitGroup) Division() Division {
	var d Division
	for _, s := range g.Squads {
		d.Add(s.Type, s.CurrentSize)
	}
	return d
}

// Clone returns a copy that shares no squad storage with g
func (g UnitGroup) Clone() UnitGroup {
	out := g
	out.Squads = make([]Squad, len(g.Squads))
	copy(out.Squads, g.Squads)
	return out
}

// Validate checks every squad
func (g UnitGroup) Validate() error {
	for _, s := range g.Squads {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewUnitGroup raises a group of full squads: count units of ut split into
// squads of size squadSize, the last one possibly partial.
func NewUnitGroup(id, owner string, ut UnitType, count, squadSize int) UnitGroup {
	g := UnitGroup{ID: id, Owner: owner}
	if squadSize <= 0 {
		squadSize = DefaultSquadSize
	}
	for i := 0; count > 0; i++ {
		size := min(count, squadSize)
		g.Squads = append(g.Squads, Squad{
			ID:          squadID(id, ut, i),
			Type:        ut,
			CurrentSize: size,
			MaxSize:     squadSize,
		})
		count -= size
	}
	return g
}

func squadID(groupID string, ut UnitType, i int) string {
	return fmt.Sprintf("%s/%s-%d", groupID, ut, i+1)
}
