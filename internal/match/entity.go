package match

import (
	"github.com/google/uuid"
)

// PositionGoalkeeper is the roster position that marks goalkeepers.
// It matters for the 7x6 field status and the goalkeeper-specific UI flows.
const PositionGoalkeeper = "GR"

// Achievement is a timestamped label earned by a player (steal,
// interception, drawn 2', drawn 7m, ...).
type Achievement struct {
	Elapsed int    `json:"elapsed"` // match seconds when earned
	Label   string `json:"label"`
}

// Entity is a rostered player or team official. Both share the same
// sanction counters; officials never occupy a field slot and never
// accrue playing time. Entities are created once at roster load and
// live for the whole match.
type Entity struct {
	ID         string `json:"id"`
	Number     int    `json:"number"` // 0 for officials
	Name       string `json:"name"`
	Position   string `json:"position"` // "GR" marks goalkeepers; officials carry their role (A..E)
	IsOfficial bool   `json:"isOfficial"`

	InField    bool    `json:"inField"`
	TimePlayed float64 `json:"timePlayed"` // seconds, accrues only on field with the clock running

	Yellow       int     `json:"yellow"`
	TwoTotal     int     `json:"twoTotal"`
	TwoActive    float64 `json:"twoActive"` // remaining seconds of an active 2' suspension
	Red          int     `json:"red"`
	Disqualified bool    `json:"disqualified"`
	TechFaults   int     `json:"techFaults"`

	Achievements []Achievement `json:"achievements,omitempty"`
}

// newPlayer creates a player entity from roster data.
func newPlayer(number int, name, position string) *Entity {
	return &Entity{
		ID:       uuid.NewString(),
		Number:   number,
		Name:     name,
		Position: position,
	}
}

// newOfficial creates an official entity from roster data.
func newOfficial(name, role string) *Entity {
	return &Entity{
		ID:         uuid.NewString(),
		Name:       name,
		Position:   role,
		IsOfficial: true,
	}
}

// IsGoalkeeper reports whether the entity is rostered as a goalkeeper.
func (e *Entity) IsGoalkeeper() bool {
	return !e.IsOfficial && e.Position == PositionGoalkeeper
}

// Suspended reports whether the entity has an active 2' countdown.
func (e *Entity) Suspended() bool {
	return e.TwoActive > 0
}

// Clone returns a deep copy, used by the undo snapshot.
func (e *Entity) Clone() *Entity {
	c := *e
	if e.Achievements != nil {
		c.Achievements = make([]Achievement, len(e.Achievements))
		copy(c.Achievements, e.Achievements)
	}
	return &c
}
