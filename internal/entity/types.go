// Package entity provides the NPC and animal data model and their
// per-tick behavior state machines.
package entity

import (
	"github.com/talgya/tidewood/internal/world"
)

// Terrain is the slice of the world the state machines consult when
// deciding whether a step is allowed.
type Terrain interface {
	IsWalkable(x, y float64) bool
	BiomeAt(x, y float64) world.Biome
}

// NPCState enumerates NPC behavior states.
type NPCState uint8

const (
	NPCIdle NPCState = iota
	NPCWalking
)

// NPCStateName returns a human-readable name for an NPC state.
func NPCStateName(s NPCState) string {
	switch s {
	case NPCWalking:
		return "walking"
	default:
		return "idle"
	}
}

// NPC is a wandering villager tethered to a home position. Created in
// bulk at world-spawn time, mutated every tick, never destroyed.
type NPC struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	HomeX float64 `json:"home_x"`
	HomeY float64 `json:"home_y"`
	DirX  float64 `json:"dir_x"`
	DirY  float64 `json:"dir_y"`

	State NPCState `json:"state"`
	Timer float64  `json:"timer"` // seconds left in the current state
}

// AnimalState enumerates animal behavior states.
type AnimalState uint8

const (
	AnimalIdle AnimalState = iota
	AnimalMoving
	AnimalFleeing
)

// AnimalStateName returns a human-readable name for an animal state.
func AnimalStateName(s AnimalState) string {
	switch s {
	case AnimalMoving:
		return "moving"
	case AnimalFleeing:
		return "fleeing"
	default:
		return "idle"
	}
}

// Animal wanders freely, flees the player, and is bound to its water
// affinity: fish move only within water, everything else only on land.
type Animal struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	DirX float64 `json:"dir_x"`
	DirY float64 `json:"dir_y"`

	Speed   float64 `json:"speed"` // base px/s; fleeing multiplies it
	Aquatic bool    `json:"aquatic"`

	State AnimalState `json:"state"`
	Timer float64     `json:"timer"`
}
