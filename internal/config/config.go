// Package config loads the tuning file controlling world scale, object
// densities, entity spawn tables, recipes, and quests. Everything has a
// compiled-in default so the server runs without a file; malformed or
// missing entries degrade to defaults rather than aborting.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the root of the tuning file.
type Tuning struct {
	World   WorldTuning   `yaml:"world"`
	Spawns  SpawnTuning   `yaml:"spawns"`
	Recipes []Recipe      `yaml:"recipes"`
	Quests  []QuestDef    `yaml:"quests"`
	Server  ServerTuning  `yaml:"server"`
}

// WorldTuning controls terrain scale and object placement densities.
type WorldTuning struct {
	TileSize        int     `yaml:"tile_size"`         // pixels per tile
	ChunkSize       int     `yaml:"chunk_size"`        // tiles per chunk side
	TreeDensity     float64 `yaml:"tree_density"`
	RockDensity     float64 `yaml:"rock_density"`
	FlowerDensity   float64 `yaml:"flower_density"`
	BuildingDensity float64 `yaml:"building_density"`
	RespawnDelaySec float64 `yaml:"respawn_delay_sec"` // renewable resource cooldown
}

// SpawnTuning controls the one-time NPC/animal population around the
// player's start position.
type SpawnTuning struct {
	NPCCount     int         `yaml:"npc_count"`
	NPCRadius    float64     `yaml:"npc_radius"`
	NPCTypes     []SpawnType `yaml:"npc_types"`
	AnimalCount  int         `yaml:"animal_count"`
	AnimalRadius float64     `yaml:"animal_radius"`
	AnimalTypes  []SpawnType `yaml:"animal_types"`
}

// SpawnType is one entry in a spawn table.
type SpawnType struct {
	Name    string  `yaml:"name"`
	Weight  int     `yaml:"weight"`
	Speed   float64 `yaml:"speed"`   // px/s, animals only
	Aquatic bool    `yaml:"aquatic"` // animals only: lives in water
}

// Recipe converts counted inputs into an output item.
type Recipe struct {
	Name    string         `yaml:"name"`
	Inputs  map[string]int `yaml:"inputs"`
	Output  string         `yaml:"output"`
	Count   int            `yaml:"count"`
}

// QuestDef is a collect-N objective with an item reward.
type QuestDef struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Resource    string `yaml:"resource"`
	Amount      int    `yaml:"amount"`
	RewardItem  string `yaml:"reward_item"`
	RewardCount int    `yaml:"reward_count"`
}

// ServerTuning controls the outer surfaces.
type ServerTuning struct {
	Port            int `yaml:"port"`
	FrameIntervalMs int `yaml:"frame_interval_ms"`
	DayLengthSec    int `yaml:"day_length_sec"`
}

// Default returns the compiled-in tuning.
func Default() Tuning {
	return Tuning{
		World: WorldTuning{
			TileSize:        32,
			ChunkSize:       16,
			TreeDensity:     0.08,
			RockDensity:     0.05,
			FlowerDensity:   0.04,
			BuildingDensity: 0.002,
			RespawnDelaySec: 30,
		},
		Spawns: SpawnTuning{
			NPCCount:  8,
			NPCRadius: 400,
			NPCTypes: []SpawnType{
				{Name: "villager", Weight: 5},
				{Name: "merchant", Weight: 2},
				{Name: "elder", Weight: 1},
			},
			AnimalCount:  12,
			AnimalRadius: 600,
			AnimalTypes: []SpawnType{
				{Name: "rabbit", Weight: 4, Speed: 60},
				{Name: "deer", Weight: 3, Speed: 45},
				{Name: "bird", Weight: 3, Speed: 70},
				{Name: "fish", Weight: 2, Speed: 35, Aquatic: true},
			},
		},
		Recipes: []Recipe{
			{Name: "plank", Inputs: map[string]int{"wood": 2}, Output: "plank", Count: 1},
			{Name: "campfire", Inputs: map[string]int{"wood": 3, "stone": 2}, Output: "campfire", Count: 1},
			{Name: "berry_jam", Inputs: map[string]int{"berry": 4}, Output: "berry_jam", Count: 1},
			{Name: "flower_crown", Inputs: map[string]int{"flower": 5}, Output: "flower_crown", Count: 1},
		},
		Quests: []QuestDef{
			{ID: "gather_wood", Title: "Timber!", Resource: "wood", Amount: 10, RewardItem: "plank", RewardCount: 2},
			{ID: "rock_hound", Title: "Rock Hound", Resource: "stone", Amount: 6, RewardItem: "campfire", RewardCount: 1},
			{ID: "forager", Title: "Forager", Resource: "berry", Amount: 8, RewardItem: "berry_jam", RewardCount: 1},
		},
		Server: ServerTuning{
			Port:            8080,
			FrameIntervalMs: 50,
			DayLengthSec:    600,
		},
	}
}

// Load reads a tuning file and overlays it on the defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Default(), fmt.Errorf("tuning.yaml: %w", err)
	}
	t.fillDefaults()
	return t, nil
}

// fillDefaults repairs zero or nonsense values left by a partial file.
func (t *Tuning) fillDefaults() {
	d := Default()
	if t.World.TileSize <= 0 {
		t.World.TileSize = d.World.TileSize
	}
	if t.World.ChunkSize <= 0 {
		t.World.ChunkSize = d.World.ChunkSize
	}
	if t.World.RespawnDelaySec <= 0 {
		t.World.RespawnDelaySec = d.World.RespawnDelaySec
	}
	if len(t.Spawns.NPCTypes) == 0 {
		t.Spawns.NPCTypes = d.Spawns.NPCTypes
	}
	if len(t.Spawns.AnimalTypes) == 0 {
		t.Spawns.AnimalTypes = d.Spawns.AnimalTypes
	}
	if t.Spawns.NPCCount <= 0 {
		t.Spawns.NPCCount = d.Spawns.NPCCount
	}
	if t.Spawns.AnimalCount <= 0 {
		t.Spawns.AnimalCount = d.Spawns.AnimalCount
	}
	if t.Spawns.NPCRadius <= 0 {
		t.Spawns.NPCRadius = d.Spawns.NPCRadius
	}
	if t.Spawns.AnimalRadius <= 0 {
		t.Spawns.AnimalRadius = d.Spawns.AnimalRadius
	}
	if t.Server.Port <= 0 {
		t.Server.Port = d.Server.Port
	}
	if t.Server.FrameIntervalMs <= 0 {
		t.Server.FrameIntervalMs = d.Server.FrameIntervalMs
	}
	if t.Server.DayLengthSec <= 0 {
		t.Server.DayLengthSec = d.Server.DayLengthSec
	}
}
