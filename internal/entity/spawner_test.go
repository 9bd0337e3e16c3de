package entity

import (
	"testing"

	"github.com/talgya/tidewood/internal/config"
)

func TestSpawnNPCs(t *testing.T) {
	m := NewManager(42, openPlain{})
	s := config.Default().Spawns
	m.SpawnNPCs(100, 100, s)

	if len(m.NPCs()) != s.NPCCount {
		t.Fatalf("spawned %d NPCs, want %d", len(m.NPCs()), s.NPCCount)
	}
	seen := make(map[string]bool)
	for _, n := range m.NPCs() {
		if n.State != NPCIdle {
			t.Errorf("NPC spawned in state %s, want idle", NPCStateName(n.State))
		}
		if n.HomeX != n.X || n.HomeY != n.Y {
			t.Error("NPC home differs from spawn position")
		}
		if seen[n.ID] {
			t.Errorf("duplicate NPC id %s", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestSpawnAnimalsLandOnly(t *testing.T) {
	// On a world with no water, aquatic spawns fail placement and are
	// skipped; land animals all land.
	m := NewManager(42, openPlain{})
	s := config.Default().Spawns
	m.SpawnAnimals(0, 0, s)

	for _, a := range m.Animals() {
		if a.Aquatic {
			t.Errorf("aquatic %s placed on a waterless world", a.Type)
		}
		if a.Speed <= 0 {
			t.Errorf("%s spawned with speed %.1f", a.Type, a.Speed)
		}
	}
}

func TestNPCsNearSorted(t *testing.T) {
	m := NewManager(7, openPlain{})
	s := config.Default().Spawns
	s.NPCCount = 20
	m.SpawnNPCs(0, 0, s)

	got := m.NPCsNear(0, 0, 300)
	prev := -1.0
	for _, n := range got {
		d := n.X*n.X + n.Y*n.Y
		if prev >= 0 && d < prev {
			t.Fatal("NPCsNear not sorted ascending by distance")
		}
		prev = d
	}
}

func TestManagerUpdateAdvancesAll(t *testing.T) {
	m := NewManager(42, openPlain{})
	s := config.Default().Spawns
	m.SpawnNPCs(0, 0, s)
	m.SpawnAnimals(0, 0, s)

	before := make(map[string]float64)
	for _, n := range m.NPCs() {
		before[n.ID] = n.Timer
	}
	m.Update(0.5, farAway, farAway)
	moved := 0
	for _, n := range m.NPCs() {
		if n.Timer != before[n.ID] {
			moved++
		}
	}
	if moved == 0 {
		t.Fatal("Update advanced no NPC timers")
	}
}
