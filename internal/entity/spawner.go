// Entity spawning and the per-frame update fanout. One-time population
// around the player's start position, driven by config spawn tables.
package entity

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/ids"
	"github.com/talgya/tidewood/internal/world"
)

const placementAttempts = 20

// Manager owns all NPCs and animals for a session.
type Manager struct {
	rng     *rand.Rand
	terrain Terrain

	npcs    []*NPC
	animals []*Animal
}

// NewManager creates an entity manager. The seed offsets keep entity
// randomness independent of the terrain streams.
func NewManager(seed int64, t Terrain) *Manager {
	return &Manager{
		rng:     rand.New(rand.NewSource(seed + 300)),
		terrain: t,
	}
}

// SpawnNPCs populates NPCs around a point. Each is dropped on a
// walkable spot within the radius; its home is wherever it lands.
func (m *Manager) SpawnNPCs(x, y float64, s config.SpawnTuning) {
	for i := 0; i < s.NPCCount; i++ {
		px, py, ok := m.findSpot(x, y, s.NPCRadius, false)
		if !ok {
			slog.Debug("npc placement failed", "index", i)
			continue
		}
		dirX, dirY := randomDir(m.rng)
		m.npcs = append(m.npcs, &NPC{
			ID:    ids.NewEntityID(),
			Type:  pickType(m.rng, s.NPCTypes).Name,
			X:     px,
			Y:     py,
			HomeX: px,
			HomeY: py,
			DirX:  dirX,
			DirY:  dirY,
			State: NPCIdle,
			Timer: idleDwell(m.rng),
		})
	}
	slog.Info("npcs spawned", "count", len(m.npcs))
}

// SpawnAnimals populates animals around a point. Aquatic types need a
// water tile; everything else needs walkable land.
func (m *Manager) SpawnAnimals(x, y float64, s config.SpawnTuning) {
	for i := 0; i < s.AnimalCount; i++ {
		st := pickType(m.rng, s.AnimalTypes)
		px, py, ok := m.findSpot(x, y, s.AnimalRadius, st.Aquatic)
		if !ok {
			slog.Debug("animal placement failed", "type", st.Name, "index", i)
			continue
		}
		speed := st.Speed
		if speed <= 0 {
			speed = 40
		}
		dirX, dirY := randomDir(m.rng)
		m.animals = append(m.animals, &Animal{
			ID:      ids.NewEntityID(),
			Type:    st.Name,
			X:       px,
			Y:       py,
			DirX:    dirX,
			DirY:    dirY,
			Speed:   speed,
			Aquatic: st.Aquatic,
			State:   AnimalIdle,
			Timer:   2 + m.rng.Float64()*3,
		})
	}
	slog.Info("animals spawned", "count", len(m.animals))
}

// findSpot samples positions within the radius until the affinity is
// satisfied or attempts run out.
func (m *Manager) findSpot(x, y, radius float64, wantWater bool) (float64, float64, bool) {
	for i := 0; i < placementAttempts; i++ {
		px := x + (m.rng.Float64()*2-1)*radius
		py := y + (m.rng.Float64()*2-1)*radius
		if wantWater {
			if m.terrain.BiomeAt(px, py) == world.BiomeWater {
				return px, py, true
			}
			continue
		}
		if m.terrain.IsWalkable(px, py) {
			return px, py, true
		}
	}
	return 0, 0, false
}

// pickType draws from a weighted spawn table.
func pickType(r *rand.Rand, table []config.SpawnType) config.SpawnType {
	total := 0
	for _, t := range table {
		w := t.Weight
		if w <= 0 {
			w = 1
		}
		total += w
	}
	roll := r.Intn(total)
	for _, t := range table {
		w := t.Weight
		if w <= 0 {
			w = 1
		}
		roll -= w
		if roll < 0 {
			return t
		}
	}
	return table[len(table)-1]
}

// Update advances every entity state machine by dt seconds.
func (m *Manager) Update(dt, playerX, playerY float64) {
	for _, n := range m.npcs {
		n.Tick(dt, playerX, playerY, m.terrain, m.rng)
	}
	for _, a := range m.animals {
		a.Tick(dt, playerX, playerY, m.terrain, m.rng)
	}
}

// NPCs returns the NPC list.
func (m *Manager) NPCs() []*NPC { return m.npcs }

// Animals returns the animal list.
func (m *Manager) Animals() []*Animal { return m.animals }

// NPCsNear returns NPCs within radius of (x, y), ascending by distance.
// Flat-list scan; fine for the bounded session population.
func (m *Manager) NPCsNear(x, y, radius float64) []*NPC {
	type hit struct {
		n *NPC
		d float64
	}
	var hits []hit
	for _, n := range m.npcs {
		if d := math.Hypot(n.X-x, n.Y-y); d <= radius {
			hits = append(hits, hit{n: n, d: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]*NPC, len(hits))
	for i, h := range hits {
		out[i] = h.n
	}
	return out
}

// AnimalsNear returns animals within radius of (x, y), ascending by
// distance.
func (m *Manager) AnimalsNear(x, y, radius float64) []*Animal {
	type hit struct {
		a *Animal
		d float64
	}
	var hits []hit
	for _, a := range m.animals {
		if d := math.Hypot(a.X-x, a.Y-y); d <= radius {
			hits = append(hits, hit{a: a, d: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]*Animal, len(hits))
	for i, h := range hits {
		out[i] = h.a
	}
	return out
}
