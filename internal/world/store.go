// World store: lazily generated chunk cache, global building list,
// walkability, spatial queries, and the harvest/respawn lifecycle.
package world

import (
	"math"
	"sort"
	"sync"
)

// IDAllocator hands out globally unique object/building ids. Injected
// so generation carries no hidden process-wide state.
type IDAllocator interface {
	Next() int64
}

// Config holds world generation parameters.
type Config struct {
	Seed            int64
	TileSize        int     // pixels per tile
	ChunkSize       int     // tiles per chunk side
	TreeDensity     float64
	RockDensity     float64
	FlowerDensity   float64
	BuildingDensity float64
	RespawnDelay    float64 // seconds until a renewable resource returns
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Seed:            42,
		TileSize:        32,
		ChunkSize:       16,
		TreeDensity:     0.08,
		RockDensity:     0.05,
		FlowerDensity:   0.04,
		BuildingDensity: 0.002,
		RespawnDelay:    30,
	}
}

// World owns the chunk cache and answers all terrain queries. Chunks
// are generated on first access and never evicted; growth is bounded
// only by exploration. Safe for concurrent use; one mutex guards the
// cache and all object mutation.
type World struct {
	mu    sync.Mutex
	cfg   Config
	class *classifier
	alloc IDAllocator

	chunks    map[ChunkCoord]*Chunk
	buildings []*Building

	// World clock in seconds, advanced by Update. Drives renewable
	// resource respawn without wall-clock waits.
	clock float64
}

// New creates a world from a config and an id allocator.
func New(cfg Config, alloc IDAllocator) *World {
	if cfg.TileSize <= 0 {
		cfg.TileSize = 32
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 16
	}
	return &World{
		cfg:    cfg,
		class:  newClassifier(cfg.Seed),
		alloc:  alloc,
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Seed returns the world seed.
func (w *World) Seed() int64 { return w.cfg.Seed }

// TileSize returns the pixel size of one tile.
func (w *World) TileSize() int { return w.cfg.TileSize }

// ChunkSize returns the tile count per chunk side.
func (w *World) ChunkSize() int { return w.cfg.ChunkSize }

// chunkPx is the pixel span of one chunk side.
func (w *World) chunkPx() float64 {
	return float64(w.cfg.ChunkSize * w.cfg.TileSize)
}

// ChunkCoordAt maps a world pixel coordinate to its chunk coordinate.
func (w *World) ChunkCoordAt(x, y float64) ChunkCoord {
	span := w.chunkPx()
	return ChunkCoord{
		CX: int(math.Floor(x / span)),
		CY: int(math.Floor(y / span)),
	}
}

// GetChunk returns the chunk at (cx, cy), generating it on first
// access. Idempotent: repeated calls return the same chunk.
func (w *World) GetChunk(cx, cy int) *Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.getChunkLocked(ChunkCoord{CX: cx, CY: cy})
}

func (w *World) getChunkLocked(c ChunkCoord) *Chunk {
	if ch, ok := w.chunks[c]; ok {
		return ch
	}
	ch := w.generateChunk(c)
	w.chunks[c] = ch
	return ch
}

// Pregenerate materializes a square radius of chunks around a world
// point, so the first frames after spawn render without generation
// stalls.
func (w *World) Pregenerate(x, y float64, radius int) int {
	center := w.ChunkCoordAt(x, y)
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			w.getChunkLocked(ChunkCoord{CX: center.CX + dx, CY: center.CY + dy})
			n++
		}
	}
	return n
}

// BiomeAt classifies a world pixel coordinate.
func (w *World) BiomeAt(x, y float64) Biome {
	return w.class.biomeAt(x, y)
}

// TerrainColor returns the display color for a world pixel coordinate.
func (w *World) TerrainColor(x, y float64) string {
	return w.class.colorAt(x, y, w.class.biomeAt(x, y))
}

// doorTolerance is the walkable window around a door opening, in px.
const doorTolerance = 20

// IsWalkable reports whether a world point can be stood on: not water,
// and not inside a building footprint, except near the door opening of
// a door-bearing building.
func (w *World) IsWalkable(x, y float64) bool {
	if w.class.biomeAt(x, y) == BiomeWater {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range w.buildings {
		if !b.Contains(x, y) {
			continue
		}
		if b.HasDoor && dist(x, y, b.DoorX(), b.DoorY()) <= doorTolerance {
			continue
		}
		return false
	}
	return true
}

// ObjectsNear returns all objects within radius of (x, y), ascending by
// distance. Candidates come from the 3x3 block of chunks around the
// query point; missing chunks are generated on the way. Results are
// value copies taken under the world lock, so callers may hold or
// serialize them while Update and Harvest keep mutating the originals.
func (w *World) ObjectsNear(x, y, radius float64) []Object {
	center := w.ChunkCoordAt(x, y)
	w.mu.Lock()
	defer w.mu.Unlock()

	type hit struct {
		obj Object
		d   float64
	}
	var hits []hit
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			ch := w.getChunkLocked(ChunkCoord{CX: center.CX + dx, CY: center.CY + dy})
			for _, o := range ch.Objects {
				if d := dist(x, y, o.X, o.Y); d <= radius {
					hits = append(hits, hit{obj: *o, d: d})
				}
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })

	out := make([]Object, len(hits))
	for i, h := range hits {
		out[i] = h.obj
	}
	return out
}

// ChunkSnapshot returns a copy of the chunk at (cx, cy) with its
// objects duplicated, safe to serialize outside the lock. The tile
// grid is shared; tiles are immutable after generation.
func (w *World) ChunkSnapshot(cx, cy int) Chunk {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := w.getChunkLocked(ChunkCoord{CX: cx, CY: cy})
	out := Chunk{
		Coord:     ch.Coord,
		Tiles:     ch.Tiles,
		Objects:   make([]*Object, len(ch.Objects)),
		Generated: ch.Generated,
	}
	for i, o := range ch.Objects {
		c := *o
		out.Objects[i] = &c
	}
	return out
}

// BuildingsNear returns buildings within radius of (x, y), ascending by
// distance. The building list is flat, not chunk-indexed; correctness
// is bounded by the radius filter, efficiency by the modest building
// count.
func (w *World) BuildingsNear(x, y, radius float64) []*Building {
	w.mu.Lock()
	defer w.mu.Unlock()

	type hit struct {
		b *Building
		d float64
	}
	var hits []hit
	for _, b := range w.buildings {
		if d := dist(x, y, b.X, b.Y); d <= radius {
			hits = append(hits, hit{b: b, d: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })

	out := make([]*Building, len(hits))
	for i, h := range hits {
		out[i] = h.b
	}
	return out
}

// Buildings returns the global building list.
func (w *World) Buildings() []*Building {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Building, len(w.buildings))
	copy(out, w.buildings)
	return out
}

// HarvestResult is what a successful harvest yields.
type HarvestResult struct {
	Resource ResourceKind `json:"resource"`
	Amount   int          `json:"amount"`
}

// Harvest collects the object with the given id. Trees and rocks are
// removed permanently; flowers, mushrooms, and bushes go dormant until
// the respawn delay elapses on the world clock. Returns ok=false when
// no live harvestable object matches; callers treat that as a no-op.
func (w *World) Harvest(id int64) (HarvestResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.chunks {
		for i, o := range ch.Objects {
			if o.ID != id {
				continue
			}
			if !o.Harvestable {
				return HarvestResult{}, false
			}
			res := HarvestResult{Resource: o.Resource, Amount: o.Yield}
			switch o.Type {
			case ObjectTree, ObjectRock:
				ch.Objects = append(ch.Objects[:i], ch.Objects[i+1:]...)
			case ObjectFlower, ObjectMushroom, ObjectBush:
				o.Harvestable = false
				o.HarvestableAt = w.clock + w.cfg.RespawnDelay
			default:
				return HarvestResult{}, false
			}
			return res, true
		}
	}
	return HarvestResult{}, false
}

// Update advances the world clock and wakes dormant renewables whose
// respawn time has passed. The scan covers every generated chunk; fine
// while exploration stays in the thousands of chunks.
func (w *World) Update(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.clock += dt
	for _, ch := range w.chunks {
		for _, o := range ch.Objects {
			if !o.Harvestable && o.HarvestableAt > 0 && w.clock >= o.HarvestableAt {
				o.Harvestable = true
				o.HarvestableAt = 0
			}
		}
	}
}

// Clock returns the world clock in seconds.
func (w *World) Clock() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clock
}

// ChunkCount returns how many chunks have been generated.
func (w *World) ChunkCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.chunks)
}

// ObjectCount returns the live object total across generated chunks.
func (w *World) ObjectCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, ch := range w.chunks {
		n += len(ch.Objects)
	}
	return n
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
