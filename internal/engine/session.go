// Package engine ties the world, entities, sky, and player systems
// together behind a single session facade, and drives them with a
// frame loop.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/entity"
	"github.com/talgya/tidewood/internal/ids"
	"github.com/talgya/tidewood/internal/items"
	"github.com/talgya/tidewood/internal/journal"
	"github.com/talgya/tidewood/internal/quest"
	"github.com/talgya/tidewood/internal/sky"
	"github.com/talgya/tidewood/internal/world"
)

// maxFrameDt caps a single frame's simulated time. A long stall (GC
// pause, suspended laptop) advances the world by at most this much
// instead of teleporting every entity.
const maxFrameDt = 0.1

// Session holds one running world and everything attached to it. The
// frame loop goroutine drives mutation through Update; the API and
// websocket surfaces call the same methods from their own goroutines,
// so every method serializes on the session mutex.
type Session struct {
	mu sync.Mutex

	cfg   config.Tuning
	world *world.World
	ents  *entity.Manager
	sky   *sky.Clock
	inv   *items.Inventory
	craft *items.Crafter
	log   *quest.Log
	jrnl  *journal.DB // nil disables journaling

	playerX, playerY float64
	lastPhase        sky.Phase
}

// NewSession builds a session from tuning and a seed. The journal may
// be nil.
func NewSession(cfg config.Tuning, seed int64, jrnl *journal.DB) *Session {
	w := world.New(world.Config{
		Seed:            seed,
		TileSize:        cfg.World.TileSize,
		ChunkSize:       cfg.World.ChunkSize,
		TreeDensity:     cfg.World.TreeDensity,
		RockDensity:     cfg.World.RockDensity,
		FlowerDensity:   cfg.World.FlowerDensity,
		BuildingDensity: cfg.World.BuildingDensity,
		RespawnDelay:    cfg.World.RespawnDelaySec,
	}, ids.NewSequence())

	sk := sky.New(seed, cfg.Server.DayLengthSec)
	s := &Session{
		cfg:       cfg,
		world:     w,
		ents:      entity.NewManager(seed, w),
		sky:       sk,
		inv:       items.NewInventory(),
		craft:     items.NewCrafter(cfg.Recipes),
		log:       quest.NewLog(cfg.Quests),
		jrnl:      jrnl,
		lastPhase: sk.Phase(),
	}
	return s
}

// World exposes the underlying world store.
func (s *Session) World() *world.World { return s.world }

// Seed returns the world seed.
func (s *Session) Seed() int64 { return s.world.Seed() }

// SetPlayer moves the player anchor that entities react to.
func (s *Session) SetPlayer(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerX = x
	s.playerY = y
}

// Player returns the player anchor position.
func (s *Session) Player() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerX, s.playerY
}

// SpawnPopulation places the configured NPCs and animals around the
// player anchor. Called once at startup after Pregenerate.
func (s *Session) SpawnPopulation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ents.SpawnNPCs(s.playerX, s.playerY, s.cfg.Spawns)
	s.ents.SpawnAnimals(s.playerX, s.playerY, s.cfg.Spawns)
	if s.jrnl != nil {
		s.jrnl.Record(s.world.Clock(), "spawn",
			"population spawned around player start")
	}
}

// Update advances the whole session by dt seconds: world clock and
// respawns, entity state machines, and the sky. dt is clamped to
// maxFrameDt.
func (s *Session) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.Update(dt)
	s.ents.Update(dt, s.playerX, s.playerY)
	s.sky.Advance(dt)

	if p := s.sky.Phase(); p != s.lastPhase {
		s.lastPhase = p
		if s.jrnl != nil {
			s.jrnl.Record(s.world.Clock(), "sky", sky.PhaseName(p)+" begins")
		}
	}
}

// Harvest collects an object by id, deposits its yield into the
// inventory, and advances quests. Returns ok=false when the object is
// missing or not currently harvestable.
func (s *Session) Harvest(id int64) (world.HarvestResult, bool) {
	res, ok := s.world.Harvest(id)
	if !ok {
		return world.HarvestResult{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kind := world.ResourceName(res.Resource)
	s.inv.Add(kind, res.Amount)
	completed := s.log.OnHarvest(kind, res.Amount, s.inv)

	if s.jrnl != nil {
		s.jrnl.Record(s.world.Clock(), "harvest",
			fmt.Sprintf("harvested %d %s", res.Amount, kind))
		for _, title := range completed {
			s.jrnl.Record(s.world.Clock(), "quest",
				"quest complete: "+title)
		}
	}
	for _, title := range completed {
		slog.Info("quest complete", "title", title)
	}
	return res, true
}

// Craft applies a recipe to the inventory.
func (s *Session) Craft(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.craft.Craft(s.inv, name); err != nil {
		return err
	}
	if s.jrnl != nil {
		s.jrnl.Record(s.world.Clock(), "craft", "crafted "+name)
	}
	return nil
}

// Inventory returns a copy of the player inventory counts.
func (s *Session) Inventory() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.All()
}

// Quests returns the quest log.
func (s *Session) Quests() []*quest.Quest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Quests()
}

// Recipes returns the craftable recipe table.
func (s *Session) Recipes() []config.Recipe { return s.craft.Recipes() }

// NPCsNear returns NPCs within radius of a point, nearest first. The
// results are value copies taken under the session mutex; callers may
// hold or serialize them while the frame loop keeps ticking.
func (s *Session) NPCsNear(x, y, radius float64) []entity.NPC {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyNPCs(s.ents.NPCsNear(x, y, radius))
}

// AnimalsNear returns animals within radius of a point, nearest first,
// as value copies.
func (s *Session) AnimalsNear(x, y, radius float64) []entity.Animal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyAnimals(s.ents.AnimalsNear(x, y, radius))
}

func copyNPCs(src []*entity.NPC) []entity.NPC {
	out := make([]entity.NPC, len(src))
	for i, n := range src {
		out[i] = *n
	}
	return out
}

func copyAnimals(src []*entity.Animal) []entity.Animal {
	out := make([]entity.Animal, len(src))
	for i, a := range src {
		out[i] = *a
	}
	return out
}

// SkyState is a consistent read of the world clock and the day/night
// cycle, taken under the session mutex.
type SkyState struct {
	Clock     float64 `json:"clock"`
	TimeOfDay float64 `json:"time_of_day"`
	Phase     string  `json:"phase"`
	Ambient   float64 `json:"ambient"`
}

// SkyState returns the current clock and sky readings. Advance runs
// under the same mutex, so the fields are mutually consistent.
func (s *Session) SkyState() SkyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SkyState{
		Clock:     s.world.Clock(),
		TimeOfDay: s.sky.TimeOfDay(),
		Phase:     sky.PhaseName(s.sky.Phase()),
		Ambient:   s.sky.AmbientLight(),
	}
}

// Snapshot is the per-frame observer view pushed over the websocket.
// Every slice holds value copies detached from the live simulation.
type Snapshot struct {
	Clock     float64         `json:"clock"`
	TimeOfDay float64         `json:"time_of_day"`
	Phase     string          `json:"phase"`
	Ambient   float64         `json:"ambient"`
	PlayerX   float64         `json:"player_x"`
	PlayerY   float64         `json:"player_y"`
	NPCs      []entity.NPC    `json:"npcs"`
	Animals   []entity.Animal `json:"animals"`
	Objects   []world.Object  `json:"objects"`
	Inventory map[string]int  `json:"inventory"`
}

// Snapshot assembles the observer view around the player anchor.
// Entity and sky reads happen under the session mutex; object copies
// are taken under the world's own lock.
func (s *Session) Snapshot(radius float64) Snapshot {
	s.mu.Lock()
	px, py := s.playerX, s.playerY
	npcs := copyNPCs(s.ents.NPCsNear(px, py, radius))
	animals := copyAnimals(s.ents.AnimalsNear(px, py, radius))
	inv := s.inv.All()
	tod := s.sky.TimeOfDay()
	phase := sky.PhaseName(s.sky.Phase())
	ambient := s.sky.AmbientLight()
	s.mu.Unlock()

	return Snapshot{
		Clock:     s.world.Clock(),
		TimeOfDay: tod,
		Phase:     phase,
		Ambient:   ambient,
		PlayerX:   px,
		PlayerY:   py,
		NPCs:      npcs,
		Animals:   animals,
		Objects:   s.world.ObjectsNear(px, py, radius),
		Inventory: inv,
	}
}
