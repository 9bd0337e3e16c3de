package world

import (
	"testing"

	"github.com/talgya/tidewood/internal/ids"
)

func testWorld(seed int64) *World {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return New(cfg, ids.NewSequence())
}

func TestGetChunkIdempotent(t *testing.T) {
	w := testWorld(12345)
	a := w.GetChunk(3, -2)
	b := w.GetChunk(3, -2)
	if a != b {
		t.Fatal("GetChunk(3,-2) returned distinct chunks")
	}
	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("object list length changed: %d vs %d", len(a.Objects), len(b.Objects))
	}
	if w.ChunkCount() != 1 {
		t.Fatalf("ChunkCount = %d after repeated access, want 1", w.ChunkCount())
	}
}

func TestChunkDeterminism(t *testing.T) {
	a := testWorld(12345).GetChunk(3, -2)
	b := testWorld(12345).GetChunk(3, -2)

	for ty := range a.Tiles {
		for tx := range a.Tiles[ty] {
			if a.Tiles[ty][tx] != b.Tiles[ty][tx] {
				t.Fatalf("tile (%d,%d) differs across regenerations", tx, ty)
			}
		}
	}
	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("object counts differ: %d vs %d", len(a.Objects), len(b.Objects))
	}
	// Ids aside, the object sequences must match exactly.
	for i := range a.Objects {
		ao, bo := a.Objects[i], b.Objects[i]
		if ao.Type != bo.Type || ao.Subtype != bo.Subtype ||
			ao.X != bo.X || ao.Y != bo.Y ||
			ao.Resource != bo.Resource || ao.Yield != bo.Yield {
			t.Fatalf("object %d differs: %+v vs %+v", i, ao, bo)
		}
	}
}

func TestDifferentSeedsDifferentChunks(t *testing.T) {
	a := testWorld(1).GetChunk(0, 0)
	b := testWorld(2).GetChunk(0, 0)
	same := 0
	for ty := range a.Tiles {
		for tx := range a.Tiles[ty] {
			if a.Tiles[ty][tx].Biome == b.Tiles[ty][tx].Biome {
				same++
			}
		}
	}
	total := len(a.Tiles) * len(a.Tiles[0])
	if same == total {
		t.Error("seeds 1 and 2 produced biome-identical chunks")
	}
}

func TestObjectsNearOrderingAndRadius(t *testing.T) {
	w := testWorld(12345)
	const radius = 400.0
	objs := w.ObjectsNear(100, 100, radius)
	if len(objs) == 0 {
		t.Fatal("no objects within 400px of (100,100); generation looks broken")
	}
	prev := -1.0
	for _, o := range objs {
		d := dist(100, 100, o.X, o.Y)
		if d > radius {
			t.Errorf("object %d at distance %.1f exceeds radius", o.ID, d)
		}
		if d < prev {
			t.Errorf("results not sorted ascending: %.1f after %.1f", d, prev)
		}
		prev = d
	}
}

// Spatial query results are detached copies: later harvests must not
// show through a slice a caller is still holding or serializing.
func TestObjectsNearReturnsCopies(t *testing.T) {
	w := testWorld(12345)
	flower := findObject(t, w, ObjectFlower)

	objs := w.ObjectsNear(flower.X, flower.Y, 10)
	if _, ok := w.Harvest(flower.ID); !ok {
		t.Fatal("harvesting a live flower failed")
	}
	for _, o := range objs {
		if o.ID == flower.ID && !o.Harvestable {
			t.Fatal("harvest mutated an already-returned query result")
		}
	}
}

func TestChunkSnapshotDetached(t *testing.T) {
	w := testWorld(12345)
	flower := findObject(t, w, ObjectFlower)
	coord := w.ChunkCoordAt(flower.X, flower.Y)

	snap := w.ChunkSnapshot(coord.CX, coord.CY)
	if _, ok := w.Harvest(flower.ID); !ok {
		t.Fatal("harvesting a live flower failed")
	}
	for _, o := range snap.Objects {
		if o.ID == flower.ID && !o.Harvestable {
			t.Fatal("harvest mutated a snapshot object")
		}
	}
	live := w.GetChunk(coord.CX, coord.CY)
	if len(snap.Objects) != len(live.Objects) {
		t.Fatalf("snapshot object count %d, live %d", len(snap.Objects), len(live.Objects))
	}
}

func TestObjectIDsUnique(t *testing.T) {
	w := testWorld(99)
	seen := make(map[int64]bool)
	for cy := -2; cy <= 2; cy++ {
		for cx := -2; cx <= 2; cx++ {
			for _, o := range w.GetChunk(cx, cy).Objects {
				if seen[o.ID] {
					t.Fatalf("duplicate object id %d", o.ID)
				}
				seen[o.ID] = true
			}
		}
	}
}

// findObject scans an expanding chunk square for an object of the given type.
func findObject(t *testing.T, w *World, typ ObjectType) *Object {
	t.Helper()
	for cy := -6; cy <= 6; cy++ {
		for cx := -6; cx <= 6; cx++ {
			for _, o := range w.GetChunk(cx, cy).Objects {
				if o.Type == typ {
					return o
				}
			}
		}
	}
	t.Fatalf("no %s found in 13x13 chunk scan", ObjectTypeName(typ))
	return nil
}

func TestHarvestTreePermanent(t *testing.T) {
	w := testWorld(12345)
	tree := findObject(t, w, ObjectTree)

	res, ok := w.Harvest(tree.ID)
	if !ok {
		t.Fatal("harvesting a live tree failed")
	}
	if res.Resource != ResourceWood {
		t.Errorf("tree yielded %s, want wood", ResourceName(res.Resource))
	}
	if res.Amount < 2 || res.Amount > 4 {
		t.Errorf("tree yield %d outside [2,4]", res.Amount)
	}

	// Gone from spatial queries, permanently.
	w.Update(120)
	for _, o := range w.ObjectsNear(tree.X, tree.Y, 50) {
		if o.ID == tree.ID {
			t.Fatal("harvested tree still returned by ObjectsNear")
		}
	}
	if _, ok := w.Harvest(tree.ID); ok {
		t.Fatal("harvesting a removed tree succeeded")
	}
}

func TestHarvestFlowerRespawns(t *testing.T) {
	w := testWorld(12345)
	flower := findObject(t, w, ObjectFlower)
	id, x, y := flower.ID, flower.X, flower.Y

	if _, ok := w.Harvest(id); !ok {
		t.Fatal("harvesting a live flower failed")
	}
	if flower.Harvestable {
		t.Fatal("flower still harvestable immediately after harvest")
	}
	if _, ok := w.Harvest(id); ok {
		t.Fatal("harvesting a dormant flower succeeded")
	}

	// Short of the respawn delay: still dormant.
	w.Update(29)
	if flower.Harvestable {
		t.Fatal("flower respawned before the delay elapsed")
	}

	// Past the delay: same id, same position, harvestable again.
	w.Update(2)
	if !flower.Harvestable {
		t.Fatal("flower did not respawn after the delay")
	}
	if flower.ID != id || flower.X != x || flower.Y != y {
		t.Fatal("respawned flower changed identity or position")
	}
	if _, ok := w.Harvest(id); !ok {
		t.Fatal("harvesting a respawned flower failed")
	}
}

func TestHarvestUnknownID(t *testing.T) {
	w := testWorld(5)
	w.GetChunk(0, 0)
	if _, ok := w.Harvest(999999999); ok {
		t.Fatal("harvesting a nonexistent id succeeded")
	}
}

func TestCactusNotHarvestable(t *testing.T) {
	w := testWorld(12345)
	cactus := findObject(t, w, ObjectCactus)
	if cactus.Harvestable {
		t.Fatal("cactus generated harvestable")
	}
	if _, ok := w.Harvest(cactus.ID); ok {
		t.Fatal("harvesting a cactus succeeded")
	}
}

func TestWalkabilityDoorTolerance(t *testing.T) {
	w := testWorld(12345)

	// Find a patch of walkable land to drop test buildings on.
	var lx, ly float64
	found := false
	for y := 0.0; y < 5000 && !found; y += 160 {
		for x := 0.0; x < 5000 && !found; x += 160 {
			if w.BiomeAt(x, y) != BiomeWater {
				lx, ly = x, y
				found = true
			}
		}
	}
	if !found {
		t.Fatal("no land found near origin")
	}

	doored := &Building{ID: 1, Type: BuildingHouse, X: lx, Y: ly, Width: 80, Height: 60, HasDoor: true, Interactable: true}
	w.mu.Lock()
	w.buildings = append(w.buildings, doored)
	w.mu.Unlock()

	// Deep inside the footprint, far from the door: blocked.
	if w.IsWalkable(doored.X+10, doored.Y+10) {
		t.Error("interior point far from door is walkable")
	}
	// Just inside the footprint at the door: open.
	if !w.IsWalkable(doored.DoorX(), doored.DoorY()-5) {
		t.Error("point within door tolerance is not walkable")
	}

	// A door-less building blocks its whole footprint.
	well := &Building{ID: 2, Type: BuildingWell, X: lx + 500, Y: ly, Width: 40, Height: 40, Interactable: true}
	if w.BiomeAt(well.X+20, well.Y+38) == BiomeWater {
		t.Skip("well landed on water; walkability dominated by biome")
	}
	w.mu.Lock()
	w.buildings = append(w.buildings, well)
	w.mu.Unlock()
	if w.IsWalkable(well.X+20, well.Y+38) {
		t.Error("bottom-center of door-less building is walkable")
	}
}

func TestWaterNotWalkable(t *testing.T) {
	w := testWorld(12345)
	for y := -8000.0; y < 8000; y += 64 {
		for x := -8000.0; x < 8000; x += 64 {
			if w.BiomeAt(x, y) == BiomeWater {
				if w.IsWalkable(x, y) {
					t.Fatalf("water at (%.0f,%.0f) reported walkable", x, y)
				}
				return
			}
		}
	}
	t.Skip("no water within scan range for this seed")
}

func TestPregenerate(t *testing.T) {
	w := testWorld(7)
	n := w.Pregenerate(0, 0, 2)
	if n != 25 {
		t.Fatalf("Pregenerate radius 2 touched %d chunks, want 25", n)
	}
	if w.ChunkCount() != 25 {
		t.Fatalf("ChunkCount = %d, want 25", w.ChunkCount())
	}
}
