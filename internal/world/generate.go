// Chunk materialization: rasterize the tile grid from the biome
// classifier, then scatter objects per tile with biome-conditioned
// probability rolls from a chunk-local random stream.
package world

import (
	"github.com/talgya/tidewood/internal/rng"
)

// Follow-up draw chances, fixed by design rather than tuned.
const (
	mushroomChance = 0.02
	bushChance     = 0.015
	cactusChance   = 0.02
	gemChance      = 0.10
)

// chunkSeedStride keeps per-chunk seeds unique. Must exceed any
// plausible chunk-Y range; not proven collision-free for extreme
// coordinates.
const chunkSeedStride = 1000

// chunkSeed derives the deterministic per-chunk stream seed.
func chunkSeed(worldSeed int64, c ChunkCoord) int64 {
	return worldSeed + int64(c.CX)*chunkSeedStride + int64(c.CY)
}

// generateChunk materializes the chunk at c. Pure function of
// (seed, coordinate) apart from allocated ids; buildings encountered
// during the scatter pass are appended to the world's global list.
func (w *World) generateChunk(c ChunkCoord) *Chunk {
	stream := rng.New(chunkSeed(w.cfg.Seed, c))

	tilePx := float64(w.cfg.TileSize)
	chunkPx := float64(w.cfg.ChunkSize) * tilePx
	originX := float64(c.CX) * chunkPx
	originY := float64(c.CY) * chunkPx

	ch := &Chunk{Coord: c, Generated: true}
	ch.Tiles = make([][]Tile, w.cfg.ChunkSize)
	for ty := range ch.Tiles {
		ch.Tiles[ty] = make([]Tile, w.cfg.ChunkSize)
		for tx := range ch.Tiles[ty] {
			wx := originX + float64(tx)*tilePx
			wy := originY + float64(ty)*tilePx
			b := w.class.biomeAt(wx, wy)
			ch.Tiles[ty][tx] = Tile{
				Biome: b,
				Color: w.class.colorAt(wx, wy, b),
			}
		}
	}

	for ty := 0; ty < w.cfg.ChunkSize; ty++ {
		for tx := 0; tx < w.cfg.ChunkSize; tx++ {
			b := ch.Tiles[ty][tx].Biome
			cx := originX + (float64(tx)+0.5)*tilePx
			cy := originY + (float64(ty)+0.5)*tilePx
			w.scatterTile(ch, stream, b, cx, cy)
		}
	}

	return ch
}

// scatterTile runs the placement rolls for one tile center. One shared
// roll gates trees, rocks, and flowers; mushrooms, bushes, cacti, and
// buildings each use an independent draw. The checks deliberately
// stack, so a tile may host more than one object.
func (w *World) scatterTile(ch *Chunk, stream *rng.Stream, b Biome, cx, cy float64) {
	if b == BiomeWater || b == BiomeBeach {
		return
	}

	roll := stream.Next()

	if (b == BiomeForest || b == BiomePlains) && roll < w.cfg.TreeDensity {
		subtype := "oak"
		if b == BiomeForest {
			subtype = "pine"
		}
		ch.Objects = append(ch.Objects, &Object{
			ID:          w.alloc.Next(),
			Type:        ObjectTree,
			Subtype:     subtype,
			X:           jitter(stream, cx, w.cfg.TileSize),
			Y:           jitter(stream, cy, w.cfg.TileSize),
			Harvestable: true,
			Resource:    ResourceWood,
			Yield:       stream.NextInt(2, 4),
		})
	}

	if (b == BiomeRocky || b == BiomeMountain) && roll < 2*w.cfg.RockDensity {
		resource := ResourceStone
		if stream.Next() < gemChance {
			resource = ResourceGem
		}
		ch.Objects = append(ch.Objects, &Object{
			ID:          w.alloc.Next(),
			Type:        ObjectRock,
			X:           jitter(stream, cx, w.cfg.TileSize),
			Y:           jitter(stream, cy, w.cfg.TileSize),
			Harvestable: true,
			Resource:    resource,
			Yield:       stream.NextInt(1, 3),
		})
	}

	if b == BiomePlains && roll < w.cfg.FlowerDensity {
		ch.Objects = append(ch.Objects, &Object{
			ID:          w.alloc.Next(),
			Type:        ObjectFlower,
			X:           jitter(stream, cx, w.cfg.TileSize),
			Y:           jitter(stream, cy, w.cfg.TileSize),
			Harvestable: true,
			Resource:    ResourceFlower,
			Yield:       1,
		})
	}

	if b == BiomeForest && stream.Next() < mushroomChance {
		ch.Objects = append(ch.Objects, &Object{
			ID:          w.alloc.Next(),
			Type:        ObjectMushroom,
			X:           jitter(stream, cx, w.cfg.TileSize),
			Y:           jitter(stream, cy, w.cfg.TileSize),
			Harvestable: true,
			Resource:    ResourceMushroom,
			Yield:       1,
		})
	}

	if (b == BiomeForest || b == BiomePlains) && stream.Next() < bushChance {
		ch.Objects = append(ch.Objects, &Object{
			ID:          w.alloc.Next(),
			Type:        ObjectBush,
			X:           jitter(stream, cx, w.cfg.TileSize),
			Y:           jitter(stream, cy, w.cfg.TileSize),
			Harvestable: true,
			Resource:    ResourceBerry,
			Yield:       stream.NextInt(2, 5),
		})
	}

	if b == BiomeDesert && stream.Next() < cactusChance {
		ch.Objects = append(ch.Objects, &Object{
			ID:       w.alloc.Next(),
			Type:     ObjectCactus,
			X:        jitter(stream, cx, w.cfg.TileSize),
			Y:        jitter(stream, cy, w.cfg.TileSize),
			Resource: ResourceNone,
		})
	}

	if b == BiomePlains && stream.Next() < w.cfg.BuildingDensity {
		w.buildings = append(w.buildings, generateBuilding(stream, w.alloc, cx, cy))
	}
}

// jitter offsets a tile-center coordinate by up to half a tile.
func jitter(stream *rng.Stream, center float64, tileSize int) float64 {
	return center + (stream.Next()-0.5)*float64(tileSize)
}

// generateBuilding picks a type uniformly and sizes it: wells are a
// fixed 40x40 with no door, everything else 60-100 x 50-80 with one.
func generateBuilding(stream *rng.Stream, alloc IDAllocator, x, y float64) *Building {
	t := BuildingType(stream.NextInt(0, 3))
	b := &Building{
		ID:           alloc.Next(),
		Type:         t,
		X:            x,
		Y:            y,
		Interactable: true,
	}
	if t == BuildingWell {
		b.Width, b.Height = 40, 40
	} else {
		b.Width = float64(stream.NextInt(60, 100))
		b.Height = float64(stream.NextInt(50, 80))
		b.HasDoor = true
	}
	return b
}
