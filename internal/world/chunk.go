// Package world provides deterministic terrain generation, chunk
// streaming, and spatial queries over an unbounded 2D plane. Chunk
// content is a pure function of (seed, chunk coordinate): regenerating
// the same chunk from the same seed yields identical tiles and objects.
package world

// ChunkCoord is the integer coordinate of a chunk, derived from pixel
// space as floor(world / (ChunkSize * TileSize)).
type ChunkCoord struct {
	CX int `json:"cx"`
	CY int `json:"cy"`
}

// Biome labels for tiles.
type Biome uint8

const (
	BiomeWater    Biome = iota // Impassable
	BiomeBeach                 // Bare sand strip along water
	BiomeMountain              // High rock, dense ore
	BiomeRocky                 // Foothills
	BiomeForest                // Pines, mushrooms, berries
	BiomeDesert                // Cacti
	BiomePlains                // Oaks, flowers, buildings
)

// BiomeName returns a human-readable name for a biome.
func BiomeName(b Biome) string {
	switch b {
	case BiomeWater:
		return "water"
	case BiomeBeach:
		return "beach"
	case BiomeMountain:
		return "mountain"
	case BiomeRocky:
		return "rocky"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomePlains:
		return "plains"
	default:
		return "unknown"
	}
}

// Tile is one grid cell of a chunk. Biome and color are computed from
// noise at generation time and never mutated.
type Tile struct {
	Color string `json:"color"`
	Biome Biome  `json:"biome"`
}

// ObjectType enumerates scatter object variants. Switched exhaustively
// in generation and harvesting.
type ObjectType uint8

const (
	ObjectTree ObjectType = iota
	ObjectRock
	ObjectFlower
	ObjectMushroom
	ObjectBush
	ObjectCactus
)

// ObjectTypeName returns a human-readable name for an object type.
func ObjectTypeName(t ObjectType) string {
	switch t {
	case ObjectTree:
		return "tree"
	case ObjectRock:
		return "rock"
	case ObjectFlower:
		return "flower"
	case ObjectMushroom:
		return "mushroom"
	case ObjectBush:
		return "bush"
	case ObjectCactus:
		return "cactus"
	default:
		return "unknown"
	}
}

// ResourceKind enumerates what harvesting yields.
type ResourceKind uint8

const (
	ResourceNone ResourceKind = iota
	ResourceWood
	ResourceStone
	ResourceGem
	ResourceFlower
	ResourceMushroom
	ResourceBerry
)

// ResourceName returns a human-readable name for a resource kind.
func ResourceName(r ResourceKind) string {
	switch r {
	case ResourceWood:
		return "wood"
	case ResourceStone:
		return "stone"
	case ResourceGem:
		return "gem"
	case ResourceFlower:
		return "flower"
	case ResourceMushroom:
		return "mushroom"
	case ResourceBerry:
		return "berry"
	default:
		return "none"
	}
}

// Object is a harvestable (or decorative) world object placed during
// chunk generation. Trees and rocks are removed permanently on harvest;
// flowers, mushrooms, and bushes go dormant until HarvestableAt; cacti
// are never harvestable.
type Object struct {
	ID          int64        `json:"id"`
	Type        ObjectType   `json:"type"`
	Subtype     string       `json:"subtype,omitempty"` // pine/oak for trees
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Harvestable bool         `json:"harvestable"`
	Resource    ResourceKind `json:"resource"`
	Yield       int          `json:"yield"`

	// World-clock second at which a dormant renewable becomes
	// harvestable again. Zero while live.
	HarvestableAt float64 `json:"harvestable_at,omitempty"`
}

// BuildingType enumerates placed structures.
type BuildingType uint8

const (
	BuildingHouse BuildingType = iota
	BuildingShop
	BuildingInn
	BuildingWell
)

// BuildingTypeName returns a human-readable name for a building type.
func BuildingTypeName(t BuildingType) string {
	switch t {
	case BuildingHouse:
		return "house"
	case BuildingShop:
		return "shop"
	case BuildingInn:
		return "inn"
	case BuildingWell:
		return "well"
	default:
		return "unknown"
	}
}

// Building is a structure placed during chunk generation. Never removed.
// X, Y anchor the top-left corner of the footprint; the door (when
// present) sits at the bottom midpoint.
type Building struct {
	ID           int64        `json:"id"`
	Type         BuildingType `json:"type"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	HasDoor      bool         `json:"has_door"`
	Interactable bool         `json:"interactable"`
}

// DoorX and DoorY locate the door opening at the bottom midpoint of the
// footprint.
func (b *Building) DoorX() float64 { return b.X + b.Width/2 }
func (b *Building) DoorY() float64 { return b.Y + b.Height }

// Contains reports whether a world point falls inside the footprint.
func (b *Building) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// Chunk is a fixed-size tile grid plus the objects scattered on it.
// Owned exclusively by the World; generated exactly once, never evicted.
type Chunk struct {
	Coord     ChunkCoord `json:"coord"`
	Tiles     [][]Tile   `json:"tiles"` // [ty][tx]
	Objects   []*Object  `json:"objects"`
	Generated bool       `json:"generated"`
}
