// Biome classification from layered gradient noise. Two independent
// fields (elevation at the world seed, moisture at seed+2 sampled at
// 1.5x the elevation's spatial scale) plus fixed thresholds evaluated
// in precedence order.
package world

import (
	"github.com/talgya/tidewood/internal/noise"
)

// Noise field seed offsets and spatial scales.
const (
	moistureSeedOffset = 2
	detailSeedOffset   = 5

	elevScale     = 0.005
	moistureScale = elevScale * 1.5
	detailScale   = 0.1

	deepWaterThreshold = -0.4
)

// Biome thresholds, checked in order.
const (
	waterLevel    = -0.3
	beachLevel    = -0.2
	mountainLevel = 0.6
	rockyLevel    = 0.5
	forestWetness = 0.3
	desertDryness = -0.2
)

// classifier maps world coordinates to biomes and display colors.
type classifier struct {
	elevation *noise.Field
	moisture  *noise.Field
	detail    *noise.Field
}

func newClassifier(seed int64) *classifier {
	return &classifier{
		elevation: noise.NewField(seed),
		moisture:  noise.NewField(seed + moistureSeedOffset),
		detail:    noise.NewField(seed + detailSeedOffset),
	}
}

func (c *classifier) elevationAt(x, y float64) float64 {
	return c.elevation.FBM(x*elevScale, y*elevScale,
		noise.DefaultOctaves, noise.DefaultLacunarity, noise.DefaultPersistence)
}

func (c *classifier) moistureAt(x, y float64) float64 {
	return c.moisture.FBM(x*moistureScale, y*moistureScale,
		noise.DefaultOctaves, noise.DefaultLacunarity, noise.DefaultPersistence)
}

// biomeAt classifies a world pixel coordinate. Never fails; anything
// that slips through the thresholds is plains.
func (c *classifier) biomeAt(x, y float64) Biome {
	elev := c.elevationAt(x, y)

	switch {
	case elev < waterLevel:
		return BiomeWater
	case elev < beachLevel:
		return BiomeBeach
	case elev > mountainLevel:
		return BiomeMountain
	case elev > rockyLevel:
		return BiomeRocky
	}

	moist := c.moistureAt(x, y)
	switch {
	case moist > forestWetness:
		return BiomeForest
	case moist < desertDryness:
		return BiomeDesert
	default:
		return BiomePlains
	}
}

// Two-tone palettes for the dithered biomes; single tones elsewhere.
var biomeShades = map[Biome][2]string{
	BiomeForest: {"#2e7d32", "#388e3c"},
	BiomeDesert: {"#e0c068", "#d4b25c"},
	BiomePlains: {"#7cb342", "#8bc34a"},
}

const (
	colorDeepWater    = "#1a4d7a"
	colorShallowWater = "#2e6da4"
	colorBeach        = "#e8d6a0"
	colorMountain     = "#8a8a8a"
	colorRocky        = "#a5a58d"
	colorFallback     = "#7cb342" // plains shade, for anything unmapped
)

// colorAt maps a world pixel to a display color: a high-frequency
// detail sample picks between two shades for forest/desert/plains, and
// a deeper elevation threshold splits shallow from deep water.
func (c *classifier) colorAt(x, y float64, b Biome) string {
	switch b {
	case BiomeWater:
		if c.elevationAt(x, y) < deepWaterThreshold {
			return colorDeepWater
		}
		return colorShallowWater
	case BiomeBeach:
		return colorBeach
	case BiomeMountain:
		return colorMountain
	case BiomeRocky:
		return colorRocky
	}

	shades, ok := biomeShades[b]
	if !ok {
		return colorFallback
	}
	d := c.detail.Noise2D(x*detailScale, y*detailScale)
	if d < 0 {
		return shades[0]
	}
	return shades[1]
}
