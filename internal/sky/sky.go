// Package sky provides the day/night cycle and a drifting cloud-cover
// field. Rendering consumes the phase, ambient light level, and cloud
// density; nothing here mutates world state.
package sky

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// cloudSeedOffset keeps the cloud layer independent of the terrain
// noise fields.
const cloudSeedOffset = 7

// Phase labels for the day/night cycle.
type Phase uint8

const (
	PhaseNight Phase = iota
	PhaseDawn
	PhaseDay
	PhaseDusk
)

// PhaseName returns a human-readable name for a phase.
func PhaseName(p Phase) string {
	switch p {
	case PhaseDawn:
		return "dawn"
	case PhaseDay:
		return "day"
	case PhaseDusk:
		return "dusk"
	default:
		return "night"
	}
}

// Clock tracks time of day and samples the cloud field.
type Clock struct {
	dayLength float64 // seconds per full cycle
	elapsed   float64
	clouds    opensimplex.Noise
}

// New creates a clock starting at dawn.
func New(seed int64, dayLengthSec int) *Clock {
	if dayLengthSec <= 0 {
		dayLengthSec = 600
	}
	c := &Clock{
		dayLength: float64(dayLengthSec),
		clouds:    opensimplex.NewNormalized(seed + cloudSeedOffset),
	}
	c.elapsed = c.dayLength * 0.25 // start at dawn
	return c
}

// Advance moves the clock forward by dt seconds.
func (c *Clock) Advance(dt float64) {
	c.elapsed += dt
}

// TimeOfDay returns the cycle position in [0, 1): 0 is midnight.
func (c *Clock) TimeOfDay() float64 {
	return math.Mod(c.elapsed, c.dayLength) / c.dayLength
}

// Phase buckets the cycle position.
func (c *Clock) Phase() Phase {
	t := c.TimeOfDay()
	switch {
	case t < 0.2:
		return PhaseNight
	case t < 0.3:
		return PhaseDawn
	case t < 0.75:
		return PhaseDay
	case t < 0.85:
		return PhaseDusk
	default:
		return PhaseNight
	}
}

// Ambient light levels at the phase plateaus.
const (
	nightLight = 0.25
	dayLight   = 1.0
)

// AmbientLight returns the light level in [nightLight, dayLight],
// ramping linearly through dawn and dusk.
func (c *Clock) AmbientLight() float64 {
	t := c.TimeOfDay()
	switch {
	case t < 0.2:
		return nightLight
	case t < 0.3:
		return nightLight + (dayLight-nightLight)*(t-0.2)/0.1
	case t < 0.75:
		return dayLight
	case t < 0.85:
		return dayLight - (dayLight-nightLight)*(t-0.75)/0.1
	default:
		return nightLight
	}
}

// Cloud field sampling scales. The field drifts east over time.
const (
	cloudScale = 0.002
	cloudDrift = 4.0 // world px/s of apparent drift
)

// CloudCover returns cloud density in [0, 1] at a world coordinate,
// octave-summed the same way the terrain layers are.
func (c *Clock) CloudCover(x, y float64) float64 {
	sx := (x + c.elapsed*cloudDrift) * cloudScale
	sy := y * cloudScale

	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := 1.0
	for i := 0; i < 3; i++ {
		total += c.clouds.Eval2(sx*frequency, sy*frequency) * amplitude
		maxVal += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return total / maxVal
}
