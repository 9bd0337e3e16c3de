// Per-tick state transitions for NPCs and animals. Timers count down in
// seconds; hitting zero toggles the state and re-rolls the dwell.
package entity

import (
	"math"
	"math/rand"

	"github.com/talgya/tidewood/internal/world"
)

const (
	npcSpeed        = 40.0  // px/s, fixed for all NPCs
	npcNoticeRadius = 100.0 // player proximity that forces attention
	npcHomeTether   = 150.0 // max distance from home a step may reach

	animalFleeRadius = 80.0
	animalFleeTimer  = 2.0
	animalFleeSpeedX = 1.5
)

// Tick advances one NPC by dt seconds.
//
// A nearby player overrides everything: the NPC stands still and faces
// the player. The override neither resets nor consumes the state
// timer; the dwell resumes where it left off once the player walks
// away.
func (n *NPC) Tick(dt, playerX, playerY float64, t Terrain, r *rand.Rand) {
	dx := playerX - n.X
	dy := playerY - n.Y
	if pd := math.Hypot(dx, dy); pd < npcNoticeRadius {
		n.State = NPCIdle
		if pd > 0 {
			n.DirX = dx / pd
			n.DirY = dy / pd
		}
		return
	}

	n.Timer -= dt
	if n.Timer <= 0 {
		if n.State == NPCIdle {
			n.State = NPCWalking
			n.Timer = walkDwell(r)
			n.DirX, n.DirY = randomDir(r)
		} else {
			n.State = NPCIdle
			n.Timer = idleDwell(r)
		}
	}

	if n.State != NPCWalking {
		return
	}

	nx := n.X + n.DirX*npcSpeed*dt
	ny := n.Y + n.DirY*npcSpeed*dt
	if math.Hypot(nx-n.HomeX, ny-n.HomeY) <= npcHomeTether && t.IsWalkable(nx, ny) {
		n.X = nx
		n.Y = ny
		return
	}

	// Step refused: reorient toward home, no movement this tick.
	hx := n.HomeX - n.X
	hy := n.HomeY - n.Y
	if hd := math.Hypot(hx, hy); hd > 0 {
		n.DirX = hx / hd
		n.DirY = hy / hd
	}
}

// Tick advances one animal by dt seconds.
func (a *Animal) Tick(dt, playerX, playerY float64, t Terrain, r *rand.Rand) {
	if pd := math.Hypot(playerX-a.X, playerY-a.Y); pd < animalFleeRadius && !a.Aquatic {
		a.State = AnimalFleeing
		a.Timer = animalFleeTimer
		if pd > 0 {
			a.DirX = (a.X - playerX) / pd
			a.DirY = (a.Y - playerY) / pd
		}
	}

	a.Timer -= dt
	if a.Timer <= 0 {
		if a.State == AnimalIdle {
			a.State = AnimalMoving
			a.Timer = 1 + r.Float64()*2
			a.DirX, a.DirY = randomDir(r)
		} else {
			// Moving and fleeing both settle back to idle.
			a.State = AnimalIdle
			a.Timer = 2 + r.Float64()*3
		}
	}

	if a.State == AnimalIdle {
		return
	}

	speed := a.Speed
	if a.State == AnimalFleeing {
		speed *= animalFleeSpeedX
	}
	nx := a.X + a.DirX*speed*dt
	ny := a.Y + a.DirY*speed*dt

	destWater := t.BiomeAt(nx, ny) == world.BiomeWater
	if destWater == a.Aquatic {
		a.X = nx
		a.Y = ny
		return
	}

	// Refused step picks a fresh direction instead of retrying.
	a.DirX, a.DirY = randomDir(r)
}

func idleDwell(r *rand.Rand) float64 { return 1 + r.Float64()*4 } // 1-5s
func walkDwell(r *rand.Rand) float64 { return 2 + r.Float64()*3 } // 2-5s

func randomDir(r *rand.Rand) (float64, float64) {
	angle := r.Float64() * 2 * math.Pi
	return math.Cos(angle), math.Sin(angle)
}
