package sim

import (
	"math"

	"github.com/samdwyer/liminal/internal/world"
)

const (
	// MaxStamina is the stamina ceiling; stamina lives in [0, MaxStamina].
	MaxStamina = 100.0

	// PlayerSpeed is the base movement delta per tick, in world units.
	PlayerSpeed = 2.0

	staminaDrainRate = 1.5
	staminaRegenRate = 0.8
	sprintMultiplier = 2.0
)

// Player holds the player's continuous position, heading, and stamina state.
type Player struct {
	X, Y    float64
	Heading float64 // Facing direction in degrees
	Stamina float64

	// Sprinting reports whether the player sprinted this tick.
	Sprinting bool

	// canSprint implements the hysteresis latch: cleared when stamina hits
	// zero, restored only once stamina is back at maximum. Without it the
	// player could stutter-sprint on every regenerated fraction of a point.
	canSprint bool
}

// NewPlayer creates a player at the given world position with full stamina.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Stamina:   MaxStamina,
		canSprint: true,
	}
}

// Move applies one tick of movement. The X and Y deltas are collision-tested
// and applied independently, which lets the player slide along walls.
// Sprint is honored only when requested, allowed by the stamina latch, and
// the movement input is non-zero.
func (p *Player) Move(lv *world.Level, dx, dy float64, sprintHeld bool) {
	if p.Stamina <= 0 {
		p.canSprint = false
	} else if p.Stamina >= MaxStamina {
		p.canSprint = true
	}

	sprinting := p.canSprint && sprintHeld && (dx != 0 || dy != 0)

	if sprinting {
		p.Sprinting = true
		p.Stamina = math.Max(0, p.Stamina-staminaDrainRate)
		dx *= sprintMultiplier
		dy *= sprintMultiplier
	} else {
		p.Sprinting = false
		if p.Stamina < MaxStamina {
			p.Stamina = math.Min(MaxStamina, p.Stamina+staminaRegenRate)
		}
	}

	if CanOccupy(lv, p.X+dx, p.Y, ActorHalfExtent) {
		p.X += dx
	}
	if CanOccupy(lv, p.X, p.Y+dy, ActorHalfExtent) {
		p.Y += dy
	}
}

// FaceToward points the player's heading at a world-space target, typically
// the pointer position. The heading is derived from the target, never from
// velocity.
func (p *Player) FaceToward(targetX, targetY float64) {
	p.Heading = math.Atan2(targetY-p.Y, targetX-p.X) * 180 / math.Pi
}

// Cell returns the grid cell the player's center occupies.
func (p *Player) Cell() world.Point {
	return CellOf(p.X, p.Y)
}
