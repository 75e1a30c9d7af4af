package sim

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/liminal/internal/world"
)

const (
	// FadeTicks is how many ticks a remembered cell takes to fully fade
	// once it leaves the visible set (5 seconds at 60 ticks per second).
	FadeTicks = 300

	fadeRate = 1.0 / FadeTicks

	// fadeEpsilon absorbs the float residue that FadeTicks repeated
	// subtractions of fadeRate can leave above zero on the final tick.
	fadeEpsilon = 1e-9
)

// UpdateMemory applies one tick of exploration-memory bookkeeping: every
// remembered cell not currently visible decays by fadeRate and is forgotten
// at zero; every currently visible cell is set to full strength, inserting
// it if absent. Strengths always stay within [0, 1].
func UpdateMemory(explored map[world.Point]float64, visible mapset.Set[world.Point]) {
	for cell, strength := range explored {
		if visible.Has(cell) {
			continue
		}
		strength -= fadeRate
		if strength <= fadeEpsilon {
			delete(explored, cell)
			continue
		}
		explored[cell] = strength
	}

	visible.Each(func(cell world.Point) {
		explored[cell] = 1.0
	})
}
