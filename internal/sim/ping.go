package sim

const (
	pingGrowthPerTick = 8.0
	pingMaxRadius     = 300.0
)

// Ping is the expanding locator pulse centered on the level's exit cells.
// Purely cosmetic state: an active flag and a radius that grows by a fixed
// amount per tick until it hits the maximum and deactivates.
type Ping struct {
	Active bool
	Radius float64
}

// Trigger starts a pulse. A ping already in flight is left alone.
func (p *Ping) Trigger() {
	if p.Active {
		return
	}
	p.Active = true
	p.Radius = 0
}

// Update advances the pulse one tick.
func (p *Ping) Update() {
	if !p.Active {
		return
	}
	p.Radius += pingGrowthPerTick
	if p.Radius >= pingMaxRadius {
		p.Active = false
		p.Radius = 0
	}
}
