// Package game provides the real-time game loop and input handling.
package game

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/liminal/internal/gamedata"
	"github.com/samdwyer/liminal/internal/logging"
	"github.com/samdwyer/liminal/internal/sim"
	"github.com/samdwyer/liminal/internal/telemetry"
	"github.com/samdwyer/liminal/internal/ui"
	"github.com/samdwyer/liminal/internal/world"
)

const (
	// tickRate is simulation steps per second.
	tickRate = 60

	// keyHoldTicks is how long a key press counts as held. Terminals only
	// deliver discrete presses (plus auto-repeat), so each press arms the
	// intent for a short window and repeats keep it alive.
	keyHoldTicks = 10
)

// inputState accumulates device events between ticks and decays held keys.
type inputState struct {
	up, down, left, right int
	sprint                int
	pingQueued            bool
	pointerX, pointerY    float64
	havePointer           bool
}

// Game wires the simulation to the terminal: it owns the loop, translates
// events into simulation input, and drives the level transition chain.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	sim      *sim.Sim
	biome    world.Biome
	input    inputState
	won      bool
	running  bool
}

// New creates a game instance. The room table is loaded from embedded data;
// a zero seed in cfg falls back to the clock.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	defs, err := gamedata.LoadRoomRegistry()
	if err != nil {
		screen.Close()
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logging.Component("game").WithField("seed", seed).Info("game created")

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, defs),
		sim:      sim.New(defs, rng),
		biome:    cfg.Biome,
		running:  true,
	}, nil
}

// Run executes the main loop at a fixed tick rate until the player quits or
// the context is canceled.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.sim.Regenerate(ctx, g.biome)
	initSpan.SetAttributes(
		attribute.String("biome", g.biome.String()),
		attribute.Int("rooms", len(g.sim.Level.Rooms)),
	)
	initSpan.End()

	events := g.screen.Events()
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.screen.Close()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)

		case <-ticker.C:
			if !g.won {
				g.step(ctx)
				g.renderer.Render(g.sim)
			} else {
				g.renderer.RenderVictory()
			}
		}
	}

	g.screen.Close()
	return nil
}

// step advances the simulation one tick and handles level transitions.
func (g *Game) step(ctx context.Context) {
	g.sim.Step(g.takeInput())

	if g.sim.PlayerOnExit() {
		g.advanceLevel(ctx)
	}
}

// takeInput converts accumulated input state into one tick's intent and
// decays the held-key windows.
func (g *Game) takeInput() sim.Input {
	var in sim.Input
	if g.input.up > 0 {
		in.MoveY -= sim.PlayerSpeed
	}
	if g.input.down > 0 {
		in.MoveY += sim.PlayerSpeed
	}
	if g.input.left > 0 {
		in.MoveX -= sim.PlayerSpeed
	}
	if g.input.right > 0 {
		in.MoveX += sim.PlayerSpeed
	}
	in.Sprint = g.input.sprint > 0
	in.Ping = g.input.pingQueued
	g.input.pingQueued = false

	if g.input.havePointer {
		in.PointerX = g.input.pointerX
		in.PointerY = g.input.pointerY
	} else {
		// No pointer yet: aim along the current heading so the
		// flashlight holds steady.
		rad := g.sim.Player.Heading * math.Pi / 180
		in.PointerX = g.sim.Player.X + 100*math.Cos(rad)
		in.PointerY = g.sim.Player.Y + 100*math.Sin(rad)
	}

	decay(&g.input.up)
	decay(&g.input.down)
	decay(&g.input.left)
	decay(&g.input.right)
	decay(&g.input.sprint)

	return in
}

// advanceLevel moves the player deeper: office drops into the poolrooms,
// and escaping the poolrooms wins.
func (g *Game) advanceLevel(ctx context.Context) {
	switch g.biome {
	case world.BiomeOffice:
		g.biome = world.BiomePoolrooms
		g.sim.Regenerate(ctx, g.biome)
		logging.Component("game").Info("descended to the poolrooms")
	case world.BiomePoolrooms:
		g.won = true
		logging.Component("game").Info("player escaped")
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		sx, sy := ev.Position()
		g.input.pointerX, g.input.pointerY = g.renderer.WorldAt(g.sim, sx, sy)
		g.input.havePointer = true
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.input.up = keyHoldTicks
	case tcell.KeyDown:
		g.input.down = keyHoldTicks
	case tcell.KeyLeft:
		g.input.left = keyHoldTicks
	case tcell.KeyRight:
		g.input.right = keyHoldTicks

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			g.input.up = keyHoldTicks
		case 's', 'S':
			g.input.down = keyHoldTicks
		case 'a', 'A':
			g.input.left = keyHoldTicks
		case 'd', 'D':
			g.input.right = keyHoldTicks
		case ' ':
			g.input.sprint = keyHoldTicks
		case 'p', 'P':
			g.input.pingQueued = true
		case 'r', 'R':
			if g.won {
				g.won = false
				g.biome = world.BiomeOffice
				g.sim.Regenerate(ctx, g.biome)
			}
		case 'q', 'Q':
			g.running = false
		}
	}
}

// decay counts a held-key window down toward zero.
func decay(v *int) {
	if *v > 0 {
		*v--
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
