package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/liminal/internal/gamedata"
	"github.com/samdwyer/liminal/internal/sim"
	"github.com/samdwyer/liminal/internal/world"
)

// fadedBrightness caps how bright a remembered-but-unseen tile can render.
const fadedBrightness = 0.5

// hudRows is how many terminal rows the HUD strip occupies.
const hudRows = 2

// Renderer draws the simulation to the screen, one terminal cell per grid
// tile, with the camera centered on the player.
type Renderer struct {
	screen *Screen
	defs   *gamedata.RoomRegistry

	// Camera top-left in grid cells, updated each Render and reused to
	// translate pointer positions back into world space.
	camX, camY int
	haveCamera bool
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, defs *gamedata.RoomRegistry) *Renderer {
	return &Renderer{screen: screen, defs: defs}
}

// Render draws one frame: visible tiles at full color, remembered tiles
// dimmed by their fade strength, the actors, the ping rings, and the HUD.
func (r *Renderer) Render(s *sim.Sim) {
	r.screen.Clear()

	width, height := r.screen.Size()
	viewH := height - hudRows
	if viewH < 1 {
		viewH = 1
	}

	playerCell := s.Player.Cell()
	r.camX = playerCell.X - width/2
	r.camY = playerCell.Y - viewH/2
	r.haveCamera = true

	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < width; sx++ {
			x := r.camX + sx
			y := r.camY + sy
			if !s.Level.InBounds(x, y) {
				continue
			}

			cell := world.Point{X: x, Y: y}
			tile := s.Level.Tiles[y][x]

			if s.Visible.Has(cell) {
				r.screen.SetContent(sx, sy, tile.Rune(),
					tcell.StyleDefault.Foreground(r.tileColor(s.Level, x, y, tile, 1.0)))
			} else if strength, ok := s.Explored[cell]; ok {
				r.screen.SetContent(sx, sy, tile.Rune(),
					tcell.StyleDefault.Foreground(r.tileColor(s.Level, x, y, tile, strength*fadedBrightness)))
			}
		}
	}

	if s.Ping.Active {
		r.drawPing(s, width, viewH)
	}

	if s.Entity != nil && s.Entity.Visible {
		ec := s.Entity.Cell()
		if sx, sy, ok := r.toScreen(ec, width, viewH); ok {
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 200, 0))
			r.screen.SetContent(sx, sy, '@', style)
		}
	}

	if sx, sy, ok := r.toScreen(playerCell, width, viewH); ok {
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
		r.screen.SetContent(sx, sy, '@', style)
	}

	r.drawHUD(s, width, viewH)

	r.screen.Show()
}

// RenderVictory draws the escape screen.
func (r *Renderer) RenderVictory() {
	r.screen.Clear()
	width, height := r.screen.Size()

	lines := []string{
		"YOU FOUND THE WAY OUT",
		"",
		"Press R to wander back in, or Q to quit.",
	}
	for i, line := range lines {
		r.drawText((width-len(line))/2, height/2-1+i, line,
			tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(i == 0))
	}
	r.screen.Show()
}

// WorldAt translates a terminal position into world coordinates using the
// camera from the last rendered frame. Before the first frame it falls back
// to the player's position.
func (r *Renderer) WorldAt(s *sim.Sim, screenX, screenY int) (float64, float64) {
	if !r.haveCamera {
		return s.Player.X, s.Player.Y
	}
	wx := (float64(r.camX+screenX) + 0.5) * world.TileSize
	wy := (float64(r.camY+screenY) + 0.5) * world.TileSize
	return wx, wy
}

// toScreen maps a grid cell to terminal coordinates, reporting whether it
// lies inside the viewport.
func (r *Renderer) toScreen(cell world.Point, width, viewH int) (int, int, bool) {
	sx := cell.X - r.camX
	sy := cell.Y - r.camY
	if sx < 0 || sx >= width || sy < 0 || sy >= viewH {
		return 0, 0, false
	}
	return sx, sy, true
}

// drawPing draws expanding rings around every level exit. The ring radius
// lives in world units; cells within half a tile of it get a marker.
func (r *Renderer) drawPing(s *sim.Sim, width, viewH int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorPurple)
	radiusTiles := s.Ping.Radius / world.TileSize

	for _, exit := range s.ExitCells {
		for sy := 0; sy < viewH; sy++ {
			for sx := 0; sx < width; sx++ {
				x := r.camX + sx
				y := r.camY + sy
				dist := math.Hypot(float64(x-exit.X), float64(y-exit.Y))
				if math.Abs(dist-radiusTiles) < 0.5 {
					r.screen.SetContent(sx, sy, '*', style)
				}
			}
		}
	}
}

// drawHUD draws the two status rows under the viewport.
func (r *Renderer) drawHUD(s *sim.Sim, width, viewH int) {
	playerCell := s.Player.Cell()

	area := "Hallway"
	lights := "dim"
	if room := s.Level.RoomAt(playerCell.X, playerCell.Y); room != nil {
		if def := r.defs.ByID(room.Type.ID()); def != nil {
			area = def.Name
		}
		if room.Lit {
			lights = "fluorescent"
		}
	}

	line1 := fmt.Sprintf("Level: %s  Area: %s  Lights: %s", s.Level.Biome, area, lights)
	line2 := fmt.Sprintf("Stamina: %3.0f", s.Player.Stamina)
	if s.Player.Sprinting {
		line2 += "  SPRINTING"
	}

	hudStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.drawText(0, viewH, truncate(line1, width), hudStyle)
	r.drawText(0, viewH+1, truncate(line2, width), hudStyle)
}

// drawText writes a string starting at the given position.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// tileColor resolves a tile's render color, scaled by a brightness factor
// in (0, 1]. Floors take their containing room's palette color; everything
// else uses a fixed per-kind color.
func (r *Renderer) tileColor(lv *world.Level, x, y int, tile world.Tile, brightness float64) tcell.Color {
	hex := r.baseHex(lv, x, y, tile)
	if brightness >= 1.0 {
		return gamedata.ParseHexColorDefault(hex, tcell.ColorWhite)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorWhite
	}
	c = colorful.Color{R: c.R * brightness, G: c.G * brightness, B: c.B * brightness}
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// baseHex picks the full-brightness hex color for a tile.
func (r *Renderer) baseHex(lv *world.Level, x, y int, tile world.Tile) string {
	pool := lv.Biome == world.BiomePoolrooms

	switch tile {
	case world.TileWall:
		if pool {
			return "#FAFAFA"
		}
		return "#FFFDD0"
	case world.TileFloor:
		if room := lv.RoomAt(x, y); room != nil {
			if def := r.defs.ByID(room.Type.ID()); def != nil && def.FloorColor != "" {
				return def.FloorColor
			}
		}
		if pool {
			return "#C8E6FF"
		}
		return "#FFFF64"
	case world.TileExit:
		return "#00FF00"
	case world.TileVent:
		return "#404040"
	case world.TileWaterDamage:
		return "#0000FF"
	case world.TileElectrical:
		return "#FFA500"
	case world.TileStairwell:
		return "#C0C0C0"
	case world.TileElevator:
		return "#808080"
	case world.TileLevelExit:
		return "#800080"
	case world.TilePool:
		return "#64C8FF"
	case world.TilePoolEdge:
		return "#40A4DF"
	default:
		return "#FFFF96"
	}
}

// truncate clips a string to at most width runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
