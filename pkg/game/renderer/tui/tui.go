// Package tui draws a top-down light map of the level into an ANSI terminal
// and drives the game loop from terminal key events.
package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gookit/color"

	"worship/pkg/engine/terminal"
	"worship/pkg/engine/world"
	"worship/pkg/game/entities"
	"worship/pkg/game/renderer"
)

// Icon constants for the light map
const (
	IconPlayer     = "@"
	IconEnemy      = "E"
	IconCorpse     = "%"
	IconPickup     = "p"
	IconProjectile = "*"
	IconParticles  = "~"
	IconWall       = "▒"
	IconFloor      = " "
	IconVoid       = " "
)

// Cell is one map position of a composed view.
type Cell struct {
	Glyph string
	Wall  bool
	Light mgl32.Vec3
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer
	mu  sync.Mutex

	// Width and Height override the queried terminal size when positive.
	Width  int
	Height int

	colorPlayer color.Style
	colorEnemy  color.Style
	colorPickup color.Style
	colorText   color.Style
	colorSubtle color.Style
	colorDenied color.Style
}

// New creates a TUI renderer writing to out.
func New(out io.Writer) *TUIRenderer {
	return &TUIRenderer{
		out:         out,
		colorPlayer: color.Style{color.FgGreen, color.OpBold},
		colorEnemy:  color.Style{color.FgRed, color.OpBold},
		colorPickup: color.Style{color.FgMagenta, color.OpBold},
		colorText:   color.Style{color.FgWhite},
		colorSubtle: color.Style{color.FgGray, color.OpBold},
		colorDenied: color.Style{color.FgRed, color.OpBold},
	}
}

func (t *TUIRenderer) size() (int, int) {
	if t.Width > 0 && t.Height > 0 {
		return t.Width, t.Height
	}
	return terminal.GetSize()
}

// RenderFrame redraws the whole screen from f.
func (t *TUIRenderer) RenderFrame(f *renderer.Frame) {
	w, h := t.size()
	cols, rows := terminal.Viewport(w, h)
	cells := Compose(f, cols, rows)

	var b strings.Builder
	for _, row := range cells {
		for _, c := range row {
			b.WriteString(t.renderCell(c))
		}
		b.WriteString("\x1b[K\n")
	}
	for _, line := range t.statusLines(f) {
		b.WriteString(line)
		b.WriteString("\x1b[K\n")
	}
	// Drop overlay lines left from the previous frame.
	b.WriteString("\x1b[J")

	t.mu.Lock()
	defer t.mu.Unlock()
	terminal.Home(t.out)
	io.WriteString(t.out, b.String())
}

// RenderOverlay prints s below the status lines.
func (t *TUIRenderer) RenderOverlay(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s\x1b[K\n", t.colorDenied.Sprint(s))
}

func (t *TUIRenderer) renderCell(c Cell) string {
	if c.Glyph == "" {
		return IconVoid + IconVoid
	}
	bg := color.RGB(channel(c.Light[0]), channel(c.Light[1]), channel(c.Light[2]), true)
	if c.Wall {
		return color.NewRGBStyle(color.RGB(90, 90, 110), bg).Sprint(IconWall + IconWall)
	}
	glyph := c.Glyph + IconFloor
	switch c.Glyph {
	case IconPlayer:
		glyph = t.colorPlayer.Sprint(glyph)
	case IconEnemy, IconCorpse:
		glyph = t.colorEnemy.Sprint(glyph)
	case IconPickup:
		glyph = t.colorPickup.Sprint(glyph)
	}
	return bg.Sprint(glyph)
}

func (t *TUIRenderer) statusLines(f *renderer.Frame) []string {
	hud := "DEAD"
	if f.HUD.Alive {
		hud = fmt.Sprintf("Health %3.0f  Armor %3.0f", f.HUD.Health, f.HUD.Armor)
		if f.HUD.Weapon != "" {
			hud += fmt.Sprintf("  %s %d", f.HUD.Weapon, f.HUD.Ammo)
		}
	}
	return []string{
		t.colorText.Sprint(hud),
		t.colorSubtle.Sprint(f.Message),
	}
}

// Compose lays out a cols×rows window of the grid centered on the eye. Tiles
// outside the grid are left empty.
func Compose(f *renderer.Frame, cols, rows int) [][]Cell {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	if f.Grid == nil {
		return cells
	}

	focus := world.TileCoord(f.Eye)
	startX := terminal.Window(focus.X, cols, f.Grid.Width())
	startY := terminal.Window(focus.Y, rows, f.Grid.Height())

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := world.Coord{X: startX + x, Y: startY + y}
			tile := f.Grid.TileAt(c)
			if tile == nil {
				continue
			}
			light := f.Grid.LightAt(float32(c.X)+0.5, float32(c.Y)+0.5).Vec3()
			cells[y][x] = Cell{Glyph: IconFloor, Wall: tile.Opaque(), Light: light}
			if tile.Opaque() {
				cells[y][x].Glyph = IconWall
			}
		}
	}

	place := func(pos mgl32.Vec3, glyph string) {
		c := world.TileCoord(pos)
		x, y := c.X-startX, c.Y-startY
		if x < 0 || y < 0 || x >= cols || y >= rows || cells[y][x].Wall || cells[y][x].Glyph == "" {
			return
		}
		cells[y][x].Glyph = glyph
	}

	// Corpses first so anything alive on the same tile wins.
	for _, v := range f.Entities {
		if v.Dead {
			place(v.Position, IconCorpse)
		}
	}
	for _, v := range f.Entities {
		switch v.Kind {
		case entities.KindParticles:
			for _, p := range v.Particles {
				place(p, IconParticles)
			}
		case entities.KindPickup:
			place(v.Position, IconPickup)
		}
	}
	for _, v := range f.Entities {
		switch {
		case v.Kind == entities.KindEnemy && !v.Dead:
			place(v.Position, IconEnemy)
		case v.Kind == entities.KindProjectile:
			place(v.Position, IconProjectile)
		}
	}
	if f.Eye != (mgl32.Vec3{}) {
		place(f.Eye, IconPlayer)
	}
	return cells
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1) * 255)
}
