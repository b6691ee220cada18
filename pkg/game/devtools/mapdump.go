// Package devtools provides developer tools for testing and debugging: text
// map dumps, light map screenshots and the debug HTTP server.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
	"worship/pkg/game/entities"
)

// Map symbols, in increasing priority when several share a tile.
const (
	SymbolAir        = '.'
	SymbolWall       = '#'
	SymbolCorpse     = '%'
	SymbolParticles  = '~'
	SymbolPickup     = 'p'
	SymbolProjectile = '*'
	SymbolEnemy      = 'E'
	SymbolPlayer     = '@'
)

var symbolPriority = map[rune]int{
	SymbolCorpse:     1,
	SymbolParticles:  2,
	SymbolPickup:     3,
	SymbolProjectile: 4,
	SymbolEnemy:      5,
	SymbolPlayer:     6,
}

const legend = ". = air  # = wall  @ = player  E = enemy  % = dead enemy  p = pickup  * = projectile  ~ = particles"

// entitySymbol returns the map symbol of e, or 0 for entities not shown.
func entitySymbol(e world.Entity) rune {
	if enemy, ok := e.(*entities.Enemy); ok && !enemy.Alive() {
		return SymbolCorpse
	}
	switch entities.KindOf(e) {
	case entities.KindEnemy:
		return SymbolEnemy
	case entities.KindPlayer:
		return SymbolPlayer
	case entities.KindPickup:
		return SymbolPickup
	case entities.KindProjectile:
		return SymbolProjectile
	case entities.KindParticles:
		return SymbolParticles
	}
	return 0
}

// MapRows renders the grid one string per row with entities overlaid.
func MapRows(w *world.World) []string {
	g := w.Grid()
	cells := make([][]rune, g.Height())
	for y := range cells {
		cells[y] = make([]rune, g.Width())
	}
	g.ForEachTile(func(c world.Coord, t *world.Tile) {
		if t.Opaque() {
			cells[c.Y][c.X] = SymbolWall
		} else {
			cells[c.Y][c.X] = SymbolAir
		}
	})

	w.Each(func(e world.Entity) {
		if e.Body().Destroyed() {
			return
		}
		sym := entitySymbol(e)
		c := world.TileCoord(e.Body().Position())
		if sym == 0 || !g.InBounds(c) {
			return
		}
		if symbolPriority[sym] > symbolPriority[cells[c.Y][c.X]] {
			cells[c.Y][c.X] = sym
		}
	})

	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}

// LightStats summarizes the baked light of the non-opaque tiles.
type LightStats struct {
	Tiles int
	Lit   int
	Min   float32
	Max   float32
	Mean  float32
}

// luminance is the mean of the three channels.
func luminance(v mgl32.Vec3) float32 {
	return (v[0] + v[1] + v[2]) / 3
}

// ComputeLightStats measures the static light of g.
func ComputeLightStats(g *world.Grid) LightStats {
	var s LightStats
	var sum float32
	g.ForEachTile(func(c world.Coord, t *world.Tile) {
		if t.Opaque() {
			return
		}
		l := luminance(t.Light)
		if s.Tiles == 0 || l < s.Min {
			s.Min = l
		}
		if l > s.Max {
			s.Max = l
		}
		if l > 0 {
			s.Lit++
		}
		s.Tiles++
		sum += l
	})
	if s.Tiles > 0 {
		s.Mean = sum / float32(s.Tiles)
	}
	return s
}

// DumpMap writes a text dump of w: metadata, legend, the map and light
// statistics.
func DumpMap(out io.Writer, w *world.World) error {
	g := w.Grid()
	var b strings.Builder

	fmt.Fprintln(&b, "=== MAP DUMP ===")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "--- Metadata ---")
	fmt.Fprintf(&b, "tick: %d\n", w.Tick())
	fmt.Fprintf(&b, "width: %d\n", g.Width())
	fmt.Fprintf(&b, "height: %d\n", g.Height())
	fmt.Fprintf(&b, "entities: %d\n", w.Len())
	fmt.Fprintf(&b, "dynamic_lights: %d\n", w.Lights().Len())
	fmt.Fprintf(&b, "coordinate_system: x,z (0-based, x=column, z=row)\n")
	fmt.Fprintln(&b, "")

	fmt.Fprintln(&b, "--- Legend ---")
	fmt.Fprintln(&b, legend)
	fmt.Fprintln(&b, "")

	fmt.Fprintln(&b, "--- Map ---")
	for _, row := range MapRows(w) {
		fmt.Fprintln(&b, row)
	}
	fmt.Fprintln(&b, "")

	s := ComputeLightStats(g)
	fmt.Fprintln(&b, "--- Static light ---")
	fmt.Fprintf(&b, "open_tiles: %d\n", s.Tiles)
	fmt.Fprintf(&b, "lit_tiles: %d\n", s.Lit)
	fmt.Fprintf(&b, "min: %.3f\n", s.Min)
	fmt.Fprintf(&b, "max: %.3f\n", s.Max)
	fmt.Fprintf(&b, "mean: %.3f\n", s.Mean)

	_, err := io.WriteString(out, b.String())
	return err
}

// DumpMapToFile writes DumpMap output to map-<tick>.txt in dir and returns
// the absolute path.
func DumpMapToFile(dir string, w *world.World) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("map-%d.txt", w.Tick())))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(f, w); err != nil {
		return "", err
	}
	return absPath, nil
}
