package devtools

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
)

// DefaultScreenshotScale is the pixel size of one tile in a screenshot.
const DefaultScreenshotScale = 8

var (
	screenshotWall = color.RGBA{60, 60, 80, 255}

	symbolColors = map[rune]color.RGBA{
		SymbolPlayer:     {0, 255, 0, 255},
		SymbolEnemy:      {255, 60, 60, 255},
		SymbolCorpse:     {110, 40, 40, 255},
		SymbolPickup:     {220, 170, 255, 255},
		SymbolProjectile: {255, 255, 160, 255},
		SymbolParticles:  {255, 200, 120, 255},
	}
)

func lightColor(v mgl32.Vec3) color.RGBA {
	c := func(f float32) uint8 { return uint8(mgl32.Clamp(f, 0, 1) * 255) }
	return color.RGBA{c(v[0]), c(v[1]), c(v[2]), 255}
}

// LightmapImage renders the baked light of w, scale pixels per tile, with
// entities drawn as dots.
func LightmapImage(w *world.World, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	g := w.Grid()
	s := float64(scale)
	dc := gg.NewContext(g.Width()*scale, g.Height()*scale)

	g.ForEachTile(func(c world.Coord, t *world.Tile) {
		if t.Opaque() {
			dc.SetColor(screenshotWall)
		} else {
			dc.SetColor(lightColor(g.LightAt(float32(c.X)+0.5, float32(c.Y)+0.5).Vec3()))
		}
		dc.DrawRectangle(float64(c.X)*s, float64(c.Y)*s, s, s)
		dc.Fill()
	})

	w.Each(func(e world.Entity) {
		if e.Body().Destroyed() {
			return
		}
		clr, ok := symbolColors[entitySymbol(e)]
		if !ok {
			return
		}
		pos := e.Body().Position()
		dc.SetColor(clr)
		dc.DrawCircle(float64(pos[0])*s, float64(pos[2])*s, max(float64(e.Body().BoundingBox[0])*s/2, 1))
		dc.Fill()
	})

	return dc.Image()
}

// SaveLightmapPNG writes LightmapImage to path.
func SaveLightmapPNG(w *world.World, path string, scale int) error {
	if err := gg.SavePNG(path, LightmapImage(w, scale)); err != nil {
		return fmt.Errorf("save light map %s: %w", path, err)
	}
	return nil
}

// SaveScreenshot writes lightmap-<tick>.png to dir and returns its absolute
// path.
func SaveScreenshot(dir string, w *world.World) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("lightmap-%d.png", w.Tick())))
	if err != nil {
		return "", err
	}
	if err := SaveLightmapPNG(w, absPath, DefaultScreenshotScale); err != nil {
		return "", err
	}
	return absPath, nil
}
