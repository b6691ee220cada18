package ebiten

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"worship/pkg/engine/world"
	"worship/pkg/game/entities"
	"worship/pkg/game/renderer"
)

// sightLineLength is how far the player's aim is drawn, in tiles.
const sightLineLength = 3

// camera projects world XZ onto the screen, centered on the eye.
type camera struct {
	eye                   mgl32.Vec3
	tileSize              float32
	halfWidth, halfHeight float32
}

func newCamera(eye mgl32.Vec3, tileSize, width, height int) camera {
	return camera{
		eye:        eye,
		tileSize:   float32(tileSize),
		halfWidth:  float32(width) / 2,
		halfHeight: float32(height) / 2,
	}
}

// worldToScreen maps a world position to pixel coordinates.
func (c camera) worldToScreen(pos mgl32.Vec3) (float32, float32) {
	return (pos[0]-c.eye[0])*c.tileSize + c.halfWidth, (pos[2]-c.eye[2])*c.tileSize + c.halfHeight
}

// tileRange returns the inclusive tile bounds covered by the screen.
func (c camera) tileRange() (minX, minY, maxX, maxY int) {
	spanX := int(c.halfWidth/c.tileSize) + 1
	spanY := int(c.halfHeight/c.tileSize) + 1
	center := world.TileCoord(c.eye)
	return center.X - spanX, center.Y - spanY, center.X + spanX, center.Y + spanY
}

// shade adds the dynamic lights reaching pos to its static light, falling off
// linearly to each light's radius.
func shade(static mgl32.Vec3, lights world.LightBatch, pos mgl32.Vec3) mgl32.Vec3 {
	out := static
	for i := range lights.Positions {
		r := lights.Radii[i]
		if r <= 0 {
			continue
		}
		d := lights.Positions[i].Sub(pos)
		d[1] = 0
		if k := 1 - d.Len()/r; k > 0 {
			out = out.Add(lights.Colors[i].Mul(k))
		}
	}
	return out
}

// lit converts a light value to a color, clamping each channel.
func lit(v mgl32.Vec3, alpha uint8) color.RGBA {
	return color.RGBA{channel(v[0]), channel(v[1]), channel(v[2]), alpha}
}

func channel(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1) * 255)
}

// Draw renders the latest frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	e.snapshotMutex.RLock()
	f := e.frame
	overlays := append([]string(nil), e.overlays...)
	e.snapshotMutex.RUnlock()

	screen.Fill(colorBackground)
	if f == nil {
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cam := newCamera(f.Eye, e.tileSize, w, h)

	e.drawTiles(screen, f, cam)
	e.drawEntities(screen, f, cam)
	e.drawHUD(screen, f, w, h)

	if f.FlashAlpha > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), lit(f.FlashColor, uint8(255*f.FlashAlpha)), false)
	}
	e.drawOverlays(screen, overlays, w, h)
}

func (e *EbitenRenderer) drawTiles(screen *ebiten.Image, f *renderer.Frame, cam camera) {
	if f.Grid == nil {
		return
	}
	minX, minY, maxX, maxY := cam.tileRange()
	size := cam.tileSize
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := world.Coord{X: x, Y: y}
			tile := f.Grid.TileAt(c)
			if tile == nil {
				continue
			}
			sx, sy := cam.worldToScreen(mgl32.Vec3{float32(x), 0, float32(y)})
			if tile.Opaque() {
				vector.DrawFilledRect(screen, sx, sy, size, size, colorWall, false)
				continue
			}
			light := shade(f.Grid.LightAt(float32(x)+0.5, float32(y)+0.5).Vec3(), f.Lights, c.Center())
			vector.DrawFilledRect(screen, sx+1, sy+1, size-2, size-2, lit(light.Mul(0.6), 255), false)
		}
	}
}

func (e *EbitenRenderer) drawEntities(screen *ebiten.Image, f *renderer.Frame, cam camera) {
	for _, v := range f.Entities {
		x, y := cam.worldToScreen(v.Position)
		radius := max(v.BoundingBox[0]/2*cam.tileSize, 2)

		switch v.Kind {
		case entities.KindEnemy:
			clr := colorEnemy
			if v.Dead {
				clr = colorEnemyDead
			}
			vector.DrawFilledCircle(screen, x, y, radius, clr, true)
		case entities.KindPickup:
			vector.DrawFilledRect(screen, x-radius, y-radius, radius*2, radius*2, colorPickup, false)
		case entities.KindProjectile:
			vector.DrawFilledCircle(screen, x, y, radius+1, lit(v.Color, 255), true)
		case entities.KindParticles:
			clr := lit(v.Color, 200)
			for _, p := range v.Particles {
				px, py := cam.worldToScreen(p)
				vector.DrawFilledRect(screen, px-1, py-1, 2, 2, clr, false)
			}
		}
	}

	// The player sits at the center of the view.
	if f.HUD.Alive {
		x, y := cam.worldToScreen(f.Eye)
		tip := f.Eye.Add(f.Forward.Mul(sightLineLength))
		tx, ty := cam.worldToScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 1, colorSightLine, true)
		vector.DrawFilledCircle(screen, x, y, cam.tileSize/4, colorPlayer, true)
	}
}

// hudLines returns the status lines drawn in the bottom-left corner.
func hudLines(h renderer.HUD) []string {
	if !h.Alive {
		return []string{"DEAD"}
	}
	lines := []string{fmt.Sprintf("Health %3.0f  Armor %3.0f", h.Health, h.Armor)}
	if h.Weapon != "" {
		lines = append(lines, fmt.Sprintf("%s  %d", h.Weapon, h.Ammo))
	}
	return lines
}

func (e *EbitenRenderer) drawHUD(screen *ebiten.Image, f *renderer.Frame, w, h int) {
	if e.hudFace == nil {
		return
	}

	// Message log, newest last
	y := float64(hudMargin)
	for _, m := range f.Messages {
		e.drawText(screen, m, e.hudFace, hudMargin, y, colorSubtle)
		y += hudLineHeight
	}

	lines := hudLines(f.HUD)
	bottom := float64(h) - hudMargin - float64(len(lines))*hudLineHeight
	vector.DrawFilledRect(screen, 0, float32(bottom-hudMargin/2), float32(w), float32(len(lines))*hudLineHeight+hudMargin, colorPanelBackground, false)
	for i, line := range lines {
		e.drawText(screen, line, e.hudFace, hudMargin, bottom+float64(i)*hudLineHeight, colorText)
	}
}

// drawOverlays stacks the queued overlays from a third of the way down. The
// first one is the title and uses the large face.
func (e *EbitenRenderer) drawOverlays(screen *ebiten.Image, overlays []string, w, h int) {
	if e.overlayFace == nil || e.hudFace == nil {
		return
	}
	y := float64(h) / 3
	for i, s := range overlays {
		face, size := e.hudFace, float64(hudFontSize)
		if i == 0 {
			face, size = e.overlayFace, overlayFontSize
		}
		tw, th := text.Measure(s, face, size)
		x := (float64(w) - tw) / 2

		vector.DrawFilledRect(screen, float32(x-hudMargin), float32(y-hudMargin/2), float32(tw+2*hudMargin), float32(th+hudMargin), colorPanelBackground, false)
		e.drawText(screen, s, face, x, y, colorText)
		y += th + hudMargin
	}
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
