package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"

	"worship/pkg/engine/mathx"
)

// LightStep is how much intensity a static light loses per tile travelled.
const LightStep = 0.25

// Ambient is the light floor every sampled position receives.
const Ambient = 0.25

type lightNode struct {
	coord     Coord
	intensity mgl32.Vec3
}

// Radiate bakes a static point light into the grid with the default step.
func (g *Grid) Radiate(origin Coord, intensity mgl32.Vec3) {
	g.RadiateStep(origin, intensity, LightStep)
}

// RadiateStep flood-fills intensity outwards from origin through non-opaque
// tiles, adding it to each tile once and losing step per channel per tile.
func (g *Grid) RadiateStep(origin Coord, intensity mgl32.Vec3, step float32) {
	visited := mapset.New[Coord]()
	queue := []lightNode{{origin, intensity}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current.coord) {
			continue
		}
		visited.Put(current.coord)

		tile := g.TileAt(current.coord)
		if tile.Opaque() {
			continue
		}
		if current.intensity == (mgl32.Vec3{}) {
			continue
		}

		tile.Light = tile.Light.Add(current.intensity)

		next := mathx.ClampZero(current.intensity.Sub(mgl32.Vec3{step, step, step}))

		for _, d := range AllDirections() {
			queue = append(queue, lightNode{current.coord.Add(d.Delta()), next})
		}
	}
}

// ClearLight resets every tile's baked light.
func (g *Grid) ClearLight() {
	for i := range g.tiles {
		g.tiles[i].Light = mgl32.Vec3{}
	}
}

// TileLight returns the baked light of a tile, or black outside the grid.
func (g *Grid) TileLight(c Coord) mgl32.Vec3 {
	if tile := g.TileAt(c); tile != nil {
		return tile.Light
	}
	return mgl32.Vec3{}
}

// LightAt samples the baked light at a continuous position on the XZ plane.
// Each of the four tile corners around the point averages the four tiles that
// meet there, the corners are blended bilinearly and the result is lifted by
// the ambient floor.
func (g *Grid) LightAt(x, z float32) mgl32.Vec4 {
	tile := TileCoord(mgl32.Vec3{x, 0, z})
	fx := x - float32(tile.X)
	fz := z - float32(tile.Y)

	topLeft := g.cornerLight(tile, -1, -1)
	topRight := g.cornerLight(tile, 1, -1)
	bottomLeft := g.cornerLight(tile, -1, 1)
	bottomRight := g.cornerLight(tile, 1, 1)

	top := lerp(topLeft, topRight, fx)
	bottom := lerp(bottomLeft, bottomRight, fx)
	v := lerp(top, bottom, fz)

	ambient := mgl32.Vec3{Ambient, Ambient, Ambient}
	v = ambient.Add(v.Mul(1 - Ambient))
	return v.Vec4(1)
}

// cornerLight averages the tile at c with its neighbors towards (dx, dz).
func (g *Grid) cornerLight(c Coord, dx, dz int) mgl32.Vec3 {
	sum := g.TileLight(c).
		Add(g.TileLight(Coord{c.X + dx, c.Y})).
		Add(g.TileLight(Coord{c.X, c.Y + dz})).
		Add(g.TileLight(Coord{c.X + dx, c.Y + dz}))
	return sum.Mul(0.25)
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
