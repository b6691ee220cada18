// Package mathx provides the small geometric helpers shared by the world simulation.
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world vertical axis.
var Up = mgl32.Vec3{0, 1, 0}

// IntersectAABB reports whether two boxes given by center and full size overlap.
// Touching faces do not count as an overlap.
func IntersectAABB(a, sizeA, b, sizeB mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if abs(a[i]-b[i])*2 >= sizeA[i]+sizeB[i] {
			return false
		}
	}
	return true
}

// RayAABB intersects a ray with the box [min, max] using the slab method.
// It returns the distance along dir to the entry point, or to the exit point
// when the origin is inside the box.
func RayAABB(origin, dir, min, max mgl32.Vec3) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, false
			}
			continue
		}

		inv := 1 / dir[i]
		t1 := (min[i] - origin[i]) * inv
		t2 := (max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Flatten projects v onto the horizontal plane.
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// SafeNormalize returns v scaled to unit length, or the zero vector if v has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// RotateY rotates v by angle radians around the vertical axis.
func RotateY(v mgl32.Vec3, angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, Up).Rotate(v)
}

// ClampZero clamps every component of c to be non-negative.
func ClampZero(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		if c[i] < 0 {
			c[i] = 0
		}
	}
	return c
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
