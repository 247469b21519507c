// Package geom provides the small amount of vector math the gameplay
// core needs: planar distances, facing directions, and angle clamping.
package geom

import "math"

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v with length 1, or the zero vector if v is zero.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Flat returns v projected onto the ground plane (Y zeroed).
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// PlanarDistance returns the distance between a and b ignoring height.
func PlanarDistance(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Hypot(dx, dz)
}

// PlanarAngle returns the unsigned angle in degrees between a and b on
// the ground plane. Returns 0 when either vector is zero after flattening.
func PlanarAngle(a, b Vec3) float64 {
	fa := a.Flat().Normalized()
	fb := b.Flat().Normalized()
	if fa.IsZero() || fb.IsZero() {
		return 0
	}
	dot := Clamp(fa.Dot(fb), -1, 1)
	return math.Acos(dot) * 180 / math.Pi
}

// SignedPlanarAngle returns the angle in degrees from a to b on the
// ground plane, positive when b lies clockwise of a (to its right when
// looking down the Y axis).
func SignedPlanarAngle(a, b Vec3) float64 {
	angle := PlanarAngle(a, b)
	// Cross product Y component decides the turn direction.
	cross := a.Z*b.X - a.X*b.Z
	if cross < 0 {
		return -angle
	}
	return angle
}

// RotateY returns v rotated around the Y axis by deg degrees. Positive
// angles rotate clockwise when looking down the Y axis.
func RotateY(v Vec3, deg float64) Vec3 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// ClampDirection limits how far desired may deviate from facing. If the
// planar angle between them exceeds maxDeg, the result is facing rotated
// maxDeg toward desired; otherwise desired is returned unchanged.
func ClampDirection(facing, desired Vec3, maxDeg float64) Vec3 {
	angle := SignedPlanarAngle(facing, desired)
	if math.Abs(angle) <= maxDeg {
		return desired
	}
	if angle > 0 {
		return RotateY(facing.Flat().Normalized(), maxDeg)
	}
	return RotateY(facing.Flat().Normalized(), -maxDeg)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
