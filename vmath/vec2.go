package vmath

import "math"

// Vec2 is a point or displacement in unit space
type Vec2 struct {
	X, Y float64
}

// V returns a Vec2
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns a + b
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale multiplies both components by s
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Len returns the Euclidean length
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// LenSq returns the squared length without sqrt
func (a Vec2) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp interpolates from a to b, t=0 yields a, t=1 yields b
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Approach moves from toward target by factor of the remaining displacement
// Discrete exponential smoothing: never overshoots for 0 < factor <= 1
func Approach(from, target Vec2, factor float64) Vec2 {
	return from.Add(target.Sub(from).Scale(factor))
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ReflectInward returns a velocity component pointing back inside [0, limit]
// Independent axis reflection: below 0 forces positive, above limit forces negative
func ReflectInward(pos, vel, limit float64) float64 {
	switch {
	case pos < 0:
		return math.Abs(vel)
	case pos > limit:
		return -math.Abs(vel)
	default:
		return vel
	}
}
