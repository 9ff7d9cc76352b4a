// Package physics provides collision detection and distance utilities.
//
// All motion in the game is kinematic and frame-stepped, so this package only
// answers geometric questions: how far apart two points are and whether two
// shapes overlap.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Tangent circles do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RectsOverlap reports whether two axis-aligned rectangles overlap.
// Unlike the circle tests this one is inclusive: touching edges count, which
// is what the coarse envelope checks want.
func RectsOverlap(a, b Rect) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin.X <= bMax.X && aMax.X >= bMin.X &&
		aMin.Y <= bMax.Y && aMax.Y >= bMin.Y
}

// CircleTouches reports whether two circles overlap (strict).
func CircleTouches(a, b Circle) bool {
	return CirclesOverlap(a.Center.X, a.Center.Y, a.Radius, b.Center.X, b.Center.Y, b.Radius)
}

// RectCircleOverlap reports whether a circle overlaps a rectangle (strict).
//
// The circle centre, taken relative to the rectangle centre, is clamped into
// the rectangle's half extents; that gives the point of the rectangle nearest
// to the circle. They overlap when that point is closer than the radius.
func RectCircleOverlap(r Rect, c Circle) bool {
	rel := c.Center.Sub(r.Center)
	nearest := Vec{
		X: clamp(rel.X, -r.Half.X, r.Half.X),
		Y: clamp(rel.Y, -r.Half.Y, r.Half.Y),
	}
	return rel.Sub(nearest).LenSq() < c.Radius*c.Radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
