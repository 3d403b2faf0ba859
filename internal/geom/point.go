package geom

import "math"

// Point is a position in world-space coordinates. Screen mapping (zoom/pan)
// is owned by the frontend viewport; everything in this package stays in
// world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled componentwise by (sx, sy).
func (p Point) Mul(sx, sy float64) Point {
	return Point{p.X * sx, p.Y * sy}
}

// ScaleFrom scales p relative to an anchor point, per axis. The anchor
// itself is a fixed point of the transform. Negative factors mirror p
// across the anchor on that axis.
func (p Point) ScaleFrom(anchor Point, sx, sy float64) Point {
	return Point{
		X: anchor.X + (p.X-anchor.X)*sx,
		Y: anchor.Y + (p.Y-anchor.Y)*sy,
	}
}

// RotateAround rotates p around center by the given angle in radians,
// using the standard 2D rotation matrix on the translated coordinates.
func (p Point) RotateAround(center Point, radians float64) Point {
	sin, cos := math.Sincos(radians)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// AngleFrom returns the angle of p as seen from center, via atan2.
func (p Point) AngleFrom(center Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// Near reports whether p and q are within eps of each other on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}
