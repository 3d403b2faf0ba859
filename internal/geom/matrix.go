package geom

import "math"

// Matrix2D represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// Where:
// - a, d = scale
// - b, c = skew/rotation
// - e, f = translation
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// ScaleAbout returns a matrix scaling around a fixed anchor point:
// T(anchor) * S(sx, sy) * T(-anchor).
func ScaleAbout(anchor Point, sx, sy float64) Matrix2D {
	return Matrix2D{
		sx, 0, 0, sy,
		anchor.X - sx*anchor.X,
		anchor.Y - sy*anchor.Y,
	}
}

// RotateAbout returns a matrix rotating around a fixed center:
// T(center) * R(radians) * T(-center).
func RotateAbout(center Point, radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{
		cos, sin, -sin, cos,
		center.X - cos*center.X + sin*center.Y,
		center.Y - sin*center.X - cos*center.Y,
	}
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply transforms a point through the matrix.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyRect transforms a rectangle and returns the axis-aligned bounding
// box of its four transformed corners.
func (m Matrix2D) ApplyRect(r Rect) Rect {
	corners := []Point{
		m.Apply(Point{r.X, r.Y}),
		m.Apply(Point{r.X + r.Width, r.Y}),
		m.Apply(Point{r.X + r.Width, r.Y + r.Height}),
		m.Apply(Point{r.X, r.Y + r.Height}),
	}
	bounds, _ := BoundsOf(corners)
	return bounds
}

// Determinant returns the determinant of the matrix. A negative value
// indicates a mirroring transform.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}
