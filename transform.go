package rdraw

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Transform is a 2D affine transformation stored as an [f32.Aff3] in
// row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
type Transform f32.Aff3

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (x, y).
func Translate(x, y float32) Transform {
	return Transform{1, 0, x, 0, 1, y}
}

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float32) Transform {
	return Transform{sx, 0, 0, 0, sy, 0}
}

// Rotate returns a rotation by angle radians (clockwise on screen).
func Rotate(angle float32) Transform {
	s, c := math.Sincos(float64(angle))
	return Transform{float32(c), float32(-s), 0, float32(s), float32(c), 0}
}

// Multiply returns t * o: o is applied first, then t.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[1]*o[3],
		t[0]*o[1] + t[1]*o[4],
		t[0]*o[2] + t[1]*o[5] + t[2],
		t[3]*o[0] + t[4]*o[3],
		t[3]*o[1] + t[4]*o[4],
		t[3]*o[2] + t[4]*o[5] + t[5],
	}
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float32) (float32, float32) {
	return t[0]*x + t[1]*y + t[2], t[3]*x + t[4]*y + t[5]
}

// Invert returns the inverse transform.
// It returns the identity and false when t is singular.
func (t Transform) Invert() (Transform, bool) {
	det := float64(t[0])*float64(t[4]) - float64(t[1])*float64(t[3])
	if math.Abs(det) < 1e-6 {
		return Identity(), false
	}
	inv := 1 / det
	a, b, c := float64(t[0]), float64(t[1]), float64(t[2])
	d, e, f := float64(t[3]), float64(t[4]), float64(t[5])
	return Transform{
		float32(e * inv),
		float32(-b * inv),
		float32((b*f - c*e) * inv),
		float32(-d * inv),
		float32(a * inv),
		float32((c*d - a*f) * inv),
	}, true
}

// AverageScale returns the mean length of the transformed unit axes.
// Stroke widths are scaled by this factor.
func (t Transform) AverageScale() float32 {
	sx := math.Hypot(float64(t[0]), float64(t[3]))
	sy := math.Hypot(float64(t[1]), float64(t[4]))
	return float32((sx + sy) * 0.5)
}

// IsIdentity reports whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Aff3 returns the transform as an [f32.Aff3].
func (t Transform) Aff3() f32.Aff3 {
	return f32.Aff3(t)
}
