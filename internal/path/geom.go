// Package path provides the path cache used by stroke tessellation:
// recorded commands, flattened sub-path points and the shared vertex buffer.
package path

import "math"

// normalizeEpsilon is the length below which a vector is left unscaled.
const normalizeEpsilon = 1e-6

// Normalize returns the unit vector of (x, y) together with its original length.
// Vectors shorter than 1e-6 are returned as-is, so callers never divide by zero.
func Normalize(x, y float32) (dx, dy, length float32) {
	length = float32(math.Sqrt(float64(x*x + y*y)))
	if length > normalizeEpsilon {
		inv := 1 / length
		x *= inv
		y *= inv
	}
	return x, y, length
}

// TriangleArea2 returns twice the signed area of triangle abc in screen space.
func TriangleArea2(ax, ay, bx, by, cx, cy float32) float32 {
	abx := bx - ax
	aby := by - ay
	acx := cx - ax
	acy := cy - ay
	return acx*aby - abx*acy
}

// PolygonArea returns the signed area of a polygon, using a triangle fan
// rooted at the first point. A counter-clockwise polygon has positive area.
func PolygonArea(pts []Point) float32 {
	var area float32
	for i := 2; i < len(pts); i++ {
		a, b, c := &pts[0], &pts[i-1], &pts[i]
		area += TriangleArea2(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	}
	return area * 0.5
}

// CurveDivs returns the number of segments needed to approximate an arc of
// radius r sweeping arc radians, with at most tol deviation. Never below 2.
func CurveDivs(r, arc, tol float32) int {
	da := math.Acos(float64(r/(r+tol))) * 2
	if da <= 0 || math.IsNaN(da) {
		return 2
	}
	return max(2, int(math.Ceil(float64(arc)/da)))
}

// PointEquals reports whether two points are closer than tol.
func PointEquals(x1, y1, x2, y2, tol float32) bool {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx+dy*dy < tol*tol
}

// Cross returns the z component of the cross product of two vectors.
func Cross(dx0, dy0, dx1, dy1 float32) float32 {
	return dx1*dy0 - dx0*dy1
}
