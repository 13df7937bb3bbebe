package path

// PointFlags classify a flattened point for join generation.
type PointFlags uint8

const (
	// PointCorner marks a point produced by a command endpoint.
	PointCorner PointFlags = 1 << iota
	// PointLeft marks a left turn at the point.
	PointLeft
	// PointBevel marks an outer join that needs bevel or round geometry.
	PointBevel
	// PointInnerBevel marks an inner join that must not use the miter point.
	PointInnerBevel
)

// Point is one vertex of a flattened sub-path.
//
// DX, DY and Len describe the edge from this point to the next one.
// DMX, DMY is the miter extrusion vector computed by the join classifier.
type Point struct {
	X, Y     float32
	DX, DY   float32
	Len      float32
	DMX, DMY float32
	Flags    PointFlags
}

// Vertex is one triangle-strip vertex of the stroke mesh.
// U runs across the stroke (0 and 1 on the two sides, 0.5 on the centre line);
// V is 0 on fringe extension vertices and 1 on the core ring.
type Vertex struct {
	X, Y float32
	U, V float32
}

// SubPath is a window into the cache's point buffer plus per-sub-path results.
type SubPath struct {
	First   int
	Count   int
	Closed  bool
	Winding Winding

	// Filled in by the join classifier.
	NBevel int
	Convex bool

	// Range of this sub-path's stroke strip in Cache.Verts.
	StrokeFirst int
	StrokeCount int

	Bounds [4]float32
}

// Cache owns the flattened geometry of one recorded path.
// It is reused across frames: Reset truncates the buffers without
// releasing their capacity. A Cache is not safe for concurrent use.
type Cache struct {
	Points []Point
	Paths  []SubPath
	Verts  []Vertex

	// Bounds is the union of all sub-path bounds as minX, minY, maxX, maxY.
	Bounds [4]float32
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	c.Reset()
	return c
}

// Reset clears the cache, keeping allocated capacity.
func (c *Cache) Reset() {
	c.Points = c.Points[:0]
	c.Paths = c.Paths[:0]
	c.Verts = c.Verts[:0]
	c.Bounds = emptyBounds()
}

// SubPoints returns the point window of sub-path i.
// It returns nil when i is out of range.
func (c *Cache) SubPoints(i int) []Point {
	if i < 0 || i >= len(c.Paths) {
		return nil
	}
	sp := &c.Paths[i]
	return c.Points[sp.First : sp.First+sp.Count]
}

// PointAt addresses a point by sub-path and local index.
func (c *Cache) PointAt(sub, local int) (*Point, bool) {
	pts := c.SubPoints(sub)
	if local < 0 || local >= len(pts) {
		return nil, false
	}
	return &pts[local], true
}

// StrokeVerts returns the stroke strip of sub-path i.
func (c *Cache) StrokeVerts(i int) []Vertex {
	if i < 0 || i >= len(c.Paths) {
		return nil
	}
	sp := &c.Paths[i]
	return c.Verts[sp.StrokeFirst : sp.StrokeFirst+sp.StrokeCount]
}

// ReserveVerts grows the vertex buffer so that n more vertices can be
// appended without reallocation, and returns the current length.
func (c *Cache) ReserveVerts(n int) int {
	start := len(c.Verts)
	if cap(c.Verts)-start < n {
		grown := make([]Vertex, start, start+n)
		copy(grown, c.Verts)
		c.Verts = grown
	}
	return start
}

func (c *Cache) addPath() {
	c.Paths = append(c.Paths, SubPath{
		First:   len(c.Points),
		Winding: WindingCCW,
		Bounds:  emptyBounds(),
	})
}

func (c *Cache) lastPath() *SubPath {
	if len(c.Paths) == 0 {
		return nil
	}
	return &c.Paths[len(c.Paths)-1]
}

func (c *Cache) lastPoint() *Point {
	sp := c.lastPath()
	if sp == nil || sp.Count == 0 {
		return nil
	}
	return &c.Points[len(c.Points)-1]
}

// addPoint appends a point to the current sub-path. A point within distTol
// of the previous one merges its flags into it instead.
func (c *Cache) addPoint(x, y float32, flags PointFlags, distTol float32) {
	sp := c.lastPath()
	if sp == nil {
		return
	}
	if sp.Count > 0 {
		last := &c.Points[len(c.Points)-1]
		if PointEquals(last.X, last.Y, x, y, distTol) {
			last.Flags |= flags
			return
		}
	}
	c.Points = append(c.Points, Point{X: x, Y: y, Flags: flags})
	sp.Count++
}

func (c *Cache) closePath() {
	if sp := c.lastPath(); sp != nil {
		sp.Closed = true
	}
}

func (c *Cache) pathWinding(w Winding) {
	if sp := c.lastPath(); sp != nil {
		sp.Winding = w
	}
}

func emptyBounds() [4]float32 {
	return [4]float32{1e6, 1e6, -1e6, -1e6}
}

func growBounds(b *[4]float32, x, y float32) {
	b[0] = min(b[0], x)
	b[1] = min(b[1], y)
	b[2] = max(b[2], x)
	b[3] = max(b[3], y)
}
