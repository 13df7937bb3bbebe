package path

import "math"

// maxBezierDepth bounds the recursion of cubic subdivision.
const maxBezierDepth = 10

// Flatten rebuilds the cache from a command sequence.
//
// Curves are subdivided until flat within tessTol and points closer than
// distTol are merged. Each sub-path is then normalized: a trailing point equal
// to the first one closes the sub-path, the requested winding is enforced and
// the outgoing edge direction and length is stored on every point.
func (c *Cache) Flatten(cmds []Command, tessTol, distTol float32) {
	c.Reset()

	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case MoveTo:
			c.addPath()
			c.addPoint(cmd.X, cmd.Y, PointCorner, distTol)
		case LineTo:
			c.addPoint(cmd.X, cmd.Y, PointCorner, distTol)
		case BezierTo:
			if last := c.lastPoint(); last != nil {
				c.tessellateBezier(last.X, last.Y,
					cmd.C1X, cmd.C1Y, cmd.C2X, cmd.C2Y, cmd.X, cmd.Y,
					0, PointCorner, tessTol, distTol)
			}
		case Close:
			c.closePath()
		case SetWinding:
			c.pathWinding(cmd.Winding)
		}
	}

	for i := range c.Paths {
		c.finishPath(&c.Paths[i], distTol)
	}
}

func (c *Cache) finishPath(sp *SubPath, distTol float32) {
	if sp.Count < 2 {
		return
	}
	pts := c.Points[sp.First : sp.First+sp.Count]

	first, last := &pts[0], &pts[len(pts)-1]
	if PointEquals(last.X, last.Y, first.X, first.Y, distTol) {
		sp.Count--
		sp.Closed = true
		pts = pts[:sp.Count]
	}

	if len(pts) > 2 {
		area := PolygonArea(pts)
		if (sp.Winding == WindingCCW && area < 0) || (sp.Winding == WindingCW && area > 0) {
			reversePoints(pts)
		}
	}

	it := NewEdgeIter(len(pts))
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		p0, p1 := &pts[e.Prev], &pts[e.Cur]
		p0.DX, p0.DY, p0.Len = Normalize(p1.X-p0.X, p1.Y-p0.Y)
		growBounds(&sp.Bounds, p0.X, p0.Y)
		growBounds(&c.Bounds, p0.X, p0.Y)
	}
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// tessellateBezier subdivides a cubic at t=0.5 until the control points lie
// within tessTol of the chord. Segments at the depth limit are taken as flat.
func (c *Cache) tessellateBezier(x1, y1, x2, y2, x3, y3, x4, y4 float32, level int, flags PointFlags, tessTol, distTol float32) {
	if level >= maxBezierDepth {
		c.addPoint(x4, y4, flags, distTol)
		return
	}

	x12 := (x1 + x2) * 0.5
	y12 := (y1 + y2) * 0.5
	x23 := (x2 + x3) * 0.5
	y23 := (y2 + y3) * 0.5
	x34 := (x3 + x4) * 0.5
	y34 := (y3 + y4) * 0.5
	x123 := (x12 + x23) * 0.5
	y123 := (y12 + y23) * 0.5

	dx := x4 - x1
	dy := y4 - y1
	d2 := float32(math.Abs(float64((x2-x4)*dy - (y2-y4)*dx)))
	d3 := float32(math.Abs(float64((x3-x4)*dy - (y3-y4)*dx)))

	if (d2+d3)*(d2+d3) < tessTol*(dx*dx+dy*dy) {
		c.addPoint(x4, y4, flags, distTol)
		return
	}

	x234 := (x23 + x34) * 0.5
	y234 := (y23 + y34) * 0.5
	x1234 := (x123 + x234) * 0.5
	y1234 := (y123 + y234) * 0.5

	c.tessellateBezier(x1, y1, x12, y12, x123, y123, x1234, y1234, level+1, 0, tessTol, distTol)
	c.tessellateBezier(x1234, y1234, x234, y234, x34, y34, x4, y4, level+1, flags, tessTol, distTol)
}
