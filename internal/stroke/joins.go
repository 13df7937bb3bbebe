package stroke

import (
	"github.com/gogpu/rdraw/internal/path"
)

const (
	// miterEpsilon is the squared miter length below which dm is not rescaled.
	miterEpsilon = 1e-6
	// maxMiterScale caps the rescale factor at near-reversal turns.
	maxMiterScale = 600
	// minInnerLimit keeps the inner miter test meaningful for very short edges.
	minInnerLimit = 1.01
)

// CalculateJoins classifies every point of every sub-path in the cache for
// half width w. It fills DMX/DMY and the turn and bevel flags on the points
// and NBevel/Convex on the sub-paths.
func CalculateJoins(c *path.Cache, w float32, join LineJoin, miterLimit float32) {
	var iw float32
	if w > 0 {
		iw = 1 / w
	}

	for i := range c.Paths {
		sp := &c.Paths[i]
		pts := c.SubPoints(i)
		sp.NBevel = 0
		sp.Convex = false
		if len(pts) < 2 {
			continue
		}

		nleft := 0
		it := path.NewEdgeIter(len(pts))
		for {
			e, ok := it.Next()
			if !ok {
				break
			}
			p0, p1 := &pts[e.Prev], &pts[e.Cur]

			dlx0, dly0 := p0.DY, -p0.DX
			dlx1, dly1 := p1.DY, -p1.DX

			p1.DMX = (dlx0 + dlx1) * 0.5
			p1.DMY = (dly0 + dly1) * 0.5
			dmr2 := p1.DMX*p1.DMX + p1.DMY*p1.DMY
			if dmr2 > miterEpsilon {
				scale := min(1/dmr2, maxMiterScale)
				p1.DMX *= scale
				p1.DMY *= scale
			}

			p1.Flags &= path.PointCorner

			if path.Cross(p0.DX, p0.DY, p1.DX, p1.DY) > 0 {
				nleft++
				p1.Flags |= path.PointLeft
			}

			limit := max(minInnerLimit, min(p0.Len, p1.Len)*iw)
			if dmr2*limit*limit < 1 {
				p1.Flags |= path.PointInnerBevel
			}

			if p1.Flags&path.PointCorner != 0 {
				if dmr2*miterLimit*miterLimit < 1 || join == LineJoinBevel || join == LineJoinRound {
					p1.Flags |= path.PointBevel
				}
			}

			if p1.Flags&(path.PointBevel|path.PointInnerBevel) != 0 {
				sp.NBevel++
			}
		}

		sp.Convex = nleft == len(pts) && monotoneTurn(pts)
	}
}

// monotoneTurn reports whether the edge directions of a closed polygon turn
// through a single revolution: each direction component changes sign at most
// twice around the loop. Star polygons whose turns all agree wind more than
// once and fail this test.
func monotoneTurn(pts []path.Point) bool {
	return signChanges(pts, func(p *path.Point) float32 { return p.DX }) <= 2 &&
		signChanges(pts, func(p *path.Point) float32 { return p.DY }) <= 2
}

func signChanges(pts []path.Point, component func(*path.Point) float32) int {
	var last float32
	for i := len(pts) - 1; i >= 0; i-- {
		if s := sign(component(&pts[i])); s != 0 {
			last = s
			break
		}
	}

	changes := 0
	for i := range pts {
		s := sign(component(&pts[i]))
		if s == 0 {
			continue
		}
		if s != last {
			changes++
		}
		last = s
	}
	return changes
}

func sign(v float32) float32 {
	switch {
	case v > miterEpsilon:
		return 1
	case v < -miterEpsilon:
		return -1
	default:
		return 0
	}
}
