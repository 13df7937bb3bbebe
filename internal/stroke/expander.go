package stroke

import (
	"math"

	"github.com/gogpu/rdraw/internal/path"
)

// LineCap specifies the shape of open sub-path endpoints.
type LineCap uint8

const (
	// LineCapButt ends the stroke flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half circle.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of corners between segments.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges to a point.
	LineJoinMiter LineJoin = iota
	// LineJoinRound rounds the outer side with an arc.
	LineJoinRound
	// LineJoinBevel cuts the outer side straight.
	LineJoinBevel
)

// Style holds the stroke parameters used for expansion.
type Style struct {
	// Width is the full stroke width.
	Width float32

	Cap  LineCap
	Join LineJoin

	// MiterLimit is the miter length ratio beyond which miters become bevels.
	MiterLimit float32
}

// DefaultStyle returns a 1-unit wide butt/miter style with miter limit 10.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// Expander emits triangle-strip stroke geometry for a flattened cache.
type Expander struct {
	style   Style
	tessTol float32
	fringe  float32
}

// NewExpander creates an expander for the given style with a 0.25 tessellation
// tolerance and a fringe of 1.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:   style,
		tessTol: 0.25,
		fringe:  1,
	}
}

// SetTolerance sets the tessellation tolerance used to size round caps and joins.
func (e *Expander) SetTolerance(tessTol float32) {
	if tessTol > 0 {
		e.tessTol = tessTol
	}
}

// SetFringe sets the anti-aliasing fringe width. Zero disables anti-aliasing.
func (e *Expander) SetFringe(fringe float32) {
	e.fringe = max(0, fringe)
}

// Style returns the expander's style.
func (e *Expander) Style() Style {
	return e.style
}

// Expand classifies joins and rebuilds c.Verts as one triangle strip per
// sub-path, recording each strip's range on its sub-path. The vertex buffer
// is grown once to the worst-case budget before any vertex is written.
// It returns the number of vertices emitted.
func (e *Expander) Expand(c *path.Cache) int {
	c.Verts = c.Verts[:0]
	aa := e.fringe
	w := max(0, e.style.Width) * 0.5

	// Cap divisions use the nominal half width, joins the inflated one.
	ncap := path.CurveDivs(w, math.Pi, e.tessTol)
	w += aa * 0.5

	u0, u1 := float32(0), float32(1)
	if aa == 0 {
		u0, u1 = 0.5, 0.5
	}

	CalculateJoins(c, w, e.style.Join, e.style.MiterLimit)

	budget := Budget(c, e.style.Cap, e.style.Join, ncap)
	start := c.ReserveVerts(budget)
	out := emitter{v: c.Verts[:start+budget], n: start}

	for i := range c.Paths {
		sp := &c.Paths[i]
		sp.StrokeFirst = out.n
		sp.StrokeCount = 0
		pts := c.SubPoints(i)
		if len(pts) < 2 {
			continue
		}

		var it path.EdgeIter
		var p0, p1 *path.Point
		if sp.Closed {
			it = path.NewEdgeIter(len(pts))
		} else {
			it = path.NewInteriorEdgeIter(len(pts))
			p0, p1 = &pts[0], &pts[1]
			dx, dy, _ := path.Normalize(p1.X-p0.X, p1.Y-p0.Y)
			switch e.style.Cap {
			case LineCapRound:
				out.roundCapStart(p0, dx, dy, w, ncap, u0, u1)
			case LineCapSquare:
				out.buttCapStart(p0, dx, dy, w, w-aa, aa, u0, u1)
			default:
				out.buttCapStart(p0, dx, dy, w, -aa*0.5, aa, u0, u1)
			}
		}

		for {
			edge, ok := it.Next()
			if !ok {
				break
			}
			p0, p1 = &pts[edge.Prev], &pts[edge.Cur]
			switch {
			case p1.Flags&(path.PointBevel|path.PointInnerBevel) == 0:
				out.vset(p1.X+p1.DMX*w, p1.Y+p1.DMY*w, u0, 1)
				out.vset(p1.X-p1.DMX*w, p1.Y-p1.DMY*w, u1, 1)
			case e.style.Join == LineJoinRound:
				out.roundJoin(p0, p1, w, w, u0, u1, ncap)
			default:
				out.bevelJoin(p0, p1, w, w, u0, u1)
			}
		}

		if sp.Closed {
			first, second := out.v[sp.StrokeFirst], out.v[sp.StrokeFirst+1]
			out.vset(first.X, first.Y, u0, 1)
			out.vset(second.X, second.Y, u1, 1)
		} else {
			p0, p1 = &pts[len(pts)-2], &pts[len(pts)-1]
			dx, dy, _ := path.Normalize(p1.X-p0.X, p1.Y-p0.Y)
			switch e.style.Cap {
			case LineCapRound:
				out.roundCapEnd(p1, dx, dy, w, ncap, u0, u1)
			case LineCapSquare:
				out.buttCapEnd(p1, dx, dy, w, w-aa, aa, u0, u1)
			default:
				out.buttCapEnd(p1, dx, dy, w, -aa*0.5, aa, u0, u1)
			}
		}

		sp.StrokeCount = out.n - sp.StrokeFirst
	}

	c.Verts = c.Verts[:out.n]
	return out.n - start
}

// Budget returns the worst-case number of stroke vertices for every
// sub-path in the cache. Joins must already be classified.
func Budget(c *path.Cache, lineCap LineCap, join LineJoin, ncap int) int {
	total := 0
	for i := range c.Paths {
		total += SubPathBudget(&c.Paths[i], lineCap, join, ncap)
	}
	return total
}

// SubPathBudget returns the worst-case vertex count of one sub-path's strip.
func SubPathBudget(sp *path.SubPath, lineCap LineCap, join LineJoin, ncap int) int {
	if sp.Count < 2 {
		return 0
	}
	perBevel := 5
	if join == LineJoinRound {
		perBevel = ncap + 2
	}
	n := (sp.Count + sp.NBevel*perBevel + 1) * 2
	if !sp.Closed {
		if lineCap == LineCapRound {
			n += (ncap*2 + 2) * 2
		} else {
			n += (3 + 3) * 2
		}
	}
	return n
}

// emitter writes vertices into a slice that was sized to the budget.
type emitter struct {
	v []path.Vertex
	n int
}

func (o *emitter) vset(x, y, u, v float32) {
	o.v[o.n] = path.Vertex{X: x, Y: y, U: u, V: v}
	o.n++
}

func (o *emitter) buttCapStart(p *path.Point, dx, dy, w, d, aa, u0, u1 float32) {
	px := p.X - dx*d
	py := p.Y - dy*d
	dlx, dly := dy, -dx
	o.vset(px+dlx*w-dx*aa, py+dly*w-dy*aa, u0, 0)
	o.vset(px-dlx*w-dx*aa, py-dly*w-dy*aa, u1, 0)
	o.vset(px+dlx*w, py+dly*w, u0, 1)
	o.vset(px-dlx*w, py-dly*w, u1, 1)
}

func (o *emitter) buttCapEnd(p *path.Point, dx, dy, w, d, aa, u0, u1 float32) {
	px := p.X + dx*d
	py := p.Y + dy*d
	dlx, dly := dy, -dx
	o.vset(px+dlx*w, py+dly*w, u0, 1)
	o.vset(px-dlx*w, py-dly*w, u1, 1)
	o.vset(px+dlx*w+dx*aa, py+dly*w+dy*aa, u0, 0)
	o.vset(px-dlx*w+dx*aa, py-dly*w+dy*aa, u1, 0)
}

func (o *emitter) roundCapStart(p *path.Point, dx, dy, w float32, ncap int, u0, u1 float32) {
	px, py := p.X, p.Y
	dlx, dly := dy, -dx
	for i := range ncap {
		ax, ay := capOffset(i, ncap, w)
		o.vset(px-dlx*ax-dx*ay, py-dly*ax-dy*ay, u0, 1)
		o.vset(px, py, 0.5, 1)
	}
	o.vset(px+dlx*w, py+dly*w, u0, 1)
	o.vset(px-dlx*w, py-dly*w, u1, 1)
}

func (o *emitter) roundCapEnd(p *path.Point, dx, dy, w float32, ncap int, u0, u1 float32) {
	px, py := p.X, p.Y
	dlx, dly := dy, -dx
	o.vset(px+dlx*w, py+dly*w, u0, 1)
	o.vset(px-dlx*w, py-dly*w, u1, 1)
	for i := range ncap {
		ax, ay := capOffset(i, ncap, w)
		o.vset(px, py, 0.5, 1)
		o.vset(px-dlx*ax+dx*ay, py-dly*ax+dy*ay, u0, 1)
	}
}

// capOffset returns the i-th of ncap points on a half circle of radius w.
func capOffset(i, ncap int, w float32) (ax, ay float32) {
	a := float64(i) / float64(ncap-1) * math.Pi
	return float32(math.Cos(a)) * w, float32(math.Sin(a)) * w
}

// chooseBevel returns the two outer offsets at p1: the edge normals when the
// inner side is beveled, otherwise the miter point twice.
func chooseBevel(bevel bool, p0, p1 *path.Point, w float32) (x0, y0, x1, y1 float32) {
	if bevel {
		return p1.X + p0.DY*w, p1.Y - p0.DX*w, p1.X + p1.DY*w, p1.Y - p1.DX*w
	}
	x0 = p1.X + p1.DMX*w
	y0 = p1.Y + p1.DMY*w
	return x0, y0, x0, y0
}

func (o *emitter) bevelJoin(p0, p1 *path.Point, lw, rw, lu, ru float32) {
	dlx0, dly0 := p0.DY, -p0.DX
	dlx1, dly1 := p1.DY, -p1.DX
	inner := p1.Flags&path.PointInnerBevel != 0

	if p1.Flags&path.PointLeft != 0 {
		lx0, ly0, lx1, ly1 := chooseBevel(inner, p0, p1, lw)

		o.vset(lx0, ly0, lu, 1)
		o.vset(p1.X-dlx0*rw, p1.Y-dly0*rw, ru, 1)

		if p1.Flags&path.PointBevel != 0 {
			o.vset(lx0, ly0, lu, 1)
			o.vset(p1.X-dlx0*rw, p1.Y-dly0*rw, ru, 1)

			o.vset(lx1, ly1, lu, 1)
			o.vset(p1.X-dlx1*rw, p1.Y-dly1*rw, ru, 1)
		} else {
			rx0 := p1.X - p1.DMX*rw
			ry0 := p1.Y - p1.DMY*rw

			o.vset(p1.X, p1.Y, 0.5, 1)
			o.vset(p1.X-dlx0*rw, p1.Y-dly0*rw, ru, 1)

			o.vset(rx0, ry0, ru, 1)
			o.vset(rx0, ry0, ru, 1)

			o.vset(p1.X, p1.Y, 0.5, 1)
			o.vset(p1.X-dlx1*rw, p1.Y-dly1*rw, ru, 1)
		}

		o.vset(lx1, ly1, lu, 1)
		o.vset(p1.X-dlx1*rw, p1.Y-dly1*rw, ru, 1)
		return
	}

	rx0, ry0, rx1, ry1 := chooseBevel(inner, p0, p1, -rw)

	o.vset(p1.X+dlx0*lw, p1.Y+dly0*lw, lu, 1)
	o.vset(rx0, ry0, ru, 1)

	if p1.Flags&path.PointBevel != 0 {
		o.vset(p1.X+dlx0*lw, p1.Y+dly0*lw, lu, 1)
		o.vset(rx0, ry0, ru, 1)

		o.vset(p1.X+dlx1*lw, p1.Y+dly1*lw, lu, 1)
		o.vset(rx1, ry1, ru, 1)
	} else {
		lx0 := p1.X + p1.DMX*lw
		ly0 := p1.Y + p1.DMY*lw

		o.vset(p1.X+dlx0*lw, p1.Y+dly0*lw, lu, 1)
		o.vset(p1.X, p1.Y, 0.5, 1)

		o.vset(lx0, ly0, lu, 1)
		o.vset(lx0, ly0, lu, 1)

		o.vset(p1.X+dlx1*lw, p1.Y+dly1*lw, lu, 1)
		o.vset(p1.X, p1.Y, 0.5, 1)
	}

	o.vset(p1.X+dlx1*lw, p1.Y+dly1*lw, lu, 1)
	o.vset(rx1, ry1, ru, 1)
}

func (o *emitter) roundJoin(p0, p1 *path.Point, lw, rw, lu, ru float32, ncap int) {
	dlx0, dly0 := p0.DY, -p0.DX
	dlx1, dly1 := p1.DY, -p1.DX
	inner := p1.Flags&path.PointInnerBevel != 0

	if p1.Flags&path.PointLeft != 0 {
		lx0, ly0, lx1, ly1 := chooseBevel(inner, p0, p1, lw)
		a0 := math.Atan2(float64(-dly0), float64(-dlx0))
		a1 := math.Atan2(float64(-dly1), float64(-dlx1))
		if a1 > a0 {
			a1 -= 2 * math.Pi
		}

		o.vset(lx0, ly0, lu, 1)
		o.vset(p1.X-dlx0*rw, p1.Y-dly0*rw, ru, 1)

		n := JoinSteps(a0-a1, ncap)
		for i := range n {
			a := a0 + float64(i)/float64(n-1)*(a1-a0)
			rx := p1.X + float32(math.Cos(a))*rw
			ry := p1.Y + float32(math.Sin(a))*rw
			o.vset(p1.X, p1.Y, 0.5, 1)
			o.vset(rx, ry, ru, 1)
		}

		o.vset(lx1, ly1, lu, 1)
		o.vset(p1.X-dlx1*rw, p1.Y-dly1*rw, ru, 1)
		return
	}

	rx0, ry0, rx1, ry1 := chooseBevel(inner, p0, p1, -rw)
	a0 := math.Atan2(float64(dly0), float64(dlx0))
	a1 := math.Atan2(float64(dly1), float64(dlx1))
	if a1 < a0 {
		a1 += 2 * math.Pi
	}

	o.vset(p1.X+dlx0*rw, p1.Y+dly0*rw, lu, 1)
	o.vset(rx0, ry0, ru, 1)

	n := JoinSteps(a1-a0, ncap)
	for i := range n {
		a := a0 + float64(i)/float64(n-1)*(a1-a0)
		lx := p1.X + float32(math.Cos(a))*lw
		ly := p1.Y + float32(math.Sin(a))*lw
		o.vset(lx, ly, lu, 1)
		o.vset(p1.X, p1.Y, 0.5, 1)
	}

	o.vset(p1.X+dlx1*rw, p1.Y+dly1*rw, lu, 1)
	o.vset(rx1, ry1, ru, 1)
}

// JoinSteps returns the number of arc points for a round join sweeping
// sweep radians, proportional to the half-circle division count ncap.
func JoinSteps(sweep float64, ncap int) int {
	n := int(math.Ceil(sweep / math.Pi * float64(ncap)))
	return min(max(n, 2), max(ncap, 2))
}
