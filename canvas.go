package rdraw

import (
	"errors"
	"fmt"

	"github.com/gogpu/rdraw/internal/path"
	"github.com/gogpu/rdraw/internal/stroke"
)

// ErrNoRenderer is returned by Stroke when the canvas has no renderer.
var ErrNoRenderer = errors.New("rdraw: no renderer")

const (
	// kappa90 places cubic control points for a quarter ellipse.
	kappa90 = 0.5522847493
	// maxStrokeWidth is the largest device-space stroke width.
	maxStrokeWidth = 200
)

// Canvas records a path and strokes it.
//
// A Canvas owns one path cache that is rebuilt on every BeginPath and reused
// across frames. It is not safe for concurrent use; create one Canvas per
// drawing context.
type Canvas struct {
	renderer Renderer
	cfg      Config

	tessTol float32
	distTol float32
	fringe  float32

	commands []Command
	// lastX, lastY is the current point in user space, used by QuadTo.
	lastX, lastY float32
	// startX, startY is where the current sub-path began.
	startX, startY float32

	states []State

	cache     *path.Cache
	flattened bool
	batch     StrokeBatch
}

// NewCanvas creates a canvas. Without [WithRenderer] the canvas only
// tessellates: [Canvas.Tessellate] works and [Canvas.Stroke] reports
// [ErrNoRenderer].
func NewCanvas(opts ...CanvasOption) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	c := &Canvas{
		renderer: o.renderer,
		cfg:      o.config,
		cache:    path.NewCache(),
		states:   make([]State, 1, maxStates),
	}
	c.setPixelsPerPoint(o.config.PixelsPerPoint)
	c.states[0] = defaultState(o.config)

	if c.renderer != nil {
		propagateLogger(c.renderer, Logger())
	}
	return c, nil
}

// Config returns the configuration the canvas was created with, including
// any later SetPixelsPerPoint change.
func (c *Canvas) Config() Config {
	return c.cfg
}

// SetPixelsPerPoint updates the tolerances for a new device pixel ratio:
// tessTol = 0.25/r, distTol = 0.01/r, fringe = 1/r at default scales.
func (c *Canvas) SetPixelsPerPoint(ratio float32) error {
	cfg := c.cfg
	cfg.PixelsPerPoint = ratio
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.setPixelsPerPoint(ratio)
	return nil
}

func (c *Canvas) setPixelsPerPoint(ratio float32) {
	c.tessTol = c.cfg.TessTolScale / ratio
	c.distTol = c.cfg.DistTolScale / ratio
	c.fringe = 1 / ratio
	c.flattened = false
}

// Tolerances returns the current tessellation tolerance, merge distance and
// fringe width.
func (c *Canvas) Tolerances() (tessTol, distTol, fringe float32) {
	return c.tessTol, c.distTol, c.fringe
}

// BeginPath clears the recorded commands and the path cache.
func (c *Canvas) BeginPath() {
	c.commands = c.commands[:0]
	c.cache.Reset()
	c.flattened = false
}

// Commands returns a copy of the recorded commands.
func (c *Canvas) Commands() []Command {
	return append([]Command(nil), c.commands...)
}

func (c *Canvas) appendCommand(cmd Command) {
	c.commands = append(c.commands, cmd)
	c.flattened = false
}

// MoveTo starts a new sub-path at (x, y).
func (c *Canvas) MoveTo(x, y float32) {
	c.lastX, c.lastY = x, y
	c.startX, c.startY = x, y
	tx, ty := c.state().Xform.Apply(x, y)
	c.appendCommand(MoveTo{X: tx, Y: ty})
}

// LineTo adds a line segment to (x, y).
func (c *Canvas) LineTo(x, y float32) {
	c.lastX, c.lastY = x, y
	tx, ty := c.state().Xform.Apply(x, y)
	c.appendCommand(LineTo{X: tx, Y: ty})
}

// BezierTo adds a cubic Bézier segment to (x, y).
func (c *Canvas) BezierTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.lastX, c.lastY = x, y
	xf := c.state().Xform
	cmd := BezierTo{}
	cmd.C1X, cmd.C1Y = xf.Apply(c1x, c1y)
	cmd.C2X, cmd.C2Y = xf.Apply(c2x, c2y)
	cmd.X, cmd.Y = xf.Apply(x, y)
	c.appendCommand(cmd)
}

// QuadTo adds a quadratic Bézier segment, recorded as the equivalent cubic.
func (c *Canvas) QuadTo(cx, cy, x, y float32) {
	x0, y0 := c.lastX, c.lastY
	c.BezierTo(
		x0+2.0/3.0*(cx-x0), y0+2.0/3.0*(cy-y0),
		x+2.0/3.0*(cx-x), y+2.0/3.0*(cy-y),
		x, y,
	)
}

// ClosePath closes the current sub-path. The current point returns to the
// sub-path start.
func (c *Canvas) ClosePath() {
	c.lastX, c.lastY = c.startX, c.startY
	c.appendCommand(Close{})
}

// PathWinding requests an orientation for the current sub-path.
func (c *Canvas) PathWinding(w Winding) {
	c.appendCommand(SetWinding{Winding: w})
}

// Rect adds a closed rectangle sub-path.
func (c *Canvas) Rect(x, y, w, h float32) {
	c.MoveTo(x, y)
	c.LineTo(x, y+h)
	c.LineTo(x+w, y+h)
	c.LineTo(x+w, y)
	c.ClosePath()
}

// Ellipse adds a closed ellipse sub-path made of four cubic segments.
func (c *Canvas) Ellipse(cx, cy, rx, ry float32) {
	const k = kappa90
	c.MoveTo(cx-rx, cy)
	c.BezierTo(cx-rx, cy+ry*k, cx-rx*k, cy+ry, cx, cy+ry)
	c.BezierTo(cx+rx*k, cy+ry, cx+rx, cy+ry*k, cx+rx, cy)
	c.BezierTo(cx+rx, cy-ry*k, cx+rx*k, cy-ry, cx, cy-ry)
	c.BezierTo(cx-rx*k, cy-ry, cx-rx, cy-ry*k, cx-rx, cy)
	c.ClosePath()
}

// Circle adds a closed circle sub-path.
func (c *Canvas) Circle(cx, cy, r float32) {
	c.Ellipse(cx, cy, r, r)
}

// Tessellate expands the current path with the current state and returns
// the resulting batch. The batch and its vertex slices are owned by the
// canvas and stay valid until the next mutating call.
func (c *Canvas) Tessellate() *StrokeBatch {
	st := *c.state()

	width := min(max(st.Stroke.Width*st.Xform.AverageScale(), 0), maxStrokeWidth)
	paint := st.Paint
	if width < c.fringe {
		// Thin lines are drawn one fringe wide with reduced alpha.
		alpha := min(max(width/c.fringe, 0), 1)
		paint.scaleAlpha(alpha * alpha)
		width = c.fringe
	}
	paint.scaleAlpha(st.Alpha)

	if !c.flattened {
		c.cache.Flatten(c.commands, c.tessTol, c.distTol)
		c.flattened = true
	}

	var fringe float32
	if st.AntiAlias {
		fringe = c.fringe
	}

	e := stroke.NewExpander(st.Stroke.style(width))
	e.SetTolerance(c.tessTol)
	e.SetFringe(fringe)
	nverts := e.Expand(c.cache)

	b := &c.batch
	b.Paint = paint
	b.Scissor = st.Scissor
	b.Fringe = fringe
	b.StrokeWidth = width
	b.Bounds = c.cache.Bounds
	b.Paths = b.Paths[:0]

	skipped := 0
	for i := range c.cache.Paths {
		sp := &c.cache.Paths[i]
		if sp.StrokeCount == 0 {
			skipped++
			continue
		}
		b.Paths = append(b.Paths, StrokePath{
			Vertices: c.cache.StrokeVerts(i),
			Closed:   sp.Closed,
			Convex:   sp.Convex,
		})
	}

	Logger().Debug("rdraw: tessellated stroke",
		"paths", len(b.Paths),
		"skipped", skipped,
		"vertices", nverts,
		"capacity", cap(c.cache.Verts),
		"width", width)

	return b
}

// Stroke tessellates the current path and hands it to the renderer.
// Renderer failures are returned wrapped.
func (c *Canvas) Stroke() error {
	b := c.Tessellate()
	if c.renderer == nil {
		return ErrNoRenderer
	}
	if err := c.renderer.RenderStroke(b); err != nil {
		Logger().Warn("rdraw: renderer failed", "err", err)
		return fmt.Errorf("rdraw: render stroke: %w", err)
	}
	return nil
}
