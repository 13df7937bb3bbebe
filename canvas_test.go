package rdraw

import (
	"errors"
	"log/slog"
	"math"
	"testing"
)

// recordingRenderer copies every batch it receives.
type recordingRenderer struct {
	batches []StrokeBatch
	logger  *slog.Logger
	err     error
}

func (r *recordingRenderer) RenderStroke(b *StrokeBatch) error {
	cp := *b
	cp.Paths = make([]StrokePath, len(b.Paths))
	for i, p := range b.Paths {
		cp.Paths[i] = p
		cp.Paths[i].Vertices = append([]Vertex(nil), p.Vertices...)
	}
	r.batches = append(r.batches, cp)
	return r.err
}

func (r *recordingRenderer) SetLogger(l *slog.Logger) { r.logger = l }

func newTestCanvas(t *testing.T, opts ...CanvasOption) (*Canvas, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	c, err := NewCanvas(append([]CanvasOption{WithRenderer(r)}, opts...)...)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	return c, r
}

func TestNewCanvasDefaults(t *testing.T) {
	c, _ := newTestCanvas(t)
	st := c.State()

	if st.Stroke.Width != 1 || st.Stroke.Cap != LineCapButt || st.Stroke.Join != LineJoinMiter {
		t.Errorf("default stroke = %+v", st.Stroke)
	}
	if st.Stroke.MiterLimit != 10 {
		t.Errorf("MiterLimit = %v, want 10", st.Stroke.MiterLimit)
	}
	if !st.AntiAlias {
		t.Error("AntiAlias should default to true")
	}
	if st.Scissor.Enabled() {
		t.Error("scissor should be disabled by default")
	}
	if st.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", st.Alpha)
	}
}

func TestNewCanvasInvalidConfig(t *testing.T) {
	if _, err := NewCanvas(WithPixelsPerPoint(0)); !errors.Is(err, ErrInvalidPixelsPerPoint) {
		t.Errorf("NewCanvas(ratio 0) error = %v, want ErrInvalidPixelsPerPoint", err)
	}
	cfg := DefaultConfig()
	cfg.MiterLimit = -1
	if _, err := NewCanvas(WithConfig(cfg)); !errors.Is(err, ErrInvalidMiterLimit) {
		t.Errorf("NewCanvas(miter -1) error = %v, want ErrInvalidMiterLimit", err)
	}
}

func TestSetPixelsPerPoint(t *testing.T) {
	c, _ := newTestCanvas(t)

	if err := c.SetPixelsPerPoint(2); err != nil {
		t.Fatalf("SetPixelsPerPoint(2) error = %v", err)
	}
	tess, dist, fringe := c.Tolerances()
	if tess != 0.125 || dist != 0.005 || fringe != 0.5 {
		t.Errorf("Tolerances() = %v, %v, %v; want 0.125, 0.005, 0.5", tess, dist, fringe)
	}

	if err := c.SetPixelsPerPoint(-1); !errors.Is(err, ErrInvalidPixelsPerPoint) {
		t.Errorf("SetPixelsPerPoint(-1) error = %v, want ErrInvalidPixelsPerPoint", err)
	}
	if _, _, fringe := c.Tolerances(); fringe != 0.5 {
		t.Errorf("rejected ratio changed fringe to %v", fringe)
	}
}

func TestCanvasStrokeLine(t *testing.T) {
	c, r := newTestCanvas(t, WithAntiAlias(false))
	c.SetStrokeWidth(2)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)

	if err := c.Stroke(); err != nil {
		t.Fatalf("Stroke() error = %v", err)
	}
	if len(r.batches) != 1 {
		t.Fatalf("renderer received %d batches, want 1", len(r.batches))
	}
	b := r.batches[0]
	if len(b.Paths) != 1 || len(b.Paths[0].Vertices) != 8 {
		t.Fatalf("batch = %+v, want one path of 8 vertices", b)
	}
	if b.Fringe != 0 {
		t.Errorf("Fringe = %v, want 0 with anti-aliasing off", b.Fringe)
	}
	if b.StrokeWidth != 2 {
		t.Errorf("StrokeWidth = %v, want 2", b.StrokeWidth)
	}
	for i, v := range b.Paths[0].Vertices {
		if v.U != 0.5 {
			t.Errorf("vertex %d u = %v, want 0.5", i, v.U)
		}
		if math.Abs(float64(v.Y)) != 1 {
			t.Errorf("vertex %d y = %v, want ±1", i, v.Y)
		}
	}
}

func TestCanvasStateCopiedIntoStroke(t *testing.T) {
	c, r := newTestCanvas(t)
	c.SetStrokeColor(Red)
	c.SetStrokeWidth(4)
	c.BeginPath()
	c.Rect(10, 10, 50, 50)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}

	c.SetStrokeColor(Blue)
	c.SetStrokeWidth(8)

	b := r.batches[0]
	if b.Paint.InnerColor != Red {
		t.Errorf("issued paint = %+v, want red", b.Paint.InnerColor)
	}
	if b.StrokeWidth != 4 {
		t.Errorf("issued width = %v, want 4", b.StrokeWidth)
	}
	if !b.Paths[0].Closed || !b.Paths[0].Convex {
		t.Errorf("rect path closed=%v convex=%v, want both true", b.Paths[0].Closed, b.Paths[0].Convex)
	}
}

func TestCanvasThinLineAlpha(t *testing.T) {
	c, r := newTestCanvas(t)
	c.SetStrokeWidth(0.5)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 10)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}

	b := r.batches[0]
	if b.StrokeWidth != 1 {
		t.Errorf("StrokeWidth = %v, want fringe width 1", b.StrokeWidth)
	}
	if b.Paint.InnerColor.A != 0.25 {
		t.Errorf("alpha = %v, want 0.25", b.Paint.InnerColor.A)
	}
}

func TestCanvasWidthScalesWithTransform(t *testing.T) {
	c, r := newTestCanvas(t)
	c.Scale(3, 3)
	c.SetStrokeWidth(2)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}

	b := r.batches[0]
	if !approx(b.StrokeWidth, 6) {
		t.Errorf("StrokeWidth = %v, want 6", b.StrokeWidth)
	}
	if !approx(b.Bounds[2], 30) {
		t.Errorf("Bounds = %v, want path transformed at record time", b.Bounds)
	}

	c.SetStrokeWidth(1000)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}
	if got := r.batches[1].StrokeWidth; got != maxStrokeWidth {
		t.Errorf("StrokeWidth = %v, want clamp at %v", got, maxStrokeWidth)
	}
}

func TestCanvasGlobalAlpha(t *testing.T) {
	c, r := newTestCanvas(t)
	c.SetGlobalAlpha(0.5)
	c.SetStrokeWidth(3)
	c.BeginPath()
	c.Circle(50, 50, 20)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}
	if a := r.batches[0].Paint.InnerColor.A; a != 0.5 {
		t.Errorf("alpha = %v, want 0.5", a)
	}

	c.SetGlobalAlpha(7)
	if c.State().Alpha != 1 {
		t.Errorf("Alpha = %v, want clamped to 1", c.State().Alpha)
	}
}

func TestCanvasSaveRestore(t *testing.T) {
	c, _ := newTestCanvas(t)

	c.SetStrokeWidth(3)
	c.Save()
	c.SetStrokeWidth(7)
	c.Translate(5, 5)
	c.Restore()

	st := c.State()
	if st.Stroke.Width != 3 {
		t.Errorf("Width after Restore = %v, want 3", st.Stroke.Width)
	}
	if !st.Xform.IsIdentity() {
		t.Errorf("Xform after Restore = %v, want identity", st.Xform)
	}

	// Extra restores never pop the bottom state.
	c.Restore()
	c.Restore()
	if c.State().Stroke.Width != 3 {
		t.Error("Restore on the bottom state changed it")
	}

	for range maxStates + 5 {
		c.Save()
	}
	if len(c.states) != maxStates {
		t.Errorf("state depth = %d, want %d", len(c.states), maxStates)
	}
}

func TestCanvasReset(t *testing.T) {
	c, _ := newTestCanvas(t, WithAntiAlias(false))
	c.SetStrokeWidth(9)
	c.SetLineJoin(LineJoinRound)
	c.Scissor(0, 0, 10, 10)
	c.Reset()

	st := c.State()
	if st.Stroke != DefaultStroke() {
		t.Errorf("Stroke after Reset = %+v, want defaults", st.Stroke)
	}
	if st.Scissor.Enabled() {
		t.Error("Reset should disable the scissor")
	}
	if st.AntiAlias {
		t.Error("Reset should restore the configured anti-alias setting")
	}
}

func TestCanvasNegativeWidth(t *testing.T) {
	c, r := newTestCanvas(t)
	c.SetStrokeWidth(-5)
	if c.State().Stroke.Width != 0 {
		t.Errorf("Width = %v, want 0", c.State().Stroke.Width)
	}
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(5, 0)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}
	if got := r.batches[0].Paint.InnerColor.A; got != 0 {
		t.Errorf("alpha of zero-width stroke = %v, want 0", got)
	}
}

func TestCanvasQuadTo(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.QuadTo(30, 30, 60, 0)

	cmds := c.Commands()
	if len(cmds) != 2 {
		t.Fatalf("len(Commands()) = %d, want 2", len(cmds))
	}
	bz, ok := cmds[1].(BezierTo)
	if !ok {
		t.Fatalf("QuadTo recorded %T, want BezierTo", cmds[1])
	}
	if !approx(bz.C1X, 20) || !approx(bz.C1Y, 20) || !approx(bz.C2X, 40) || !approx(bz.C2Y, 20) {
		t.Errorf("QuadTo control points = (%v,%v) (%v,%v), want (20,20) (40,20)", bz.C1X, bz.C1Y, bz.C2X, bz.C2Y)
	}
}

func TestCanvasQuadToAfterClose(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(90, 0)
	c.LineTo(90, 90)
	c.ClosePath()
	c.QuadTo(30, 30, 60, 0)

	cmds := c.Commands()
	bz, ok := cmds[len(cmds)-1].(BezierTo)
	if !ok {
		t.Fatalf("QuadTo recorded %T, want BezierTo", cmds[len(cmds)-1])
	}
	if !approx(bz.C1X, 20) || !approx(bz.C1Y, 20) {
		t.Errorf("first control point = (%v,%v), want (20,20) from the sub-path start", bz.C1X, bz.C1Y)
	}
}

func TestCanvasShapes(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.BeginPath()
	c.Rect(0, 0, 10, 20)
	c.Ellipse(50, 50, 10, 5)

	b := c.Tessellate()
	if len(b.Paths) != 2 {
		t.Fatalf("len(Paths) = %d, want 2", len(b.Paths))
	}
	for i, p := range b.Paths {
		if !p.Closed {
			t.Errorf("shape %d should be closed", i)
		}
	}
	if b.Bounds != [4]float32{0, 0, 60, 55} {
		t.Errorf("Bounds = %v, want [0 0 60 55]", b.Bounds)
	}
}

func TestCanvasBeginPathClears(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.MoveTo(0, 0)
	c.LineTo(1, 1)
	c.BeginPath()

	if n := len(c.Commands()); n != 0 {
		t.Errorf("len(Commands()) = %d after BeginPath, want 0", n)
	}
	if b := c.Tessellate(); len(b.Paths) != 0 || b.VertexCount() != 0 {
		t.Errorf("empty path produced %d paths", len(b.Paths))
	}
}

func TestCanvasSkipsDegenerateSubPaths(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.BeginPath()
	c.MoveTo(5, 5)
	c.MoveTo(0, 0)
	c.LineTo(10, 0)

	if b := c.Tessellate(); len(b.Paths) != 1 {
		t.Errorf("len(Paths) = %d, want the single point sub-path skipped", len(b.Paths))
	}
}

func TestCanvasRendererError(t *testing.T) {
	c, r := newTestCanvas(t)
	sentinel := errors.New("device lost")
	r.err = sentinel

	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(1, 0)
	if err := c.Stroke(); !errors.Is(err, sentinel) {
		t.Errorf("Stroke() error = %v, want wrapped renderer error", err)
	}
}

func TestCanvasNoRenderer(t *testing.T) {
	c, err := NewCanvas()
	if err != nil {
		t.Fatal(err)
	}
	c.MoveTo(0, 0)
	c.LineTo(1, 0)
	if err := c.Stroke(); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("Stroke() error = %v, want ErrNoRenderer", err)
	}
}

func TestCanvasScissor(t *testing.T) {
	c, r := newTestCanvas(t)
	c.Translate(100, 0)
	c.Scissor(0, 0, 20, 10)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(5, 5)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}

	s := r.batches[0].Scissor
	if s.Extent != [2]float32{10, 5} {
		t.Errorf("Extent = %v, want [10 5]", s.Extent)
	}
	if !s.Contains(110, 5) || s.Contains(90, 5) {
		t.Error("scissor should follow the transform active when it was set")
	}

	c.ResetScissor()
	if c.State().Scissor.Enabled() {
		t.Error("ResetScissor should disable the scissor")
	}
}

func TestCanvasReusesVertexBuffer(t *testing.T) {
	c, _ := newTestCanvas(t)
	c.SetStrokeWidth(4)
	c.SetLineJoin(LineJoinRound)

	draw := func() *StrokeBatch {
		c.BeginPath()
		c.Circle(50, 50, 30)
		return c.Tessellate()
	}

	first := &draw().Paths[0].Vertices[0]
	second := &draw().Paths[0].Vertices[0]
	if first != second {
		t.Error("redrawing the same path reallocated the vertex buffer")
	}
}
