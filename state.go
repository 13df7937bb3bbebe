package rdraw

// maxStates is the depth of the Save/Restore stack.
const maxStates = 32

// State is the per-draw style state of a canvas. It is copied by value into
// each stroke, so later changes never affect an issued draw.
type State struct {
	Stroke    Stroke
	Paint     Paint
	AntiAlias bool
	Scissor   Scissor
	Xform     Transform
	Alpha     float32
}

func defaultState(cfg Config) State {
	return State{
		Stroke:    DefaultStroke().WithWidth(cfg.LineWidth).WithMiterLimit(cfg.MiterLimit),
		Paint:     SolidPaint(Black),
		AntiAlias: cfg.AntiAlias,
		Scissor:   NoScissor(),
		Xform:     Identity(),
		Alpha:     1,
	}
}

// State returns a copy of the current state.
func (c *Canvas) State() State {
	return *c.state()
}

func (c *Canvas) state() *State {
	return &c.states[len(c.states)-1]
}

// Save pushes a copy of the current state. Pushes beyond 32 levels are ignored.
func (c *Canvas) Save() {
	if len(c.states) >= maxStates {
		return
	}
	c.states = append(c.states, *c.state())
}

// Restore pops the state pushed by the matching Save.
// The bottom state is never popped.
func (c *Canvas) Restore() {
	if len(c.states) <= 1 {
		return
	}
	c.states = c.states[:len(c.states)-1]
}

// Reset sets the current state back to the configured defaults.
func (c *Canvas) Reset() {
	*c.state() = defaultState(c.cfg)
}

// SetStrokeWidth sets the stroke width. Negative widths are clamped to zero.
func (c *Canvas) SetStrokeWidth(w float32) {
	s := c.state()
	s.Stroke = s.Stroke.WithWidth(w)
}

// SetLineCap sets the cap of open sub-paths.
func (c *Canvas) SetLineCap(lineCap LineCap) {
	s := c.state()
	s.Stroke = s.Stroke.WithCap(lineCap)
}

// SetLineJoin sets the corner style.
func (c *Canvas) SetLineJoin(join LineJoin) {
	s := c.state()
	s.Stroke = s.Stroke.WithJoin(join)
}

// SetMiterLimit sets the miter limit.
func (c *Canvas) SetMiterLimit(limit float32) {
	s := c.state()
	s.Stroke = s.Stroke.WithMiterLimit(limit)
}

// SetStroke replaces all geometric stroke parameters at once.
func (c *Canvas) SetStroke(st Stroke) {
	c.state().Stroke = st.WithWidth(st.Width)
}

// SetStrokeColor strokes with a solid color.
func (c *Canvas) SetStrokeColor(col Color) {
	c.state().Paint = SolidPaint(col)
}

// SetStrokePaint strokes with p. The paint transform is combined with the
// current transform.
func (c *Canvas) SetStrokePaint(p Paint) {
	s := c.state()
	p.Xform = s.Xform.Multiply(p.Xform)
	s.Paint = p
}

// SetAntiAlias enables or disables the fringe for subsequent strokes.
func (c *Canvas) SetAntiAlias(enabled bool) {
	c.state().AntiAlias = enabled
}

// SetGlobalAlpha sets the alpha applied to every stroke, clamped to [0, 1].
func (c *Canvas) SetGlobalAlpha(alpha float32) {
	c.state().Alpha = min(max(alpha, 0), 1)
}

// Translate moves the origin of the current transform.
func (c *Canvas) Translate(x, y float32) {
	s := c.state()
	s.Xform = s.Xform.Multiply(Translate(x, y))
}

// Scale scales the current transform.
func (c *Canvas) Scale(sx, sy float32) {
	s := c.state()
	s.Xform = s.Xform.Multiply(Scale(sx, sy))
}

// Rotate rotates the current transform by angle radians.
func (c *Canvas) Rotate(angle float32) {
	s := c.state()
	s.Xform = s.Xform.Multiply(Rotate(angle))
}

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(t Transform) {
	c.state().Xform = t
}

// ResetTransform restores the identity transform.
func (c *Canvas) ResetTransform() {
	c.state().Xform = Identity()
}

// Scissor clips subsequent strokes to the rectangle (x, y, w, h) in the
// current coordinate system.
func (c *Canvas) Scissor(x, y, w, h float32) {
	s := c.state()
	w = max(0, w)
	h = max(0, h)
	s.Scissor = Scissor{
		Xform:  s.Xform.Multiply(Translate(x+w*0.5, y+h*0.5)),
		Extent: [2]float32{w * 0.5, h * 0.5},
	}
}

// ResetScissor disables clipping.
func (c *Canvas) ResetScissor() {
	c.state().Scissor = NoScissor()
}
