package rdraw

// Paint describes how a stroke is colored. Only solid colors are drawn;
// the gradient parameters are passed to the renderer unchanged.
type Paint struct {
	// Xform maps paint space to canvas space.
	Xform Transform

	Extent  [2]float32
	Radius  float32
	Feather float32

	InnerColor Color
	OuterColor Color
}

// SolidPaint returns a paint that fills with a single color.
func SolidPaint(c Color) Paint {
	return Paint{
		Xform:      Identity(),
		Feather:    1,
		InnerColor: c,
		OuterColor: c,
	}
}

// scaleAlpha multiplies both colors' alpha by a.
func (p *Paint) scaleAlpha(a float32) {
	p.InnerColor.A *= a
	p.OuterColor.A *= a
}

// Scissor is a transformed clip rectangle. A negative extent disables it.
type Scissor struct {
	// Xform maps scissor space, centred on the rectangle, to canvas space.
	Xform Transform
	// Extent is the half size of the rectangle.
	Extent [2]float32
}

// NoScissor returns a disabled scissor.
func NoScissor() Scissor {
	return Scissor{Xform: Identity(), Extent: [2]float32{-1, -1}}
}

// Enabled reports whether the scissor clips anything.
func (s Scissor) Enabled() bool {
	return s.Extent[0] >= 0 && s.Extent[1] >= 0
}

// Contains reports whether the canvas point (x, y) lies inside the scissor.
// A disabled scissor contains every point.
func (s Scissor) Contains(x, y float32) bool {
	if !s.Enabled() {
		return true
	}
	inv, ok := s.Xform.Invert()
	if !ok {
		return false
	}
	lx, ly := inv.Apply(x, y)
	return abs32(lx) <= s.Extent[0] && abs32(ly) <= s.Extent[1]
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
