package rdraw

import "github.com/gogpu/rdraw/internal/stroke"

// LineCap specifies the shape of open sub-path endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half circle.
	LineCapRound
	// LineCapSquare extends the stroke by half its width past the endpoint.
	LineCapSquare
)

// String returns the name of the cap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return "Unknown"
	}
}

// LineJoin specifies the shape of corners.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp join, beveled beyond the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// String returns the name of the join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return "Unknown"
	}
}

// Stroke holds the geometric stroke parameters.
type Stroke struct {
	// Width is the line width in canvas units. Default: 1
	Width float32

	// Cap is the shape of open endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of corners. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the miter length ratio at which miters become bevels.
	// Default: 10
	MiterLimit float32
}

// DefaultStroke returns a 1-unit butt/miter stroke with miter limit 10.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
// Negative widths are clamped to zero.
func (s Stroke) WithWidth(w float32) Stroke {
	s.Width = max(0, w)
	return s
}

// WithCap returns a copy of the Stroke with the given cap.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given join.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the Stroke with the given miter limit.
func (s Stroke) WithMiterLimit(limit float32) Stroke {
	s.MiterLimit = limit
	return s
}

// style converts to the expander's style with the given device width.
func (s Stroke) style(width float32) stroke.Style {
	st := stroke.Style{
		Width:      width,
		MiterLimit: s.MiterLimit,
	}
	switch s.Cap {
	case LineCapRound:
		st.Cap = stroke.LineCapRound
	case LineCapSquare:
		st.Cap = stroke.LineCapSquare
	default:
		st.Cap = stroke.LineCapButt
	}
	switch s.Join {
	case LineJoinRound:
		st.Join = stroke.LineJoinRound
	case LineJoinBevel:
		st.Join = stroke.LineJoinBevel
	default:
		st.Join = stroke.LineJoinMiter
	}
	return st
}
