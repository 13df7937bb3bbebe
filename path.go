package rdraw

import "github.com/gogpu/rdraw/internal/path"

// Command is one recorded path-construction step:
// [MoveTo], [LineTo], [BezierTo], [Close] or [SetWinding].
type Command = path.Command

// MoveTo starts a new sub-path.
type MoveTo = path.MoveTo

// LineTo appends a straight segment.
type LineTo = path.LineTo

// BezierTo appends a cubic Bézier segment.
type BezierTo = path.BezierTo

// Close closes the current sub-path.
type Close = path.Close

// SetWinding requests an orientation for the current sub-path.
type SetWinding = path.SetWinding

// Winding is the orientation of a closed sub-path.
type Winding = path.Winding

const (
	// CCW winding is used for solid shapes.
	CCW = path.WindingCCW
	// CW winding is used for holes.
	CW = path.WindingCW

	// Solid is an alias for CCW.
	Solid = CCW
	// Hole is an alias for CW.
	Hole = CW
)

// Vertex is one triangle-strip vertex: position plus (u, v) where u runs
// across the stroke and v is 0 on fringe extension vertices.
type Vertex = path.Vertex
