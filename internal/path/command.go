package path

// Winding is the requested orientation of a closed sub-path.
type Winding uint8

const (
	// WindingCCW orients a sub-path counter-clockwise (solid shapes).
	WindingCCW Winding = iota
	// WindingCW orients a sub-path clockwise (holes).
	WindingCW
)

// String returns the name of the winding.
func (w Winding) String() string {
	switch w {
	case WindingCCW:
		return "CCW"
	case WindingCW:
		return "CW"
	default:
		return "Unknown"
	}
}

// Command is one recorded path-construction step.
// Commands are immutable values; a recorded sequence is replaced wholesale.
type Command interface {
	isCommand()
}

// MoveTo starts a new sub-path at (X, Y).
type MoveTo struct{ X, Y float32 }

func (MoveTo) isCommand() {}

// LineTo appends a straight segment ending at (X, Y).
type LineTo struct{ X, Y float32 }

func (LineTo) isCommand() {}

// BezierTo appends a cubic Bézier segment with control points C1 and C2.
type BezierTo struct {
	C1X, C1Y float32
	C2X, C2Y float32
	X, Y     float32
}

func (BezierTo) isCommand() {}

// Close marks the current sub-path closed.
type Close struct{}

func (Close) isCommand() {}

// SetWinding requests an orientation for the current sub-path.
type SetWinding struct{ Winding Winding }

func (SetWinding) isCommand() {}
