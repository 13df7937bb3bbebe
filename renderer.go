package rdraw

// Renderer rasterizes stroke geometry produced by a [Canvas].
//
// The tessellation core depends on nothing but this interface. A renderer
// must copy or upload the batch before returning: the vertex slices borrow
// the canvas cache and are overwritten by the next mutating canvas call.
type Renderer interface {
	// RenderStroke draws every sub-path of the batch as a triangle strip,
	// fading coverage out towards u = 0 and u = 1.
	RenderStroke(batch *StrokeBatch) error
}

// StrokePath is the strip of one sub-path.
type StrokePath struct {
	Vertices []Vertex
	Closed   bool
	Convex   bool
}

// StrokeBatch is the geometry and paint state of one stroke operation.
type StrokeBatch struct {
	Paint   Paint
	Scissor Scissor

	// Fringe is the anti-aliasing fringe width, zero when disabled.
	Fringe float32
	// StrokeWidth is the device-space stroke width after scaling and clamping.
	StrokeWidth float32
	// Bounds of the flattened path as minX, minY, maxX, maxY.
	Bounds [4]float32

	Paths []StrokePath
}

// VertexCount returns the total number of vertices in the batch.
func (b *StrokeBatch) VertexCount() int {
	n := 0
	for i := range b.Paths {
		n += len(b.Paths[i].Vertices)
	}
	return n
}

// StrokeMult returns the coverage multiplier renderers apply to the
// cross-stroke distance: (width/2 + fringe/2) / fringe.
func (b *StrokeBatch) StrokeMult() float32 {
	if b.Fringe <= 0 {
		return 1
	}
	return (b.StrokeWidth*0.5 + b.Fringe*0.5) / b.Fringe
}
