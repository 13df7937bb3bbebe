package rdraw

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Tessellation only, no renderer attached
//	c, err := rdraw.NewCanvas()
//
//	// CPU rendering at 2x device pixel ratio
//	r := raster.NewRenderer(800, 600)
//	c, err := rdraw.NewCanvas(rdraw.WithRenderer(r), rdraw.WithPixelsPerPoint(2))
type CanvasOption func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	renderer Renderer
	config   Config
}

func defaultOptions() canvasOptions {
	return canvasOptions{
		config: DefaultConfig(),
	}
}

// WithRenderer sets the renderer that receives stroke batches.
func WithRenderer(r Renderer) CanvasOption {
	return func(o *canvasOptions) {
		o.renderer = r
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) CanvasOption {
	return func(o *canvasOptions) {
		o.config = cfg
	}
}

// WithPixelsPerPoint sets the device pixel ratio.
func WithPixelsPerPoint(ratio float32) CanvasOption {
	return func(o *canvasOptions) {
		o.config.PixelsPerPoint = ratio
	}
}

// WithAntiAlias enables or disables the anti-aliasing fringe.
func WithAntiAlias(enabled bool) CanvasOption {
	return func(o *canvasOptions) {
		o.config.AntiAlias = enabled
	}
}
