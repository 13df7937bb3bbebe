// Package raster draws stroke batches into an *image.RGBA on the CPU.
//
// Each stroke is rasterized twice: golang.org/x/image/vector computes the
// area coverage of its triangle strips, and the interpolated (u, v) vertex
// attributes shade each pixel centre with the same fringe falloff a GPU
// fragment shader would use. The product is composited source-over with the
// paint's inner color.
//
// Usage:
//
//	r := raster.NewRenderer(512, 512)
//	r.Clear(rdraw.White)
//	c, _ := rdraw.NewCanvas(rdraw.WithRenderer(r))
//	// ... build a path and call c.Stroke()
//	_ = r.SavePNG("out.png")
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/rdraw"
)

// ErrInvalidVertex is returned for vertices with NaN or infinite coordinates.
var ErrInvalidVertex = errors.New("raster: vertex is not finite")

// insideEps widens the point-in-triangle test so pixel centres on a shared
// edge are shaded by at least one triangle.
const insideEps = 1e-4

// Renderer implements [rdraw.Renderer] on an *image.RGBA.
type Renderer struct {
	img *image.RGBA
	ras *vector.Rasterizer

	// scratch reused between strokes
	coverage []uint8
	shade    []float32

	logger atomic.Pointer[slog.Logger]
}

// NewRenderer creates a renderer with a transparent width x height image.
func NewRenderer(width, height int) *Renderer {
	return NewRendererFor(image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))))
}

// NewRendererFor creates a renderer that draws into img.
func NewRendererFor(img *image.RGBA) *Renderer {
	r := &Renderer{
		img: img,
		ras: vector.NewRasterizer(0, 0),
	}
	r.logger.Store(rdraw.Logger())
	return r
}

// SetLogger sets the logger. It is called by rdraw.NewCanvas.
func (r *Renderer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = rdraw.Logger()
	}
	r.logger.Store(l)
}

// Image returns the target image.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Clear fills the whole image with c.
func (r *Renderer) Clear(c rdraw.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// SavePNG saves the image to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, r.img)
}

// RenderStroke draws every strip of the batch. Coverage is merged across
// strips so overlapping sub-paths of one stroke blend only once.
func (r *Renderer) RenderStroke(b *rdraw.StrokeBatch) error {
	if b == nil {
		return nil
	}
	var rect image.Rectangle
	for i := range b.Paths {
		verts := b.Paths[i].Vertices
		if err := checkVertices(verts); err != nil {
			return fmt.Errorf("raster: path %d: %w", i, err)
		}
		if len(verts) >= 3 {
			rect = rect.Union(stripBounds(verts))
		}
	}
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return nil
	}

	mask := r.coverageMask(b, rect)
	src := image.NewUniform(b.Paint.InnerColor.NRGBA())
	draw.DrawMask(r.img, rect, src, image.Point{}, mask, image.Point{}, draw.Over)

	r.logger.Load().Debug("raster: stroke drawn",
		"paths", len(b.Paths),
		"vertices", b.VertexCount(),
		"rect", rect)
	return nil
}

// coverageMask returns the alpha mask of the batch over rect, with the
// fringe falloff and the scissor applied.
func (r *Renderer) coverageMask(b *rdraw.StrokeBatch, rect image.Rectangle) *image.Alpha {
	w, h := rect.Dx(), rect.Dy()
	n := w * h
	if cap(r.coverage) < n {
		r.coverage = make([]uint8, n)
		r.shade = make([]float32, n)
	}
	r.coverage = r.coverage[:n]
	r.shade = r.shade[:n]
	clear(r.shade)

	mask := &image.Alpha{Pix: r.coverage, Stride: w, Rect: image.Rect(0, 0, w, h)}
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)

	// Area coverage of the union of all triangles. Every triangle is fed
	// with the same orientation so overlaps add up instead of cancelling.
	r.ras.Reset(w, h)
	r.ras.DrawOp = draw.Src
	for i := range b.Paths {
		verts := b.Paths[i].Vertices
		for t := 0; t+2 < len(verts); t++ {
			v0, v1, v2 := orient(verts[t], verts[t+1], verts[t+2])
			r.ras.MoveTo(v0.X-ox, v0.Y-oy)
			r.ras.LineTo(v1.X-ox, v1.Y-oy)
			r.ras.LineTo(v2.X-ox, v2.Y-oy)
			r.ras.ClosePath()
		}
	}
	r.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	antiAlias := b.Fringe > 0
	if antiAlias {
		mult := b.StrokeMult()
		for i := range b.Paths {
			verts := b.Paths[i].Vertices
			for t := 0; t+2 < len(verts); t++ {
				r.shadeTriangle(verts[t], verts[t+1], verts[t+2], rect, mult)
			}
		}
	}

	scissor := b.Scissor.Enabled()
	for y := range h {
		for x := range w {
			i := y*w + x
			if r.coverage[i] == 0 {
				continue
			}
			if scissor && !b.Scissor.Contains(ox+float32(x)+0.5, oy+float32(y)+0.5) {
				r.coverage[i] = 0
				continue
			}
			if antiAlias {
				r.coverage[i] = uint8(float32(r.coverage[i])*r.shade[i] + 0.5)
			}
		}
	}
	return mask
}

// shadeTriangle evaluates the fringe mask at every pixel centre inside the
// triangle and keeps the largest value per pixel.
func (r *Renderer) shadeTriangle(a, b, c rdraw.Vertex, rect image.Rectangle, mult float32) {
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if abs32(area) < 1e-9 {
		return
	}
	inv := 1 / area

	tri := image.Rect(
		int(floor32(min(a.X, b.X, c.X))), int(floor32(min(a.Y, b.Y, c.Y))),
		int(ceil32(max(a.X, b.X, c.X)))+1, int(ceil32(max(a.Y, b.Y, c.Y)))+1,
	).Intersect(rect)
	w := rect.Dx()

	for py := tri.Min.Y; py < tri.Max.Y; py++ {
		cy := float32(py) + 0.5
		for px := tri.Min.X; px < tri.Max.X; px++ {
			cx := float32(px) + 0.5
			l0 := ((b.X-cx)*(c.Y-cy) - (c.X-cx)*(b.Y-cy)) * inv
			l1 := ((c.X-cx)*(a.Y-cy) - (a.X-cx)*(c.Y-cy)) * inv
			l2 := 1 - l0 - l1
			if l0 < -insideEps || l1 < -insideEps || l2 < -insideEps {
				continue
			}
			u := l0*a.U + l1*b.U + l2*c.U
			v := l0*a.V + l1*b.V + l2*c.V
			s := StrokeMask(u, v, mult)
			i := (py-rect.Min.Y)*w + (px - rect.Min.X)
			if s > r.shade[i] {
				r.shade[i] = s
			}
		}
	}
}

// StrokeMask is the coverage of a fragment with interpolated (u, v):
// min(1, (1-|2u-1|)*mult) * min(1, v).
func StrokeMask(u, v, mult float32) float32 {
	across := min(1, (1-abs32(2*u-1))*mult)
	along := min(1, v)
	return max(0, across*along)
}

// orient returns the triangle with a positive signed area.
func orient(a, b, c rdraw.Vertex) (rdraw.Vertex, rdraw.Vertex, rdraw.Vertex) {
	if (b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y) < 0 {
		return a, c, b
	}
	return a, b, c
}

func stripBounds(verts []rdraw.Vertex) image.Rectangle {
	if len(verts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := verts[0].X, verts[0].Y
	maxX, maxY := minX, minY
	for _, v := range verts[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	return image.Rect(int(floor32(minX)), int(floor32(minY)), int(ceil32(maxX)), int(ceil32(maxY)))
}

func checkVertices(verts []rdraw.Vertex) error {
	for i, v := range verts {
		if !finite(v.X) || !finite(v.Y) {
			return fmt.Errorf("%w: index %d (%v, %v)", ErrInvalidVertex, i, v.X, v.Y)
		}
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }
