//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rdraw"
)

// vertexStride is the byte stride per vertex in the stroke pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	uv       (vec2<f32>) = 8 bytes (location 1)
const vertexStride = 16

// uniformSize is the byte size of the Uniforms block in stroke.wgsl.
//
//	view_size     vec2  0
//	stroke_mult   f32   8
//	antialias     f32   12
//	scissor_col0  vec4  16
//	scissor_col1  vec4  32
//	scissor_col2  vec4  48
//	scissor_ext   vec2  64
//	scissor_scale vec2  72
//	color         vec4  80
const uniformSize = 96

func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// appendVertices appends the packed vertices to dst.
func appendVertices(dst []byte, verts []rdraw.Vertex) []byte {
	off := len(dst)
	dst = append(dst, make([]byte, len(verts)*vertexStride)...)
	for _, v := range verts {
		b := dst[off : off+vertexStride]
		binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.U))
		binary.LittleEndian.PutUint32(b[12:16], math.Float32bits(v.V))
		off += vertexStride
	}
	return dst
}

// strokeUniform is the per-draw shader state except the view size, which is
// only known at flush time.
type strokeUniform struct {
	strokeMult   float32
	antialias    bool
	scissorMat   [12]float32
	scissorExt   [2]float32
	scissorScale [2]float32
	color        [4]float32
}

func makeStrokeUniform(b *rdraw.StrokeBatch) strokeUniform {
	u := strokeUniform{
		strokeMult: b.StrokeMult(),
		antialias:  b.Fringe > 0,
	}
	c := b.Paint.InnerColor.Premultiply()
	u.color = [4]float32{c.R, c.G, c.B, c.A}

	s := b.Scissor
	if !s.Enabled() {
		// Zero matrix and unit extent keep every fragment.
		u.scissorExt = [2]float32{1, 1}
		u.scissorScale = [2]float32{1, 1}
		return u
	}

	fringe := b.Fringe
	if fringe <= 0 {
		fringe = 1
	}
	xf := s.Xform.Aff3()
	u.scissorScale = [2]float32{
		float32(math.Hypot(float64(xf[0]), float64(xf[1]))) / fringe,
		float32(math.Hypot(float64(xf[3]), float64(xf[4]))) / fringe,
	}
	u.scissorExt = s.Extent

	inv, ok := s.Xform.Invert()
	if !ok {
		// Everything is outside a degenerate scissor.
		u.scissorExt = [2]float32{-1, -1}
		return u
	}
	m := inv.Aff3()
	u.scissorMat = [12]float32{
		m[0], m[3], 0, 0,
		m[1], m[4], 0, 0,
		m[2], m[5], 1, 0,
	}
	return u
}

// bytes encodes the uniform block for a view of width x height pixels.
func (u *strokeUniform) bytes(width, height uint32) []byte {
	var f [uniformSize / 4]float32
	f[0] = float32(width)
	f[1] = float32(height)
	f[2] = u.strokeMult
	if u.antialias {
		f[3] = 1
	}
	copy(f[4:16], u.scissorMat[:])
	f[16], f[17] = u.scissorExt[0], u.scissorExt[1]
	f[18], f[19] = u.scissorScale[0], u.scissorScale[1]
	copy(f[20:24], u.color[:])

	b := make([]byte, uniformSize)
	for i, v := range f {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}
