// Package rdraw tessellates vector strokes into anti-aliased triangle strips.
//
// # Overview
//
// A [Canvas] records path commands (MoveTo, LineTo, BezierTo, ClosePath),
// flattens curves adaptively, computes joins and expands every sub-path into
// a triangle strip with caps, joins and a one-pixel fringe. The strips are
// handed to a [Renderer]:
//
//   - raster: CPU rendering into an *image.RGBA via golang.org/x/image/vector
//   - gpu: WebGPU rendering via gogpu/wgpu
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/rdraw"
//		"github.com/gogpu/rdraw/raster"
//	)
//
//	r := raster.NewRenderer(256, 256)
//	c, err := rdraw.NewCanvas(rdraw.WithRenderer(r))
//	if err != nil {
//		return err
//	}
//
//	c.SetStrokeWidth(4)
//	c.SetLineJoin(rdraw.LineJoinRound)
//	c.SetStrokeColor(rdraw.Hex("#2060c0"))
//	c.BeginPath()
//	c.MoveTo(20, 20)
//	c.LineTo(200, 40)
//	c.QuadTo(240, 200, 40, 220)
//	if err := c.Stroke(); err != nil {
//		return err
//	}
//	return r.SavePNG("stroke.png")
//
// # Vertex Format
//
// Each [Vertex] carries a position and (u, v). u runs across the stroke from
// 0 on the left fringe to 1 on the right, v is 0 on fringe extension vertices
// of caps and 1 elsewhere. Renderers compute coverage as
//
//	min(1, (1 - |2u - 1|) * strokeMult) * min(1, v)
//
// where strokeMult is [StrokeBatch.StrokeMult].
//
// # Coordinate System
//
// Origin at top-left, X right, Y down. Points are transformed by the current
// transform when they are recorded, so changing the transform between
// commands affects only later commands.
package rdraw
