// Package stroke turns flattened sub-paths into anti-aliased triangle strips.
//
// Stroking runs in two passes over a [path.Cache]:
//
//  1. [CalculateJoins] computes the miter extrusion vector of every point and
//     classifies it as a plain miter, an outer bevel or an inner bevel.
//  2. [Expander.Expand] reserves the worst-case vertex count once, then emits
//     one strip per sub-path: start cap, interior joins, end cap (or a loop
//     back to the first pair for closed sub-paths).
//
// # Vertex coordinates
//
// Every vertex carries (u, v). U is 0 on the left side of the stroke and 1
// on the right; both collapse to 0.5 when anti-aliasing is disabled. V is 0
// on the fringe extension of butt and square caps and 1 everywhere else. A
// renderer fades coverage out as u approaches 0 or 1.
//
// # Line caps
//
//   - LineCapButt: flush with the end point, fringe extends outward
//   - LineCapSquare: extended by half the width along the tangent
//   - LineCapRound: a half-circle fan with CurveDivs segments
//
// # Line joins
//
//   - LineJoinMiter: sharp corner until the miter limit, then bevel
//   - LineJoinRound: arc fan on the outer side
//   - LineJoinBevel: straight segment across the outer side
//
// # Usage
//
//	cache := path.NewCache()
//	cache.Flatten(cmds, tessTol, distTol)
//
//	e := stroke.NewExpander(stroke.Style{
//	    Width:      4,
//	    Cap:        stroke.LineCapRound,
//	    Join:       stroke.LineJoinMiter,
//	    MiterLimit: 10,
//	})
//	e.SetTolerance(tessTol)
//	e.SetFringe(fringe)
//	e.Expand(cache)
//
//	for i := range cache.Paths {
//	    strip := cache.StrokeVerts(i)
//	    ...
//	}
package stroke
