package tautrope

import (
	"github.com/akmonengine/tautrope/shape"
	"github.com/akmonengine/tautrope/sweep"
)

// DebugSink receives informational primitives while a rope updates.
// Which methods are called is selected by Config.Debug. Implementations shared between
// ropes updated in parallel must be safe for concurrent use.
type DebugSink interface {
	// Rope receives the final polyline of the tick
	Rope(points []Point)
	// TouchedEdge receives every edge a pivot rests on at the end of the tick
	TouchedEdge(s *shape.Shape, edge int)
	Shapes(shapes []*shape.Shape)
	// SegmentSweep receives every collision sweep, hit being nil when nothing was found
	SegmentSweep(triangle sweep.Triangle, hit *sweep.Hit)
	// RemoveSweep receives every sweep run before removing a pivot
	RemoveSweep(triangle sweep.Triangle, hit *sweep.Hit)
}

func (r *Rope) debugSegmentSweep(tri sweep.Triangle, hit sweep.Hit, ok bool) {
	if r.Debug == nil || !r.Config.Debug.Sweeps {
		return
	}
	if ok {
		r.Debug.SegmentSweep(tri, &hit)
	} else {
		r.Debug.SegmentSweep(tri, nil)
	}
}

func (r *Rope) debugRemoveSweep(tri sweep.Triangle, hit sweep.Hit, ok bool) {
	if r.Debug == nil || !r.Config.Debug.RemoveSweeps {
		return
	}
	if ok {
		r.Debug.RemoveSweep(tri, &hit)
	} else {
		r.Debug.RemoveSweep(tri, nil)
	}
}

// debugTick forwards the end of tick state
func (r *Rope) debugTick() {
	if r.Debug == nil {
		return
	}
	flags := r.Config.Debug
	if flags.Shapes {
		r.Debug.Shapes(r.shapes)
	}
	if flags.TouchedEdges {
		for _, p := range r.points {
			if si, e, ok := p.Attachment.Edge(); ok {
				r.Debug.TouchedEdge(r.shapes[si], e)
			}
		}
	}
	if flags.Rope {
		r.Debug.Rope(r.RopePoints())
	}
}
