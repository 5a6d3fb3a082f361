package tautrope

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope/epa"
	"github.com/akmonengine/tautrope/gjk"
	"github.com/akmonengine/tautrope/shape"
)

var _ gjk.Convex = (*shape.Shape)(nil)

// Penetration is a rope segment crossing the inside of a shape
type Penetration struct {
	// Segment i joins points i and i+1
	Segment int
	Shape   int
	// Distance the segment must move along -Normal to leave the shape
	Depth  float64
	Normal mgl64.Vec3
}

// Penetrations lists the segments cutting through solid geometry, with how deep they cut.
// Shapes are shrunk by the distance tolerance first, so a rope resting on an edge does not
// count, and flat shapes, having no inside, are skipped. A converged rope has none; a tick
// stopped by an iteration cap may.
func (r *Rope) Penetrations() []Penetration {
	tolerance := r.Config.DistanceTolerance
	shrunk := make([]gjk.Hull, len(r.shapes))
	solid := make([]bool, len(r.shapes))
	for si, s := range r.shapes {
		solid[si] = !s.IsFlat(tolerance)
		if solid[si] {
			shrunk[si] = gjk.NewHull(s.Vertices).Shrink(tolerance)
		}
	}

	var found []Penetration
	for i := 0; i < len(r.points)-1; i++ {
		segment := gjk.Segment{A: r.points[i].Location, B: r.points[i+1].Location}
		bounds := shape.BoundsOf(segment.A, segment.B)
		for si, s := range r.shapes {
			if !solid[si] || !s.AABB().Overlaps(bounds) {
				continue
			}
			if !gjk.Intersects(segment, shrunk[si]) {
				continue
			}
			p := Penetration{Segment: i, Shape: si}
			result, _, err := epa.Depth(segment, s)
			if err != nil {
				Logger().Warn("penetration depth unavailable", "segment", i, "shape", si, "error", err)
			}
			p.Depth, p.Normal = result.Depth, result.Normal
			found = append(found, p)
		}
	}
	return found
}
