package tautrope

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// movementPhase returns where every point wants to be this tick.
// Free anchors go to start and end, the end being pulled back when the rope would exceed
// maxLength. Pivots slide along their edge to the spot minimising the path through their
// neighbours, solved left to right so each pivot sees its predecessor's new target.
// Attachments are updated in place; locations are left to the collision phase.
func (r *Rope) movementPhase(start, end mgl64.Vec3, maxLength float64) []mgl64.Vec3 {
	n := len(r.points)
	targets := make([]mgl64.Vec3, n)
	for i, p := range r.points {
		targets[i] = p.Location
	}
	targets[0] = start
	targets[n-1] = r.clampEnd(start, end, maxLength)

	for i := 1; i < n-1; i++ {
		p := &r.points[i]
		si, e, ok := p.Attachment.Edge()
		if !ok {
			continue
		}
		if v, ok := p.Attachment.Vertex(); ok && !r.shapes[si].IsCornerVertex(v) {
			continue
		}
		targets[i], p.Attachment = r.solveOnEdge(si, e, targets[i-1], targets[i+1])
	}

	return targets
}

// clampEnd pulls end toward the second to last point so the rope fits in maxLength
func (r *Rope) clampEnd(start, end mgl64.Vec3, maxLength float64) mgl64.Vec3 {
	n := len(r.points)

	used := 0.0
	for i := 0; i < n-2; i++ {
		used += r.points[i+1].Location.Sub(r.points[i].Location).Len()
	}

	last := start
	if n > 2 {
		last = r.points[n-2].Location
	}

	toEnd := end.Sub(last)
	distance := toEnd.Len()
	if distance == 0 {
		return end
	}

	ratio := math.Min(1, math.Max(0, (maxLength-used)/distance))
	return last.Add(toEnd.Mul(ratio))
}

// solveOnEdge finds the point of edge e minimising |prev - x| + |x - next|.
// Landing within tolerance of a vertex that leads somewhere pins the point on that vertex,
// pushed slightly past it so the next collision sweep sees the rope leave the edge.
func (r *Rope) solveOnEdge(si, e int, prev, next mgl64.Vec3) (mgl64.Vec3, Attachment) {
	s := r.shapes[si]
	edge := s.Edges[e]
	a, b := s.EdgeVertices(e)
	o := s.Orientations[e]
	length := s.EdgeLength(e)
	tolerance := r.Config.DistanceTolerance

	alpha := prev.Sub(a).Dot(o.Forward)
	beta := next.Sub(a).Dot(o.Forward)
	rhoA := prev.Sub(a.Add(o.Forward.Mul(alpha))).Len()
	rhoB := next.Sub(a.Add(o.Forward.Mul(beta))).Len()

	var d float64
	switch {
	case rhoA < tolerance && rhoB < tolerance:
		d = (alpha + beta) / 2
	case rhoA < tolerance:
		d = alpha
	case rhoB < tolerance:
		d = beta
	default:
		// Unfolding both neighbours into one plane, the optimum splits the projections
		// in the ratio of the distances to the edge line
		ratio := rhoA / (rhoA + rhoB)
		d = (1-ratio)*alpha + ratio*beta
	}

	offset := r.Config.VertexCrossingOffset / math.Sqrt2
	if d < tolerance && !s.IsCornerVertex(edge.A) {
		target := a.Add(o.Up.Sub(o.Forward).Mul(offset))
		return target, VertexAttachment(si, e, edge.A)
	}
	if d > length-tolerance && !s.IsCornerVertex(edge.B) {
		target := b.Add(o.Up.Add(o.Forward).Mul(offset))
		return target, VertexAttachment(si, e, edge.B)
	}

	d = math.Min(length-tolerance, math.Max(tolerance, d))
	return a.Add(o.Forward.Mul(d)), EdgeAttachment(si, e)
}
