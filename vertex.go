package tautrope

import "math"

// vertexPhase collapses pivots stacked around a vertex into one, then moves every pivot
// left on a vertex onto the adjacent edge the rope bends toward.
func (r *Rope) vertexPhase() {
	r.mergeVertexFans()
	r.slideOffVertices()
}

// inVertexFan reports whether point j lies on vertex v of shape si, or on an edge meeting it
func (r *Rope) inVertexFan(j, si, v int) bool {
	if j <= 0 || j >= len(r.points)-1 {
		return false
	}
	a := r.points[j].Attachment
	sj, e, ok := a.Edge()
	if !ok || sj != si {
		return false
	}
	if w, ok := a.Vertex(); ok {
		return w == v
	}
	return r.shapes[si].VertexHasEdge(v, e)
}

func (r *Rope) mergeVertexFans() {
	for i := 1; i < len(r.points)-1; i++ {
		v, ok := r.points[i].Attachment.Vertex()
		if !ok {
			continue
		}
		si, _, _ := r.points[i].Attachment.Edge()

		lo, hi := i, i
		for r.inVertexFan(lo-1, si, v) {
			lo--
		}
		for r.inVertexFan(hi+1, si, v) {
			hi++
		}
		if lo == hi {
			continue
		}

		// Points after the seed first, they do not shift it
		for j := hi; j > i; j-- {
			r.sweepRemove(j)
		}
		before := len(r.points)
		for j := i - 1; j >= lo; j-- {
			r.sweepRemove(j)
		}
		i += len(r.points) - before
	}
}

func (r *Rope) slideOffVertices() {
	small := r.Config.SmallNumber

	for i := 1; i < len(r.points)-1; i++ {
		p := &r.points[i]
		v, ok := p.Attachment.Vertex()
		if !ok {
			continue
		}
		si, e, _ := p.Attachment.Edge()
		s := r.shapes[si]
		if s.IsCornerVertex(v) {
			continue
		}

		vertex := s.Vertices[v]
		fromEdge := vertex.Sub(s.Vertices[s.OtherVertex(e, v)]).Normalize()

		// Normal of the plane the rope bends in at this point
		prev, next := r.points[i-1].Location, r.points[i+1].Location
		ropeUp := prev.Sub(p.Location).Cross(next.Sub(p.Location))

		sliding := fromEdge
		if ropeUp.Len() > small {
			ropeUp = ropeUp.Normalize()
			if side := fromEdge.Dot(ropeUp); math.Abs(side) > small {
				sliding = ropeUp.Mul(math.Copysign(1, side))
			}
		}

		best, bestProjection := -1, 0.0
		for _, candidate := range s.VertexEdges[v] {
			direction := s.Vertices[s.OtherVertex(candidate, v)].Sub(vertex).Normalize()
			if projection := direction.Dot(sliding); projection > bestProjection {
				best, bestProjection = candidate, projection
			}
		}
		if best < 0 {
			continue
		}

		p.Attachment = EdgeAttachment(si, best)
		r.stats.slid++
		r.Events.emit(VertexSlideEvent{Rope: r, Shape: si, Vertex: v, Edge: best})
	}
}
