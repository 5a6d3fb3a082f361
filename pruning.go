package tautrope

import (
	"math"

	"github.com/akmonengine/tautrope/sweep"
)

// pruningPhase releases the pivots the rope no longer needs, pass after pass until a pass
// finds nothing to release. Returns whether anything was removed or relocated.
func (r *Rope) pruningPhase() bool {
	changed := false
	for pass := 0; pass < r.Config.MaxPruningPasses; pass++ {
		marked := r.markRemovable()
		if len(marked) == 0 {
			return changed
		}
		for k := len(marked) - 1; k >= 0; k-- {
			r.sweepRemove(marked[k])
		}
		changed = true
	}
	return changed
}

// markRemovable lists, in ascending order, the pivots the rope can do without
func (r *Rope) markRemovable() []int {
	var marked []int
	for i := 1; i < len(r.points)-1; i++ {
		if r.removable(i) {
			marked = append(marked, i)
		}
	}
	return marked
}

func (r *Rope) removable(i int) bool {
	p := r.points[i]
	prev, next := r.points[i-1], r.points[i+1]
	tolerance := r.Config.DistanceTolerance

	si, e, ok := p.Attachment.Edge()
	if !ok {
		// Interior points always rest on something
		return true
	}

	if v, ok := p.Attachment.Vertex(); ok {
		if !r.shapes[si].IsCornerVertex(v) {
			// Left over after the vertex phase
			return true
		}
		if p.Location.Sub(prev.Location).Len() < tolerance || p.Location.Sub(next.Location).Len() < tolerance {
			return true
		}
	}

	if prev.Attachment.SameEdge(p.Attachment) {
		return true
	}

	return !r.wraps(i, si, e)
}

// wraps reports whether the rope through point i still bends around edge e.
// Degenerate geometry keeps the pivot.
func (r *Rope) wraps(i, si, e int) bool {
	s := r.shapes[si]
	o := s.Orientations[e]
	origin, _ := s.EdgeVertices(e)
	length := s.EdgeLength(e)
	tolerance := r.Config.DistanceTolerance

	a := r.points[i-1].Location
	b := r.points[i].Location
	c := r.points[i+1].Location

	down := o.Down()
	normal := o.Forward.Cross(down).Normalize()

	distA := a.Sub(b).Dot(normal)
	distC := c.Sub(b).Dot(normal)
	if distA*distC > tolerance {
		// Both neighbours on the same side of the edge
		return false
	}

	denominator := normal.Dot(c.Sub(a))
	if math.Abs(denominator) < tolerance {
		return true
	}

	t := -distA / denominator
	if t < -tolerance || t > 1+tolerance {
		return false
	}

	crossing := a.Add(c.Sub(a).Mul(t))
	along := crossing.Sub(origin).Dot(o.Forward)
	if along < -tolerance || along > length+tolerance {
		// The straight rope slips past an end of the edge
		return false
	}

	return crossing.Sub(b).Dot(down) > -tolerance
}

// sweepRemove removes pivot i without letting the rope cut through an obstacle.
// The pivot is swept toward its predecessor around its successor; the first edge met
// replaces it, further edges are inserted before it, and it is only deleted outright when
// the sweep is clear. Returns whether the point was deleted.
func (r *Rope) sweepRemove(i int) bool {
	small := r.Config.SmallNumber
	exclude := r.exclusions(i-1, i, i+1)

	tri := sweep.Triangle{
		From:    r.points[i].Location,
		To:      r.points[i-1].Location,
		Support: r.points[i+1].Location,
	}

	hits := 0
	for iteration := 0; ; iteration++ {
		if iteration == r.Config.MaxRemoveSweepIterations {
			r.iterationCap("remove", iteration)
			break
		}

		hit, ok := sweep.First(tri, r.shapes, exclude, small)
		r.debugRemoveSweep(tri, hit, ok)
		if !ok {
			break
		}

		p := hitPoint(hit)
		if hits == 0 {
			from := r.points[i].Location
			r.points[i] = p
			r.stats.relocated++
			r.Events.emit(PivotRelocatedEvent{Rope: r, From: from, To: p})
		} else {
			r.insertPoint(i, p)
		}
		hits++
		exclude.Add(hit.Shape, hit.Edge)

		tri = sweep.Triangle{
			From:    tri.At(hit.Ratio),
			To:      r.points[i-1].Location,
			Support: r.points[i].Location,
		}
	}

	if hits == 0 {
		r.deletePoint(i)
		return true
	}
	return false
}
