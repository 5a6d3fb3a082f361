// Package sweep detects the obstacle edges a moving rope segment passes through.
//
// A segment whose From end travels to To while its other end rests on Support covers the
// triangle (From, To, Support). Any edge crossing that triangle is an edge the rope would
// cut through during the move; the first such edge along the travel is where the rope
// catches.
package sweep

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope/shape"
)

// Triangle is the area covered by a segment moving one end from From to To.
type Triangle struct {
	From    mgl64.Vec3
	To      mgl64.Vec3
	Support mgl64.Vec3
}

// At returns the moving end after travelling ratio of the way from From to To
func (t Triangle) At(ratio float64) mgl64.Vec3 {
	return t.From.Add(t.To.Sub(t.From).Mul(ratio))
}

// Degenerate reports whether the triangle has no area to sweep
func (t Triangle) Degenerate(small float64) bool {
	return t.To.Sub(t.From).Cross(t.Support.Sub(t.From)).Len() < small
}

// Intersection is a line crossing a triangle.
// U and V are the barycentric weights of To and Support, T the parameter along the line.
type Intersection struct {
	Location mgl64.Vec3
	U, V, T  float64
}

// Ratio is how far the moving end travelled from From toward To when the segment reached
// the intersection. The segment at travel s spans At(s)..Support, so s = U / (1 - V).
func (i Intersection) Ratio(small float64) float64 {
	rest := 1 - i.V
	if rest < small {
		return 0
	}
	return math.Min(1, math.Max(0, i.U/rest))
}

// IntersectLine tests the segment a..b against the triangle using Möller–Trumbore.
// Hits on the From–Support side of the triangle (U ≈ 0) are rejected: that side is the
// segment's current position, which already rests against whatever it touches.
func IntersectLine(tri Triangle, a, b mgl64.Vec3, small float64) (Intersection, bool) {
	e1 := tri.To.Sub(tri.From)
	e2 := tri.Support.Sub(tri.From)
	dir := b.Sub(a)

	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < small {
		return Intersection{}, false
	}
	inv := 1 / det

	s := a.Sub(tri.From)
	u := s.Dot(p) * inv
	if u < small || u > 1+small {
		return Intersection{}, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < small || u+v > 1+small {
		return Intersection{}, false
	}

	t := e2.Dot(q) * inv
	if t < -small || t > 1+small {
		return Intersection{}, false
	}

	return Intersection{
		Location: a.Add(dir.Mul(t)),
		U:        u,
		V:        v,
		T:        t,
	}, true
}

// EdgeRef identifies an edge of one of the rope's shapes
type EdgeRef struct {
	Shape int
	Edge  int
}

// Hit is an edge found by a sweep
type Hit struct {
	EdgeRef
	Location mgl64.Vec3
	Ratio    float64
}

// Exclusions is the set of edges a sweep ignores.
type Exclusions map[EdgeRef]struct{}

func (x Exclusions) Add(shapeIdx, edge int) {
	x[EdgeRef{Shape: shapeIdx, Edge: edge}] = struct{}{}
}

// AddVertexFan excludes every edge meeting at vertex
func (x Exclusions) AddVertexFan(s *shape.Shape, shapeIdx, vertex int) {
	for _, e := range s.VertexEdges[vertex] {
		x.Add(shapeIdx, e)
	}
}

func (x Exclusions) Has(shapeIdx, edge int) bool {
	_, ok := x[EdgeRef{Shape: shapeIdx, Edge: edge}]
	return ok
}

// First returns the edge the moving end reaches first, scanning every edge of every shape
// not in exclude. Ties keep the lowest shape then edge index.
func First(tri Triangle, shapes []*shape.Shape, exclude Exclusions, small float64) (Hit, bool) {
	var best Hit
	found := false

	if tri.Degenerate(small) {
		return best, false
	}

	for si, s := range shapes {
		for e := range s.Edges {
			if exclude.Has(si, e) {
				continue
			}
			a, b := s.EdgeVertices(e)
			hit, ok := IntersectLine(tri, a, b, small)
			if !ok {
				continue
			}
			ratio := hit.Ratio(small)
			if !found || ratio < best.Ratio {
				best = Hit{
					EdgeRef:  EdgeRef{Shape: si, Edge: e},
					Location: hit.Location,
					Ratio:    ratio,
				}
				found = true
			}
		}
	}

	return best, found
}
