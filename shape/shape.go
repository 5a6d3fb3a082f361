// Package shape holds the static obstacle skeletons a rope can wrap around.
//
// A Shape is the wire frame of one convex piece of level geometry: its vertices, the edges
// a rope can catch on, which edges meet at each vertex, and an orientation per edge whose
// Up axis points out of the solid. Shapes are built once, before simulation, and are never
// mutated afterwards, so any number of ropes may read them concurrently.
//
// Everything is index based: edges reference vertices by index, VertexEdges references
// edges by index, and rope points reference a shape's edges and vertices the same way.
package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MergeTolerance is the distance under which two input vertices are considered the same.
	MergeTolerance = 0.01

	// MinEdgeLength is the shortest edge a shape accepts. The rope solver projects onto
	// edge axes and divides by edge length, so shorter edges are rejected at construction.
	MinEdgeLength = 0.02

	// FlatEdgeCosine is the cosine above which the two faces sharing an edge are treated as
	// coplanar. Such edges are triangulation artifacts and cannot hold a rope.
	FlatEdgeCosine = 0.9999
)

// Edge is an unordered pair of vertex indices, stored with A < B.
type Edge struct {
	A, B int
}

// Has reports whether v is one of the edge endpoints
func (e Edge) Has(v int) bool {
	return e.A == v || e.B == v
}

// Orientation is the right-handed basis attached to an edge.
// Forward runs from vertex A to vertex B, Up is the outward surface normal averaged over the
// faces adjacent to the edge, and Side completes the basis (Forward × Side = Up).
type Orientation struct {
	Forward mgl64.Vec3
	Side    mgl64.Vec3
	Up      mgl64.Vec3
}

// NewOrientation builds the basis from a forward axis and an approximate up axis.
// Up is re-orthogonalised against forward.
func NewOrientation(forward, up mgl64.Vec3) Orientation {
	f := forward.Normalize()
	side := up.Cross(f).Normalize()
	u := f.Cross(side).Normalize()
	return Orientation{Forward: f, Side: side, Up: u}
}

// Down is the inward direction of the edge
func (o Orientation) Down() mgl64.Vec3 {
	return o.Up.Mul(-1)
}

// Shape is the read-only skeleton of one convex obstacle.
type Shape struct {
	Vertices     []mgl64.Vec3
	Edges        []Edge
	VertexEdges  [][]int
	Orientations []Orientation

	corner   []bool
	bounds   AABB
	centroid mgl64.Vec3
}

// IsCornerVertex reports whether a vertex has fewer than two edges, i.e. it is a dead end
// with no second edge for the rope to slide onto.
// The vertex index is assumed to be valid.
func (s *Shape) IsCornerVertex(v int) bool {
	return s.corner[v]
}

// EdgeVertices returns the world positions of the edge endpoints A and B
func (s *Shape) EdgeVertices(e int) (mgl64.Vec3, mgl64.Vec3) {
	edge := s.Edges[e]
	return s.Vertices[edge.A], s.Vertices[edge.B]
}

func (s *Shape) EdgeLength(e int) float64 {
	a, b := s.EdgeVertices(e)
	return b.Sub(a).Len()
}

// OtherVertex returns the endpoint of edge e that is not v
func (s *Shape) OtherVertex(e, v int) int {
	edge := s.Edges[e]
	if edge.A == v {
		return edge.B
	}
	return edge.A
}

// VertexHasEdge reports whether edge e touches vertex v
func (s *Shape) VertexHasEdge(v, e int) bool {
	for _, candidate := range s.VertexEdges[v] {
		if candidate == e {
			return true
		}
	}
	return false
}

func (s *Shape) AABB() AABB {
	return s.bounds
}

// Center is the mean of the vertices, inside the solid.
// With Support it lets GJK and EPA query a shape directly.
func (s *Shape) Center() mgl64.Vec3 {
	return s.centroid
}

// Support returns the vertex furthest along direction.
// Shapes are convex, so this is the support function of the whole solid.
func (s *Shape) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := s.Vertices[0]
	bestDot := -math.MaxFloat64
	for _, v := range s.Vertices {
		if d := v.Dot(direction); d > bestDot {
			bestDot = d
			best = v
		}
	}
	return best
}

// IsFlat reports whether every vertex lies within tolerance of a single plane.
// Flat shapes have no inside, only edges.
func (s *Shape) IsFlat(tolerance float64) bool {
	if len(s.Vertices) < 4 {
		return true
	}
	origin := s.Vertices[0]
	var normal mgl64.Vec3
	for i := 1; i < len(s.Vertices) && normal.Len() == 0; i++ {
		for j := i + 1; j < len(s.Vertices); j++ {
			n := s.Vertices[i].Sub(origin).Cross(s.Vertices[j].Sub(origin))
			if n.Len() > tolerance {
				normal = n.Normalize()
				break
			}
		}
	}
	if normal.Len() == 0 {
		return true
	}
	for _, v := range s.Vertices {
		if math.Abs(v.Sub(origin).Dot(normal)) > tolerance {
			return false
		}
	}
	return true
}

// finalize derives the adjacency, corner flags, bounds and centroid from Vertices and Edges
func (s *Shape) finalize() {
	s.VertexEdges = make([][]int, len(s.Vertices))
	for e, edge := range s.Edges {
		s.VertexEdges[edge.A] = append(s.VertexEdges[edge.A], e)
		s.VertexEdges[edge.B] = append(s.VertexEdges[edge.B], e)
	}

	s.corner = make([]bool, len(s.Vertices))
	for v, edges := range s.VertexEdges {
		s.corner[v] = len(edges) < 2
	}

	s.bounds = BoundsOf(s.Vertices...)

	var sum mgl64.Vec3
	for _, v := range s.Vertices {
		sum = sum.Add(v)
	}
	if len(s.Vertices) > 0 {
		s.centroid = sum.Mul(1.0 / float64(len(s.Vertices)))
	}
}
