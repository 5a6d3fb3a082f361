package epa

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/gjk"
)

// PolytopeBuilder holds the faces of the expanding polytope with the scratch buffers used
// to rebuild them. Builders are pooled and reused between runs.
type PolytopeBuilder struct {
	faces    []Face
	vertices []mgl64.Vec3
	// Edges of the visible faces with their occurrence count, 1 meaning boundary
	edges   []edge
	counts  []int
	visible []int
}

var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:    make([]Face, 0, polytopeInitialCapacity),
			vertices: make([]mgl64.Vec3, 0, polytopeInitialCapacity),
			edges:    make([]edge, 0, polytopeInitialCapacity),
			counts:   make([]int, 0, polytopeInitialCapacity),
			visible:  make([]int, 0, polytopeInitialCapacity),
		}
	},
}

func (b *PolytopeBuilder) Reset() {
	b.faces = b.faces[:0]
	b.vertices = b.vertices[:0]
	b.edges = b.edges[:0]
	b.counts = b.counts[:0]
	b.visible = b.visible[:0]
}

// Faces returns the current faces, valid until the next call on the builder.
func (b *PolytopeBuilder) Faces() []Face {
	return b.faces
}

// BuildInitialFaces turns a tetrahedron simplex into its 4 faces.
func (b *PolytopeBuilder) BuildInitialFaces(simplex *gjk.Simplex) error {
	if simplex.Count != 4 {
		return errors.Errorf("epa: simplex has %d points, expected 4", simplex.Count)
	}

	p0, p1, p2, p3 := simplex.Points[0], simplex.Points[1], simplex.Points[2], simplex.Points[3]
	b.faces = append(b.faces,
		newFace(p0, p1, p2, p3),
		newFace(p0, p2, p3, p1),
		newFace(p0, p3, p1, p2),
		newFace(p1, p3, p2, p0),
	)
	b.vertices = append(b.vertices, p0, p1, p2, p3)
	return nil
}

// FindClosestFaceIndex returns the face nearest to the origin, or -1 without faces.
func (b *PolytopeBuilder) FindClosestFaceIndex() int {
	if len(b.faces) == 0 {
		return -1
	}

	closest := 0
	for i := 1; i < len(b.faces); i++ {
		if b.faces[i].Distance < b.faces[closest].Distance {
			closest = i
		}
	}
	return closest
}

// centroid is strictly inside the polytope as long as it has volume
func (b *PolytopeBuilder) centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, v := range b.vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float64(len(b.vertices)))
}

// AddPointAndRebuildFaces removes every face the support point sees and closes the hole
// with faces joining its boundary edges to the support point.
// If the point sees every face, only the closest one is replaced.
func (b *PolytopeBuilder) AddPointAndRebuildFaces(support mgl64.Vec3, closestIndex int) {
	inside := b.centroid()

	b.visible = b.visible[:0]
	for i, face := range b.faces {
		if support.Sub(face.Points[0]).Dot(face.Normal) > 0 {
			b.visible = append(b.visible, i)
		}
	}
	if len(b.visible) == 0 || len(b.visible) >= len(b.faces) {
		b.visible = append(b.visible[:0], closestIndex)
	}

	b.findBoundaryEdges()

	// visible is ascending: removing from the end keeps the lower indices valid
	for i := len(b.visible) - 1; i >= 0; i-- {
		last := len(b.faces) - 1
		b.faces[b.visible[i]] = b.faces[last]
		b.faces = b.faces[:last]
	}

	for i, e := range b.edges {
		if b.counts[i] == 1 {
			b.faces = append(b.faces, newFace(e.A, e.B, support, inside))
		}
	}
	b.vertices = append(b.vertices, support)
}

// findBoundaryEdges collects the edges of the visible faces.
// Edges shared by two visible faces are internal to the removed region.
func (b *PolytopeBuilder) findBoundaryEdges() {
	b.edges = b.edges[:0]
	b.counts = b.counts[:0]

	for _, fi := range b.visible {
		points := b.faces[fi].Points
		for j := 0; j < 3; j++ {
			e := newEdge(points[j], points[(j+1)%3])
			found := false
			for k := range b.edges {
				if b.edges[k] == e {
					b.counts[k]++
					found = true
					break
				}
			}
			if !found {
				b.edges = append(b.edges, e)
				b.counts = append(b.counts, 1)
			}
		}
	}
}
