package shape

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const minTriangleArea = 1e-9

// New builds a shape from an explicit wire frame.
// ups holds the approximate outward normal of each edge; it is orthogonalised against the
// edge direction. Edges are stored with A < B regardless of input order.
// Distinct vertices must be at least MergeTolerance apart.
func New(vertices []mgl64.Vec3, edges []Edge, ups []mgl64.Vec3) (*Shape, error) {
	if len(vertices) == 0 {
		return nil, errors.New("shape has no vertices")
	}
	if len(ups) != len(edges) {
		return nil, errors.Errorf("got %d up vectors for %d edges", len(ups), len(edges))
	}
	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			if vertices[j].Sub(vertices[i]).Len() < MergeTolerance {
				return nil, errors.Errorf("vertices %d and %d are closer than %v", i, j, MergeTolerance)
			}
		}
	}

	s := &Shape{
		Vertices:     append([]mgl64.Vec3(nil), vertices...),
		Edges:        make([]Edge, len(edges)),
		Orientations: make([]Orientation, len(edges)),
	}

	seen := make(map[Edge]int, len(edges))
	for i, edge := range edges {
		if edge.A < 0 || edge.A >= len(vertices) || edge.B < 0 || edge.B >= len(vertices) {
			return nil, errors.Errorf("edge %d references vertex out of range [0,%d)", i, len(vertices))
		}
		if edge.A == edge.B {
			return nil, errors.Errorf("edge %d is a loop on vertex %d", i, edge.A)
		}
		if edge.A > edge.B {
			edge.A, edge.B = edge.B, edge.A
		}
		if prev, ok := seen[edge]; ok {
			return nil, errors.Errorf("edge %d duplicates edge %d", i, prev)
		}
		seen[edge] = i

		forward := vertices[edge.B].Sub(vertices[edge.A])
		if forward.Len() < MinEdgeLength {
			return nil, errors.Errorf("edge %d is shorter than %v", i, MinEdgeLength)
		}
		if ups[i].Len() == 0 {
			return nil, errors.Errorf("edge %d has a zero up vector", i)
		}
		if forward.Normalize().Cross(ups[i].Normalize()).Len() < 1e-6 {
			return nil, errors.Errorf("edge %d up vector is parallel to the edge", i)
		}

		s.Edges[i] = edge
		s.Orientations[i] = NewOrientation(forward, ups[i])
	}

	s.finalize()
	return s, nil
}

// FromTriangles builds a shape from a triangulated convex hull given in local space.
// Vertices closer than MergeTolerance are welded, zero-area triangles are dropped, and edges
// whose adjacent faces are coplanar are discarded since they cannot hold a rope. Face normals
// are flipped where needed so they point away from the hull centroid.
func FromTriangles(vertices []mgl64.Vec3, indices []int, transform Transform) (*Shape, error) {
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	welded := make([]mgl64.Vec3, 0, len(vertices))
	remap := make([]int, len(vertices))
	for i, local := range vertices {
		world := transform.Apply(local)
		remap[i] = -1
		for j, existing := range welded {
			if existing.Sub(world).Len() < MergeTolerance {
				remap[i] = j
				break
			}
		}
		if remap[i] < 0 {
			remap[i] = len(welded)
			welded = append(welded, world)
		}
	}
	if len(welded) < 2 {
		return nil, errors.New("shape needs at least two distinct vertices")
	}

	var centroid mgl64.Vec3
	for _, v := range welded {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(len(welded)))

	normals := make(map[Edge][]mgl64.Vec3)
	for t := 0; t < len(indices); t += 3 {
		var tri [3]int
		for k := 0; k < 3; k++ {
			idx := indices[t+k]
			if idx < 0 || idx >= len(vertices) {
				return nil, errors.Errorf("triangle %d references vertex %d out of range", t/3, idx)
			}
			tri[k] = remap[idx]
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			continue
		}

		a, b, c := welded[tri[0]], welded[tri[1]], welded[tri[2]]
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross.Len()*0.5 < minTriangleArea {
			continue
		}
		normal := cross.Normalize()
		center := a.Add(b).Add(c).Mul(1.0 / 3.0)
		if normal.Dot(center.Sub(centroid)) < 0 {
			normal = normal.Mul(-1)
		}

		for k := 0; k < 3; k++ {
			edge := Edge{A: tri[k], B: tri[(k+1)%3]}
			if edge.A > edge.B {
				edge.A, edge.B = edge.B, edge.A
			}
			normals[edge] = append(normals[edge], normal)
		}
	}

	edges := make([]Edge, 0, len(normals))
	for edge, faces := range normals {
		if len(faces) == 2 && faces[0].Dot(faces[1]) > FlatEdgeCosine {
			continue
		}
		edges = append(edges, edge)
	}
	if len(edges) == 0 {
		return nil, errors.New("triangles produced no usable edges")
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	ups := make([]mgl64.Vec3, len(edges))
	for i, edge := range edges {
		var sum mgl64.Vec3
		for _, n := range normals[edge] {
			sum = sum.Add(n)
		}
		// Opposite faces of a sliver cancel out, fall back to pointing away from the centroid
		if sum.Len() < 1e-9 {
			mid := welded[edge.A].Add(welded[edge.B]).Mul(0.5)
			sum = mid.Sub(centroid)
		}
		ups[i] = sum
	}

	s, err := New(welded, edges, ups)
	if err != nil {
		return nil, errors.Wrap(err, "building shape from triangles")
	}
	return s, nil
}

// boxIndices triangulates the 8 corners of a box, corner i having its x, y and z signs taken
// from bits 0, 1 and 2.
var boxIndices = []int{
	0, 2, 3, 0, 3, 1, // -Z
	4, 5, 7, 4, 7, 6, // +Z
	0, 1, 5, 0, 5, 4, // -Y
	2, 6, 7, 2, 7, 3, // +Y
	0, 4, 6, 0, 6, 2, // -X
	1, 3, 7, 1, 7, 5, // +X
}

// NewBox builds a box with the given half extents
func NewBox(transform Transform, halfExtents mgl64.Vec3) (*Shape, error) {
	if halfExtents.X() <= 0 || halfExtents.Y() <= 0 || halfExtents.Z() <= 0 {
		return nil, errors.Errorf("box half extents must be positive, got %v", halfExtents)
	}

	vertices := make([]mgl64.Vec3, 8)
	for i := range vertices {
		v := halfExtents
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) == 0 {
				v[axis] = -v[axis]
			}
		}
		vertices[i] = v
	}

	return FromTriangles(vertices, boxIndices, transform)
}
