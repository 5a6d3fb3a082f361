package epa

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangle of the polytope with its outward normal and the distance from the
// origin to its plane.
type Face struct {
	Points   [3]mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// newFace builds the face a, b, c with its normal pointing away from inside, a point
// of the polytope not on the face. The origin is inside the polytope too, so the distance
// is only negative through rounding when the origin lies on the face; it is clamped.
func newFace(a, b, c, inside mgl64.Vec3) Face {
	face := Face{Points: [3]mgl64.Vec3{a, b, c}}

	normal := b.Sub(a).Cross(c.Sub(a))
	length := normal.Len()
	if length < 1e-8 {
		// Zero area
		face.Normal = mgl64.Vec3{0, 1, 0}
		face.Distance = MinFaceDistance
		return face
	}
	normal = normal.Mul(1.0 / length)

	if normal.Dot(inside.Sub(a)) > 0 {
		normal = normal.Mul(-1)
	}

	face.Normal = snapNormalToAxis(normal)
	face.Distance = max(a.Dot(face.Normal), MinFaceDistance)
	return face
}

// edge is stored with A < B so both windings of a triangle edge compare equal
type edge struct {
	A, B mgl64.Vec3
}

func newEdge(a, b mgl64.Vec3) edge {
	if compareVec3(a, b) > 0 {
		a, b = b, a
	}
	return edge{A: a, B: b}
}

// compareVec3 orders vectors by x, then y, then z
func compareVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
