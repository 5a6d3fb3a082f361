// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) overlap test between convex sets.
//
// Two convex sets overlap when their Minkowski difference contains the origin. GJK grows a
// simplex inside that difference toward the origin, one support point per iteration, and
// stops as soon as it either encloses the origin or proves a separating direction exists.
//
// The rope uses it to check whether any of its segments still cut through an obstacle,
// a segment being a perfectly valid (if thin) convex set.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const maxIterations = 32

// Convex is any convex set able to report its furthest point along a direction.
type Convex interface {
	Support(direction mgl64.Vec3) mgl64.Vec3
	Center() mgl64.Vec3
}

// Simplex represents a set of 1-4 points in the Minkowski difference space.
// Size progression: 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// Segment is the convex set between two points
type Segment struct {
	A, B mgl64.Vec3
}

func (s Segment) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if s.B.Dot(direction) > s.A.Dot(direction) {
		return s.B
	}
	return s.A
}

func (s Segment) Center() mgl64.Vec3 {
	return s.A.Add(s.B).Mul(0.5)
}

// Hull is the convex hull of a point cloud
type Hull struct {
	Points []mgl64.Vec3
	center mgl64.Vec3
}

func NewHull(points []mgl64.Vec3) Hull {
	var sum mgl64.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	if len(points) > 0 {
		sum = sum.Mul(1.0 / float64(len(points)))
	}
	return Hull{Points: points, center: sum}
}

// Shrink returns the hull with every point pulled toward the center by margin.
// Points closer to the center than margin collapse onto it.
func (h Hull) Shrink(margin float64) Hull {
	shrunk := make([]mgl64.Vec3, len(h.Points))
	for i, p := range h.Points {
		offset := p.Sub(h.center)
		length := offset.Len()
		if length <= margin {
			shrunk[i] = h.center
			continue
		}
		shrunk[i] = h.center.Add(offset.Mul((length - margin) / length))
	}
	return Hull{Points: shrunk, center: h.center}
}

func (h Hull) Support(direction mgl64.Vec3) mgl64.Vec3 {
	best := h.Points[0]
	bestDot := best.Dot(direction)
	for _, p := range h.Points[1:] {
		if d := p.Dot(direction); d > bestDot {
			bestDot = d
			best = p
		}
	}
	return best
}

func (h Hull) Center() mgl64.Vec3 {
	return h.center
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B):
// furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b Convex, direction mgl64.Vec3) mgl64.Vec3 {
	return a.Support(direction).Sub(b.Support(direction.Mul(-1)))
}

// Intersects reports whether a and b overlap, using a pooled simplex.
func Intersects(a, b Convex) bool {
	simplex := SimplexPool.Get().(*Simplex)
	defer func() {
		simplex.Reset()
		SimplexPool.Put(simplex)
	}()

	return GJK(a, b, simplex)
}

// GJK reports whether the convex sets a and b overlap.
// The simplex is modified in place; on overlap it holds the enclosing tetrahedron.
func GJK(a, b Convex, simplex *Simplex) bool {
	// Searching from A toward B first usually saves iterations
	direction := b.Center().Sub(a.Center())
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.Points[0] = MinkowskiSupport(a, b, direction)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	for i := 0; i < maxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// The new point does not pass the origin: direction separates the sets
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

// containsOrigin reduces the simplex to its feature closest to the origin and points
// direction at the origin from there. Only a tetrahedron can contain the origin.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

func (s *Simplex) set(points ...mgl64.Vec3) {
	copy(s.Points[:], points)
	s.Count = len(points)
}

// line handles the 2 point simplex, A being the newest point.
func line(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		simplex.set(a)
		*direction = ao
		return false
	}

	// Origin behind A: only A matters
	if ab.Dot(ao) <= 0 {
		simplex.set(a)
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-8 {
		// Origin on the segment
		return true
	}

	*direction = abPerp
	return false
}

// triangle handles the 3 point simplex, A being the newest point.
// Colinear points fall back to the line case.
func triangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	abc := ab.Cross(ac)

	if abc.LenSqr() < 1e-10 {
		simplex.set(b, a)
		return line(simplex, direction)
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		simplex.set(b, a)
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if abc.Cross(ac).Dot(ao) > 0 {
		simplex.set(c, a)
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		// Below the face, flip the winding
		simplex.set(a, c, b)
		*direction = abc.Mul(-1)
	}

	return false
}

// tetrahedron handles the 4 point simplex, A being the newest point.
// Face normals are oriented away from the opposite vertex.
func tetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := outward(ab.Cross(ac), ad)
	acd := outward(ac.Cross(ad), ab)
	adb := outward(ad.Cross(ab), ac)

	if abc.LenSqr() < 1e-10 || acd.LenSqr() < 1e-10 || adb.LenSqr() < 1e-10 {
		simplex.set(c, b, a)
		return triangle(simplex, direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		simplex.set(c, b, a)
		return triangle(simplex, direction)
	case acd.Dot(ao) > 0:
		simplex.set(d, c, a)
		return triangle(simplex, direction)
	case adb.Dot(ao) > 0:
		simplex.set(b, d, a)
		return triangle(simplex, direction)
	}

	return true
}

// outward flips normal so it points away from the vertex at offset opposite
func outward(normal, opposite mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(opposite) > 0 {
		return normal.Mul(-1)
	}
	return normal
}
