// Package epa implements the Expanding Polytope Algorithm to measure how deep two
// overlapping convex sets cut into each other.
//
// EPA starts from the tetrahedron GJK leaves behind when it proves an overlap, then keeps
// pushing the face of the polytope closest to the origin outward with a new support point
// of the Minkowski difference. Once a face cannot be pushed any further, its normal and
// distance are the minimum translation separating the sets.
//
// The rope uses it to report how far a segment sinks into an obstacle when a tick ends
// before the rope had time to settle around it.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/gjk"
)

const (
	// MaxIterations bounds the polytope expansion.
	MaxIterations = 32

	// ConvergenceTolerance stops the expansion once a new support point moves the
	// closest face by less than this.
	ConvergenceTolerance = 0.001

	// MinFaceDistance is the smallest distance kept for a face plane.
	MinFaceDistance = 0.0001

	// NormalSnapThreshold clamps tiny normal components to zero.
	NormalSnapThreshold = 1e-8

	polytopeInitialCapacity = 8
)

// ErrNotConverged is returned when the expansion hits MaxIterations.
var ErrNotConverged = errors.New("epa: did not converge")

// Result is the minimum translation separating two overlapping sets:
// moving a by -Normal*Depth leaves it touching b.
type Result struct {
	Normal mgl64.Vec3
	Depth  float64
}

// Depth runs GJK on a and b and, when they overlap, measures the overlap with EPA.
// ok is false when the sets are apart.
func Depth(a, b gjk.Convex) (result Result, ok bool, err error) {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer func() {
		simplex.Reset()
		gjk.SimplexPool.Put(simplex)
	}()

	if !gjk.GJK(a, b, simplex) {
		return Result{}, false, nil
	}
	result, err = EPA(a, b, simplex)
	return result, true, err
}

// EPA expands the simplex of an overlapping GJK run until the face closest to the origin
// lies on the boundary of the Minkowski difference a - b.
// GJK may stop on fewer than 4 points when the origin lies on a line or a triangle;
// the simplex is then completed with extra support points first.
func EPA(a, b gjk.Convex, simplex *gjk.Simplex) (Result, error) {
	if simplex.Count < 4 && !complete(a, b, simplex) {
		// The difference is flat, it has no inside to escape from
		return Result{Normal: mgl64.Vec3{0, 0, 1}}, nil
	}

	builder := polytopeBuilderPool.Get().(*PolytopeBuilder)
	defer polytopeBuilderPool.Put(builder)
	builder.Reset()

	if err := builder.BuildInitialFaces(simplex); err != nil {
		return Result{}, err
	}

	for i := 0; i < MaxIterations; i++ {
		if len(builder.faces) == 0 {
			break
		}

		closestIndex := builder.FindClosestFaceIndex()
		closest := builder.faces[closestIndex]

		support := gjk.MinkowskiSupport(a, b, closest.Normal)
		if support.Dot(closest.Normal)-closest.Distance < ConvergenceTolerance {
			return Result{Normal: closest.Normal, Depth: closest.Distance}, nil
		}

		builder.AddPointAndRebuildFaces(support, closestIndex)
	}

	return Result{}, errors.Wrapf(ErrNotConverged, "after %d iterations", MaxIterations)
}

// complete grows a point, line or triangle simplex into a tetrahedron with volume,
// using support points along directions the simplex does not span yet.
// It reports false when the Minkowski difference itself is flat.
func complete(a, b gjk.Convex, simplex *gjk.Simplex) bool {
	const eps = 1e-9
	axes := [6]mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	if simplex.Count == 0 {
		simplex.Points[0] = gjk.MinkowskiSupport(a, b, axes[0])
		simplex.Count = 1
	}

	if simplex.Count == 1 {
		for _, axis := range axes {
			p := gjk.MinkowskiSupport(a, b, axis)
			if p.Sub(simplex.Points[0]).LenSqr() > eps {
				simplex.Points[1] = p
				simplex.Count = 2
				break
			}
		}
		if simplex.Count < 2 {
			return false
		}
	}

	if simplex.Count == 2 {
		line := simplex.Points[1].Sub(simplex.Points[0]).Normalize()
		first := line.Cross(leastAligned(line)).Normalize()
		second := line.Cross(first)
		for _, direction := range [4]mgl64.Vec3{first, first.Mul(-1), second, second.Mul(-1)} {
			p := gjk.MinkowskiSupport(a, b, direction)
			if p.Sub(simplex.Points[0]).Cross(line).LenSqr() > eps {
				simplex.Points[2] = p
				simplex.Count = 3
				break
			}
		}
		if simplex.Count < 3 {
			return false
		}
	}

	normal := simplex.Points[1].Sub(simplex.Points[0]).Cross(simplex.Points[2].Sub(simplex.Points[0]))
	if normal.LenSqr() < eps {
		return false
	}
	normal = normal.Normalize()
	for _, direction := range [2]mgl64.Vec3{normal, normal.Mul(-1)} {
		p := gjk.MinkowskiSupport(a, b, direction)
		if math.Abs(p.Sub(simplex.Points[0]).Dot(normal)) > eps {
			simplex.Points[3] = p
			simplex.Count = 4
			return true
		}
	}
	return false
}

// leastAligned returns the world axis furthest from v
func leastAligned(v mgl64.Vec3) mgl64.Vec3 {
	x, y, z := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	switch {
	case x <= y && x <= z:
		return mgl64.Vec3{1, 0, 0}
	case y <= z:
		return mgl64.Vec3{0, 1, 0}
	}
	return mgl64.Vec3{0, 0, 1}
}

// snapNormalToAxis clamps nearly-zero components of a normal to zero and renormalizes it,
// so axis aligned contacts report exact axis normals.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	for i := range normal {
		if math.Abs(normal[i]) < NormalSnapThreshold {
			normal[i] = 0
		}
	}

	length := normal.Len()
	if length <= 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return normal.Mul(1.0 / length)
}
