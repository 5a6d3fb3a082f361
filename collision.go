package tautrope

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope/sweep"
)

// pendingPivot is a pivot found during a collision pass, inserted once the pass is over
type pendingPivot struct {
	index int
	point Point
}

// collisionPhase moves every point to its target, sweeping each move against the obstacle
// edges. A move crossing an edge stops there and the edge becomes a new pivot; passes
// repeat against the grown rope until nothing is caught or the iteration cap is reached.
// Returns the number of pivots inserted.
func (r *Rope) collisionPhase(targets []mgl64.Vec3) int {
	origins := make([]mgl64.Vec3, len(r.points))
	for i, p := range r.points {
		origins[i] = p.Location
	}

	small := r.Config.SmallNumber
	inserted := 0
	pending := make([]pendingPivot, 0, 4)

	for iteration := 0; ; iteration++ {
		if iteration == r.Config.MaxCollisionIterations {
			r.iterationCap("collision", iteration)
			break
		}
		pending = pending[:0]

		for i := 0; i < len(r.points)-1; i++ {
			exclude := r.exclusions(i, i+1)

			// Point i moves while i+1 holds still
			triA := sweep.Triangle{From: origins[i], To: targets[i], Support: origins[i+1]}
			hit, ok := sweep.First(triA, r.shapes, exclude, small)
			r.debugSegmentSweep(triA, hit, ok)
			if ok {
				r.points[i].Location = triA.At(hit.Ratio)
				r.points[i+1].Attachment = r.points[i+1].Attachment.WithoutVertex()
				pending = append(pending, pendingPivot{index: i + 1, point: hitPoint(hit)})
				continue
			}
			r.points[i].Location = targets[i]

			// Point i+1 moves around the resolved point i
			triB := sweep.Triangle{From: origins[i+1], To: targets[i+1], Support: targets[i]}
			hit, ok = sweep.First(triB, r.shapes, exclude, small)
			r.debugSegmentSweep(triB, hit, ok)
			if ok {
				r.points[i+1].Location = triB.At(hit.Ratio)
				r.points[i].Attachment = r.points[i].Attachment.WithoutVertex()
				pending = append(pending, pendingPivot{index: i + 1, point: hitPoint(hit)})
				continue
			}
			r.points[i+1].Location = targets[i+1]
		}

		if len(pending) == 0 {
			break
		}

		// Descending order keeps the recorded indices valid
		for k := len(pending) - 1; k >= 0; k-- {
			p := pending[k]
			r.insertPoint(p.index, p.point)
			origins = slices.Insert(origins, p.index, p.point.Location)
			targets = slices.Insert(targets, p.index, p.point.Location)
			inserted++
		}
	}

	return inserted
}

func hitPoint(hit sweep.Hit) Point {
	return Point{
		Location:   hit.Location,
		Attachment: EdgeAttachment(hit.Shape, hit.Edge),
	}
}
