package tautrope

import (
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/shape"
)

const (
	DEFAULT_WORKERS          = 1
	DEFAULT_DISCOVERY_MARGIN = 1.0
)

// Scene hosts ropes and the static shapes they wrap around.
// Each Step hands every rope the shapes near it, then updates the ropes in parallel.
type Scene struct {
	Ropes []*Rope
	Index ShapeIndex
	// Number of goroutines ropes are spread over
	Workers int
	// Extra distance around a rope within which shapes are discovered
	DiscoveryMargin float64
}

// NewScene creates a scene over the given index, or a grid index when nil
func NewScene(index ShapeIndex) *Scene {
	if index == nil {
		index = NewGridIndex(10, 1024)
	}
	return &Scene{
		Index:           index,
		Workers:         DEFAULT_WORKERS,
		DiscoveryMargin: DEFAULT_DISCOVERY_MARGIN,
	}
}

// AddShape makes a shape discoverable by every rope
func (sc *Scene) AddShape(s *shape.Shape) error {
	if err := sc.Index.Insert(s); err != nil {
		return errors.Wrap(err, "adding shape to scene")
	}
	return nil
}

// AddRope adds a rope to the scene
func (sc *Scene) AddRope(rope *Rope) {
	sc.Ropes = append(sc.Ropes, rope)
}

// RemoveRope removes a rope from the scene
func (sc *Scene) RemoveRope(rope *Rope) {
	k := -1
	for i, r := range sc.Ropes {
		if r == rope {
			k = i
			break
		}
	}

	if k != -1 {
		sc.Ropes = append(sc.Ropes[:k], sc.Ropes[k+1:]...)
	}
}

// Step advances every rope by one tick toward its Start, End and MaxLength.
// Events are sent once all ropes are updated, from the calling goroutine.
func (sc *Scene) Step() {
	sc.Workers = max(DEFAULT_WORKERS, sc.Workers)

	// Phase 1: Discovery, hand every rope the shapes around it
	sc.discover()

	// Phase 2: Update, ropes only share read-only shapes
	task(sc.Workers, sc.Ropes, func(rope *Rope) {
		rope.Step()
	})

	for _, rope := range sc.Ropes {
		rope.Events.flush(rope)
	}
}

func (sc *Scene) discover() {
	if sc.Index == nil {
		return
	}
	for _, rope := range sc.Ropes {
		found := sc.Index.Query(ropeBounds(rope).Expand(sc.DiscoveryMargin))
		for _, s := range found {
			if !rope.HasShape(s) {
				rope.AppendShapes(s)
			}
		}
	}
}

// ropeBounds covers the current polyline and the anchors it is heading to
func ropeBounds(rope *Rope) shape.AABB {
	points := append(rope.Points(), rope.Start, rope.End)
	return shape.BoundsOf(points...)
}
