// Package tautrope simulates a rope pulled taut between two moving anchors around static
// convex obstacles.
//
// A Rope is a polyline whose interior points rest on obstacle edges. Every tick it runs four
// phases in order:
//  1. Movement: every point computes where it wants to be
//  2. Collision: moves are swept against obstacle edges, new pivots are inserted where the
//     rope catches
//  3. Vertex: pivots stacked around a vertex are merged and slid onto the right edge
//  4. Pruning: pivots the rope no longer wraps around are released
//
// Shapes are shared read-only, so separate ropes may be updated from separate goroutines.
package tautrope

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope/shape"
	"github.com/akmonengine/tautrope/sweep"
)

type Rope struct {
	Config Config
	// Anchors and length budget read by Step and Scene.Step
	Start     mgl64.Vec3
	End       mgl64.Vec3
	MaxLength float64

	Events Events
	Debug  DebugSink

	points []Point
	shapes []*shape.Shape
	known  map[*shape.Shape]int

	stats tickStats
}

// tickStats counts pivot changes during one tick, for logging
type tickStats struct {
	added     int
	removed   int
	relocated int
	slid      int
}

// NewRope creates a straight rope between start and end using the default configuration
func NewRope(start, end mgl64.Vec3, maxLength float64, shapes ...*shape.Shape) *Rope {
	r := &Rope{
		Config:    DefaultConfig(),
		Start:     start,
		End:       end,
		MaxLength: maxLength,
		Events:    NewEvents(),
		known:     make(map[*shape.Shape]int),
	}
	r.Reset(start, end)
	r.AppendShapes(shapes...)
	return r
}

// Reset drops every pivot and stretches the rope straight between start and end
func (r *Rope) Reset(start, end mgl64.Vec3) {
	r.points = append(r.points[:0], freePoint(start), freePoint(end))
}

// AppendShapes adds obstacles to the rope. Shapes already known are ignored.
// Shape indices in attachments stay valid since shapes are only ever appended.
func (r *Rope) AppendShapes(shapes ...*shape.Shape) {
	if r.known == nil {
		r.known = make(map[*shape.Shape]int)
	}
	for _, s := range shapes {
		if s == nil {
			continue
		}
		if _, ok := r.known[s]; ok {
			continue
		}
		r.known[s] = len(r.shapes)
		r.shapes = append(r.shapes, s)
	}
}

// HasShape reports whether s was appended to the rope
func (r *Rope) HasShape(s *shape.Shape) bool {
	_, ok := r.known[s]
	return ok
}

func (r *Rope) Shapes() []*shape.Shape {
	return r.shapes
}

// Points returns the locations of the rope polyline, from start to end
func (r *Rope) Points() []mgl64.Vec3 {
	locations := make([]mgl64.Vec3, len(r.points))
	for i, p := range r.points {
		locations[i] = p.Location
	}
	return locations
}

// RopePoints returns a copy of the rope points with their attachments
func (r *Rope) RopePoints() []Point {
	return slices.Clone(r.points)
}

// Length is the total length of the polyline
func (r *Rope) Length() float64 {
	length := 0.0
	for i := 1; i < len(r.points); i++ {
		length += r.points[i].Location.Sub(r.points[i-1].Location).Len()
	}
	return length
}

// Update moves the anchors and runs one tick, then sends the buffered events.
func (r *Rope) Update(start, end mgl64.Vec3, maxLength float64) {
	r.Start, r.End, r.MaxLength = start, end, maxLength
	r.Step()
	r.Events.flush(r)
}

// Step runs one tick toward Start, End and MaxLength without sending events.
// Pivot events stay buffered until the next flush; edge events only compare the last
// stepped tick with the last flushed one.
// An invalid Config is replaced by DefaultConfig, keeping its debug flags.
func (r *Rope) Step() {
	if err := r.Config.Validate(); err != nil {
		Logger().Warn("invalid rope configuration, using defaults", slog.Any("error", err))
		debug := r.Config.Debug
		r.Config = DefaultConfig()
		r.Config.Debug = debug
	}
	if len(r.points) < 2 {
		r.Reset(r.Start, r.End)
	}
	r.stats = tickStats{}
	r.Events.resetTouched()

	// Phase 1: Movement, target location of every point
	targets := r.movementPhase(r.Start, r.End, r.MaxLength)

	// Phase 2: Collision, sweep every move and catch the rope on new edges
	r.collisionPhase(targets)

	// Phase 3: Vertex, merge vertex fans and slide off vertices
	r.vertexPhase()

	// Phase 4: Pruning, release the edges the rope no longer wraps
	r.pruningPhase()

	for _, p := range r.points {
		if si, e, ok := p.Attachment.Edge(); ok {
			r.Events.touch(r.shapes[si], e)
		}
	}
	r.debugTick()

	if r.stats != (tickStats{}) {
		Logger().Debug("rope pivots changed",
			slog.Int("added", r.stats.added),
			slog.Int("removed", r.stats.removed),
			slog.Int("relocated", r.stats.relocated),
			slog.Int("slid", r.stats.slid),
			slog.Int("points", len(r.points)),
		)
	}
}

// insertPoint inserts p at index i
func (r *Rope) insertPoint(i int, p Point) {
	r.points = slices.Insert(r.points, i, p)
	r.stats.added++
	r.Events.emit(PivotAddedEvent{Rope: r, Index: i, Point: p})
}

// deletePoint removes the point at index i
func (r *Rope) deletePoint(i int) {
	p := r.points[i]
	r.points = slices.Delete(r.points, i, i+1)
	r.stats.removed++
	r.Events.emit(PivotRemovedEvent{Rope: r, Point: p})
}

// exclusions collects the edges the given points rest on, with the whole vertex fan for
// points pinned on a vertex
func (r *Rope) exclusions(indices ...int) sweep.Exclusions {
	exclude := sweep.Exclusions{}
	for _, i := range indices {
		if i < 0 || i >= len(r.points) {
			continue
		}
		a := r.points[i].Attachment
		si, e, ok := a.Edge()
		if !ok {
			continue
		}
		exclude.Add(si, e)
		if v, ok := a.Vertex(); ok {
			exclude.AddVertexFan(r.shapes[si], si, v)
		}
	}
	return exclude
}

func (r *Rope) iterationCap(loop string, iterations int) {
	Logger().Warn("rope sweep reached its iteration cap",
		slog.String("loop", loop),
		slog.Int("iterations", iterations),
		slog.Int("points", len(r.points)),
	)
	r.Events.emit(IterationCapEvent{Rope: r, Loop: loop, Iterations: iterations})
}
