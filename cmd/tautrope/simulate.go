package main

import (
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope"
	"github.com/akmonengine/tautrope/debugdraw"
)

type simulation struct {
	scenario string
	ticks    int
	workers  int
	// grid or rtree
	index  string
	config tautrope.Config
	// Receives the debug primitives when not nil
	canvas *debugdraw.Canvas
}

type outcome struct {
	rope         *tautrope.Rope
	events       map[tautrope.EventType]int
	penetrations []tautrope.Penetration
	// Highest point count seen over the run
	maxPoints int
}

func newIndex(name string) (tautrope.ShapeIndex, error) {
	switch name {
	case "", "grid":
		return tautrope.NewGridIndex(10, 1024), nil
	case "rtree":
		return tautrope.NewRTreeIndex(), nil
	}
	return nil, errors.Errorf("unknown index %q, expected grid or rtree", name)
}

func (s simulation) run() (outcome, error) {
	sc, ok := scenarios[s.scenario]
	if !ok {
		return outcome{}, errors.Errorf("unknown scenario %q", s.scenario)
	}
	if s.ticks < 1 {
		return outcome{}, errors.Errorf("ticks must be at least 1, got %d", s.ticks)
	}
	if err := s.config.Validate(); err != nil {
		return outcome{}, errors.Wrap(err, "invalid configuration")
	}

	index, err := newIndex(s.index)
	if err != nil {
		return outcome{}, err
	}
	scene := tautrope.NewScene(index)
	scene.Workers = s.workers

	shapes, err := sc.shapes()
	if err != nil {
		return outcome{}, errors.Wrapf(err, "building scenario %s", s.scenario)
	}
	for _, sh := range shapes {
		if err := scene.AddShape(sh); err != nil {
			return outcome{}, err
		}
	}

	start, end := sc.anchors(0)
	rope := tautrope.NewRope(start, end, sc.maxLength)
	rope.Config = s.config
	if s.canvas != nil {
		rope.Debug = s.canvas
	}
	scene.AddRope(rope)

	o := outcome{rope: rope, events: make(map[tautrope.EventType]int)}
	for t := tautrope.PIVOT_ADDED; t <= tautrope.EDGE_EXIT; t++ {
		rope.Events.Subscribe(t, func(event tautrope.Event) {
			o.events[event.Type()]++
		})
	}

	for tick := 1; tick <= s.ticks; tick++ {
		rope.Start, rope.End = sc.anchors(float64(tick) / float64(s.ticks))
		scene.Step()
		o.maxPoints = max(o.maxPoints, len(rope.Points()))
	}

	o.penetrations = rope.Penetrations()
	return o, nil
}
