package tautrope

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/tautrope/shape"
)

const (
	PIVOT_ADDED EventType = iota
	PIVOT_REMOVED
	PIVOT_RELOCATED
	VERTEX_SLIDE
	ITERATION_CAP
	EDGE_ENTER
	EDGE_STAY
	EDGE_EXIT
)

// edgeKey identifies an edge independently of the order shapes were appended to a rope
type edgeKey struct {
	shape *shape.Shape
	edge  int
}

type EventType uint8

var eventNames = [...]string{
	PIVOT_ADDED:     "pivot added",
	PIVOT_REMOVED:   "pivot removed",
	PIVOT_RELOCATED: "pivot relocated",
	VERTEX_SLIDE:    "vertex slide",
	ITERATION_CAP:   "iteration cap",
	EDGE_ENTER:      "edge enter",
	EDGE_STAY:       "edge stay",
	EDGE_EXIT:       "edge exit",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Pivot events
type PivotAddedEvent struct {
	Rope  *Rope
	Index int
	Point Point
}

func (e PivotAddedEvent) Type() EventType { return PIVOT_ADDED }

type PivotRemovedEvent struct {
	Rope  *Rope
	Point Point
}

func (e PivotRemovedEvent) Type() EventType { return PIVOT_REMOVED }

// PivotRelocatedEvent is sent when a pivot marked for removal is moved onto an edge it would
// otherwise have cut through.
type PivotRelocatedEvent struct {
	Rope *Rope
	From mgl64.Vec3
	To   Point
}

func (e PivotRelocatedEvent) Type() EventType { return PIVOT_RELOCATED }

type VertexSlideEvent struct {
	Rope   *Rope
	Shape  int
	Vertex int
	Edge   int
}

func (e VertexSlideEvent) Type() EventType { return VERTEX_SLIDE }

// IterationCapEvent is sent when a sweep loop stops before converging.
// The rope keeps its best known shape for the tick.
type IterationCapEvent struct {
	Rope       *Rope
	Loop       string
	Iterations int
}

func (e IterationCapEvent) Type() EventType { return ITERATION_CAP }

// Edge contact events
type EdgeEnterEvent struct {
	Rope  *Rope
	Shape *shape.Shape
	Edge  int
}

func (e EdgeEnterEvent) Type() EventType { return EDGE_ENTER }

type EdgeStayEvent struct {
	Rope  *Rope
	Shape *shape.Shape
	Edge  int
}

func (e EdgeStayEvent) Type() EventType { return EDGE_STAY }

type EdgeExitEvent struct {
	Rope  *Rope
	Shape *shape.Shape
	Edge  int
}

func (e EdgeExitEvent) Type() EventType { return EDGE_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Edge tracking for Enter/Stay/Exit detection
	previousEdges map[edgeKey]bool
	currentEdges  map[edgeKey]bool
	// Insertion order of currentEdges, so events are sent deterministically
	currentOrder  []edgeKey
	previousOrder []edgeKey
}

func NewEvents() Events {
	return Events{
		listeners:     make(map[EventType][]EventListener),
		buffer:        make([]Event, 0, 64),
		previousEdges: make(map[edgeKey]bool),
		currentEdges:  make(map[edgeKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	if len(e.listeners[event.Type()]) == 0 {
		return
	}
	e.buffer = append(e.buffer, event)
}

// touch records an edge the rope rests on at the end of the tick
func (e *Events) touch(s *shape.Shape, edge int) {
	if e.currentEdges == nil {
		*e = NewEvents()
	}
	key := edgeKey{shape: s, edge: edge}
	if e.currentEdges[key] {
		return
	}
	e.currentEdges[key] = true
	e.currentOrder = append(e.currentOrder, key)
}

// resetTouched drops the edges of a tick that was never flushed
func (e *Events) resetTouched() {
	clear(e.currentEdges)
	e.currentOrder = e.currentOrder[:0]
}

// processEdgeEvents compares current and previous edges to detect Enter/Stay/Exit
func (e *Events) processEdgeEvents(rope *Rope) {
	for _, key := range e.currentOrder {
		if e.previousEdges[key] {
			e.emit(EdgeStayEvent{Rope: rope, Shape: key.shape, Edge: key.edge})
		} else {
			e.emit(EdgeEnterEvent{Rope: rope, Shape: key.shape, Edge: key.edge})
		}
	}

	for _, key := range e.previousOrder {
		if !e.currentEdges[key] {
			e.emit(EdgeExitEvent{Rope: rope, Shape: key.shape, Edge: key.edge})
		}
	}

	// Swap for next tick and clear current
	e.previousEdges, e.currentEdges = e.currentEdges, e.previousEdges
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
	clear(e.currentEdges)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush(rope *Rope) {
	if e.listeners == nil {
		return
	}
	e.processEdgeEvents(rope)

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
