package tautrope

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type AttachmentKind uint8

const (
	FREE AttachmentKind = iota
	ON_EDGE
	ON_VERTEX
)

func (k AttachmentKind) String() string {
	switch k {
	case ON_EDGE:
		return "edge"
	case ON_VERTEX:
		return "vertex"
	default:
		return "free"
	}
}

// Attachment says what a rope point rests on.
// A point on a vertex always keeps the edge it reached the vertex from.
type Attachment struct {
	kind   AttachmentKind
	shape  int
	edge   int
	vertex int
}

func FreeAttachment() Attachment {
	return Attachment{kind: FREE}
}

// EdgeAttachment rests a point on edge of the rope's shape at index shape
func EdgeAttachment(shape, edge int) Attachment {
	return Attachment{kind: ON_EDGE, shape: shape, edge: edge}
}

// VertexAttachment pins a point on vertex, reached along edge
func VertexAttachment(shape, edge, vertex int) Attachment {
	return Attachment{kind: ON_VERTEX, shape: shape, edge: edge, vertex: vertex}
}

func (a Attachment) Kind() AttachmentKind {
	return a.kind
}

func (a Attachment) IsFree() bool {
	return a.kind == FREE
}

// Edge returns the shape and edge the point rests on. ok is false for free points.
func (a Attachment) Edge() (shape, edge int, ok bool) {
	if a.kind == FREE {
		return 0, 0, false
	}
	return a.shape, a.edge, true
}

// Vertex returns the pinned vertex. ok is false unless the point is on a vertex.
func (a Attachment) Vertex() (vertex int, ok bool) {
	if a.kind != ON_VERTEX {
		return 0, false
	}
	return a.vertex, true
}

// WithoutVertex drops the vertex pin, leaving the point on its edge
func (a Attachment) WithoutVertex() Attachment {
	if a.kind == ON_VERTEX {
		return EdgeAttachment(a.shape, a.edge)
	}
	return a
}

// SameEdge reports whether both attachments rest on the same edge of the same shape
func (a Attachment) SameEdge(other Attachment) bool {
	s1, e1, ok1 := a.Edge()
	s2, e2, ok2 := other.Edge()
	return ok1 && ok2 && s1 == s2 && e1 == e2
}

func (a Attachment) String() string {
	switch a.kind {
	case ON_EDGE:
		return fmt.Sprintf("edge(shape=%d edge=%d)", a.shape, a.edge)
	case ON_VERTEX:
		return fmt.Sprintf("vertex(shape=%d edge=%d vertex=%d)", a.shape, a.edge, a.vertex)
	default:
		return "free"
	}
}

// Point is one vertex of the rope polyline
type Point struct {
	Location   mgl64.Vec3
	Attachment Attachment
}

func freePoint(location mgl64.Vec3) Point {
	return Point{Location: location, Attachment: FreeAttachment()}
}
