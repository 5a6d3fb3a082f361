package tautrope

import (
	"github.com/akmonengine/tautrope/shape"
)

// ShapeIndex finds the shapes near a region, so a Scene only hands each rope the obstacles
// it can reach. Query returns shapes in insertion order.
type ShapeIndex interface {
	Insert(s *shape.Shape) error
	Query(box shape.AABB) []*shape.Shape
	Len() int
}
