package tautrope

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/shape"
)

// minRectLength pads flat bounds, the tree rejects zero length sides
const minRectLength = 1e-6

// rtreeEntry wraps a shape for the tree
type rtreeEntry struct {
	id    int
	shape *shape.Shape
	rect  rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

// RTreeIndex is an R-tree over shape bounds
type RTreeIndex struct {
	tree  *rtreego.Rtree
	count int
}

func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{
		tree: rtreego.NewTree(3, 25, 50),
	}
}

func (ix *RTreeIndex) Len() int {
	return ix.count
}

func (ix *RTreeIndex) Insert(s *shape.Shape) error {
	if s == nil {
		return errors.New("rtree index: nil shape")
	}
	rect, err := aabbToRect(s.AABB())
	if err != nil {
		return errors.Wrap(err, "rtree index: could not define shape bounds")
	}

	ix.tree.Insert(&rtreeEntry{id: ix.count, shape: s, rect: rect})
	ix.count++
	return nil
}

func (ix *RTreeIndex) Query(box shape.AABB) []*shape.Shape {
	rect, err := aabbToRect(box)
	if err != nil {
		Logger().Warn("rtree index: invalid query bounds", "error", err)
		return nil
	}

	matches := ix.tree.SearchIntersect(rect)
	entries := make([]*rtreeEntry, len(matches))
	for i, m := range matches {
		entries[i] = m.(*rtreeEntry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})

	found := make([]*shape.Shape, len(entries))
	for i, e := range entries {
		found[i] = e.shape
	}
	return found
}

func aabbToRect(box shape.AABB) (rtreego.Rect, error) {
	size := box.Size()
	lengths := []float64{
		math.Max(size.X(), minRectLength),
		math.Max(size.Y(), minRectLength),
		math.Max(size.Z(), minRectLength),
	}
	return rtreego.NewRect(rtreego.Point{box.Min.X(), box.Min.Y(), box.Min.Z()}, lengths)
}
