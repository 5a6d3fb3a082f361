package tautrope

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/akmonengine/tautrope/shape"
)

// CellKey is the integer coordinate of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Cell holds the ids of the shapes overlapping it
type Cell struct {
	shapeIds []int
}

// GridIndex is a uniform hashed grid over shape bounds.
// Distinct cells may share a bucket; queries filter candidates on their bounds.
type GridIndex struct {
	cellSize float64
	cells    []Cell
	cellMask int
	shapes   []*shape.Shape
	// Bound on the cells walked by a single insert or query, beyond which every bucket is scanned
	maxWalk int
}

// NewGridIndex creates a grid of numCells buckets, rounded up to a power of two
func NewGridIndex(cellSize float64, numCells int) *GridIndex {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].shapeIds = make([]int, 0, 4)
	}

	return &GridIndex{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
		maxWalk:  numCells * 4,
	}
}

// nextPowerOfTwo rounds n up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

func (g *GridIndex) Len() int {
	return len(g.shapes)
}

// Insert adds the shape to every bucket its bounds cover
func (g *GridIndex) Insert(s *shape.Shape) error {
	if s == nil {
		return errors.New("grid index: nil shape")
	}
	if g.cellSize <= 0 {
		return errors.Errorf("grid index: cell size must be positive, got %v", g.cellSize)
	}

	id := len(g.shapes)
	g.shapes = append(g.shapes, s)

	g.visit(s.AABB(), func(cellIdx int) {
		ids := g.cells[cellIdx].shapeIds
		// Neighbouring cells often hash to the same bucket
		if len(ids) > 0 && ids[len(ids)-1] == id {
			return
		}
		g.cells[cellIdx].shapeIds = append(ids, id)
	})
	return nil
}

// Query returns the shapes whose bounds overlap box
func (g *GridIndex) Query(box shape.AABB) []*shape.Shape {
	seen := make(map[int]bool)
	var ids []int

	g.visit(box, func(cellIdx int) {
		for _, id := range g.cells[cellIdx].shapeIds {
			if seen[id] {
				continue
			}
			seen[id] = true
			if g.shapes[id].AABB().Overlaps(box) {
				ids = append(ids, id)
			}
		}
	})

	sort.Ints(ids)
	found := make([]*shape.Shape, len(ids))
	for i, id := range ids {
		found[i] = g.shapes[id]
	}
	return found
}

// visit calls fn with the bucket of every cell covered by box.
// Boxes spanning more cells than the grid has buckets visit every bucket once instead.
func (g *GridIndex) visit(box shape.AABB, fn func(cellIdx int)) {
	minCell := g.worldToCell(box.Min)
	maxCell := g.worldToCell(box.Max)

	span := (maxCell.X - minCell.X + 1) * (maxCell.Y - minCell.Y + 1) * (maxCell.Z - minCell.Z + 1)
	if span <= 0 || span > g.maxWalk {
		for i := range g.cells {
			fn(i)
		}
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				fn(g.hashCell(CellKey{x, y, z}))
			}
		}
	}
}

// worldToCell converts a world position to cell coordinates
func (g *GridIndex) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

// hashCell maps a cell to its bucket
func (g *GridIndex) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
