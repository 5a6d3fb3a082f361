package tautrope

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akmonengine/tautrope/shape"
)

func TestWorldToCell(t *testing.T) {
	grid := NewGridIndex(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"Origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"Positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"Negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"Fractional", mgl64.Vec3{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"Large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, grid.worldToCell(tt.position))
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewGridIndex(1.0, 16)

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"Origin", CellKey{0, 0, 0}, 0},
		{"Simple", CellKey{1, 2, 3}, 6},
		{"Negative", CellKey{-1, -2, -3}, 10},
		{"Large", CellKey{100, 200, 300}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			assert.GreaterOrEqual(t, result, 0)
			assert.Less(t, result, len(grid.cells))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for n, expected := range map[int]int{-3: 1, 0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024} {
		assert.Equal(t, expected, nextPowerOfTwo(n), "nextPowerOfTwo(%d)", n)
	}
}

func indexShapes(t *testing.T) []*shape.Shape {
	return []*shape.Shape{
		boxShape(t, mgl64.Vec3{0, 0, 0}, 1),
		boxShape(t, mgl64.Vec3{50, 0, 0}, 1),
		boxShape(t, mgl64.Vec3{-30, 20, 0}, 5),
		singleEdgeShape(t),
	}
}

func TestShapeIndex(t *testing.T) {
	indices := map[string]func() ShapeIndex{
		"Grid":       func() ShapeIndex { return NewGridIndex(10, 1024) },
		"Small grid": func() ShapeIndex { return NewGridIndex(1, 8) },
		"RTree":      func() ShapeIndex { return NewRTreeIndex() },
	}

	for name, newIndex := range indices {
		t.Run(name, func(t *testing.T) {
			shapes := indexShapes(t)
			index := newIndex()
			for _, s := range shapes {
				require.NoError(t, index.Insert(s))
			}
			assert.Equal(t, len(shapes), index.Len())

			// Around the origin: the small box and the edge through it
			found := index.Query(shape.AABB{Min: mgl64.Vec3{-2, -2, -2}, Max: mgl64.Vec3{2, 2, 2}})
			assert.Equal(t, []*shape.Shape{shapes[0], shapes[3]}, found)

			found = index.Query(shape.AABB{Min: mgl64.Vec3{45, -5, -5}, Max: mgl64.Vec3{55, 5, 5}})
			assert.Equal(t, []*shape.Shape{shapes[1]}, found)

			found = index.Query(shape.AABB{Min: mgl64.Vec3{200, 200, 200}, Max: mgl64.Vec3{210, 210, 210}})
			assert.Empty(t, found)

			// Covers everything, in insertion order
			found = index.Query(shape.AABB{Min: mgl64.Vec3{-1000, -1000, -1000}, Max: mgl64.Vec3{1000, 1000, 1000}})
			assert.Equal(t, shapes, found)

			assert.Error(t, index.Insert(nil))
		})
	}
}

func TestGridIndex_InvalidCellSize(t *testing.T) {
	grid := NewGridIndex(0, 16)
	assert.Error(t, grid.Insert(boxShape(t, mgl64.Vec3{}, 1)))
	assert.Equal(t, 0, grid.Len())
}

func BenchmarkGridIndex_Query(b *testing.B) {
	grid := NewGridIndex(10, 1024)
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			if err := grid.Insert(boxShape(b, mgl64.Vec3{float64(x) * 30, float64(y) * 30, 0}, 5)); err != nil {
				b.Fatal(err)
			}
		}
	}
	box := shape.AABB{Min: mgl64.Vec3{100, 100, -10}, Max: mgl64.Vec3{200, 200, 10}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Query(box)
	}
}
