package tautrope

import (
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 4, 16} {
		items := make([]int, 10)
		for i := range items {
			items[i] = i + 1
		}

		var sum atomic.Int64
		task(workers, items, func(item int) {
			sum.Add(int64(item))
		})
		assert.Equal(t, int64(55), sum.Load(), "workers = %d", workers)
	}

	task(4, []int(nil), func(int) { t.Error("fn called on empty input") })
}

func TestScene_Discovery(t *testing.T) {
	scene := NewScene(nil)
	near := boxShape(t, mgl64.Vec3{}, 10)
	far := boxShape(t, mgl64.Vec3{1000, 0, 0}, 10)
	require.NoError(t, scene.AddShape(near))
	require.NoError(t, scene.AddShape(far))

	rope := NewRope(mgl64.Vec3{-100, 0, 50}, mgl64.Vec3{100, 0, 50}, 1000)
	scene.AddRope(rope)
	rope.Start = mgl64.Vec3{-100, 0, -50}
	rope.End = mgl64.Vec3{100, 0, -50}

	scene.Step()

	assert.True(t, rope.HasShape(near))
	assert.False(t, rope.HasShape(far))
	assert.Len(t, rope.Points(), 4)

	// A second step does not append the same shape twice
	scene.Step()
	assert.Len(t, rope.Shapes(), 1)
}

func TestScene_ParallelRopes(t *testing.T) {
	scene := NewScene(NewRTreeIndex())
	scene.Workers = 4
	require.NoError(t, scene.AddShape(boxShape(t, mgl64.Vec3{}, 10)))

	var entered atomic.Int32
	for _, y := range []float64{-5, 0, 5} {
		rope := NewRope(mgl64.Vec3{-100, y, 50}, mgl64.Vec3{100, y, 50}, 1000)
		rope.Events.Subscribe(EDGE_ENTER, func(Event) { entered.Add(1) })
		scene.AddRope(rope)
		rope.Start = mgl64.Vec3{-100, y, -50}
		rope.End = mgl64.Vec3{100, y, -50}
	}

	scene.Step()

	for _, rope := range scene.Ropes {
		points := rope.Points()
		require.Len(t, points, 4)
		y := points[0].Y()
		assert.InDelta(t, -10, points[1].X(), 1e-9)
		assert.InDelta(t, y, points[1].Y(), 1e-9)
		assert.InDelta(t, 10, points[2].X(), 1e-9)
	}
	assert.Equal(t, int32(6), entered.Load())
}

func TestScene_RemoveRope(t *testing.T) {
	scene := NewScene(nil)
	a := NewRope(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 10)
	b := NewRope(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 10)
	scene.AddRope(a)
	scene.AddRope(b)

	scene.RemoveRope(a)
	assert.Equal(t, []*Rope{b}, scene.Ropes)

	// Unknown ropes are ignored
	scene.RemoveRope(a)
	assert.Len(t, scene.Ropes, 1)
}

func TestScene_AddShapeError(t *testing.T) {
	scene := NewScene(nil)
	assert.Error(t, scene.AddShape(nil))
}
