package gjk

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func boxHull(center, halfExtents mgl64.Vec3) Hull {
	points := make([]mgl64.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		p := halfExtents
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) == 0 {
				p[axis] = -p[axis]
			}
		}
		points = append(points, center.Add(p))
	}
	return NewHull(points)
}

func TestSegmentSupport(t *testing.T) {
	s := Segment{A: mgl64.Vec3{-1, 0, 0}, B: mgl64.Vec3{1, 2, 0}}

	tests := []struct {
		name      string
		direction mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{"toward B", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 2, 0}},
		{"toward A", mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{-1, 0, 0}},
		{"perpendicular keeps A", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Support(tt.direction); got != tt.expected {
				t.Errorf("Support(%v) = %v, want %v", tt.direction, got, tt.expected)
			}
		})
	}

	if got := s.Center(); got != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("Center() = %v, want (0,1,0)", got)
	}
}

func TestHullShrink(t *testing.T) {
	hull := boxHull(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1})
	shrunk := hull.Shrink(0.1)

	if shrunk.Center() != hull.Center() {
		t.Errorf("Center moved from %v to %v", hull.Center(), shrunk.Center())
	}
	for i, p := range shrunk.Points {
		before := hull.Points[i].Sub(hull.Center()).Len()
		after := p.Sub(shrunk.Center()).Len()
		if math.Abs(before-after-0.1) > 1e-12 {
			t.Errorf("point %d moved %v toward the center, want 0.1", i, before-after)
		}
	}

	collapsed := hull.Shrink(10)
	for i, p := range collapsed.Points {
		if p != hull.Center() {
			t.Errorf("point %d = %v, want center", i, p)
		}
	}
}

func TestMinkowskiSupport(t *testing.T) {
	a := boxHull(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := boxHull(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})

	got := MinkowskiSupport(a, b, mgl64.Vec3{1, 0, 0})
	// furthest of A along +X is x=1, furthest of B along -X is x=2
	if got.X() != -1 {
		t.Errorf("MinkowskiSupport().X = %v, want -1", got.X())
	}
}

func TestGJK_SegmentHull(t *testing.T) {
	box := boxHull(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})

	tests := []struct {
		name     string
		segment  Segment
		hull     Hull
		expected bool
	}{
		{
			name:     "Crossing through the center",
			segment:  Segment{A: mgl64.Vec3{-20, 0, 0}, B: mgl64.Vec3{20, 0, 0}},
			hull:     box,
			expected: true,
		},
		{
			name:     "Crossing off center",
			segment:  Segment{A: mgl64.Vec3{-20, 3, -4}, B: mgl64.Vec3{20, 5, 2}},
			hull:     box,
			expected: true,
		},
		{
			name:     "Ending inside",
			segment:  Segment{A: mgl64.Vec3{0, -50, 0}, B: mgl64.Vec3{1, 1, 1}},
			hull:     box,
			expected: true,
		},
		{
			name:     "Fully inside",
			segment:  Segment{A: mgl64.Vec3{-1, 0, 0}, B: mgl64.Vec3{1, 0, 0}},
			hull:     box,
			expected: true,
		},
		{
			name:     "Passing above",
			segment:  Segment{A: mgl64.Vec3{-20, 0, 20}, B: mgl64.Vec3{20, 0, 20}},
			hull:     box,
			expected: false,
		},
		{
			name:     "Passing beside",
			segment:  Segment{A: mgl64.Vec3{15, -20, 0}, B: mgl64.Vec3{15, 20, 0}},
			hull:     box,
			expected: false,
		},
		{
			name:     "Resting on an edge of the shrunk hull",
			segment:  Segment{A: mgl64.Vec3{0, 0, 20}, B: mgl64.Vec3{20, 0, 0}},
			hull:     box.Shrink(0.01),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.segment, tt.hull); got != tt.expected {
				t.Errorf("Intersects() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGJK_HullHull(t *testing.T) {
	a := boxHull(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})

	if !Intersects(a, boxHull(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})) {
		t.Error("overlapping boxes should intersect")
	}
	if Intersects(a, boxHull(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})) {
		t.Error("separated boxes should not intersect")
	}
}

func TestLine(t *testing.T) {
	t.Run("origin near line", func(t *testing.T) {
		simplex := Simplex{Points: [4]mgl64.Vec3{{-1, 1, 0}, {1, 1, 0}}, Count: 2}
		direction := mgl64.Vec3{0, 1, 0}

		if line(&simplex, &direction) {
			t.Error("Line not passing through origin should not contain it")
		}
		if simplex.Count != 2 {
			t.Errorf("Expected simplex length 2, got %d", simplex.Count)
		}
	})

	t.Run("origin in the middle of the segment", func(t *testing.T) {
		simplex := Simplex{Points: [4]mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}}, Count: 2}
		direction := mgl64.Vec3{0, 1, 0}

		if !line(&simplex, &direction) {
			t.Error("Line through the origin should contain it")
		}
	})

	t.Run("origin behind point A", func(t *testing.T) {
		simplex := Simplex{Points: [4]mgl64.Vec3{{3, 0, 0}, {1, 0, 0}}, Count: 2}
		direction := mgl64.Vec3{-1, 0, 0}

		if line(&simplex, &direction) {
			t.Error("Line should not contain origin")
		}
		if simplex.Count != 1 {
			t.Errorf("Expected simplex reduced to 1 point, got %d", simplex.Count)
		}
		if direction != (mgl64.Vec3{-1, 0, 0}) {
			t.Errorf("Expected direction (-1,0,0), got %v", direction)
		}
	})
}

func TestTriangle(t *testing.T) {
	t.Run("origin above triangle", func(t *testing.T) {
		simplex := Simplex{Points: [4]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 0.5}}, Count: 3}
		direction := mgl64.Vec3{0, 0, 1}

		if triangle(&simplex, &direction) {
			t.Error("Triangle should never contain origin in 3D")
		}
		if simplex.Count != 3 {
			t.Errorf("Expected simplex to remain a triangle, got %d points", simplex.Count)
		}
	})

	t.Run("origin in AB edge region", func(t *testing.T) {
		simplex := Simplex{Points: [4]mgl64.Vec3{{3, 3, 0}, {0, 2, 0}, {2, 0, 0}}, Count: 3}
		direction := mgl64.Vec3{0, 0, 1}

		if triangle(&simplex, &direction) {
			t.Error("Triangle should never contain origin in 3D")
		}
		if simplex.Count != 2 {
			t.Errorf("Expected simplex reduced to an edge, got %d points", simplex.Count)
		}
	})
}

func TestTetrahedron(t *testing.T) {
	t.Run("origin inside", func(t *testing.T) {
		simplex := Simplex{
			Points: [4]mgl64.Vec3{{-1, -1, -1}, {1, 1, -1}, {1, -1, 1}, {-1, 1, 1}},
			Count:  4,
		}
		direction := mgl64.Vec3{0, 0, 1}

		if !tetrahedron(&simplex, &direction) {
			t.Error("Expected tetrahedron to contain origin")
		}
	})

	t.Run("origin outside", func(t *testing.T) {
		simplex := Simplex{
			Points: [4]mgl64.Vec3{{5, 5, 5}, {6, 5, 5}, {5, 6, 5}, {5, 5, 6}},
			Count:  4,
		}
		direction := mgl64.Vec3{0, 0, 1}

		if tetrahedron(&simplex, &direction) {
			t.Error("Expected origin outside tetrahedron")
		}
		if simplex.Count > 3 {
			t.Errorf("Expected simplex reduced to a triangle, got %d points", simplex.Count)
		}
	})
}

func BenchmarkGJK_SegmentHull(b *testing.B) {
	box := boxHull(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}).Shrink(0.01)
	segment := Segment{A: mgl64.Vec3{-20, 3, -4}, B: mgl64.Vec3{20, 5, 2}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Intersects(segment, box)
	}
}
