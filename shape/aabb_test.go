package shape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected bool
	}{
		{
			name:     "Separated on X axis",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:    AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}},
			expected: false,
		},
		{
			name:     "Separated on Z axis (negative)",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:    AABB{Min: mgl64.Vec3{0, 0, -2}, Max: mgl64.Vec3{1, 1, -1}},
			expected: false,
		},
		{
			name:     "Partial overlap",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2:    AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}},
			expected: true,
		},
		{
			name:     "Face touching",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:    AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}},
			expected: true,
		},
		{
			name:     "Zero volume inside",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2:    AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{1, 1, 1}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb1.Overlaps(tt.aabb2); got != tt.expected {
				t.Errorf("Overlaps() = %v, want %v", got, tt.expected)
			}
			if got := tt.aabb2.Overlaps(tt.aabb1); got != tt.expected {
				t.Errorf("Overlaps() symmetry = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"Center", mgl64.Vec3{0, 0, 0}, true},
		{"Corner", mgl64.Vec3{1, 1, 1}, true},
		{"Face center", mgl64.Vec3{0, 0, -1}, true},
		{"Outside X", mgl64.Vec3{1.001, 0, 0}, false},
		{"Outside Z", mgl64.Vec3{0, 0, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	box := BoundsOf(
		mgl64.Vec3{1, -2, 3},
		mgl64.Vec3{-4, 5, 0},
		mgl64.Vec3{0, 0, -6},
	)

	if !vec3Equal(box.Min, mgl64.Vec3{-4, -2, -6}, 1e-12) {
		t.Errorf("Min = %v, want (-4, -2, -6)", box.Min)
	}
	if !vec3Equal(box.Max, mgl64.Vec3{1, 5, 3}, 1e-12) {
		t.Errorf("Max = %v, want (1, 5, 3)", box.Max)
	}
	if !vec3Equal(box.Size(), mgl64.Vec3{5, 7, 9}, 1e-12) {
		t.Errorf("Size = %v, want (5, 7, 9)", box.Size())
	}

	if empty := BoundsOf(); empty != (AABB{}) {
		t.Errorf("BoundsOf() with no points = %v, want zero box", empty)
	}
}

func TestAABBExpand(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}.Expand(0.5)

	if !vec3Equal(box.Min, mgl64.Vec3{-0.5, -0.5, -0.5}, 1e-12) {
		t.Errorf("Min = %v", box.Min)
	}
	if !vec3Equal(box.Max, mgl64.Vec3{1.5, 1.5, 1.5}, 1e-12) {
		t.Errorf("Max = %v", box.Max)
	}
}
