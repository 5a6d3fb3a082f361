package shape

import "github.com/go-gl/mathgl/mgl64"

// Transform places a shape's local vertices in world space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Apply maps a local position to world space
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	rotation := t.Rotation
	// Zero quaternion means the caller left Rotation unset
	if rotation.W == 0 && rotation.V.LenSqr() == 0 {
		rotation = mgl64.QuatIdent()
	}
	return rotation.Rotate(local).Add(t.Position)
}
