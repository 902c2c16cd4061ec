package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position:        mgl64.Vec3{0, 0, 0},
		Rotation:        mgl64.QuatIdent(),
		InverseRotation: mgl64.QuatIdent(),
	}
}

// SetRotation updates the rotation and keeps its cached inverse in sync
func (t *Transform) SetRotation(rotation mgl64.Quat) {
	t.Rotation = rotation
	t.InverseRotation = rotation.Inverse()
}

// PointToLocal transforms a world-space point into the local frame
func (t Transform) PointToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(point.Sub(t.Position))
}

// PointToWorld transforms a local-space point into the world frame
func (t Transform) PointToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// DirectionToLocal rotates a world-space direction into the local frame
func (t Transform) DirectionToLocal(direction mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(direction)
}

// DirectionToWorld rotates a local-space direction into the world frame
func (t Transform) DirectionToWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(direction)
}
