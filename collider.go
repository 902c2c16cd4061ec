package stride

import (
	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Collider is a static piece of scene geometry: a shape at a fixed pose.
// Colliders never move on their own; call Scene.Refresh after mutating a
// transform so the broad phase is rebuilt.
type Collider struct {
	// Id is an optional caller-assigned identifier (a name, an entity
	// handle). It is carried through to the Hit a sweep reports so
	// consumers can tell what was struck.
	Id        any
	Transform actor.Transform
	Shape     actor.ShapeInterface
}

// NewCollider creates a collider, normalizing a zero-value rotation to
// identity and caching its inverse
func NewCollider(transform actor.Transform, shape actor.ShapeInterface) *Collider {
	if transform.Rotation == (mgl64.Quat{}) {
		transform.Rotation = mgl64.QuatIdent()
	}
	transform.InverseRotation = transform.Rotation.Inverse()

	shape.ComputeAABB(transform)

	return &Collider{
		Transform: transform,
		Shape:     shape,
	}
}
