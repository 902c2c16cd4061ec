package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planeExtent is the pseudo-infinite size used when bounding a plane.
// Planes never enter the broad phase, the AABB only exists to satisfy the
// shape contract.
const planeExtent = 1e10

// ShapeInterface is the interface that all collision shapes must implement.
//
// SegmentDistance is the query everything else is built on: shape casts
// advance conservatively on it and overlap checks compare it against the
// probing capsule's radius. Shapes expose a distance function instead of
// their full geometry.
type ShapeInterface interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// SegmentDistance returns the distance from the shape surface to the
	// segment [a, b] in shape-local space (negative when the segment enters
	// the shape), the closest point on the surface, and the outward surface
	// normal at that point.
	SegmentDistance(a, b mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3)
}

// Capsule is a cylinder with hemispherical caps: the collision volume of a
// character, and also usable as scene geometry. The axis runs along local Y;
// Offset displaces the capsule center from the owning transform. Height is
// the full end-to-end height, caps included. Immutable once validated.
type Capsule struct {
	Offset mgl64.Vec3
	Radius float64
	Height float64

	aabb AABB
}

// Validate checks the capsule dimensions once at setup time. A capsule that
// fails here is a configuration error; per-tick code assumes it passed.
func (c *Capsule) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("capsule: radius must be positive, got %g", c.Radius)
	}
	if c.Height < 2*c.Radius {
		return fmt.Errorf("capsule: height %g is smaller than two radii (%g)", c.Height, 2*c.Radius)
	}
	return nil
}

// HalfAxis is the half-length of the inner segment between the cap centers
func (c *Capsule) HalfAxis() float64 {
	return c.Height/2 - c.Radius
}

// Segment returns the world-space cap centers for the given pose
func (c *Capsule) Segment(position mgl64.Vec3, orientation mgl64.Quat) (mgl64.Vec3, mgl64.Vec3) {
	center := position.Add(orientation.Rotate(c.Offset))
	half := orientation.Rotate(mgl64.Vec3{0, c.HalfAxis(), 0})
	return center.Sub(half), center.Add(half)
}

func (c *Capsule) ComputeAABB(transform Transform) {
	a, b := c.Segment(transform.Position, transform.Rotation)
	c.aabb = SegmentAABB(a, b, c.Radius)
}

func (c *Capsule) GetAABB() AABB {
	return c.aabb
}

func (c *Capsule) SegmentDistance(a, b mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3) {
	half := mgl64.Vec3{0, c.HalfAxis(), 0}
	onAxis, onSegment := ClosestPointsSegmentSegment(c.Offset.Sub(half), c.Offset.Add(half), a, b)

	delta := onSegment.Sub(onAxis)
	d := delta.Len()
	if d < 1e-9 {
		// segment crosses the capsule axis, any radial direction works
		normal := mgl64.Vec3{1, 0, 0}
		return -c.Radius, onAxis.Add(normal.Mul(c.Radius)), normal
	}

	normal := delta.Mul(1 / d)
	return d - c.Radius, onAxis.Add(normal.Mul(c.Radius)), normal
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64

	aabb AABB
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	s.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) SegmentDistance(a, b mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3) {
	p := ClosestPointOnSegment(a, b, mgl64.Vec3{})

	d := p.Len()
	if d < 1e-9 {
		// segment crosses the center, any direction works
		normal := mgl64.Vec3{1, 0, 0}
		return -s.Radius, normal.Mul(s.Radius), normal
	}

	normal := p.Mul(1 / d)
	return d - s.Radius, normal.Mul(s.Radius), normal
}

// Box represents an oriented box collision shape, defined by its half-extents
type Box struct {
	HalfExtents mgl64.Vec3

	aabb AABB
}

func (b *Box) ComputeAABB(transform Transform) {
	// Project each rotated half-axis onto the world axes; the absolute sums
	// give the rotated box extent along each axis.
	rot := transform.Rotation.Mat4().Mat3()

	var extent mgl64.Vec3
	for i := 0; i < 3; i++ {
		extent[i] = math.Abs(rot.At(i, 0))*b.HalfExtents.X() +
			math.Abs(rot.At(i, 1))*b.HalfExtents.Y() +
			math.Abs(rot.At(i, 2))*b.HalfExtents.Z()
	}

	b.aabb = AABB{
		Min: transform.Position.Sub(extent),
		Max: transform.Position.Add(extent),
	}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

// closestPoint clamps a local-space point onto the box volume
func (b *Box) closestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p.X(), -b.HalfExtents.X(), b.HalfExtents.X()),
		mgl64.Clamp(p.Y(), -b.HalfExtents.Y(), b.HalfExtents.Y()),
		mgl64.Clamp(p.Z(), -b.HalfExtents.Z(), b.HalfExtents.Z()),
	}
}

func (b *Box) SegmentDistance(a, bEnd mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3) {
	// The distance from a point to a convex volume is a convex function, and
	// the segment is an affine path through it, so the distance along the
	// segment is convex in t: a ternary search converges to the global
	// minimum.
	segment := func(t float64) mgl64.Vec3 {
		return a.Add(bEnd.Sub(a).Mul(t))
	}
	distance := func(t float64) float64 {
		p := segment(t)
		return p.Sub(b.closestPoint(p)).Len()
	}

	lo, hi := 0.0, 1.0
	for i := 0; i < 48; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if distance(m1) <= distance(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}

	p := segment((lo + hi) / 2)
	surface := b.closestPoint(p)
	delta := p.Sub(surface)
	d := delta.Len()
	if d > 1e-9 {
		return d, surface, delta.Mul(1 / d)
	}

	// The closest segment point is inside the box: the penetration depth is
	// the gap to the nearest face, the normal that face's outward axis.
	axis := 0
	gap := math.Inf(1)
	for i := 0; i < 3; i++ {
		g := b.HalfExtents[i] - math.Abs(p[i])
		if g < gap {
			gap = g
			axis = i
		}
	}

	var normal mgl64.Vec3
	if p[axis] >= 0 {
		normal[axis] = 1
		surface = p
		surface[axis] = b.HalfExtents[axis]
	} else {
		normal[axis] = -1
		surface = p
		surface[axis] = -b.HalfExtents[axis]
	}

	return -gap, surface, normal
}

// Plane represents an infinite plane collision shape.
// The plane is defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the origin along the normal.
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)

	aabb AABB
}

func (p *Plane) ComputeAABB(transform Transform) {
	extent := mgl64.Vec3{planeExtent, planeExtent, planeExtent}
	p.aabb = AABB{Min: extent.Mul(-1), Max: extent}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

func (p *Plane) SegmentDistance(a, b mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3) {
	sda := p.Normal.Dot(a) + p.Distance
	sdb := p.Normal.Dot(b) + p.Distance

	closest := a
	sd := sda
	if sdb < sda {
		closest = b
		sd = sdb
	}

	return sd, closest.Sub(p.Normal.Mul(sd)), p.Normal
}
