// Package stride is a kinematic character movement engine: an iterative
// sweep-and-slide displacement resolver plus the locomotion state machine
// that decides when a character walks, idles or falls. It is not a dynamics
// simulation: there are no forces, masses or impulses, only geometry queries
// resolving one actor's desired displacement against scene geometry each
// tick.
package stride

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is the transient result of a shape sweep. It is only valid for the
// tick that produced it and must never be cached across ticks.
type Hit struct {
	// Struck reports whether any scene geometry was hit
	Struck bool
	// Distance to the closest hit along the sweep direction,
	// positive infinity when nothing was struck
	Distance float64
	// Normal is the surface normal at the contact, pointing away
	// from the struck geometry
	Normal mgl64.Vec3
	// Collider is the struck scene geometry; nil on a miss, and nil for
	// backends without collider identity
	Collider *Collider
}

// NoHit returns the canonical miss result
func NoHit() Hit {
	return Hit{Distance: math.Inf(1)}
}

// Sweeper is the shape-cast contract the movement engine consumes: sweep the
// bound capsule from a pose along a direction for at most maxDistance and
// report the closest qualifying hit. Implementations must treat direction as
// a unit vector and maxDistance as non-negative, never report the querying
// actor's own shape, and when several hits share the exact minimum distance
// may return any one of them. A pure query: no mutation, no caching.
type Sweeper interface {
	Sweep(position mgl64.Vec3, orientation mgl64.Quat, direction mgl64.Vec3, maxDistance float64) Hit
}
