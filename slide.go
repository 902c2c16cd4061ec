package stride

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// motionEpsilon stops the bounce loop on displacements below
	// floating-point noise
	motionEpsilon = 1e-6

	// projectionEpsilon is the magnitude under which a slide projection
	// counts as numerically collapsed
	projectionEpsilon = 1e-6
)

// slide resolves a desired displacement against the scene, bounce by bounce:
//
//  1. sweep the capsule along the remaining displacement
//  2. no hit: commit the full remainder and stop
//  3. hit: advance to the contact, nudge off the surface by the skin
//     epsilon, then attenuate and redirect the unconsumed remainder
//     tangent to the struck surface
//
// The loop ends when the remainder drops below noise or after MaxBounces
// iterations, so a character wedged in pathological geometry halts at its
// last resolved position instead of looping. At most MaxBounces sweep
// queries are issued per call.
func (c *Character) slide(desired mgl64.Vec3) {
	remaining := desired

	for bounce := 0; bounce < c.config.MaxBounces; bounce++ {
		length := remaining.Len()
		if length < motionEpsilon {
			return
		}
		direction := remaining.Mul(1 / length)

		hit := c.sweeper.Sweep(c.pose.Position, c.pose.Rotation, direction, length)
		if !hit.Struck {
			c.pose.Position = c.pose.Position.Add(remaining)
			return
		}

		fraction := hit.Distance / length
		c.pose.Position = c.pose.Position.Add(remaining.Mul(fraction))
		// anti-stick: step off the surface so float rounding cannot make
		// the next sweep re-hit it at distance zero
		c.pose.Position = c.pose.Position.Add(hit.Normal.Mul(c.config.Skin))

		remaining = c.deflect(remaining.Mul(1-fraction), hit.Normal)
	}
}

// deflect attenuates the unconsumed displacement after a hit and redirects
// it tangent to the struck surface.
//
// The attenuation measures how far past grazing (90°) the angle between the
// hit normal and the motion is, normalized by MaxSlideAngle into [0,1]:
// 0 deflects nothing, 1 is a head-on hit. The curve
// (1-angle)^AnglePower*0.9+0.1 bleeds off more momentum the more head-on
// the hit is, while always keeping at least 10% of the remainder so shallow
// numerical contacts cannot stall the whole move.
//
// When the projection onto the hit plane collapses (motion near-parallel or
// near-opposite to the normal), the remainder is redirected onto the global
// horizontal plane instead, preserving magnitude. That branch is inherited
// policy rather than a derived geometric model; see DESIGN.md.
func (c *Character) deflect(remaining, normal mgl64.Vec3) mgl64.Vec3 {
	length := remaining.Len()
	if length < motionEpsilon {
		return mgl64.Vec3{}
	}

	excess := 0.0
	if c.config.MaxSlideAngle > 0 {
		cos := mgl64.Clamp(normal.Dot(remaining)/length, -1, 1)
		excess = mgl64.Clamp((math.Acos(cos)-math.Pi/2)/c.config.MaxSlideAngle, 0, 1)
	}
	scale := math.Pow(1-excess, c.config.AnglePower)*0.9 + 0.1

	scaled := remaining.Mul(scale)
	projected := scaled.Sub(normal.Mul(scaled.Dot(normal)))
	if projected.Len() >= projectionEpsilon {
		return projected
	}

	horizontal := scaled.Sub(worldUp.Mul(scaled.Dot(worldUp)))
	if horizontal.Len() < motionEpsilon {
		return mgl64.Vec3{}
	}
	return horizontal.Normalize().Mul(scaled.Len())
}
