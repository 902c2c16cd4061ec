package actor

import "github.com/go-gl/mathgl/mgl64"

// ClosestPointOnSegment returns the point of segment [a, b] closest to p
func ClosestPointOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	denom := ab.LenSqr()
	if denom < 1e-12 {
		return a
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/denom, 0, 1)
	return a.Add(ab.Mul(t))
}

// ClosestPointsSegmentSegment returns the pair of closest points between
// segments [p1, q1] and [p2, q2].
//
// Reference: Ericson, "Real-Time Collision Detection" (2005), §5.1.9.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	const eps = 1e-12

	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.LenSqr()
	e := d2.LenSqr()
	f := d2.Dot(r)

	var s, t float64

	switch {
	case a <= eps && e <= eps:
		// both segments degenerate to points
	case a <= eps:
		t = mgl64.Clamp(f/e, 0, 1)
	case e <= eps:
		s = mgl64.Clamp(-d1.Dot(r)/a, 0, 1)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b

		// denom == 0 means the segments are parallel; any s works, pick 0
		if denom > eps {
			s = mgl64.Clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e

		// If t landed outside [0,1], clamp it and recompute s for the
		// clamped endpoint.
		if t < 0 {
			t = 0
			s = mgl64.Clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = mgl64.Clamp((b-c)/a, 0, 1)
		}
	}

	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}
