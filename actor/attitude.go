package actor

import "github.com/go-gl/mathgl/mgl64"

// Attitude is the look orientation of a character: pitch and yaw in radians.
// Yaw is unbounded and wraps implicitly; pitch is clamped by the owner of the
// attitude. Camera-follow consumers read it through Look, while the facing
// used for movement comes from yaw alone through Facing.
type Attitude struct {
	Pitch float64
	Yaw   float64
}

// ClampPitch constrains the pitch to [min, max]
func (a *Attitude) ClampPitch(min, max float64) {
	a.Pitch = mgl64.Clamp(a.Pitch, min, max)
}

// Facing returns the yaw-only orientation. Pitch affects the view
// presentation but never the movement frame.
func (a Attitude) Facing() mgl64.Quat {
	return mgl64.QuatRotate(a.Yaw, mgl64.Vec3{0, 1, 0})
}

// Look returns the full view orientation, yaw applied before pitch
func (a Attitude) Look() mgl64.Quat {
	yaw := mgl64.QuatRotate(a.Yaw, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(a.Pitch, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}
