package stride

import (
	"errors"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// moveThreshold is the intent magnitude under which a character counts as
// not moving for the state machine
const moveThreshold = 1e-3

var (
	worldUp   = mgl64.Vec3{0, 1, 0}
	worldDown = mgl64.Vec3{0, -1, 0}
)

// Character is a kinematically moved actor: a capsule, a pose, a look
// attitude and a locomotion state, all mutated exclusively by Advance.
// There is exactly one calling context per character per tick, so no
// locking is involved anywhere.
type Character struct {
	Events Events

	config   Config
	capsule  *actor.Capsule
	sweeper  Sweeper
	pose     actor.Transform
	attitude actor.Attitude
	state    State
	grounded bool
}

// NewCharacter creates a character probing the given sweep backend with the
// given capsule. The capsule is validated once here; failing to provide a
// valid shape is a configuration error surfaced at setup time, never
// re-checked per tick.
func NewCharacter(capsule *actor.Capsule, sweeper Sweeper, config Config) (*Character, error) {
	if capsule == nil {
		return nil, errors.New("stride: a capsule shape is required")
	}
	if err := capsule.Validate(); err != nil {
		return nil, err
	}
	if sweeper == nil {
		return nil, errors.New("stride: a sweep backend is required")
	}

	return &Character{
		Events:  NewEvents(),
		config:  config,
		capsule: capsule,
		sweeper: sweeper,
		pose:    actor.NewTransform(),
	}, nil
}

// Pose returns the current position and yaw-only facing orientation
func (c *Character) Pose() actor.Transform {
	return c.pose
}

// Position returns the current position
func (c *Character) Position() mgl64.Vec3 {
	return c.pose.Position
}

// Attitude returns the current look orientation
func (c *Character) Attitude() actor.Attitude {
	return c.attitude
}

// State returns the current locomotion state
func (c *Character) State() State {
	return c.state
}

// Grounded reports whether the last downward probe struck ground
func (c *Character) Grounded() bool {
	return c.grounded
}

// Shape returns the character's capsule
func (c *Character) Shape() *actor.Capsule {
	return c.capsule
}

// Config returns the current tuning values
func (c *Character) Config() Config {
	return c.config
}

// SetConfig swaps the tuning values, e.g. from a hot-reloaded file. The
// stored pitch is re-clamped against the new bounds.
func (c *Character) SetConfig(config Config) {
	c.config = config
	c.attitude.ClampPitch(config.MinPitch, config.MaxPitch)
}

// SetPosition teleports the character without collision resolution
func (c *Character) SetPosition(position mgl64.Vec3) {
	c.pose.Position = position
}

// SetAttitude overrides the stored look orientation directly, e.g. for a
// teleport or cutscene reorientation. It bypasses the per-tick rotation
// update; pitch is still clamped.
func (c *Character) SetAttitude(pitch, yaw float64) {
	c.attitude.Pitch = mgl64.Clamp(pitch, c.config.MinPitch, c.config.MaxPitch)
	c.attitude.Yaw = yaw
	c.syncFacing()
}

// Advance runs one simulation tick: refresh the grounded flag, step the
// locomotion state machine, apply the rotation update and dispatch the
// state's motion to the slide resolver. move is the movement intent
// (strafe, forward), magnitude-clamped to 1; look is the (yaw, pitch) delta
// intent; dt the seconds elapsed since the previous evaluation. Both intents
// are consumed this tick only and never persisted. Buffered events are
// delivered before returning.
func (c *Character) Advance(dt float64, move, look mgl64.Vec2) {
	if move.Len() > 1 {
		move = move.Normalize()
	}

	c.refreshGrounded()

	moving := move.Len() > moveThreshold
	c.setState(nextState(c.state, c.grounded, moving))

	c.rotate(dt, look)

	switch c.state {
	case StateWalking:
		c.slide(c.horizontalDisplacement(move, dt))
	case StateFalling:
		// two independent passes: horizontal deflection against walls and
		// vertical landing against the floor each resolve cleanly against
		// their own obstacle instead of sliding a mixed diagonal
		c.slide(c.horizontalDisplacement(move, dt))
		c.slide(worldDown.Mul(c.config.FallSpeed * dt))
	}

	c.Events.flush()
}

// refreshGrounded probes straight down over a very small distance; the
// character is grounded iff the probe strikes anything
func (c *Character) refreshGrounded() {
	grounded := c.sweeper.Sweep(c.pose.Position, c.pose.Rotation, worldDown, c.config.GroundProbe).Struck
	if grounded != c.grounded {
		if grounded {
			c.Events.emit(GroundedEvent{Character: c})
		} else {
			c.Events.emit(AirborneEvent{Character: c})
		}
	}
	c.grounded = grounded
}

func (c *Character) setState(next State) {
	if next == c.state {
		return
	}
	if c.state != StateUninitialized {
		c.Events.emit(StateExitEvent{Character: c, State: c.state})
	}
	c.state = next
	c.Events.emit(StateEnterEvent{Character: c, State: next})
}

// rotate integrates the look intent into the stored attitude. Pitch is
// clamped, yaw wraps freely; the facing orientation follows yaw alone.
func (c *Character) rotate(dt float64, look mgl64.Vec2) {
	c.attitude.Yaw += look.X() * c.config.RotationSpeed * dt
	c.attitude.Pitch += look.Y() * c.config.RotationSpeed * dt
	c.attitude.ClampPitch(c.config.MinPitch, c.config.MaxPitch)
	c.syncFacing()
}

func (c *Character) syncFacing() {
	c.pose.SetRotation(c.attitude.Facing())
}

// horizontalDisplacement rotates the movement intent into the current
// facing and scales it by speed and tick duration. Local forward is -Z.
func (c *Character) horizontalDisplacement(move mgl64.Vec2, dt float64) mgl64.Vec3 {
	local := mgl64.Vec3{move.X(), 0, -move.Y()}
	return c.attitude.Facing().Rotate(local).Mul(c.config.MoveSpeed * dt)
}
