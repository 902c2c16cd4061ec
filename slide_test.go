package stride

import (
	"math"
	"testing"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func testCharacter(t *testing.T, sweeper Sweeper) *Character {
	t.Helper()
	character, err := NewCharacter(testCapsule(), sweeper, DefaultConfig())
	if err != nil {
		t.Fatalf("NewCharacter() error = %v", err)
	}
	return character
}

func TestSlideUnobstructed(t *testing.T) {
	character := testCharacter(t, sweeperFunc(missEverything))
	character.SetPosition(mgl64.Vec3{1, 2, 3})

	character.slide(mgl64.Vec3{1, 0, -2})

	if !vec3Equal(character.Position(), mgl64.Vec3{2, 2, 1}, 1e-12) {
		t.Errorf("Position = %v, want {2 2 1}", character.Position())
	}
}

func TestSlideZeroDisplacement(t *testing.T) {
	sweeps := 0
	character := testCharacter(t, sweeperFunc(func(mgl64.Vec3, mgl64.Quat, mgl64.Vec3, float64) Hit {
		sweeps++
		return NoHit()
	}))
	character.SetPosition(mgl64.Vec3{1, 2, 3})

	character.slide(mgl64.Vec3{})

	if sweeps != 0 {
		t.Errorf("sweeps = %d, want 0", sweeps)
	}
	if !vec3Equal(character.Position(), mgl64.Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("Position = %v, want unchanged {1 2 3}", character.Position())
	}
}

func TestSlideBounceBound(t *testing.T) {
	// a wall that always blocks immediately, deflecting sideways without
	// attenuation, keeps the loop running until the bounce cap
	sweeps := 0
	character := testCharacter(t, sweeperFunc(func(_ mgl64.Vec3, _ mgl64.Quat, _ mgl64.Vec3, _ float64) Hit {
		sweeps++
		return Hit{Struck: true, Distance: 0, Normal: mgl64.Vec3{1, 0, 0}}
	}))

	character.slide(mgl64.Vec3{0, 0, -1})

	if sweeps != character.Config().MaxBounces {
		t.Errorf("sweeps = %d, want exactly MaxBounces = %d", sweeps, character.Config().MaxBounces)
	}
}

func TestSlideHeadOnWall(t *testing.T) {
	// wall plane facing +Z at z=-2; the capsule surface can reach z=-1.5
	scene := NewScene(2.0, 256)
	scene.AddCollider(colliderAt(mgl64.Vec3{}, &actor.Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 2}))

	capsule := testCapsule()
	character := testCharacter(t, scene.Caster(capsule))

	character.slide(mgl64.Vec3{0, 0, -5})

	pos := character.Position()

	if pos.Z() <= -2+capsule.Radius {
		t.Errorf("Position.Z = %v, penetrated the wall contact at z=-1.5", pos.Z())
	}
	// settles within the skin band of the contact
	if !floatEqual(pos.Z(), -1.5, 1e-3) {
		t.Errorf("Position.Z = %v, want ~-1.5", pos.Z())
	}
	if !floatEqual(pos.X(), 0, 1e-9) || !floatEqual(pos.Y(), 0, 1e-9) {
		t.Errorf("Position = %v, want no lateral drift", pos)
	}
}

func TestSlideAlongAngledWall(t *testing.T) {
	// wall at 45 degrees to the motion: the remainder deflects tangentially,
	// trading forward progress for lateral slide. The plane is placed so the
	// capsule surface makes contact halfway through the move.
	normal := mgl64.Vec3{1, 0, 1}.Normalize()
	distance := 0.5 + math.Sqrt2/4
	scene := NewScene(2.0, 256)
	scene.AddCollider(colliderAt(mgl64.Vec3{}, &actor.Plane{Normal: normal, Distance: distance}))

	character := testCharacter(t, scene.Caster(testCapsule()))

	character.slide(mgl64.Vec3{0, 0, -1})

	pos := character.Position()

	if pos.X() <= 0.1 {
		t.Errorf("Position.X = %v, want lateral slide along the wall", pos.X())
	}
	if pos.Z() >= -0.5 {
		t.Errorf("Position.Z = %v, want progress past the contact at -0.5", pos.Z())
	}

	// never behind the wall: plane signed distance stays >= capsule radius
	if sd := normal.Dot(pos) + distance; sd < 0.5-1e-9 {
		t.Errorf("signed distance to wall = %v, capsule of radius 0.5 penetrated", sd)
	}
}

func TestSlideParallelToFloor(t *testing.T) {
	// horizontal motion while resting a skin above the floor never collides
	scene := NewScene(2.0, 256)
	scene.AddCollider(colliderAt(mgl64.Vec3{}, &actor.Plane{Normal: mgl64.Vec3{0, 1, 0}}))

	character := testCharacter(t, scene.Caster(testCapsule()))
	restHeight := 1 + character.Config().Skin
	character.SetPosition(mgl64.Vec3{0, restHeight, 0})

	character.slide(mgl64.Vec3{3, 0, 0})

	if !vec3Equal(character.Position(), mgl64.Vec3{3, restHeight, 0}, 1e-12) {
		t.Errorf("Position = %v, want full advance to {3 %v 0}", character.Position(), restHeight)
	}
}

func TestDeflectAttenuation(t *testing.T) {
	character := testCharacter(t, sweeperFunc(missEverything))

	tests := []struct {
		name      string
		remaining mgl64.Vec3
		normal    mgl64.Vec3
		// fraction of the input magnitude surviving the deflection
		expectedScale float64
	}{
		// grazing contact keeps the full remainder
		{"grazing", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{1, 0, 0}, 1.0},
		// head-on keeps the 10% floor, redirected horizontally
		{"head-on", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1}, 0.1},
		// 45 degrees past grazing: (1-0.5)^0.5*0.9+0.1
		{"oblique", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{1, 0, 1}.Normalize(), math.Pow(0.5, 0.5)*0.9 + 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := character.deflect(tt.remaining, tt.normal)

			attenuated := tt.expectedScale * tt.remaining.Len()
			switch tt.name {
			case "grazing", "head-on":
				// projection either keeps the whole vector or collapses and
				// falls back horizontally, both preserving the attenuated
				// magnitude
				if !floatEqual(result.Len(), attenuated, 1e-9) {
					t.Errorf("deflect() magnitude = %v, want %v", result.Len(), attenuated)
				}
			default:
				// oblique: the tangential projection shortens the vector
				// further; it must stay tangent to the surface
				if !floatEqual(result.Dot(tt.normal), 0, 1e-9) {
					t.Errorf("deflect() = %v, not tangent to normal %v", result, tt.normal)
				}
				if result.Len() >= attenuated {
					t.Errorf("deflect() magnitude = %v, want below the attenuated %v", result.Len(), attenuated)
				}
			}
		})
	}
}

func TestDeflectCollapsedProjection(t *testing.T) {
	character := testCharacter(t, sweeperFunc(missEverything))

	// landing straight on a floor: the projection collapses and there is no
	// horizontal part to fall back to, so the motion fully stops
	result := character.deflect(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 1, 0})
	if result.Len() != 0 {
		t.Errorf("deflect() = %v, want zero vector", result)
	}

	// hitting a tilted surface dead-on: the projection collapses but the
	// remainder is redirected horizontally, magnitude preserved
	normal := mgl64.Vec3{0, 1, 1}.Normalize()
	result = character.deflect(normal.Mul(-1), normal)
	if !vec3Equal(result, mgl64.Vec3{0, 0, -0.1}, 1e-9) {
		t.Errorf("deflect() = %v, want {0 0 -0.1}", result)
	}
}
