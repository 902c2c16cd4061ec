package main

import (
	"fmt"

	"github.com/akmonengine/stride"
	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene builds a small test level: a ground plane, a wall box in front
// of the spawn, and a pillar to slide around.
func SetupScene() *stride.Scene {
	scene := stride.NewScene(2.0, 256)

	// Ground plane at y=0
	ground := stride.NewCollider(
		actor.NewTransform(),
		&actor.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0},
	)
	ground.Id = "ground"
	scene.AddCollider(ground)

	// Wall 6m ahead of the spawn
	wallTransform := actor.NewTransform()
	wallTransform.Position = mgl64.Vec3{0, 1.5, -6}
	wall := stride.NewCollider(
		wallTransform,
		&actor.Box{HalfExtents: mgl64.Vec3{4, 1.5, 0.25}},
	)
	wall.Id = "wall"
	scene.AddCollider(wall)

	// Pillar off to the side
	pillarTransform := actor.NewTransform()
	pillarTransform.Position = mgl64.Vec3{2.5, 1, -3}
	pillar := stride.NewCollider(
		pillarTransform,
		&actor.Sphere{Radius: 1},
	)
	pillar.Id = "pillar"
	scene.AddCollider(pillar)

	return scene
}

func main() {
	scene := SetupScene()

	capsule := &actor.Capsule{Radius: 0.4, Height: 1.8}
	caster := scene.Caster(capsule)
	character, err := stride.NewCharacter(capsule, caster, stride.DefaultConfig())
	if err != nil {
		panic(err)
	}
	character.SetPosition(mgl64.Vec3{0, 2.5, 0})

	character.Events.Subscribe(stride.STATE_ENTER, func(event stride.Event) {
		e := event.(stride.StateEnterEvent)
		fmt.Printf("  -> entered %s at %v\n", e.State, e.Character.Position())
	})
	character.Events.Subscribe(stride.GROUNDED, func(event stride.Event) {
		fmt.Println("  -> touched ground")
	})

	const dt = 1.0 / 60.0

	fmt.Println("Dropping onto the ground...")
	for step := 0; step < 60; step++ {
		character.Advance(dt, mgl64.Vec2{}, mgl64.Vec2{})
	}

	fmt.Println("Walking forward into the wall...")
	for step := 0; step < 240; step++ {
		character.Advance(dt, mgl64.Vec2{0, 1}, mgl64.Vec2{})
		if step%60 == 59 {
			fmt.Printf("  t=%.1fs state=%s position=%v grounded=%v\n",
				float64(step+1)*dt, character.State(), character.Position(), character.Grounded())
		}
	}

	fmt.Println("Turning while walking...")
	for step := 0; step < 120; step++ {
		character.Advance(dt, mgl64.Vec2{0, 1}, mgl64.Vec2{0.8, 0})
		if step%60 == 59 {
			att := character.Attitude()
			fmt.Printf("  t=%.1fs yaw=%.2f position=%v\n", float64(step+1)*dt, att.Yaw, character.Position())
		}
	}

	forward := character.Pose().Rotation.Rotate(mgl64.Vec3{0, 0, -1})
	if hit := caster.Sweep(character.Position(), character.Pose().Rotation, forward, 20); hit.Struck {
		fmt.Printf("Facing %v, %.2fm ahead.\n", hit.Collider.Id, hit.Distance)
	}

	fmt.Println("Done.")
}
