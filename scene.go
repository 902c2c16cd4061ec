package stride

import (
	"math"
	"sync"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// sweepSlop is the surface gap under which a cast reports contact
	sweepSlop = 1e-7

	// maxAdvanceIterations bounds conservative advancement; exhausting it
	// means the trajectory grazes the surface within slop and is treated
	// as a miss
	maxAdvanceIterations = 64
)

// Scene is a container of static colliders implementing the sweep backend.
// Convex colliders are indexed in a spatial grid; planes are unbounded and
// always sweep candidates.
type Scene struct {
	colliders []*Collider
	planes    []*Collider
	grid      *SpatialGrid

	// mu serializes the lazy broad-phase rebuild so casters can sweep the
	// same scene from several goroutines; mutating the scene itself must
	// still not overlap with sweeps
	mu    sync.Mutex
	dirty bool
}

// NewScene creates a scene whose broad phase uses the given cell size and
// (power-of-two rounded) cell count
func NewScene(cellSize float64, numCells int) *Scene {
	return &Scene{
		grid: NewSpatialGrid(cellSize, numCells),
	}
}

// AddCollider adds a piece of static geometry to the scene
func (s *Scene) AddCollider(c *Collider) {
	if _, isPlane := c.Shape.(*actor.Plane); isPlane {
		s.planes = append(s.planes, c)
		return
	}
	s.colliders = append(s.colliders, c)
	s.dirty = true
}

// RemoveCollider removes a collider from the scene
func (s *Scene) RemoveCollider(c *Collider) {
	if _, isPlane := c.Shape.(*actor.Plane); isPlane {
		s.planes = removeCollider(s.planes, c)
		return
	}

	n := len(s.colliders)
	s.colliders = removeCollider(s.colliders, c)
	if len(s.colliders) != n {
		s.dirty = true
	}
}

func removeCollider(colliders []*Collider, c *Collider) []*Collider {
	k := -1
	for i, col := range colliders {
		if col == c {
			k = i
			break
		}
	}

	if k != -1 {
		colliders = append(colliders[:k], colliders[k+1:]...)
	}
	return colliders
}

// Refresh marks the broad phase stale after collider transforms changed
func (s *Scene) Refresh() {
	s.dirty = true
}

func (s *Scene) rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return
	}

	s.grid.Clear()
	for i, c := range s.colliders {
		c.Shape.ComputeAABB(c.Transform)
		s.grid.Insert(i, c.Shape.GetAABB())
	}
	s.dirty = false
}

// Caster binds a capsule to the scene and implements Sweeper for it. Each
// querying actor gets its own Caster: the scratch buffers make a Caster
// single-caller, while the scene itself is only read.
type Caster struct {
	scene   *Scene
	capsule *actor.Capsule
	ignored map[*Collider]struct{}

	scratch []int
	seen    []bool
}

// Caster returns a Sweeper casting the given capsule against the scene
func (s *Scene) Caster(capsule *actor.Capsule) *Caster {
	return &Caster{
		scene:   s,
		capsule: capsule,
	}
}

// Ignore excludes a collider from every sweep of this caster, e.g. geometry
// attached to the querying actor itself
func (c *Caster) Ignore(col *Collider) {
	if c.ignored == nil {
		c.ignored = make(map[*Collider]struct{})
	}
	c.ignored[col] = struct{}{}
}

// Sweep casts the bound capsule from the given pose along direction for at
// most maxDistance. direction must be a unit vector, maxDistance >= 0.
// Returns the closest hit; when several colliders are struck at the exact
// same distance, whichever was tested first wins.
func (c *Caster) Sweep(position mgl64.Vec3, orientation mgl64.Quat, direction mgl64.Vec3, maxDistance float64) Hit {
	c.scene.rebuild()

	a, b := c.capsule.Segment(position, orientation)
	best := NoHit()

	for _, col := range c.scene.planes {
		if _, skip := c.ignored[col]; skip {
			continue
		}
		hit := sweepPlane(col, a, b, c.capsule.Radius, direction, maxDistance)
		if hit.Struck && hit.Distance < best.Distance {
			best = hit
		}
	}

	if len(c.scene.colliders) == 0 {
		return best
	}

	// swept volume: capsule bounds at the start unioned with the end
	end := direction.Mul(maxDistance)
	bounds := actor.SegmentAABB(a, b, c.capsule.Radius).
		Union(actor.SegmentAABB(a.Add(end), b.Add(end), c.capsule.Radius))

	if len(c.seen) < len(c.scene.colliders) {
		c.seen = make([]bool, len(c.scene.colliders))
	}

	c.scratch = c.scene.grid.Query(bounds, c.scratch[:0])
	for _, idx := range c.scratch {
		if c.seen[idx] {
			continue
		}
		c.seen[idx] = true

		col := c.scene.colliders[idx]
		if _, skip := c.ignored[col]; skip {
			continue
		}
		if !col.Shape.GetAABB().Overlaps(bounds) {
			continue
		}

		hit := sweepConvex(col, a, b, c.capsule.Radius, direction, maxDistance)
		if hit.Struck && hit.Distance < best.Distance {
			best = hit
		}
	}

	for _, idx := range c.scratch {
		c.seen[idx] = false
	}

	return best
}

// sweepPlane resolves a capsule cast against an infinite plane analytically.
// Planes are one-sided: motion parallel to or away from the surface never
// makes contact, and geometry fully behind the plane is unreachable.
func sweepPlane(col *Collider, a, b mgl64.Vec3, radius float64, direction mgl64.Vec3, maxDistance float64) Hit {
	plane := col.Shape.(*actor.Plane)

	normal := col.Transform.DirectionToWorld(plane.Normal)
	point := col.Transform.PointToWorld(plane.Normal.Mul(-plane.Distance))

	rate := normal.Dot(direction)
	if rate >= -1e-12 {
		return NoHit()
	}

	// closest capsule surface point is the lower endpoint sphere
	gap := math.Min(normal.Dot(a.Sub(point)), normal.Dot(b.Sub(point))) - radius

	t := gap / -rate
	if t < 0 {
		// already touching or inside
		t = 0
	}
	if t > maxDistance {
		return NoHit()
	}

	return Hit{Struck: true, Distance: t, Normal: normal, Collider: col}
}

// sweepConvex resolves a capsule cast against a convex collider by
// conservative advancement in the collider's local frame: the capsule can
// close the surface gap by at most the gap itself per unit of travel, so
// stepping by the current gap never tunnels. The gap along a straight path
// past a convex volume is convex in the travelled distance, which makes the
// advancement converge onto the first contact.
func sweepConvex(col *Collider, a, b mgl64.Vec3, radius float64, direction mgl64.Vec3, maxDistance float64) Hit {
	la := col.Transform.PointToLocal(a)
	lb := col.Transform.PointToLocal(b)
	ldir := col.Transform.DirectionToLocal(direction)

	t := 0.0
	for i := 0; i < maxAdvanceIterations; i++ {
		offset := ldir.Mul(t)
		gap, _, normal := col.Shape.SegmentDistance(la.Add(offset), lb.Add(offset))
		gap -= radius

		if gap <= sweepSlop {
			return Hit{
				Struck:   true,
				Distance: t,
				Normal:   col.Transform.DirectionToWorld(normal),
				Collider: col,
			}
		}

		t += gap
		if t > maxDistance {
			return NoHit()
		}
	}

	return NoHit()
}
