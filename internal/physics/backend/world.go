package backend

import (
	"math"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// World is the global simulation container. All mutation must come from a
// single goroutine; the world does no internal locking.
type World struct {
	gravity vmath.Vec3

	bodies           []*RigidBody
	collisionObjects []*CollisionObject
}

// NewWorld returns an empty world with the given gravity.
func NewWorld(gravity vmath.Vec3) *World {
	return &World{gravity: gravity}
}

// SetGravity replaces the world gravity.
func (w *World) SetGravity(g vmath.Vec3) { w.gravity = g }

// Gravity returns the world gravity.
func (w *World) Gravity() vmath.Vec3 { return w.gravity }

// AddRigidBody registers a body under the default filter group.
func (w *World) AddRigidBody(b *RigidBody) {
	if b.inWorld {
		return
	}
	b.filterGroup = FilterDefault
	b.filterMask = FilterAll
	b.inWorld = true
	w.bodies = append(w.bodies, b)
}

// RemoveRigidBody deregisters a body. Unknown bodies are ignored.
func (w *World) RemoveRigidBody(b *RigidBody) {
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			b.inWorld = false
			return
		}
	}
}

// AddCollisionObject registers a collision-only object under the default
// filter group.
func (w *World) AddCollisionObject(o *CollisionObject) {
	w.AddCollisionObjectWithFilter(o, FilterDefault, FilterAll)
}

// AddCollisionObjectWithFilter registers a collision-only object under an
// explicit filter group and mask.
func (w *World) AddCollisionObjectWithFilter(o *CollisionObject, group, mask int) {
	if o.inWorld {
		return
	}
	o.filterGroup = group
	o.filterMask = mask
	o.inWorld = true
	w.collisionObjects = append(w.collisionObjects, o)
}

// RemoveCollisionObject deregisters a collision-only object. Unknown
// objects are ignored.
func (w *World) RemoveCollisionObject(o *CollisionObject) {
	for i, x := range w.collisionObjects {
		if x == o {
			w.collisionObjects = append(w.collisionObjects[:i], w.collisionObjects[i+1:]...)
			o.inWorld = false
			return
		}
	}
}

// NumBodies returns the number of registered rigid bodies.
func (w *World) NumBodies() int { return len(w.bodies) }

// NumCollisionObjects returns the number of registered collision-only
// objects.
func (w *World) NumCollisionObjects() int { return len(w.collisionObjects) }

// needsCollision applies the filter group/mask test plus the rule that two
// static (or kinematic) objects never generate contacts with each other.
func needsCollision(a, b *CollisionObject) bool {
	if a.filterGroup&b.filterMask == 0 || b.filterGroup&a.filterMask == 0 {
		return false
	}
	aStatic := a.IsStaticObject() || a.IsKinematicObject()
	bStatic := b.IsStaticObject() || b.IsKinematicObject()
	return !(aStatic && bStatic)
}

// ContactTest performs a point-in-time query of obj against everything
// registered in the world and reports whether any contact was found. It
// mutates nothing.
func (w *World) ContactTest(obj *CollisionObject) bool {
	aabb := obj.Aabb()
	if aabb.IsEmpty() {
		return false
	}
	for _, b := range w.bodies {
		other := &b.CollisionObject
		if other == obj {
			continue
		}
		if needsCollision(obj, other) && aabb.Intersects(other.Aabb()) {
			return true
		}
	}
	for _, o := range w.collisionObjects {
		if o == obj {
			continue
		}
		if needsCollision(obj, o) && aabb.Intersects(o.Aabb()) {
			return true
		}
	}
	return false
}

// Step advances the simulation by dt seconds: integrates forces and
// velocities on dynamic bodies, then resolves overlaps against every other
// registered object by pushing along the axis of least penetration.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if !b.IsActive() || b.invMass == 0 || b.IsKinematicObject() {
			continue
		}
		// Semi-implicit Euler with simple proportional damping.
		accel := w.gravity.Add(b.totalForce.Scale(b.invMass))
		b.linearVelocity = b.linearVelocity.Add(accel.Scale(dt))
		b.linearVelocity = b.linearVelocity.Scale(damp(b.linearDamping, dt))

		angAccel := b.totalTorque.Mul(invDiag(b.localInertia))
		b.angularVelocity = b.angularVelocity.Add(angAccel.Scale(dt))
		b.angularVelocity = b.angularVelocity.Scale(damp(b.angularDamping, dt))

		t := b.WorldTransform()
		t.SetTranslation(t.Translation().Add(b.linearVelocity.Scale(dt)))
		b.SetWorldTransform(t)
		b.ClearForces()
	}

	for i, b := range w.bodies {
		if !b.IsActive() || b.invMass == 0 || b.IsKinematicObject() {
			continue
		}
		for _, other := range w.bodies[i+1:] {
			w.resolvePair(b, other)
		}
		for _, o := range w.collisionObjects {
			w.resolveStatic(b, o)
		}
	}
}

func damp(factor, dt float32) float32 {
	d := 1 - factor*dt
	if d < 0 {
		return 0
	}
	return d
}

// resolvePair separates two bodies, splitting the correction by mass ratio
// and exchanging normal velocity with combined restitution.
func (w *World) resolvePair(a, b *RigidBody) {
	if !needsCollision(&a.CollisionObject, &b.CollisionObject) {
		return
	}
	push := pushOut(a.Aabb(), b.Aabb())
	if push.IsZero() {
		return
	}
	bDynamic := b.invMass != 0 && !b.IsKinematicObject()
	if !bDynamic {
		w.applyPush(a, push, a.Restitution()*b.Restitution(), combinedFriction(a, &b.CollisionObject))
		return
	}
	total := a.Mass() + b.Mass()
	ratioA := b.Mass() / total
	ratioB := a.Mass() / total
	e := a.Restitution() * b.Restitution()
	mu := combinedFriction(a, &b.CollisionObject)
	w.applyPush(a, push.Scale(ratioA), e, mu)
	w.applyPush(b, push.Scale(-ratioB), e, mu)
	b.Activate(false)
}

// resolveStatic pushes a dynamic body out of a collision-only object.
func (w *World) resolveStatic(b *RigidBody, o *CollisionObject) {
	if !needsCollision(&b.CollisionObject, o) {
		return
	}
	push := pushOut(b.Aabb(), o.Aabb())
	if push.IsZero() {
		return
	}
	w.applyPush(b, push, b.Restitution()*o.Restitution(), combinedFriction(b, o))
}

func combinedFriction(a *RigidBody, b *CollisionObject) float32 {
	return float32(math.Sqrt(float64(a.Friction() * b.Friction())))
}

// applyPush moves the body out of penetration and adjusts its velocity:
// the normal component bounces with restitution e, the tangential
// component is damped by friction mu.
func (w *World) applyPush(b *RigidBody, push vmath.Vec3, e, mu float32) {
	t := b.WorldTransform()
	t.SetTranslation(t.Translation().Add(push))
	b.SetWorldTransform(t)

	n := push.Normalize()
	vn := b.linearVelocity.Dot(n)
	if vn < 0 {
		normal := n.Scale(vn)
		tangent := b.linearVelocity.Sub(normal)
		b.linearVelocity = tangent.Scale(1 - clamp01(mu)).Sub(normal.Scale(e))
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// pushOut returns the minimal translation separating box a from box b, or
// zero when they do not overlap.
func pushOut(a, b vmath.Box3) vmath.Vec3 {
	if !a.Intersects(b) {
		return vmath.Vec3{}
	}
	dx1 := b.Max.X - a.Min.X // push +X
	dx2 := a.Max.X - b.Min.X // push -X
	dy1 := b.Max.Y - a.Min.Y
	dy2 := a.Max.Y - b.Min.Y
	dz1 := b.Max.Z - a.Min.Z
	dz2 := a.Max.Z - b.Min.Z

	px := dx1
	if dx2 < dx1 {
		px = -dx2
	}
	py := dy1
	if dy2 < dy1 {
		py = -dy2
	}
	pz := dz1
	if dz2 < dz1 {
		pz = -dz2
	}

	ax, ay, az := absf(px), absf(py), absf(pz)
	switch {
	case ax <= ay && ax <= az:
		return vmath.Vec3{X: px}
	case ay <= ax && ay <= az:
		return vmath.Vec3{Y: py}
	default:
		return vmath.Vec3{Z: pz}
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
