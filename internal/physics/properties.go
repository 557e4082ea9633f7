package physics

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Property accessors are gated by kind: scene objects report inert values
// (zero mass, zero velocity, never active) and silently ignore setters
// that have no meaning for immovable geometry. Object accessors talk to
// the backend body directly.

// Mass returns the body mass, or 0 for scenes.
func (o *RigidObject) Mass() float32 {
	if o.kind != KindObject {
		return 0
	}
	return o.body.Mass()
}

// SetMass updates the body mass keeping the current inertia. No-op for
// scenes.
func (o *RigidObject) SetMass(mass float32) {
	if o.kind != KindObject {
		return
	}
	o.body.SetMassProps(mass, o.body.LocalInertia())
}

// InertiaVector returns the principal moments of inertia, or zero for
// scenes.
func (o *RigidObject) InertiaVector() vmath.Vec3 {
	if o.kind != KindObject {
		return vmath.Vec3{}
	}
	return o.body.LocalInertia()
}

// SetInertiaVector replaces the principal moments keeping the current
// mass. No-op for scenes.
func (o *RigidObject) SetInertiaVector(inertia vmath.Vec3) {
	if o.kind != KindObject {
		return
	}
	o.body.SetMassProps(o.body.Mass(), inertia)
}

// InertiaMatrix returns the inertia tensor as a diagonal matrix built
// from the principal moments. Identity for scenes.
func (o *RigidObject) InertiaMatrix() vmath.Mat4 {
	m := vmath.Identity()
	if o.kind != KindObject {
		return m
	}
	i := o.body.LocalInertia()
	m[0], m[5], m[10] = i.X, i.Y, i.Z
	return m
}

// COM returns the center of mass position in world space, or zero for
// scenes.
func (o *RigidObject) COM() vmath.Vec3 {
	if o.kind != KindObject {
		return vmath.Vec3{}
	}
	return o.body.CenterOfMassPosition()
}

// SetCOM is not supported: the center of mass always coincides with the
// body origin. The call is ignored.
func (o *RigidObject) SetCOM(vmath.Vec3) {}

// Scale returns the uniform collision scale of the compound, or 1 for
// scenes.
func (o *RigidObject) Scale() float32 {
	if o.kind != KindObject || o.objectShape == nil {
		return 1
	}
	return o.objectShape.LocalScaling().X
}

// SetScale is not supported after initialization: rescaling a live
// compound would desynchronize inertia and child offsets. The call is
// ignored; scale is fixed by the object attributes.
func (o *RigidObject) SetScale(float32) {}

// Friction returns the friction coefficient. For scenes this reads the
// most recently built collision object; per-leaf values are uniform
// because scene initialization applies one attribute set to all of them.
func (o *RigidObject) Friction() float32 {
	if o.kind == KindObject {
		return o.body.Friction()
	}
	if len(o.sceneObjects) == 0 {
		return 0
	}
	return o.sceneObjects[len(o.sceneObjects)-1].Friction()
}

// SetFriction applies a friction coefficient to the body, or to every
// scene collision object.
func (o *RigidObject) SetFriction(f float32) {
	if o.kind == KindObject {
		o.body.SetFriction(f)
		return
	}
	for _, co := range o.sceneObjects {
		co.SetFriction(f)
	}
}

// Restitution returns the restitution coefficient, read the same way as
// Friction.
func (o *RigidObject) Restitution() float32 {
	if o.kind == KindObject {
		return o.body.Restitution()
	}
	if len(o.sceneObjects) == 0 {
		return 0
	}
	return o.sceneObjects[len(o.sceneObjects)-1].Restitution()
}

// SetRestitution applies a restitution coefficient to the body, or to
// every scene collision object.
func (o *RigidObject) SetRestitution(r float32) {
	if o.kind == KindObject {
		o.body.SetRestitution(r)
		return
	}
	for _, co := range o.sceneObjects {
		co.SetRestitution(r)
	}
}

// LinearDamping returns the linear velocity damping factor, or 0 for
// scenes.
func (o *RigidObject) LinearDamping() float32 {
	if o.kind != KindObject {
		return 0
	}
	return o.body.LinearDamping()
}

// SetLinearDamping updates linear damping keeping angular damping. No-op
// for scenes.
func (o *RigidObject) SetLinearDamping(d float32) {
	if o.kind != KindObject {
		return
	}
	o.body.SetDamping(d, o.body.AngularDamping())
}

// AngularDamping returns the angular velocity damping factor, or 0 for
// scenes.
func (o *RigidObject) AngularDamping() float32 {
	if o.kind != KindObject {
		return 0
	}
	return o.body.AngularDamping()
}

// SetAngularDamping updates angular damping keeping linear damping.
// No-op for scenes.
func (o *RigidObject) SetAngularDamping(d float32) {
	if o.kind != KindObject {
		return
	}
	o.body.SetDamping(o.body.LinearDamping(), d)
}

// Margin returns the collision margin of the compound, or 0 for scenes
// whose mesh shapes always carry a zero margin.
func (o *RigidObject) Margin() float32 {
	if o.kind != KindObject || o.objectShape == nil {
		return 0
	}
	return o.objectShape.Margin()
}

// SetMargin pushes a new collision margin to every convex child and the
// compound itself. No-op for scenes.
func (o *RigidObject) SetMargin(margin float32) {
	if o.kind != KindObject || o.objectShape == nil {
		return
	}
	for _, hull := range o.convexShapes {
		hull.SetMargin(margin)
	}
	o.objectShape.SetMargin(margin)
}

// LinearVelocity returns the body's linear velocity, or zero for scenes.
func (o *RigidObject) LinearVelocity() vmath.Vec3 {
	if o.kind != KindObject {
		return vmath.Vec3{}
	}
	return o.body.LinearVelocity()
}

// SetLinearVelocity assigns a linear velocity. Only dynamic objects
// accept it; the body is woken first so the assignment takes effect.
func (o *RigidObject) SetLinearVelocity(v vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.SetLinearVelocity(v)
}

// AngularVelocity returns the body's angular velocity, or zero for
// scenes.
func (o *RigidObject) AngularVelocity() vmath.Vec3 {
	if o.kind != KindObject {
		return vmath.Vec3{}
	}
	return o.body.AngularVelocity()
}

// SetAngularVelocity assigns an angular velocity under the same gate as
// SetLinearVelocity.
func (o *RigidObject) SetAngularVelocity(v vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.SetAngularVelocity(v)
}

// ApplyForce accumulates a force at a position relative to the center of
// mass. Dynamic objects only; the body is woken first.
func (o *RigidObject) ApplyForce(force, relPos vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.ApplyForce(force, relPos)
}

// ApplyImpulse applies an instantaneous impulse at a position relative to
// the center of mass. Dynamic objects only; the body is woken first.
func (o *RigidObject) ApplyImpulse(impulse, relPos vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.ApplyImpulse(impulse, relPos)
}

// ApplyTorque accumulates a torque. Dynamic objects only; the body is
// woken first.
func (o *RigidObject) ApplyTorque(torque vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.ApplyTorque(torque)
}

// ApplyImpulseTorque applies an instantaneous angular impulse. Dynamic
// objects only; the body is woken first.
func (o *RigidObject) ApplyImpulseTorque(impulse vmath.Vec3) {
	if o.kind != KindObject || o.motionType != MotionDynamic {
		return
	}
	o.SetActive()
	o.body.ApplyTorqueImpulse(impulse)
}

// CollisionShapeAabb returns the world-space bounds of this object's
// collision geometry. For scenes it joins the placed bounds of every
// per-leaf object; for objects it reports the compound's local bounds,
// independent of the body's current pose.
func (o *RigidObject) CollisionShapeAabb() vmath.Box3 {
	if o.kind == KindScene {
		var bounds vmath.Box3
		for _, co := range o.sceneObjects {
			bounds = bounds.Join(co.Aabb())
		}
		return bounds
	}
	if o.objectShape == nil {
		return vmath.Box3{}
	}
	return o.objectShape.Aabb(vmath.Identity())
}

// ContactTest reports whether the body currently overlaps anything in
// the world. Pure query with no dynamics side effects; always false for
// scenes.
func (o *RigidObject) ContactTest() bool {
	if o.kind != KindObject || o.body == nil {
		return false
	}
	return o.world.ContactTest(&o.body.CollisionObject)
}
