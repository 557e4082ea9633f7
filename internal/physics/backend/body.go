package backend

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// ConstructionInfo bundles the parameters a rigid body is built from.
// A zero mass produces a static body.
type ConstructionInfo struct {
	Mass           float32
	Shape          Shape
	LocalInertia   vmath.Vec3
	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

// RigidBody is a collision object with mass, velocity and force state.
type RigidBody struct {
	CollisionObject

	mass         float32
	invMass      float32
	localInertia vmath.Vec3

	linearDamping  float32
	angularDamping float32

	linearVelocity  vmath.Vec3
	angularVelocity vmath.Vec3
	totalForce      vmath.Vec3
	totalTorque     vmath.Vec3

	active bool
}

// NewRigidBody constructs a body from the given info. The body is not in
// any world until added.
func NewRigidBody(info ConstructionInfo) *RigidBody {
	b := &RigidBody{
		CollisionObject: *NewCollisionObject(),
		linearDamping:   info.LinearDamping,
		angularDamping:  info.AngularDamping,
		active:          true,
	}
	b.SetCollisionShape(info.Shape)
	b.SetFriction(info.Friction)
	b.SetRestitution(info.Restitution)
	b.SetMassProps(info.Mass, info.LocalInertia)
	return b
}

// SetMassProps sets the mass and diagonal inertia. A zero mass marks the
// body static; a non-zero mass clears the static flag.
func (b *RigidBody) SetMassProps(mass float32, inertia vmath.Vec3) {
	b.mass = mass
	b.localInertia = inertia
	if mass == 0 {
		b.invMass = 0
		b.SetCollisionFlags(b.CollisionFlags() | CollisionFlagStatic)
		return
	}
	b.invMass = 1 / mass
	b.SetCollisionFlags(b.CollisionFlags() &^ CollisionFlagStatic)
}

// Mass returns the body mass (zero for static bodies).
func (b *RigidBody) Mass() float32 { return b.mass }

// InvMass returns the inverse mass (zero for static bodies).
func (b *RigidBody) InvMass() float32 { return b.invMass }

// LocalInertia returns the diagonal inertia vector.
func (b *RigidBody) LocalInertia() vmath.Vec3 { return b.localInertia }

// SetDamping sets the linear and angular damping factors.
func (b *RigidBody) SetDamping(linear, angular float32) {
	b.linearDamping = linear
	b.angularDamping = angular
}

// LinearDamping returns the linear damping factor.
func (b *RigidBody) LinearDamping() float32 { return b.linearDamping }

// AngularDamping returns the angular damping factor.
func (b *RigidBody) AngularDamping() float32 { return b.angularDamping }

// SetLinearVelocity replaces the linear velocity.
func (b *RigidBody) SetLinearVelocity(v vmath.Vec3) { b.linearVelocity = v }

// LinearVelocity returns the linear velocity.
func (b *RigidBody) LinearVelocity() vmath.Vec3 { return b.linearVelocity }

// SetAngularVelocity replaces the angular velocity.
func (b *RigidBody) SetAngularVelocity(v vmath.Vec3) { b.angularVelocity = v }

// AngularVelocity returns the angular velocity.
func (b *RigidBody) AngularVelocity() vmath.Vec3 { return b.angularVelocity }

// ApplyForce accumulates a force applied at relPos relative to the center
// of mass. Takes effect on the next step.
func (b *RigidBody) ApplyForce(force, relPos vmath.Vec3) {
	b.totalForce = b.totalForce.Add(force)
	b.totalTorque = b.totalTorque.Add(relPos.Cross(force))
}

// ApplyCentralForce accumulates a force through the center of mass.
func (b *RigidBody) ApplyCentralForce(force vmath.Vec3) {
	b.totalForce = b.totalForce.Add(force)
}

// ApplyTorque accumulates a torque. Takes effect on the next step.
func (b *RigidBody) ApplyTorque(torque vmath.Vec3) {
	b.totalTorque = b.totalTorque.Add(torque)
}

// ApplyImpulse changes the velocities immediately by an impulse applied at
// relPos relative to the center of mass.
func (b *RigidBody) ApplyImpulse(impulse, relPos vmath.Vec3) {
	b.linearVelocity = b.linearVelocity.Add(impulse.Scale(b.invMass))
	b.applyAngularImpulse(relPos.Cross(impulse))
}

// ApplyTorqueImpulse changes the angular velocity immediately.
func (b *RigidBody) ApplyTorqueImpulse(impulse vmath.Vec3) {
	b.applyAngularImpulse(impulse)
}

func (b *RigidBody) applyAngularImpulse(impulse vmath.Vec3) {
	inv := invDiag(b.localInertia)
	b.angularVelocity = b.angularVelocity.Add(impulse.Mul(inv))
}

// invDiag inverts a diagonal inertia vector component-wise; zero
// components stay zero (locked axes).
func invDiag(v vmath.Vec3) vmath.Vec3 {
	var out vmath.Vec3
	if v.X != 0 {
		out.X = 1 / v.X
	}
	if v.Y != 0 {
		out.Y = 1 / v.Y
	}
	if v.Z != 0 {
		out.Z = 1 / v.Z
	}
	return out
}

// ClearForces zeroes the accumulated force and torque.
func (b *RigidBody) ClearForces() {
	b.totalForce = vmath.Vec3{}
	b.totalTorque = vmath.Vec3{}
}

// Activate wakes the body. With force=true the body is woken even if it
// would otherwise be asleep.
func (b *RigidBody) Activate(force bool) {
	_ = force
	b.active = true
}

// IsActive reports whether the body is awake.
func (b *RigidBody) IsActive() bool { return b.active }

// Sleep puts the body to rest.
func (b *RigidBody) Sleep() { b.active = false }

// CenterOfMassPosition returns the world-space center of mass.
func (b *RigidBody) CenterOfMassPosition() vmath.Vec3 {
	return b.WorldTransform().Translation()
}
