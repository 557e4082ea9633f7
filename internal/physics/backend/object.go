package backend

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Collision flags. A plain collision object starts static; constructing a
// rigid body with non-zero mass clears the flag.
const (
	CollisionFlagStatic    = 1 << 0
	CollisionFlagKinematic = 1 << 1
)

// Broad-phase filter groups. An object pair is considered for collision
// only when each object's group is present in the other's mask.
const (
	FilterDefault = 1 << 0
	FilterStatic  = 1 << 1
	FilterAll     = FilterDefault | FilterStatic
)

// CollisionObject is a shape placed in the world with surface properties
// but no dynamics state.
type CollisionObject struct {
	shape          Shape
	worldTransform vmath.Mat4
	friction       float32
	restitution    float32
	collisionFlags int

	// Filter bits are assigned when the object is added to a world.
	filterGroup int
	filterMask  int
	inWorld     bool
}

// NewCollisionObject returns a collision object with no shape, placed at
// the identity transform.
func NewCollisionObject() *CollisionObject {
	return &CollisionObject{
		worldTransform: vmath.Identity(),
		friction:       0.5,
		collisionFlags: CollisionFlagStatic,
	}
}

// SetCollisionShape attaches a shape to the object.
func (o *CollisionObject) SetCollisionShape(shape Shape) { o.shape = shape }

// CollisionShape returns the attached shape, or nil.
func (o *CollisionObject) CollisionShape() Shape { return o.shape }

// SetWorldTransform places the object. The transform must be rigid
// (rotation and translation only); shape scale is a shape property.
func (o *CollisionObject) SetWorldTransform(t vmath.Mat4) { o.worldTransform = t }

// WorldTransform returns the object placement.
func (o *CollisionObject) WorldTransform() vmath.Mat4 { return o.worldTransform }

// SetFriction sets the friction coefficient of the collision surface.
func (o *CollisionObject) SetFriction(f float32) { o.friction = f }

// Friction returns the friction coefficient.
func (o *CollisionObject) Friction() float32 { return o.friction }

// SetRestitution sets the restitution coefficient of the collision surface.
func (o *CollisionObject) SetRestitution(r float32) { o.restitution = r }

// Restitution returns the restitution coefficient.
func (o *CollisionObject) Restitution() float32 { return o.restitution }

// SetCollisionFlags replaces the collision flag bits.
func (o *CollisionObject) SetCollisionFlags(flags int) { o.collisionFlags = flags }

// CollisionFlags returns the collision flag bits.
func (o *CollisionObject) CollisionFlags() int { return o.collisionFlags }

// IsStaticObject reports whether the static flag is set.
func (o *CollisionObject) IsStaticObject() bool {
	return o.collisionFlags&CollisionFlagStatic != 0
}

// IsKinematicObject reports whether the kinematic flag is set.
func (o *CollisionObject) IsKinematicObject() bool {
	return o.collisionFlags&CollisionFlagKinematic != 0
}

// Aabb returns the world-space bounds of the object, or the empty box when
// no shape is attached.
func (o *CollisionObject) Aabb() vmath.Box3 {
	if o.shape == nil {
		return vmath.Box3{}
	}
	return o.shape.Aabb(o.worldTransform)
}
