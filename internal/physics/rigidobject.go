// Package physics adapts mesh transform hierarchies into backend collision
// and dynamics primitives and exposes a uniform object model on top of the
// backend world: scene-static geometry on one side, movable rigid objects
// with a motion-type state machine on the other.
package physics

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-physics/internal/assets"
	"github.com/Faultbox/midgard-physics/internal/logger"
	"github.com/Faultbox/midgard-physics/internal/physics/backend"
	"github.com/Faultbox/midgard-physics/internal/scene"
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Kind classifies a rigid object at construction time.
type Kind int

const (
	// KindScene is immovable, collision-only scenery.
	KindScene Kind = iota
	// KindObject is a movable entity with a motion type.
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// MotionType is the dynamics category of a KindObject rigid object.
type MotionType int

const (
	// MotionDynamic objects are integrated and respond to forces.
	MotionDynamic MotionType = iota
	// MotionKinematic objects are driven externally but still collide.
	MotionKinematic
	// MotionStatic objects are frozen; only a collision shadow stays live.
	MotionStatic
)

// String returns a human-readable motion type name.
func (m MotionType) String() string {
	switch m {
	case MotionDynamic:
		return "dynamic"
	case MotionKinematic:
		return "kinematic"
	case MotionStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ErrWrongKind is returned by initialization entry points invoked on an
// object of the other kind.
var ErrWrongKind = errors.New("operation not supported for this object kind")

// RigidObject owns the collision shapes built for one scene entity plus
// its backend handles. It is bound to exactly one scene node and one
// backend world, initialized exactly once as a scene or as an object, and
// destroyed with Destroy.
//
// All methods must be called from the single simulation goroutine that
// owns the world.
type RigidObject struct {
	node  *scene.Node
	world *backend.World

	kind       Kind
	motionType MotionType

	usingBBCollision bool

	// Shape storage. The backend references these shapes; they are only
	// released when the object is destroyed, after deregistration.
	meshShapes   []*backend.TriangleMeshShape
	convexShapes []*backend.ConvexHullShape
	boxShapes    []*backend.BoxShape
	objectShape  *backend.CompoundShape

	// sceneObjects holds the per-leaf collision objects of a scene, or
	// the static shadow of an object in the static motion type.
	sceneObjects []*backend.CollisionObject
	body         *backend.RigidBody
}

// New binds a rigid object to a scene node and a backend world. No backend
// registration happens until one of the initialization entry points runs.
func New(node *scene.Node, world *backend.World, kind Kind) *RigidObject {
	return &RigidObject{
		node:       node,
		world:      world,
		kind:       kind,
		motionType: MotionDynamic,
	}
}

// Node returns the bound scene node.
func (o *RigidObject) Node() *scene.Node { return o.node }

// Kind returns the object kind fixed at construction.
func (o *RigidObject) Kind() Kind { return o.kind }

// MotionType returns the current motion type. Only meaningful for
// KindObject.
func (o *RigidObject) MotionType() MotionType { return o.motionType }

// Body returns the backend rigid body, or nil for scenes. Used by the
// simulation stepper to read poses back; everything else should go
// through the accessor surface.
func (o *RigidObject) Body() *backend.RigidBody { return o.body }

// InitializeScene builds one concave static collision object per meshed
// node of the model and registers them all with the world. Must be called
// at most once, and only on a KindScene object.
func (o *RigidObject) InitializeScene(model *assets.CollisionModel, attrs *assets.SceneAttributes) error {
	if o.kind != KindScene {
		return ErrWrongKind
	}

	o.buildSceneShapes(vmath.Identity(), model, &model.Root)
	for _, obj := range o.sceneObjects {
		obj.SetFriction(attrs.Friction)
		obj.SetRestitution(attrs.Restitution)
		o.world.AddCollisionObject(obj)
	}

	logger.Debug("scene collision initialized",
		zap.Int("collision_objects", len(o.sceneObjects)))
	return nil
}

// InitializeObject builds the compound collision shape for a movable
// object, constructs its rigid body from the attributes and registers the
// body with the world. Must be called at most once, and only on a
// KindObject object. The motion type starts dynamic.
func (o *RigidObject) InitializeObject(model *assets.CollisionModel, attrs *assets.ObjectAttributes) error {
	if o.kind != KindObject {
		return ErrWrongKind
	}

	o.motionType = MotionDynamic
	o.usingBBCollision = attrs.BoundingBoxCollisions
	o.objectShape = backend.NewCompoundShape()

	if !o.usingBBCollision {
		o.buildCompoundShapes(vmath.Identity(), model, &model.Root, attrs.JoinCollisionMeshes)

		// The joined hull is attached once, after the whole tree has
		// contributed its points.
		if attrs.JoinCollisionMeshes && len(o.convexShapes) > 0 {
			joined := o.convexShapes[len(o.convexShapes)-1]
			joined.SetMargin(0)
			joined.RecalcLocalAabb()
			o.objectShape.AddChildShape(vmath.Identity(), joined)
		}
	}

	o.objectShape.SetMargin(attrs.Margin)
	o.objectShape.SetLocalScaling(attrs.Scale)

	inertia := attrs.Inertia
	if !o.usingBBCollision && inertia.IsZero() {
		// A zero inertia vector means unset: let the backend compute one.
		inertia = o.objectShape.CalculateLocalInertia(attrs.Mass)
		logger.Info("automatic object inertia computed",
			zap.Float32("x", inertia.X),
			zap.Float32("y", inertia.Y),
			zap.Float32("z", inertia.Z))
	}

	o.body = backend.NewRigidBody(backend.ConstructionInfo{
		Mass:           attrs.Mass,
		Shape:          o.objectShape,
		LocalInertia:   inertia,
		Friction:       attrs.Friction,
		Restitution:    attrs.Restitution,
		LinearDamping:  attrs.LinearDamping,
		AngularDamping: attrs.AngularDamping,
	})
	o.world.AddRigidBody(o.body)
	o.SyncPose()
	return nil
}

// FinalizeObject completes object initialization once the node's bounding
// box is known: if the object is configured for bounding-box collision,
// the box shape replaces the compound children here.
func (o *RigidObject) FinalizeObject() {
	if o.kind == KindObject && o.usingBBCollision {
		o.setCollisionFromBB()
	}
}

// SetMotionType transitions the object to the target motion type,
// migrating it between backend storage categories. After every transition
// exactly one of {body in world, static shadow in world} holds. Returns
// false when the target is not a recognized motion type or the object
// kind has no motion type; setting the current type again is a successful
// no-op with no backend traffic.
func (o *RigidObject) SetMotionType(mt MotionType) bool {
	if o.kind != KindObject {
		return false
	}
	if mt == o.motionType {
		return true // no work
	}
	if mt != MotionDynamic && mt != MotionKinematic && mt != MotionStatic {
		return false
	}

	// Deregister the live backend entity before mutating flags.
	if o.motionType == MotionStatic {
		shadow := o.sceneObjects[len(o.sceneObjects)-1]
		o.world.RemoveCollisionObject(shadow)
		o.sceneObjects = nil
	} else {
		o.world.RemoveRigidBody(o.body)
	}

	from := o.motionType
	switch mt {
	case MotionKinematic:
		o.body.SetCollisionFlags(o.body.CollisionFlags()&^backend.CollisionFlagStatic |
			backend.CollisionFlagKinematic)
		o.motionType = MotionKinematic
		o.world.AddRigidBody(o.body)

	case MotionStatic:
		o.body.SetCollisionFlags(o.body.CollisionFlags()&^backend.CollisionFlagKinematic |
			backend.CollisionFlagStatic)
		o.motionType = MotionStatic

		// The body leaves the world; a collision-only shadow sharing the
		// shape and current transform is registered in its place, in the
		// static filter group so it meets default and static objects but
		// never another static.
		shadow := backend.NewCollisionObject()
		shadow.SetCollisionShape(o.objectShape)
		shadow.SetWorldTransform(o.body.WorldTransform())
		o.world.AddCollisionObjectWithFilter(shadow,
			backend.FilterStatic, backend.FilterDefault|backend.FilterStatic)
		o.sceneObjects = append(o.sceneObjects, shadow)

	case MotionDynamic:
		o.body.SetCollisionFlags(o.body.CollisionFlags() &^
			(backend.CollisionFlagStatic | backend.CollisionFlagKinematic))
		o.motionType = MotionDynamic
		o.world.AddRigidBody(o.body)
		o.SetActive()
	}

	logger.Debug("motion type changed",
		zap.String("from", from.String()),
		zap.String("to", mt.String()))
	return true
}

// IsActive reports whether the backend body is awake. Scenes are never
// active.
func (o *RigidObject) IsActive() bool {
	if o.kind != KindObject || o.body == nil {
		return false
	}
	return o.body.IsActive()
}

// SetActive wakes the backend body. No-op for scenes.
func (o *RigidObject) SetActive() {
	if o.kind == KindObject && o.body != nil {
		o.body.Activate(true)
	}
}

// SyncPose pushes the current render-node world transform into the
// backend body. This is the only authorized render-to-physics pose flow;
// the reverse direction belongs to the simulation stepper. Scene
// placement is fixed at load, so this is a no-op for scenes.
func (o *RigidObject) SyncPose() {
	if o.kind != KindObject || o.body == nil {
		return
	}
	o.body.SetWorldTransform(o.node.WorldTransform().RigidTransform())
}

// ShiftOrigin translates the render node and every child shape offset of
// the compound by delta, then recomputes the compound bounds and the
// node's cumulative bounding box. Render and physics sides move in the
// same call so they cannot desynchronize.
func (o *RigidObject) ShiftOrigin(delta vmath.Vec3) {
	logger.Debug("shift origin",
		zap.Float32("x", delta.X),
		zap.Float32("y", delta.Y),
		zap.Float32("z", delta.Z))

	o.node.Translate(delta)

	if o.objectShape == nil {
		return
	}
	for i := 0; i < o.objectShape.NumChildShapes(); i++ {
		t := o.objectShape.ChildTransform(i)
		t.SetTranslation(t.Translation().Add(delta))
		o.objectShape.UpdateChildTransform(i, t, false)
	}
	// Recompute the bounds once when done.
	o.objectShape.RecalculateLocalAabb()
	o.node.ComputeCumulativeBB()
}

// Destroy deregisters every backend handle owned by this object and
// releases the world reference. The shape storage it owns is dropped
// last, after nothing in the backend references it anymore.
func (o *RigidObject) Destroy() {
	if o.world == nil {
		return
	}
	if o.kind == KindObject && o.motionType != MotionStatic {
		if o.body != nil {
			o.world.RemoveRigidBody(o.body)
		}
	} else {
		for _, co := range o.sceneObjects {
			o.world.RemoveCollisionObject(co)
		}
	}
	o.sceneObjects = nil
	o.world = nil
}
