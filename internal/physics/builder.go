package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-physics/internal/assets"
	"github.com/Faultbox/midgard-physics/internal/logger"
	"github.com/Faultbox/midgard-physics/internal/physics/backend"
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// buildSceneShapes walks the mesh transform tree depth-first and emits one
// static triangle-mesh collision object per meshed node. The accumulated
// transform is split between the shape (scale) and the collision object
// (rotation and translation); the vertex data itself is never baked.
func (o *RigidObject) buildSceneShapes(parentToWorld vmath.Mat4, model *assets.CollisionModel, node *assets.MeshTransformNode) {
	localToWorld := parentToWorld.Mul(node.Transform)

	if node.MeshID != assets.MeshIDNone {
		mesh := model.Meshes[node.MeshID]
		shape := backend.NewTriangleMeshShape(mesh.Positions, mesh.Indices)
		shape.SetMargin(0)
		shape.SetLocalScaling(localToWorld.Scaling())

		obj := backend.NewCollisionObject()
		obj.SetCollisionShape(shape)
		obj.SetWorldTransform(localToWorld.RigidTransform())

		o.meshShapes = append(o.meshShapes, shape)
		o.sceneObjects = append(o.sceneObjects, obj)
	}

	for i := range node.Children {
		o.buildSceneShapes(localToWorld, model, &node.Children[i])
	}
}

// buildCompoundShapes walks the mesh transform tree and populates the
// object's compound shape with convex hulls. With join enabled every
// meshed node contributes its world-transformed points to one shared
// hull, which the caller attaches to the compound at identity once the
// walk is done. Without join each meshed node gets its own hull over the
// raw points, attached at the node's accumulated transform.
func (o *RigidObject) buildCompoundShapes(parentToWorld vmath.Mat4, model *assets.CollisionModel, node *assets.MeshTransformNode, join bool) {
	localToWorld := parentToWorld.Mul(node.Transform)

	if node.MeshID != assets.MeshIDNone {
		mesh := model.Meshes[node.MeshID]
		if join {
			if len(o.convexShapes) == 0 {
				o.convexShapes = append(o.convexShapes, backend.NewConvexHullShape())
			}
			hull := o.convexShapes[len(o.convexShapes)-1]
			for _, p := range mesh.Positions {
				hull.AddPoint(localToWorld.TransformPoint(p), false)
			}
		} else {
			hull := backend.NewConvexHullShapeFromPoints(mesh.Positions)
			hull.SetMargin(0)
			hull.RecalcLocalAabb()
			o.convexShapes = append(o.convexShapes, hull)
			o.objectShape.AddChildShape(localToWorld, hull)
		}
	}

	for i := range node.Children {
		o.buildCompoundShapes(localToWorld, model, &node.Children[i], join)
	}
}

// setCollisionFromBB swaps the compound children for a single box sized
// by half the node's cumulative bounding box. Whatever hull children were
// installed are detached first; after this call the compound always holds
// exactly one child. Reversing the swap requires a full rebuild.
func (o *RigidObject) setCollisionFromBB() {
	half := o.node.CumulativeBB().HalfExtents()

	for o.objectShape.NumChildShapes() > 0 {
		o.objectShape.RemoveChildShape(o.objectShape.ChildShape(0))
	}
	o.boxShapes = o.boxShapes[:0]

	box := backend.NewBoxShape(half)
	o.boxShapes = append(o.boxShapes, box)
	o.objectShape.AddChildShape(vmath.Identity(), box)
	o.objectShape.RecalculateLocalAabb()
	o.body.SetCollisionShape(o.objectShape)

	if o.body.LocalInertia().IsZero() {
		inertia := o.objectShape.CalculateLocalInertia(o.body.Mass())
		o.body.SetMassProps(o.body.Mass(), inertia)
		logger.Info("automatic bounding-box inertia computed",
			zap.Float32("x", inertia.X),
			zap.Float32("y", inertia.Y),
			zap.Float32("z", inertia.Z))
	}
}
