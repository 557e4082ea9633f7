// Package assets holds the collision-side asset model: mesh transform
// hierarchies, raw collision mesh buffers, physics attribute bags and the
// library that serves them by handle.
package assets

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// MeshIDNone marks a grouping node that carries no mesh of its own.
const MeshIDNone = -1

// MeshTransformNode is one node of a mesh hierarchy: a local-to-parent
// transform, an optional index into the owning model's mesh buffers, and
// child nodes. The hierarchy is immutable once built.
type MeshTransformNode struct {
	// Transform is the local-to-parent transform of this node.
	Transform vmath.Mat4
	// MeshID indexes the owning model's Meshes, or MeshIDNone.
	MeshID int
	// Children are the sub-nodes, transformed relative to this node.
	Children []MeshTransformNode
}

// CollisionMeshData is one raw mesh buffer: positions plus triangle
// indices (triples).
type CollisionMeshData struct {
	Positions []vmath.Vec3
	Indices   []uint32
}

// CollisionModel is a mesh hierarchy together with the flat mesh buffers
// its nodes reference.
type CollisionModel struct {
	Root   MeshTransformNode
	Meshes []CollisionMeshData
}

// Bounds returns the model's bounding box with all node transforms
// applied, in the root node's space.
func (m *CollisionModel) Bounds() vmath.Box3 {
	return nodeBounds(vmath.Identity(), m, &m.Root)
}

func nodeBounds(parentToWorld vmath.Mat4, m *CollisionModel, node *MeshTransformNode) vmath.Box3 {
	localToWorld := parentToWorld.Mul(node.Transform)
	var bb vmath.Box3
	if node.MeshID != MeshIDNone {
		mesh := m.Meshes[node.MeshID]
		for _, p := range mesh.Positions {
			bb = bb.Join(vmath.Box3{Min: p, Max: p})
		}
		bb = bb.Transformed(localToWorld)
	}
	for i := range node.Children {
		bb = bb.Join(nodeBounds(localToWorld, m, &node.Children[i]))
	}
	return bb
}

// BoxMesh returns a box mesh with the given half extents, centered on the
// origin. 8 vertices, 12 triangles.
func BoxMesh(half vmath.Vec3) CollisionMeshData {
	x, y, z := half.X, half.Y, half.Z
	return CollisionMeshData{
		Positions: []vmath.Vec3{
			{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z},
			{X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
			{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z},
			{X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // back
			4, 6, 5, 4, 7, 6, // front
			0, 4, 5, 0, 5, 1, // bottom
			3, 2, 6, 3, 6, 7, // top
			0, 3, 7, 0, 7, 4, // left
			1, 5, 6, 1, 6, 2, // right
		},
	}
}

// PlaneMesh returns a flat quad in the XZ plane with the given half
// extents, centered on the origin.
func PlaneMesh(halfX, halfZ float32) CollisionMeshData {
	return CollisionMeshData{
		Positions: []vmath.Vec3{
			{X: -halfX, Z: -halfZ}, {X: halfX, Z: -halfZ},
			{X: halfX, Z: halfZ}, {X: -halfX, Z: halfZ},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
