// Package scene provides the render-side scene graph node the physics
// layer binds to: a translation/rotation/scale transform with cached
// cumulative bounds.
package scene

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Node is a scene-graph node. Transforms are local to the parent.
type Node struct {
	parent   *Node
	children []*Node

	translation vmath.Vec3
	rotation    vmath.Quat
	scale       vmath.Vec3

	// localBounds are the bounds of this node's own geometry in local
	// space, set by whoever loads the geometry.
	localBounds  vmath.Box3
	cumulativeBB vmath.Box3
}

// NewNode returns a root node with an identity transform.
func NewNode() *Node {
	return &Node{
		rotation: vmath.QuatIdentity(),
		scale:    vmath.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// NewChild creates and attaches a child node.
func (n *Node) NewChild() *Node {
	child := NewNode()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the attached child nodes.
func (n *Node) Children() []*Node { return n.children }

// SetTranslation sets the local translation.
func (n *Node) SetTranslation(t vmath.Vec3) { n.translation = t }

// Translation returns the local translation.
func (n *Node) Translation() vmath.Vec3 { return n.translation }

// Translate moves the node by delta in parent space.
func (n *Node) Translate(delta vmath.Vec3) {
	n.translation = n.translation.Add(delta)
}

// SetRotation sets the local rotation.
func (n *Node) SetRotation(q vmath.Quat) { n.rotation = q }

// Rotation returns the local rotation.
func (n *Node) Rotation() vmath.Quat { return n.rotation }

// SetScale sets the local scale.
func (n *Node) SetScale(s vmath.Vec3) { n.scale = s }

// Scale returns the local scale.
func (n *Node) Scale() vmath.Vec3 { return n.scale }

// LocalTransform returns the local transform (translate * rotate * scale).
func (n *Node) LocalTransform() vmath.Mat4 {
	return vmath.TranslateVec(n.translation).
		Mul(n.rotation.ToMat4()).
		Mul(vmath.ScaleVec(n.scale))
}

// WorldTransform returns the transform composed through all ancestors.
func (n *Node) WorldTransform() vmath.Mat4 {
	if n.parent == nil {
		return n.LocalTransform()
	}
	return n.parent.WorldTransform().Mul(n.LocalTransform())
}

// SetFromTransform sets translation and rotation from a rigid transform.
// Scale is left unchanged; physics placement never carries scale.
func (n *Node) SetFromTransform(t vmath.Mat4) {
	n.translation = t.Translation()
	n.rotation = vmath.QuatFromMat4(t.Rotation())
}

// SetLocalBounds sets the bounds of this node's own geometry.
func (n *Node) SetLocalBounds(b vmath.Box3) { n.localBounds = b }

// LocalBounds returns the bounds of this node's own geometry.
func (n *Node) LocalBounds() vmath.Box3 { return n.localBounds }

// CumulativeBB returns the cached cumulative bounding box. Call
// ComputeCumulativeBB after changing transforms or bounds.
func (n *Node) CumulativeBB() vmath.Box3 { return n.cumulativeBB }

// ComputeCumulativeBB recomputes the node's bounds joined with every
// descendant's, expressed in this node's local space, and caches it.
func (n *Node) ComputeCumulativeBB() vmath.Box3 {
	bb := n.localBounds
	for _, child := range n.children {
		childBB := child.ComputeCumulativeBB()
		bb = bb.Join(childBB.Transformed(child.LocalTransform()))
	}
	n.cumulativeBB = bb
	return bb
}
