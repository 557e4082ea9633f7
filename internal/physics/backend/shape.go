// Package backend implements the collision and dynamics backend: shapes,
// collision objects, rigid bodies and the world container they register
// with. Collision detection is broad-phase only (axis-aligned boxes), which
// is all the object layer above requires of it.
package backend

import (
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Shape is a collision shape attachable to a collision object or compound.
type Shape interface {
	// Margin returns the collision margin of the shape.
	Margin() float32
	// SetMargin sets the collision margin of the shape.
	SetMargin(margin float32)
	// LocalScaling returns the per-axis scale applied to the shape.
	LocalScaling() vmath.Vec3
	// SetLocalScaling sets the per-axis scale applied to the shape.
	// Scale lives on the shape, not on the owning object's placement.
	SetLocalScaling(scaling vmath.Vec3)
	// LocalAabb returns the shape bounds in shape-local space, scaled and
	// expanded by the margin.
	LocalAabb() vmath.Box3
	// Aabb returns the shape bounds placed by the given rigid transform.
	Aabb(transform vmath.Mat4) vmath.Box3
	// CalculateLocalInertia returns a diagonal inertia vector for the given
	// mass, using a box approximation over the local bounds.
	CalculateLocalInertia(mass float32) vmath.Vec3
}

// shapeBase carries the state shared by every shape kind.
type shapeBase struct {
	margin  float32
	scaling vmath.Vec3
}

func newShapeBase(margin float32) shapeBase {
	return shapeBase{margin: margin, scaling: vmath.Vec3{X: 1, Y: 1, Z: 1}}
}

func (s *shapeBase) Margin() float32                       { return s.margin }
func (s *shapeBase) SetMargin(margin float32)              { s.margin = margin }
func (s *shapeBase) LocalScaling() vmath.Vec3              { return s.scaling }
func (s *shapeBase) SetLocalScaling(scaling vmath.Vec3)    { s.scaling = scaling }
func (s *shapeBase) scaled(b vmath.Box3) vmath.Box3 {
	if b.IsEmpty() {
		return b
	}
	return vmath.Box3{Min: b.Min.Mul(s.scaling), Max: b.Max.Mul(s.scaling)}.Expand(s.margin)
}

// boxInertia returns the diagonal inertia of a solid box with the given
// half extents.
func boxInertia(mass float32, half vmath.Vec3) vmath.Vec3 {
	sx, sy, sz := 2*half.X, 2*half.Y, 2*half.Z
	k := mass / 12
	return vmath.Vec3{
		X: k * (sy*sy + sz*sz),
		Y: k * (sx*sx + sz*sz),
		Z: k * (sx*sx + sy*sy),
	}
}

// BoxShape is a box centered on the origin.
type BoxShape struct {
	shapeBase
	halfExtents vmath.Vec3
}

// NewBoxShape returns a box with the given half extents.
func NewBoxShape(halfExtents vmath.Vec3) *BoxShape {
	return &BoxShape{shapeBase: newShapeBase(0), halfExtents: halfExtents}
}

// HalfExtents returns the unscaled half extents.
func (s *BoxShape) HalfExtents() vmath.Vec3 { return s.halfExtents }

func (s *BoxShape) LocalAabb() vmath.Box3 {
	return s.scaled(vmath.Box3{Min: s.halfExtents.Scale(-1), Max: s.halfExtents})
}

func (s *BoxShape) Aabb(transform vmath.Mat4) vmath.Box3 {
	return s.LocalAabb().Transformed(transform)
}

func (s *BoxShape) CalculateLocalInertia(mass float32) vmath.Vec3 {
	return boxInertia(mass, s.LocalAabb().HalfExtents())
}

// ConvexHullShape is a convex point cloud. Collision treats it by its
// bounds; the point set is what defines the hull for inertia and AABB
// purposes.
type ConvexHullShape struct {
	shapeBase
	points    []vmath.Vec3
	localAabb vmath.Box3
}

// NewConvexHullShape returns an empty hull. Points are added with AddPoint.
func NewConvexHullShape() *ConvexHullShape {
	return &ConvexHullShape{shapeBase: newShapeBase(defaultMargin)}
}

// NewConvexHullShapeFromPoints returns a hull over the given points.
func NewConvexHullShapeFromPoints(points []vmath.Vec3) *ConvexHullShape {
	s := NewConvexHullShape()
	s.points = append(s.points, points...)
	s.RecalcLocalAabb()
	return s
}

// AddPoint appends a point to the hull. Pass recalc=false when adding many
// points and call RecalcLocalAabb once at the end.
func (s *ConvexHullShape) AddPoint(p vmath.Vec3, recalc bool) {
	s.points = append(s.points, p)
	if recalc {
		s.RecalcLocalAabb()
	}
}

// NumPoints returns the number of points in the hull.
func (s *ConvexHullShape) NumPoints() int { return len(s.points) }

// RecalcLocalAabb recomputes the cached local bounds from the point set.
func (s *ConvexHullShape) RecalcLocalAabb() {
	s.localAabb = vmath.Box3FromPoints(s.points)
}

func (s *ConvexHullShape) LocalAabb() vmath.Box3 { return s.scaled(s.localAabb) }

func (s *ConvexHullShape) Aabb(transform vmath.Mat4) vmath.Box3 {
	return s.LocalAabb().Transformed(transform)
}

func (s *ConvexHullShape) CalculateLocalInertia(mass float32) vmath.Vec3 {
	return boxInertia(mass, s.LocalAabb().HalfExtents())
}

// defaultMargin matches the conventional convex shape margin of the
// physics literature (4cm).
const defaultMargin = 0.04

// TriangleMeshShape is an exact concave triangle mesh. It is only valid on
// immovable collision objects.
type TriangleMeshShape struct {
	shapeBase
	positions []vmath.Vec3
	indices   []uint32
	localAabb vmath.Box3
}

// NewTriangleMeshShape wraps raw position/index buffers. The buffers are
// referenced, not copied, and must outlive the shape.
func NewTriangleMeshShape(positions []vmath.Vec3, indices []uint32) *TriangleMeshShape {
	s := &TriangleMeshShape{
		shapeBase: newShapeBase(0),
		positions: positions,
		indices:   indices,
	}
	s.localAabb = vmath.Box3FromPoints(positions)
	return s
}

// NumTriangles returns the triangle count of the mesh.
func (s *TriangleMeshShape) NumTriangles() int { return len(s.indices) / 3 }

func (s *TriangleMeshShape) LocalAabb() vmath.Box3 { return s.scaled(s.localAabb) }

func (s *TriangleMeshShape) Aabb(transform vmath.Mat4) vmath.Box3 {
	return s.LocalAabb().Transformed(transform)
}

func (s *TriangleMeshShape) CalculateLocalInertia(mass float32) vmath.Vec3 {
	// Concave static meshes have no dynamics; inertia is a box fallback.
	return boxInertia(mass, s.LocalAabb().HalfExtents())
}

// CompoundShape composes child shapes, each at its own offset transform.
type CompoundShape struct {
	shapeBase
	children  []compoundChild
	localAabb vmath.Box3
}

type compoundChild struct {
	shape     Shape
	transform vmath.Mat4
}

// NewCompoundShape returns an empty compound.
func NewCompoundShape() *CompoundShape {
	return &CompoundShape{shapeBase: newShapeBase(0)}
}

// AddChildShape attaches a child at the given offset transform.
func (s *CompoundShape) AddChildShape(transform vmath.Mat4, child Shape) {
	s.children = append(s.children, compoundChild{shape: child, transform: transform})
	s.RecalculateLocalAabb()
}

// RemoveChildShape detaches the first child matching the given shape.
func (s *CompoundShape) RemoveChildShape(child Shape) {
	for i, c := range s.children {
		if c.shape == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			s.RecalculateLocalAabb()
			return
		}
	}
}

// NumChildShapes returns the number of attached children.
func (s *CompoundShape) NumChildShapes() int { return len(s.children) }

// ChildShape returns the i-th child shape.
func (s *CompoundShape) ChildShape(i int) Shape { return s.children[i].shape }

// ChildTransform returns the offset transform of the i-th child.
func (s *CompoundShape) ChildTransform(i int) vmath.Mat4 { return s.children[i].transform }

// UpdateChildTransform replaces the offset transform of the i-th child.
// Pass recalc=false when updating many children and call
// RecalculateLocalAabb once at the end.
func (s *CompoundShape) UpdateChildTransform(i int, transform vmath.Mat4, recalc bool) {
	s.children[i].transform = transform
	if recalc {
		s.RecalculateLocalAabb()
	}
}

// RecalculateLocalAabb recomputes the compound bounds from its children.
func (s *CompoundShape) RecalculateLocalAabb() {
	var b vmath.Box3
	for _, c := range s.children {
		b = b.Join(c.shape.Aabb(c.transform))
	}
	s.localAabb = b
}

func (s *CompoundShape) LocalAabb() vmath.Box3 { return s.scaled(s.localAabb) }

func (s *CompoundShape) Aabb(transform vmath.Mat4) vmath.Box3 {
	return s.LocalAabb().Transformed(transform)
}

func (s *CompoundShape) CalculateLocalInertia(mass float32) vmath.Vec3 {
	return boxInertia(mass, s.LocalAabb().HalfExtents())
}
