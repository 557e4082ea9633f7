package backend

import (
	"testing"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.001
}

func TestBoxShapeLocalAabb(t *testing.T) {
	s := NewBoxShape(vmath.Vec3{X: 1, Y: 2, Z: 3})
	b := s.LocalAabb()

	if b.Min != (vmath.Vec3{X: -1, Y: -2, Z: -3}) || b.Max != (vmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("LocalAabb: got %v", b)
	}
}

func TestBoxShapeScaling(t *testing.T) {
	s := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})
	s.SetLocalScaling(vmath.Vec3{X: 2, Y: 3, Z: 4})
	b := s.LocalAabb()

	if b.Max != (vmath.Vec3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("scaled LocalAabb max: got %v, want (2, 3, 4)", b.Max)
	}
}

func TestConvexHullAddPoint(t *testing.T) {
	s := NewConvexHullShape()
	s.AddPoint(vmath.Vec3{X: 1, Y: 0, Z: 0}, false)
	s.AddPoint(vmath.Vec3{X: -1, Y: 2, Z: 0}, false)
	s.AddPoint(vmath.Vec3{X: 0, Y: -1, Z: 3}, false)
	s.RecalcLocalAabb()
	s.SetMargin(0)

	if s.NumPoints() != 3 {
		t.Fatalf("NumPoints: got %d, want 3", s.NumPoints())
	}
	b := s.LocalAabb()
	if b.Min != (vmath.Vec3{X: -1, Y: -1, Z: 0}) || b.Max != (vmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("LocalAabb: got %v", b)
	}
}

func TestConvexHullDefaultMargin(t *testing.T) {
	s := NewConvexHullShapeFromPoints([]vmath.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}})
	b := s.LocalAabb()

	// Margin inflates the bounds.
	if !approx(b.Max.X, 1.04) {
		t.Errorf("margin-expanded max: got %f, want 1.04", b.Max.X)
	}
}

func TestTriangleMeshShapeScaling(t *testing.T) {
	positions := []vmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	s := NewTriangleMeshShape(positions, []uint32{0, 1, 2})
	s.SetLocalScaling(vmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	if s.NumTriangles() != 1 {
		t.Fatalf("NumTriangles: got %d, want 1", s.NumTriangles())
	}
	b := s.LocalAabb()
	if b.Max != (vmath.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("scaled mesh bounds: got %v, want max (1, 1, 0)", b.Max)
	}
}

func TestCompoundChildManagement(t *testing.T) {
	c := NewCompoundShape()
	a := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})
	b := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})

	c.AddChildShape(vmath.Identity(), a)
	c.AddChildShape(vmath.Translate(5, 0, 0), b)
	if c.NumChildShapes() != 2 {
		t.Fatalf("NumChildShapes: got %d, want 2", c.NumChildShapes())
	}

	// Compound bounds span both children.
	bb := c.LocalAabb()
	if !approx(bb.Min.X, -1) || !approx(bb.Max.X, 6) {
		t.Errorf("compound bounds: got %v", bb)
	}

	c.RemoveChildShape(a)
	if c.NumChildShapes() != 1 {
		t.Fatalf("after remove: got %d children, want 1", c.NumChildShapes())
	}
	bb = c.LocalAabb()
	if !approx(bb.Min.X, 4) {
		t.Errorf("bounds after remove: got %v", bb)
	}
}

func TestCompoundUpdateChildTransform(t *testing.T) {
	c := NewCompoundShape()
	box := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})
	c.AddChildShape(vmath.Identity(), box)

	c.UpdateChildTransform(0, vmath.Translate(10, 0, 0), false)
	// Bounds are stale until recalculated.
	if !approx(c.LocalAabb().Max.X, 1) {
		t.Errorf("bounds recomputed before RecalculateLocalAabb")
	}
	c.RecalculateLocalAabb()
	if !approx(c.LocalAabb().Max.X, 11) {
		t.Errorf("bounds after recalc: got %v", c.LocalAabb())
	}
}

func TestCalculateLocalInertia(t *testing.T) {
	s := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})
	inertia := s.CalculateLocalInertia(6)

	// Solid unit cube of side 2: I = m/12 * (4+4) = 4 per axis for m=6.
	if !approx(inertia.X, 4) || !approx(inertia.Y, 4) || !approx(inertia.Z, 4) {
		t.Errorf("inertia: got %v, want (4, 4, 4)", inertia)
	}
	if inertia.IsZero() {
		t.Error("inertia should be non-zero for non-zero mass")
	}
}
