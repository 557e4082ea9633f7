package scene

import (
	"math"
	"testing"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func TestWorldTransformComposition(t *testing.T) {
	root := NewNode()
	root.SetTranslation(vmath.Vec3{X: 10})

	child := root.NewChild()
	child.SetTranslation(vmath.Vec3{Y: 5})
	child.SetRotation(vmath.QuatFromAxisAngle(vmath.Vec3{Y: 1}, float32(math.Pi/2)))

	p := child.WorldTransform().TransformPoint(vmath.Vec3{X: 1})

	// Rotate (1,0,0) to (0,0,-1), then translate by (10,5,0).
	want := vmath.Vec3{X: 10, Y: 5, Z: -1}
	if p.Distance(want) > 0.001 {
		t.Errorf("world point: got %v, want %v", p, want)
	}
}

func TestSetFromTransform(t *testing.T) {
	n := NewNode()
	n.SetScale(vmath.Vec3{X: 2, Y: 2, Z: 2})

	n.SetFromTransform(vmath.Translate(1, 2, 3).Mul(vmath.RotateY(0.5)))

	if n.Translation() != (vmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("translation: got %v", n.Translation())
	}
	// Scale must survive a pose update.
	if n.Scale() != (vmath.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("scale clobbered: got %v", n.Scale())
	}
}

func TestComputeCumulativeBB(t *testing.T) {
	root := NewNode()
	root.SetLocalBounds(vmath.Box3{Min: vmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vmath.Vec3{X: 1, Y: 1, Z: 1}})

	child := root.NewChild()
	child.SetTranslation(vmath.Vec3{X: 5})
	child.SetLocalBounds(vmath.Box3{Min: vmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vmath.Vec3{X: 1, Y: 1, Z: 1}})

	bb := root.ComputeCumulativeBB()

	if bb.Min != (vmath.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Errorf("cumulative min: got %v", bb.Min)
	}
	if bb.Max != (vmath.Vec3{X: 6, Y: 1, Z: 1}) {
		t.Errorf("cumulative max: got %v, want (6, 1, 1)", bb.Max)
	}
	if root.CumulativeBB() != bb {
		t.Error("cumulative bounds not cached")
	}
}

func TestTranslateAccumulates(t *testing.T) {
	n := NewNode()
	n.Translate(vmath.Vec3{X: 1})
	n.Translate(vmath.Vec3{X: 2, Z: -1})

	if n.Translation() != (vmath.Vec3{X: 3, Z: -1}) {
		t.Errorf("translation: got %v", n.Translation())
	}
}
