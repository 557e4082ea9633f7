package math

import "testing"

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %v, want (5, 7, 9)", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %v, want (3, 3, 3)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y: got %v, want (0, 0, 1)", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()

	if abs(n.Length()-1) > 0.001 {
		t.Errorf("normalized length: got %f, want 1", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing zero vector should return zero")
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 2, -1}

	if got := a.Min(b); got != (Vec3{1, 2, -2}) {
		t.Errorf("Min: got %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, -1}) {
		t.Errorf("Max: got %v", got)
	}
}

func TestVec3IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if (Vec3{0, 0.001, 0}).IsZero() {
		t.Error("non-zero vector should not report IsZero")
	}
}
