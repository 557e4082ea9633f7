package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("identity quaternion: got %v", q)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	p := q.ToMat4().TransformPoint(Vec3{1, 0, 0})

	if abs(p.X) > 0.001 || abs(p.Y) > 0.001 || abs(p.Z+1) > 0.001 {
		t.Errorf("rotated point: got %v, want (0, 0, -1)", p)
	}
}

func TestQuatMulCombines(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/4))
	combined := a.Mul(a)
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))

	if abs(combined.Dot(want)) < 0.999 {
		t.Errorf("two 45-degree rotations should equal one 90-degree: got %v, want %v", combined, want)
	}
}

func TestQuatMat4RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
	}{
		{"identity", QuatIdentity()},
		{"y90", QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))},
		{"x45", QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi/4))},
		{"diagonal", QuatFromAxisAngle(Vec3{1, 1, 1}.Normalize(), 2.1)},
		{"near180", QuatFromAxisAngle(Vec3{0, 0, 1}, 3.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromMat4(tt.q.ToMat4())
			// q and -q represent the same rotation.
			if abs(got.Dot(tt.q)) < 0.999 {
				t.Errorf("round trip: got %v, want %v", got, tt.q)
			}
		})
	}
}
