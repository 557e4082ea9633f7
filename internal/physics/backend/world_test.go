package backend

import (
	"testing"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func testBody(t *testing.T, mass float32, pos vmath.Vec3) *RigidBody {
	t.Helper()
	shape := NewBoxShape(vmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	body := NewRigidBody(ConstructionInfo{
		Mass:         mass,
		Shape:        shape,
		LocalInertia: shape.CalculateLocalInertia(mass),
		Friction:     0.5,
		Restitution:  0.5,
	})
	body.SetWorldTransform(vmath.TranslateVec(pos))
	return body
}

func TestAddRemoveBookkeeping(t *testing.T) {
	w := NewWorld(vmath.Vec3{Y: -9.8})
	b := testBody(t, 1, vmath.Vec3{})

	w.AddRigidBody(b)
	w.AddRigidBody(b) // double add is ignored
	if w.NumBodies() != 1 {
		t.Fatalf("NumBodies after double add: got %d, want 1", w.NumBodies())
	}

	w.RemoveRigidBody(b)
	if w.NumBodies() != 0 {
		t.Fatalf("NumBodies after remove: got %d, want 0", w.NumBodies())
	}
	w.RemoveRigidBody(b) // double remove is ignored

	o := NewCollisionObject()
	w.AddCollisionObject(o)
	if w.NumCollisionObjects() != 1 {
		t.Fatalf("NumCollisionObjects: got %d, want 1", w.NumCollisionObjects())
	}
	w.RemoveCollisionObject(o)
	if w.NumCollisionObjects() != 0 {
		t.Fatalf("NumCollisionObjects after remove: got %d, want 0", w.NumCollisionObjects())
	}
}

func TestContactTestOverlap(t *testing.T) {
	w := NewWorld(vmath.Vec3{})
	a := testBody(t, 1, vmath.Vec3{})
	b := testBody(t, 1, vmath.Vec3{X: 0.6})
	far := testBody(t, 1, vmath.Vec3{X: 100})
	w.AddRigidBody(a)
	w.AddRigidBody(b)
	w.AddRigidBody(far)

	if !w.ContactTest(&a.CollisionObject) {
		t.Error("overlapping bodies should report contact")
	}
	if w.ContactTest(&far.CollisionObject) {
		t.Error("distant body should report no contact")
	}
}

func TestContactTestStaticPairExcluded(t *testing.T) {
	w := NewWorld(vmath.Vec3{})
	shape := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})

	a := NewCollisionObject()
	a.SetCollisionShape(shape)
	b := NewCollisionObject()
	b.SetCollisionShape(shape)
	w.AddCollisionObjectWithFilter(a, FilterStatic, FilterDefault|FilterStatic)
	w.AddCollisionObjectWithFilter(b, FilterStatic, FilterDefault|FilterStatic)

	// Two static objects overlap but never generate contacts.
	if w.ContactTest(a) {
		t.Error("static pair should be excluded from contacts")
	}

	// A dynamic body at the same spot does contact the statics.
	dyn := testBody(t, 1, vmath.Vec3{})
	w.AddRigidBody(dyn)
	if !w.ContactTest(&dyn.CollisionObject) {
		t.Error("dynamic body should contact static objects")
	}
}

func TestFilterMaskRespected(t *testing.T) {
	w := NewWorld(vmath.Vec3{})
	shape := NewBoxShape(vmath.Vec3{X: 1, Y: 1, Z: 1})

	o := NewCollisionObject()
	o.SetCollisionShape(shape)
	// Static group, but masked to see only other statics.
	w.AddCollisionObjectWithFilter(o, FilterStatic, FilterStatic)

	dyn := testBody(t, 1, vmath.Vec3{})
	w.AddRigidBody(dyn)

	if w.ContactTest(&dyn.CollisionObject) {
		t.Error("mask excluding the default group should suppress the contact")
	}
}

func TestStepGravityFall(t *testing.T) {
	w := NewWorld(vmath.Vec3{Y: -10})
	b := testBody(t, 1, vmath.Vec3{Y: 100})
	w.AddRigidBody(b)

	for i := 0; i < 10; i++ {
		w.Step(0.1)
	}

	pos := b.WorldTransform().Translation()
	if pos.Y >= 100 {
		t.Errorf("body did not fall: y=%f", pos.Y)
	}
	if b.LinearVelocity().Y >= 0 {
		t.Errorf("velocity not downward: %v", b.LinearVelocity())
	}
}

func TestStepKinematicUnaffected(t *testing.T) {
	w := NewWorld(vmath.Vec3{Y: -10})
	b := testBody(t, 1, vmath.Vec3{Y: 5})
	b.SetCollisionFlags(b.CollisionFlags() | CollisionFlagKinematic)
	w.AddRigidBody(b)

	w.Step(0.1)

	if got := b.WorldTransform().Translation(); got != (vmath.Vec3{Y: 5}) {
		t.Errorf("kinematic body moved by integration: %v", got)
	}
}

func TestStepRestingOnStatic(t *testing.T) {
	w := NewWorld(vmath.Vec3{Y: -10})

	ground := NewCollisionObject()
	ground.SetCollisionShape(NewBoxShape(vmath.Vec3{X: 50, Y: 1, Z: 50}))
	ground.SetWorldTransform(vmath.Translate(0, -1, 0))
	w.AddCollisionObject(ground)

	b := testBody(t, 1, vmath.Vec3{Y: 3})
	w.AddRigidBody(b)

	for i := 0; i < 200; i++ {
		w.Step(1.0 / 60.0)
	}

	// Body half extent is 0.5, ground top is at y=0.
	y := b.WorldTransform().Translation().Y
	if y < 0.4 || y > 0.7 {
		t.Errorf("body should rest on the ground near y=0.5, got y=%f", y)
	}
}

func TestApplyImpulse(t *testing.T) {
	b := testBody(t, 2, vmath.Vec3{})
	b.ApplyImpulse(vmath.Vec3{X: 4}, vmath.Vec3{})

	if got := b.LinearVelocity(); !approx(got.X, 2) {
		t.Errorf("impulse velocity: got %v, want x=2", got)
	}
}

func TestSetMassPropsStaticFlag(t *testing.T) {
	b := testBody(t, 1, vmath.Vec3{})
	if b.IsStaticObject() {
		t.Error("massful body should not be static")
	}
	b.SetMassProps(0, vmath.Vec3{})
	if !b.IsStaticObject() {
		t.Error("zero-mass body should be static")
	}
}
