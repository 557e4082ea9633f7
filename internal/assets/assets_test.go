package assets

import (
	"os"
	"path/filepath"
	"testing"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func TestDefaultObjectAttributes(t *testing.T) {
	attrs := DefaultObjectAttributes()

	if attrs.Mass != 1 {
		t.Errorf("default mass: got %f, want 1", attrs.Mass)
	}
	if attrs.Scale != (vmath.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("default scale: got %v, want unit", attrs.Scale)
	}
	if !attrs.Inertia.IsZero() {
		t.Errorf("default inertia should be unset (zero), got %v", attrs.Inertia)
	}
}

func TestLoadObjectAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.yaml")
	data := `
mass: 12.5
margin: 0.01
friction: 0.8
join_collision_meshes: true
bounding_box_collisions: false
inertia:
  x: 1
  y: 2
  z: 3
collision_mesh: crate
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	attrs, err := LoadObjectAttributes(path)
	if err != nil {
		t.Fatalf("LoadObjectAttributes: %v", err)
	}

	if attrs.Mass != 12.5 {
		t.Errorf("mass: got %f, want 12.5", attrs.Mass)
	}
	if !attrs.JoinCollisionMeshes {
		t.Error("join_collision_meshes should be true")
	}
	if attrs.Inertia != (vmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("inertia: got %v, want (1, 2, 3)", attrs.Inertia)
	}
	// Unset fields keep defaults.
	if attrs.Restitution != 0.1 {
		t.Errorf("restitution default: got %f, want 0.1", attrs.Restitution)
	}
	if attrs.CollisionMeshHandle != "crate" {
		t.Errorf("collision mesh handle: got %q, want crate", attrs.CollisionMeshHandle)
	}
}

func TestLoadObjectAttributesMissingFile(t *testing.T) {
	_, err := LoadObjectAttributes(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLibraryRegisterAndLookup(t *testing.T) {
	lib := NewLibrary()
	model := &CollisionModel{
		Root:   MeshTransformNode{Transform: vmath.Identity(), MeshID: 0},
		Meshes: []CollisionMeshData{BoxMesh(vmath.Vec3{X: 1, Y: 1, Z: 1})},
	}
	lib.Register("crate", model)

	got, err := lib.Model("crate")
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if got != model {
		t.Error("lookup returned a different model")
	}

	if _, err := lib.Model("missing"); err == nil {
		t.Error("expected error for unknown handle")
	}
}

func TestCollisionModelBounds(t *testing.T) {
	// A unit box leaf offset by (5, 0, 0) under a root scaled by 2.
	model := &CollisionModel{
		Root: MeshTransformNode{
			Transform: vmath.Scale(2, 2, 2),
			MeshID:    MeshIDNone,
			Children: []MeshTransformNode{
				{Transform: vmath.Translate(5, 0, 0), MeshID: 0},
			},
		},
		Meshes: []CollisionMeshData{BoxMesh(vmath.Vec3{X: 1, Y: 1, Z: 1})},
	}

	bb := model.Bounds()
	want := vmath.Box3{Min: vmath.Vec3{X: 8, Y: -2, Z: -2}, Max: vmath.Vec3{X: 12, Y: 2, Z: 2}}
	if bb != want {
		t.Errorf("Bounds: got %v, want %v", bb, want)
	}
}

func TestBoxMesh(t *testing.T) {
	mesh := BoxMesh(vmath.Vec3{X: 1, Y: 2, Z: 3})

	if len(mesh.Positions) != 8 {
		t.Errorf("positions: got %d, want 8", len(mesh.Positions))
	}
	if len(mesh.Indices) != 36 {
		t.Errorf("indices: got %d, want 36", len(mesh.Indices))
	}
}
