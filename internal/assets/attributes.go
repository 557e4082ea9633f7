package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// SceneAttributes configures scene-static collision geometry. Read once at
// initialization.
type SceneAttributes struct {
	Friction            float32 `yaml:"friction"`
	Restitution         float32 `yaml:"restitution"`
	CollisionMeshHandle string  `yaml:"collision_mesh"`
}

// DefaultSceneAttributes returns scene attributes with sensible defaults.
func DefaultSceneAttributes() *SceneAttributes {
	return &SceneAttributes{
		Friction:    0.5,
		Restitution: 0.1,
	}
}

// ObjectAttributes configures a movable rigid object. Read once at
// initialization.
type ObjectAttributes struct {
	Mass    float32    `yaml:"mass"`
	Margin  float32    `yaml:"margin"`
	Scale   vmath.Vec3 `yaml:"scale"`
	// Inertia is the diagonal inertia vector. A zero vector means unset:
	// the backend computes one from mass and shape.
	Inertia vmath.Vec3 `yaml:"inertia"`

	Friction       float32 `yaml:"friction"`
	Restitution    float32 `yaml:"restitution"`
	LinearDamping  float32 `yaml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping"`

	// JoinCollisionMeshes merges all mesh nodes into one convex hull
	// instead of one hull per node.
	JoinCollisionMeshes bool `yaml:"join_collision_meshes"`
	// BoundingBoxCollisions replaces mesh collision with a single box
	// around the object's bounding box.
	BoundingBoxCollisions bool   `yaml:"bounding_box_collisions"`
	CollisionMeshHandle   string `yaml:"collision_mesh"`
}

// DefaultObjectAttributes returns object attributes with sensible
// defaults: unit mass, 4cm margin, unit scale, auto-computed inertia.
func DefaultObjectAttributes() *ObjectAttributes {
	return &ObjectAttributes{
		Mass:           1,
		Margin:         0.04,
		Scale:          vmath.Vec3{X: 1, Y: 1, Z: 1},
		Friction:       0.5,
		Restitution:    0.1,
		LinearDamping:  0.05,
		AngularDamping: 0.05,
	}
}

// LoadSceneAttributes loads scene attributes from a YAML file, merged over
// defaults.
func LoadSceneAttributes(path string) (*SceneAttributes, error) {
	attrs := DefaultSceneAttributes()
	if err := loadYAML(path, attrs); err != nil {
		return nil, fmt.Errorf("loading scene attributes from %s: %w", path, err)
	}
	return attrs, nil
}

// LoadObjectAttributes loads object attributes from a YAML file, merged
// over defaults.
func LoadObjectAttributes(path string) (*ObjectAttributes, error) {
	attrs := DefaultObjectAttributes()
	if err := loadYAML(path, attrs); err != nil {
		return nil, fmt.Errorf("loading object attributes from %s: %w", path, err)
	}
	return attrs, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
