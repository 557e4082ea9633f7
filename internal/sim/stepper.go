// Package sim drives the backend world on a fixed time step and feeds
// resulting poses back into the scene graph. The stepper owns the
// physics-to-render direction of pose flow; the render-to-physics
// direction stays with each rigid object's SyncPose.
package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-physics/internal/config"
	"github.com/Faultbox/midgard-physics/internal/logger"
	"github.com/Faultbox/midgard-physics/internal/physics"
	"github.com/Faultbox/midgard-physics/internal/physics/backend"
)

// Stepper advances a backend world with a fixed-step accumulator. Not
// safe for concurrent use; all calls belong to the simulation goroutine.
type Stepper struct {
	world   *backend.World
	objects []*physics.RigidObject

	stepSize    time.Duration
	maxSubSteps int

	accumulator time.Duration
	worldTime   time.Duration
}

// NewStepper builds a stepper over world using the sim configuration.
func NewStepper(world *backend.World, cfg config.SimConfig) *Stepper {
	return &Stepper{
		world:       world,
		stepSize:    cfg.StepSize,
		maxSubSteps: cfg.MaxSubSteps,
	}
}

// Track registers a rigid object for pose write-back after each step.
func (s *Stepper) Track(o *physics.RigidObject) {
	s.objects = append(s.objects, o)
}

// Untrack removes a rigid object from pose write-back.
func (s *Stepper) Untrack(o *physics.RigidObject) {
	for i, t := range s.objects {
		if t == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Objects returns the tracked rigid objects.
func (s *Stepper) Objects() []*physics.RigidObject { return s.objects }

// WorldTime returns the total simulated time.
func (s *Stepper) WorldTime() time.Duration { return s.worldTime }

// Advance consumes elapsed wall time and runs as many fixed steps as it
// covers, bounded by the sub-step limit. Excess time beyond the limit is
// dropped so a slow frame cannot trigger a death spiral. Returns the
// number of steps taken.
func (s *Stepper) Advance(elapsed time.Duration) int {
	s.accumulator += elapsed

	limit := time.Duration(s.maxSubSteps) * s.stepSize
	if s.accumulator > limit {
		logger.Warn("simulation falling behind, dropping time",
			zap.Duration("dropped", s.accumulator-limit))
		s.accumulator = limit
	}

	steps := 0
	dt := float32(s.stepSize.Seconds())
	for s.accumulator >= s.stepSize {
		// Kinematic objects are driven by their nodes, so their poses
		// flow in before integration.
		for _, o := range s.objects {
			if o.Kind() == physics.KindObject && o.MotionType() == physics.MotionKinematic {
				o.SyncPose()
			}
		}

		s.world.Step(dt)
		s.accumulator -= s.stepSize
		s.worldTime += s.stepSize
		steps++
	}

	if steps > 0 {
		s.writeBackPoses()
	}
	return steps
}

// writeBackPoses pushes integrated body transforms into the scene nodes
// of dynamic, awake objects.
func (s *Stepper) writeBackPoses() {
	for _, o := range s.objects {
		if o.Kind() != physics.KindObject || o.MotionType() != physics.MotionDynamic {
			continue
		}
		body := o.Body()
		if body == nil || !body.IsActive() {
			continue
		}
		o.Node().SetFromTransform(body.WorldTransform())
	}
}
