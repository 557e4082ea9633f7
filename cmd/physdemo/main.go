// Package main runs a headless physics demo: a static ground scene and a
// stack of dynamic crates stepped on a fixed clock, with an optional
// websocket telemetry feed for external viewers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-physics/internal/assets"
	"github.com/Faultbox/midgard-physics/internal/config"
	"github.com/Faultbox/midgard-physics/internal/logger"
	"github.com/Faultbox/midgard-physics/internal/physics"
	"github.com/Faultbox/midgard-physics/internal/physics/backend"
	"github.com/Faultbox/midgard-physics/internal/scene"
	"github.com/Faultbox/midgard-physics/internal/sim"
	"github.com/Faultbox/midgard-physics/internal/telemetry"
	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Physics Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	lib := assets.NewLibrary()
	lib.Register("ground", &assets.CollisionModel{
		Root:   assets.MeshTransformNode{Transform: vmath.Identity(), MeshID: 0},
		Meshes: []assets.CollisionMeshData{assets.PlaneMesh(20, 20)},
	})
	lib.Register("crate", &assets.CollisionModel{
		Root:   assets.MeshTransformNode{Transform: vmath.Identity(), MeshID: 0},
		Meshes: []assets.CollisionMeshData{assets.BoxMesh(vmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})},
	})

	world := backend.NewWorld(cfg.Sim.Gravity)
	stepper := sim.NewStepper(world, cfg.Sim)

	if err := buildGround(world, lib, cfg); err != nil {
		return err
	}
	crates, err := buildCrates(world, stepper, lib, cfg, 4)
	if err != nil {
		return err
	}

	var feed *telemetry.Server
	if cfg.Telemetry.Enabled {
		feed = telemetry.NewServer(cfg.Telemetry.Addr)
		go func() {
			if err := feed.Start(); err != nil {
				logger.Error("telemetry server failed", zap.Error(err))
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.StepSize)
	defer ticker.Stop()

	broadcast := time.NewTicker(cfg.Telemetry.UpdateInterval)
	defer broadcast.Stop()

	last := time.Now()
	for {
		select {
		case <-sig:
			logger.Info("shutting down")
			if feed != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := feed.Shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown", zap.Error(err))
				}
			}
			for _, c := range crates {
				c.Destroy()
			}
			return nil

		case now := <-ticker.C:
			stepper.Advance(now.Sub(last))
			last = now

		case <-broadcast.C:
			if feed != nil {
				feed.Broadcast(stateFrame(stepper))
			}
		}
	}
}

func buildGround(world *backend.World, lib *assets.Library, cfg *config.Config) error {
	model, err := lib.Model("ground")
	if err != nil {
		return err
	}

	attrs := assets.DefaultSceneAttributes()
	if cfg.Assets.SceneAttributes != "" {
		attrs, err = assets.LoadSceneAttributes(cfg.Assets.SceneAttributes)
		if err != nil {
			return err
		}
	}

	ground := physics.New(scene.NewNode(), world, physics.KindScene)
	return ground.InitializeScene(model, attrs)
}

func buildCrates(world *backend.World, stepper *sim.Stepper, lib *assets.Library, cfg *config.Config, count int) ([]*physics.RigidObject, error) {
	model, err := lib.Model("crate")
	if err != nil {
		return nil, err
	}

	attrs := assets.DefaultObjectAttributes()
	if cfg.Assets.ObjectAttributes != "" {
		attrs, err = assets.LoadObjectAttributes(cfg.Assets.ObjectAttributes)
		if err != nil {
			return nil, err
		}
	}

	crates := make([]*physics.RigidObject, 0, count)
	for i := 0; i < count; i++ {
		node := scene.NewNode()
		node.SetTranslation(vmath.Vec3{Y: 2 + 1.5*float32(i)})
		node.SetLocalBounds(model.Bounds())
		node.ComputeCumulativeBB()

		crate := physics.New(node, world, physics.KindObject)
		if err := crate.InitializeObject(model, attrs); err != nil {
			return nil, err
		}
		crate.FinalizeObject()
		stepper.Track(crate)
		crates = append(crates, crate)
	}

	logger.Info("crates spawned", zap.Int("count", count))
	return crates, nil
}

func stateFrame(stepper *sim.Stepper) telemetry.StateFrame {
	objects := stepper.Objects()
	frame := telemetry.StateFrame{
		ServerTime: stepper.WorldTime().Seconds(),
		Objects:    make([]telemetry.ObjectState, 0, len(objects)),
	}
	for i, o := range objects {
		frame.Objects = append(frame.Objects, telemetry.ObjectState{
			ID:       "crate-" + strconv.Itoa(i),
			Position: o.Node().Translation(),
			Velocity: o.LinearVelocity(),
			Active:   o.IsActive(),
		})
	}
	return frame
}
