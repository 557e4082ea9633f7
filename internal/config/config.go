// Package config handles simulation configuration loading and management.
package config

import (
	"time"

	vmath "github.com/Faultbox/midgard-physics/pkg/math"
)

// Config holds all simulation settings.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Assets    AssetsConfig    `yaml:"assets"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SimConfig holds stepping and world settings.
type SimConfig struct {
	Gravity vmath.Vec3 `yaml:"gravity"`
	// StepSize is the fixed integration step.
	StepSize time.Duration `yaml:"step_size"`
	// MaxSubSteps bounds how many fixed steps one frame may consume.
	MaxSubSteps int `yaml:"max_sub_steps"`
}

// AssetsConfig holds attribute file paths.
type AssetsConfig struct {
	SceneAttributes  string `yaml:"scene_attributes"`
	ObjectAttributes string `yaml:"object_attributes"`
}

// TelemetryConfig holds the websocket state feed settings.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// UpdateInterval is how often the state frame is broadcast.
	UpdateInterval time.Duration `yaml:"update_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			Gravity:     vmath.Vec3{Y: -9.8},
			StepSize:    time.Second / 120,
			MaxSubSteps: 8,
		},
		Assets: AssetsConfig{
			SceneAttributes:  "",
			ObjectAttributes: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			Addr:           "127.0.0.1:8790",
			UpdateInterval: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
