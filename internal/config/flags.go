package config

import (
	"flag"
	"time"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagTelemetry = flag.Bool("telemetry", false, "Enable the websocket state feed")
	flagAddr      = flag.String("addr", "", "Telemetry listen address")
	flagStepHz    = flag.Int("step-hz", 0, "Fixed step frequency override")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTelemetry {
		cfg.Telemetry.Enabled = true
	}
	if *flagAddr != "" {
		cfg.Telemetry.Addr = *flagAddr
		cfg.Telemetry.Enabled = true
	}
	if *flagStepHz > 0 {
		cfg.Sim.StepSize = time.Second / time.Duration(*flagStepHz)
	}
}
