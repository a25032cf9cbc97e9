package config

import (
	"flag"
	"testing"
)

// parseOverrides builds a fresh flag set, parses args into it, and applies
// the overrides to a default config.
func parseOverrides(t *testing.T, args ...string) *Config {
	t.Helper()

	fs := flag.NewFlagSet("synthcap-test", flag.ContinueOnError)
	o := newCLIOverrides(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}

	cfg := Default()
	o.apply(cfg)
	return cfg
}

func TestFlagOverrides(t *testing.T) {
	cfg := parseOverrides(t, "-seed", "777", "-frames", "10", "-out", "run2", "-viewport", "gl", "-debug")

	if cfg.Run.Seed != 777 {
		t.Errorf("expected seed 777, got %d", cfg.Run.Seed)
	}
	if cfg.Run.Frames != 10 {
		t.Errorf("expected 10 frames, got %d", cfg.Run.Frames)
	}
	if cfg.Output.Dir != "run2" {
		t.Errorf("expected output dir run2, got %s", cfg.Output.Dir)
	}
	if cfg.Viewport.Backend != "gl" {
		t.Errorf("expected viewport backend gl, got %s", cfg.Viewport.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestFlagSeedZeroIsApplied(t *testing.T) {
	cfg := parseOverrides(t, "-seed", "0")

	if cfg.Run.Seed != 0 {
		t.Errorf("expected seed 0 to override the default, got %d", cfg.Run.Seed)
	}
}

func TestNoFlagsKeepConfigValues(t *testing.T) {
	cfg := parseOverrides(t)

	def := Default()
	if cfg.Run.Seed != def.Run.Seed {
		t.Errorf("expected default seed %d, got %d", def.Run.Seed, cfg.Run.Seed)
	}
	if cfg.Run.Frames != def.Run.Frames {
		t.Errorf("expected default frames %d, got %d", def.Run.Frames, cfg.Run.Frames)
	}
	if cfg.Viewport.Backend != def.Viewport.Backend {
		t.Errorf("expected default backend %s, got %s", def.Viewport.Backend, cfg.Viewport.Backend)
	}
}
