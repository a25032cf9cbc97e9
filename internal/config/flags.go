package config

import (
	"flag"
	"os"
)

// cliOverrides binds the CLI flags to a flag set, so override application
// can be tested against a fresh flag set instead of the process-global one.
type cliOverrides struct {
	fs       *flag.FlagSet
	config   *string
	debug    *bool
	seed     *uint64
	frames   *int
	out      *string
	viewport *string
}

func newCLIOverrides(fs *flag.FlagSet) *cliOverrides {
	return &cliOverrides{
		fs:       fs,
		config:   fs.String("config", "", "Path to config file"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		seed:     fs.Uint64("seed", 0, "Override run seed"),
		frames:   fs.Int("frames", 0, "Override frame count"),
		out:      fs.String("out", "", "Override output directory"),
		viewport: fs.String("viewport", "", "Override viewport backend (soft, gl)"),
	}
}

var cli = newCLIOverrides(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.CommandLine.Parse(os.Args[1:])
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *cli.config
}

// passed reports whether the named flag was set on the command line, so
// zero values (--seed 0 is a valid seed) are not mistaken for "unset".
func (c *cliOverrides) passed(name string) bool {
	found := false
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (c *cliOverrides) apply(cfg *Config) {
	if *c.debug {
		cfg.Logging.Level = "debug"
	}
	if c.passed("seed") {
		cfg.Run.Seed = *c.seed
	}
	if *c.frames > 0 {
		cfg.Run.Frames = *c.frames
	}
	if *c.out != "" {
		cfg.Output.Dir = *c.out
	}
	if *c.viewport != "" {
		cfg.Viewport.Backend = *c.viewport
	}
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	cli.apply(cfg)
}
