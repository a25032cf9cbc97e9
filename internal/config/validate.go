package config

import "fmt"

// ValidationError reports an invalid configuration value. A validation
// failure is fatal at startup: no frames are produced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks all bounds and returns a *ValidationError for the first
// violation found.
func (c *Config) Validate() error {
	if c.Run.Frames <= 0 {
		return &ValidationError{Field: "run.frames", Reason: "must be positive"}
	}
	if c.Spawn.Radius <= 0 {
		return &ValidationError{Field: "spawn.radius", Reason: "must be positive"}
	}
	if c.Camera.RadiusMin <= 0 {
		return &ValidationError{Field: "camera.radius_min", Reason: "must be positive"}
	}
	if c.Camera.RadiusMax < c.Camera.RadiusMin {
		return &ValidationError{Field: "camera.radius_max", Reason: "must be >= radius_min"}
	}
	if c.Camera.HeightMax < c.Camera.HeightMin {
		return &ValidationError{Field: "camera.height_max", Reason: "must be >= height_min"}
	}
	if c.Light.YawMaxDeg < c.Light.YawMinDeg {
		return &ValidationError{Field: "light.yaw_max_deg", Reason: "must be >= yaw_min_deg"}
	}
	if c.Light.PitchMaxDeg < c.Light.PitchMinDeg {
		return &ValidationError{Field: "light.pitch_max_deg", Reason: "must be >= pitch_min_deg"}
	}
	if c.Viewport.Width < 1 || c.Viewport.Height < 1 {
		return &ValidationError{Field: "viewport", Reason: "width and height must be positive"}
	}
	if c.Viewport.Backend != "soft" && c.Viewport.Backend != "gl" {
		return &ValidationError{Field: "viewport.backend", Reason: "must be soft or gl"}
	}
	if c.Output.Dir == "" {
		return &ValidationError{Field: "output.dir", Reason: "must not be empty"}
	}
	if c.Output.ImageFormat != "png" {
		return &ValidationError{Field: "output.image_format", Reason: "only png is supported"}
	}
	return nil
}
