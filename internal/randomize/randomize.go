// Package randomize draws a new scene configuration from the run's sampler
// and applies it to the live scene state.
package randomize

import (
	gomath "math"

	"github.com/Faultbox/synthcap/internal/config"
	"github.com/Faultbox/synthcap/internal/sampler"
	"github.com/Faultbox/synthcap/internal/scene"
	"github.com/Faultbox/synthcap/pkg/math"
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Randomizer samples object, camera, and light poses within the configured
// bounds.
type Randomizer struct {
	spawn  config.SpawnConfig
	camera config.CameraConfig
	light  config.LightConfig
}

// New creates a Randomizer from the run configuration.
func New(cfg *config.Config) *Randomizer {
	return &Randomizer{
		spawn:  cfg.Spawn,
		camera: cfg.Camera,
		light:  cfg.Light,
	}
}

// Randomize mutates the world in place. The draw order is fixed — trackable
// objects in discovery order, then camera, then light — and is part of the
// run's reproducibility contract.
func (r *Randomizer) Randomize(w *scene.World, s *sampler.Sampler) {
	for _, o := range w.Objects {
		if !o.Trackable {
			continue
		}
		x := s.Uniform(-r.spawn.Radius, r.spawn.Radius)
		z := s.Uniform(-r.spawn.Radius, r.spawn.Radius)
		o.Position = math.Vec3{X: x, Y: r.spawn.ObjectY, Z: z}
		o.YawRad = s.Uniform(0, 2*gomath.Pi)
	}

	radius := s.Uniform(r.camera.RadiusMin, r.camera.RadiusMax)
	azimuth := s.Uniform(0, 2*gomath.Pi)
	height := s.Uniform(r.camera.HeightMin, r.camera.HeightMax)

	pos := math.Vec3{
		X: radius * gomath.Cos(azimuth),
		Y: height,
		Z: radius * gomath.Sin(azimuth),
	}
	target := math.Vec3{X: 0, Y: r.camera.TargetY, Z: 0}

	// The orientation is derived from the look-at constraint, recomputed
	// every frame from the freshly sampled position.
	w.Camera = scene.CameraState{
		Position: pos,
		Basis:    math.LookAtBasis(pos, target, worldUp),
	}

	yawDeg := s.Uniform(r.light.YawMinDeg, r.light.YawMaxDeg)
	pitchDeg := s.Uniform(r.light.PitchMinDeg, r.light.PitchMaxDeg)
	w.Light = scene.LightState{
		PitchRad: pitchDeg * gomath.Pi / 180.0,
		YawRad:   yawDeg * gomath.Pi / 180.0,
		RollRad:  0,
	}
}
