// Package config handles run configuration loading and validation.
package config

// Config holds all settings for a capture run. It is read-only after
// initialization; nothing mutates it once the run starts.
type Config struct {
	Run      RunConfig      `yaml:"run"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Viewport ViewportConfig `yaml:"viewport"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RunConfig holds the run identity: the seed recorded in every frame's
// metadata and the number of frames to produce.
type RunConfig struct {
	Seed   uint64 `yaml:"seed"`
	Frames int    `yaml:"frames"`
}

// SpawnConfig bounds object placement. Objects are placed on the ground
// plane: x,z within [-radius, radius], y fixed at object_y.
type SpawnConfig struct {
	Radius  float64 `yaml:"radius"`
	ObjectY float64 `yaml:"object_y"`
}

// CameraConfig bounds the camera ring. The camera orbits the scene origin
// at a sampled radius and height, always looking at (0, target_y, 0).
type CameraConfig struct {
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	HeightMin float64 `yaml:"height_min"`
	HeightMax float64 `yaml:"height_max"`
	TargetY   float64 `yaml:"target_y"`
}

// LightConfig bounds the directional light orientation in degrees.
type LightConfig struct {
	YawMinDeg   float64 `yaml:"yaw_min_deg"`
	YawMaxDeg   float64 `yaml:"yaw_max_deg"`
	PitchMinDeg float64 `yaml:"pitch_min_deg"`
	PitchMaxDeg float64 `yaml:"pitch_max_deg"`
}

// ViewportConfig holds the render output size and the viewport backend:
// "soft" for the built-in software renderer, "gl" for the offscreen
// OpenGL target.
type ViewportConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Backend string `yaml:"backend"`
}

// OutputConfig holds the dataset output location and image format.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	ImageFormat string `yaml:"image_format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Seed:   12345,
			Frames: 100,
		},
		Spawn: SpawnConfig{
			Radius:  2.0,
			ObjectY: 0.5,
		},
		Camera: CameraConfig{
			RadiusMin: 4.5,
			RadiusMax: 6.5,
			HeightMin: 2.5,
			HeightMax: 4.0,
			TargetY:   0.5,
		},
		Light: LightConfig{
			YawMinDeg:   0,
			YawMaxDeg:   360,
			PitchMinDeg: 30,
			PitchMaxDeg: 60,
		},
		Viewport: ViewportConfig{
			Width:   640,
			Height:  480,
			Backend: "soft",
		},
		Output: OutputConfig{
			Dir:         "dataset",
			ImageFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
