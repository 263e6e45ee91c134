// Package config holds the viewer settings and their YAML persistence.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Loader   LoaderConfig   `yaml:"loader"`
	Logging  LoggingConfig  `yaml:"logging"`
	Profiler ProfilerConfig `yaml:"profiler"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig holds GPU presentation settings.
type RendererConfig struct {
	VSync    bool `yaml:"vsync"`
	MSAA     bool `yaml:"msaa"`
	Software bool `yaml:"software"` // force the fallback adapter
}

// CameraConfig holds the orbit camera and controller tuning.
type CameraConfig struct {
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
}

// SceneConfig holds the generator parameters.
type SceneConfig struct {
	Size    float32 `yaml:"size"`
	Width   float32 `yaml:"width"`
	Length  float32 `yaml:"length"`
	Height  float32 `yaml:"height"`
	Count   int     `yaml:"count"`
	Max     float32 `yaml:"max"`
	Seed    uint64  `yaml:"seed"` // 0 picks a random seed per run
	PerRow  int     `yaml:"instances_per_row"`
	OBJPath string  `yaml:"obj_path"`
}

// LoaderConfig holds model loading settings.
type LoaderConfig struct {
	Workers int `yaml:"workers"` // 0 uses one worker per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ProfilerConfig holds the frame profiler settings.
type ProfilerConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with the viewer's built-in values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-view",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  true,
		},
		Camera: CameraConfig{
			Speed:       4,
			Sensitivity: 0.4,
			ZoomSpeed:   100,
			MinDistance: 0.5,
			MaxDistance: 50,
		},
		Scene: SceneConfig{
			Size:   1,
			Width:  1,
			Length: 1,
			Height: 1,
			Count:  8,
			Max:    0.5,
			PerRow: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
