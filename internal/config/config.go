// Package config handles mall map configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Tooltip   TooltipConfig   `yaml:"tooltip"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // Multisample count, 0 disables
}

// CameraConfig holds the initial view and orbit control settings.
type CameraConfig struct {
	FOV             float32    `yaml:"fov"` // Vertical, degrees
	Near            float32    `yaml:"near"`
	Far             float32    `yaml:"far"`
	Position        [3]float32 `yaml:"position"`
	Target          [3]float32 `yaml:"target"`
	DragSensitivity float32    `yaml:"drag_sensitivity"`
	ZoomSensitivity float32    `yaml:"zoom_sensitivity"`
}

// AnimationConfig holds marker animation settings.
type AnimationConfig struct {
	Step float64 `yaml:"step"` // Segment fraction per frame
}

// TooltipConfig holds hover tooltip settings.
type TooltipConfig struct {
	Offset float32 `yaml:"offset"` // Pixels above the cursor
	Scale  float32 `yaml:"scale"`  // Glyph scale
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Camera: CameraConfig{
			FOV:             60,
			Near:            1,
			Far:             5000,
			Position:        [3]float32{0, 800, 1200},
			Target:          [3]float32{0, 0, 0},
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Animation: AnimationConfig{
			Step: 0.005,
		},
		Tooltip: TooltipConfig{
			Offset: 20,
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}
