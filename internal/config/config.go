// Package config handles scene configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string // file Load read, empty when none
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	DebugPanel bool   `yaml:"debug_panel"` // ImGui settings panel; false runs a bare SDL window
	ClearColor uint32 `yaml:"clear_color"` // 0xRRGGBB
}

// SceneConfig holds the tube scene parameters.
type SceneConfig struct {
	Segments    int     `yaml:"segments"`     // Plane subdivisions per side
	PlaneSize   float32 `yaml:"plane_size"`   // Plane width and height
	ImageAspect float32 `yaml:"image_aspect"` // height/width of the reference image for the resolution uniform
	ClockStep   float32 `yaml:"clock_step"`   // Clock advance per tick
	Wireframe   bool    `yaml:"wireframe"`    // Draw the wireframe overlay
	FOV         float32 `yaml:"fov"`          // Vertical field of view in degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	CameraZ     float32 `yaml:"camera_z"` // Initial camera distance
}

// ControlsConfig holds the debug slider state and ranges.
type ControlsConfig struct {
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
	Progress float32 `yaml:"progress"`
	Min      float32 `yaml:"min"`
	Max      float32 `yaml:"max"`
	Step     float32 `yaml:"step"`
}

// AssetsConfig holds asset locations, relative to Dir.
type AssetsConfig struct {
	Dir           string `yaml:"dir"`
	HeightMap     string `yaml:"height_map"`
	NormalMap     string `yaml:"normal_map"`
	Diffuse       string `yaml:"diffuse"`
	Watch         bool   `yaml:"watch"` // Reload the height map when its file changes
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			DebugPanel: true,
			ClearColor: 0xeeeeee,
		},
		Scene: SceneConfig{
			Segments:    100,
			PlaneSize:   2,
			ImageAspect: 853.0 / 1280.0,
			ClockStep:   0.05,
			Wireframe:   false,
			FOV:         70,
			Near:        0.01,
			Far:         10,
			CameraZ:     2,
		},
		Controls: ControlsConfig{
			Min:  -2,
			Max:  2,
			Step: 0.01,
		},
		Assets: AssetsConfig{
			Dir:           "assets",
			HeightMap:     "height.tiff",
			NormalMap:     "normal.png",
			Diffuse:       "stickers.png",
			Watch:         false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
