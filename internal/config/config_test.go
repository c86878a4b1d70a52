package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.ClearColor != 0xeeeeee {
		t.Errorf("expected clear color 0xeeeeee, got %#x", cfg.Graphics.ClearColor)
	}

	// Test scene defaults
	if cfg.Scene.Segments != 100 {
		t.Errorf("expected 100 segments, got %d", cfg.Scene.Segments)
	}
	if cfg.Scene.ClockStep != 0.05 {
		t.Errorf("expected clock step 0.05, got %v", cfg.Scene.ClockStep)
	}
	if cfg.Scene.ImageAspect != float32(853.0/1280.0) {
		t.Errorf("expected image aspect 853/1280, got %v", cfg.Scene.ImageAspect)
	}

	// Test control defaults
	if cfg.Controls.Min != -2 || cfg.Controls.Max != 2 || cfg.Controls.Step != 0.01 {
		t.Errorf("expected controls [-2,2] step 0.01, got %+v", cfg.Controls)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  debug_panel: false

scene:
  segments: 64
  wireframe: true

controls:
  x: 0.5
  y: -1.25

assets:
  dir: "/srv/tube"
  height_map: "disp.png"
  watch: true

logging:
  level: "debug"
  log_file: "tube.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.DebugPanel {
		t.Error("expected debug panel to be disabled")
	}
	if cfg.Scene.Segments != 64 {
		t.Errorf("expected 64 segments, got %d", cfg.Scene.Segments)
	}
	if !cfg.Scene.Wireframe {
		t.Error("expected wireframe to be true")
	}
	// Values absent from the file keep their defaults.
	if cfg.Scene.FOV != 70 {
		t.Errorf("expected default fov 70, got %v", cfg.Scene.FOV)
	}
	if cfg.Controls.X != 0.5 || cfg.Controls.Y != -1.25 {
		t.Errorf("expected controls (0.5, -1.25), got (%v, %v)", cfg.Controls.X, cfg.Controls.Y)
	}
	if cfg.Assets.Dir != "/srv/tube" || cfg.Assets.HeightMap != "disp.png" {
		t.Errorf("unexpected assets %+v", cfg.Assets)
	}
	if cfg.Assets.NormalMap != "normal.png" {
		t.Errorf("expected default normal map, got %s", cfg.Assets.NormalMap)
	}
	if !cfg.Assets.Watch {
		t.Error("expected watch to be true")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "tube.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero segments", func(c *Config) { c.Scene.Segments = 0 }},
		{"negative plane", func(c *Config) { c.Scene.PlaneSize = -1 }},
		{"zero aspect", func(c *Config) { c.Scene.ImageAspect = 0 }},
		{"far before near", func(c *Config) { c.Scene.Far = c.Scene.Near / 2 }},
		{"empty range", func(c *Config) { c.Controls.Min = c.Controls.Max }},
		{"zero step", func(c *Config) { c.Controls.Step = 0 }},
		{"missing height map", func(c *Config) { c.Assets.HeightMap = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Scene.Wireframe {
					t.Error("expected wireframe overlay with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/data/tube" },
			verify: func(cfg *Config) {
				if cfg.Assets.Dir != "/data/tube" {
					t.Errorf("expected assets dir /data/tube, got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "no-gui flag",
			setup: func() { *flagNoGUI = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.DebugPanel {
					t.Error("expected debug panel disabled with no-gui flag")
				}
			},
			teardown: func() { *flagNoGUI = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTripsControls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.RememberControls(1.25, -0.5, 0.3)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Controls.X != 1.25 || loaded.Controls.Y != -0.5 || loaded.Controls.Progress != 0.3 {
		t.Errorf("controls not persisted: %+v", loaded.Controls)
	}
}

func TestSaveToReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("graphics: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Scene.Segments = 32
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("saved file does not parse: %v", err)
	}
	if loaded.Scene.Segments != 32 {
		t.Errorf("segments = %d, want 32", loaded.Scene.Segments)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestSaveWritesBackToLoadedFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	configPath := filepath.Join(tmpDir, "tube.yaml")

	yamlContent := `
graphics:
  width: 1600
scene:
  segments: 64
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDebug = true
	defer func() {
		*flagConfig = ""
		*flagDebug = false
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %s, want %s", cfg.Path(), configPath)
	}

	cfg.RememberControls(1.25, -0.5, 0.3)
	cfg.Scene.Wireframe = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	*flagDebug = false
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.Controls.X != 1.25 || reloaded.Controls.Y != -0.5 || reloaded.Controls.Progress != 0.3 {
		t.Errorf("controls not read back: %+v", reloaded.Controls)
	}
	if reloaded.Scene.Wireframe {
		t.Error("expected saved wireframe=false")
	}
	// Keys from the original file survive; flag overrides are not written.
	if reloaded.Graphics.Width != 1600 || reloaded.Scene.Segments != 64 {
		t.Errorf("file keys lost: width=%d segments=%d", reloaded.Graphics.Width, reloaded.Scene.Segments)
	}
	if reloaded.Logging.Level != "info" {
		t.Errorf("log level = %s, --debug leaked into the file", reloaded.Logging.Level)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "xdg")); !os.IsNotExist(err) {
		t.Errorf("Save wrote to the user config dir: %v", err)
	}
}

func TestSaveWithoutFileUsesConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Chdir(tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	want := filepath.Join(tmpDir, "xdg", "tubescene", "config.yaml")
	if cfg.Path() != want {
		t.Errorf("Path() = %s, want %s", cfg.Path(), want)
	}

	cfg.RememberControls(-1, 2, 0)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.Controls.X != -1 || reloaded.Controls.Y != 2 {
		t.Errorf("controls not read back: %+v", reloaded.Controls)
	}
	if reloaded.Path() != want {
		t.Errorf("reloaded Path() = %s, want %s", reloaded.Path(), want)
	}
}
