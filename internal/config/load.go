package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.path = configPath
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TubeScene")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TubeScene")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tubescene")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tubescene")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the scene cannot be built from.
func (c *Config) Validate() error {
	if c.Scene.Segments < 1 {
		return fmt.Errorf("scene.segments must be at least 1, got %d", c.Scene.Segments)
	}
	if c.Scene.PlaneSize <= 0 {
		return fmt.Errorf("scene.plane_size must be positive, got %v", c.Scene.PlaneSize)
	}
	if c.Scene.ImageAspect <= 0 {
		return fmt.Errorf("scene.image_aspect must be positive, got %v", c.Scene.ImageAspect)
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		return fmt.Errorf("scene clip planes invalid: near=%v far=%v", c.Scene.Near, c.Scene.Far)
	}
	if c.Controls.Min >= c.Controls.Max {
		return fmt.Errorf("controls range invalid: min=%v max=%v", c.Controls.Min, c.Controls.Max)
	}
	if c.Controls.Step <= 0 {
		return fmt.Errorf("controls.step must be positive, got %v", c.Controls.Step)
	}
	if c.Assets.HeightMap == "" || c.Assets.NormalMap == "" || c.Assets.Diffuse == "" {
		return fmt.Errorf("assets: height_map, normal_map and diffuse are required")
	}
	return nil
}
