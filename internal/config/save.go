package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the file Load read, or the user config file when Load found
// none. Save writes here.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the live controls and the wireframe flag back to Path. Every
// other key already in the file is kept as it is, and values that only came
// from command-line flags are never written.
func (c *Config) Save() error {
	path := c.Path()

	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading %s: %w", path, err)
	}

	controls := section(doc, "controls")
	controls["x"] = c.Controls.X
	controls["y"] = c.Controls.Y
	controls["progress"] = c.Controls.Progress
	section(doc, "scene")["wireframe"] = c.Scene.Wireframe

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, out)
}

// section returns doc[name] as a mapping, replacing anything else found there.
func section(doc map[string]any, name string) map[string]any {
	if m, ok := doc[name].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	doc[name] = m
	return m
}

// SaveTo writes the whole config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, data)
}

// writeFile replaces path in one rename so a crash never leaves half a config
// behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// RememberControls copies the live slider values into the config so the next
// Save persists them.
func (c *Config) RememberControls(x, y, progress float32) {
	c.Controls.X = x
	c.Controls.Y = y
	c.Controls.Progress = progress
}
