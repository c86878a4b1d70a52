// Package app wires configuration, assets and the tube scene to a window.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/assets"
	"github.com/Faultbox/tubescene/internal/config"
	"github.com/Faultbox/tubescene/internal/engine/debug"
	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/loop"
	"github.com/Faultbox/tubescene/internal/engine/renderer"
	"github.com/Faultbox/tubescene/internal/logger"
	"github.com/Faultbox/tubescene/internal/sketch"
)

// Title is the window title.
const Title = "Tube"

// App owns everything that outlives a host window.
type App struct {
	cfg    *config.Config
	assets *assets.Manager
	loaded *sketch.Loaded
	shots  *debug.ScreenshotCapture

	watcher *assets.Watcher
	reloads chan *heightfield.Field

	log *zap.Logger
}

// New loads the scene assets. It fails with sketch.ErrAssetLoad when any of
// them is missing or unreadable.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		assets:  assets.NewManager(),
		shots:   debug.NewScreenshotCapture(cfg.Assets.ScreenshotDir, "tube"),
		reloads: make(chan *heightfield.Field, 1),
		log:     logger.Named("app"),
	}

	if err := a.assets.AddDir(cfg.Assets.Dir); err != nil {
		return nil, fmt.Errorf("%w: %w", sketch.ErrAssetLoad, err)
	}

	var err error
	a.loaded, err = sketch.Load(ctx, a.assets, cfg.Assets)
	if err != nil {
		return nil, err
	}

	if cfg.Assets.Watch {
		a.watcher, err = assets.NewWatcher(cfg.Assets.Dir, cfg.Assets.HeightMap)
		if err != nil {
			a.log.Warn("height map watch disabled", zap.Error(err))
		}
	}
	return a, nil
}

// Run opens the configured host and blocks until it closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.watcher != nil {
		go a.watchHeightMap(ctx)
	}

	if a.cfg.Graphics.DebugPanel {
		return runImGui(ctx, a)
	}
	return runSDL(ctx, a)
}

// Close releases host-independent resources.
func (a *App) Close() {
	hits, misses := a.assets.Stats()
	a.log.Info("closing", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))
	a.assets.Close()
}

// newScene builds the sketch and a loop driving it. Requires a current GL
// context.
func (a *App) newScene(r *renderer.Renderer) (*sketch.Sketch, *loop.Loop, error) {
	s, err := sketch.New(a.cfg, a.loaded)
	if err != nil {
		return nil, nil, err
	}
	l := loop.New(clearedScene{Sketch: s, begin: r.Begin}, a.cfg.Scene.ClockStep)
	return s, l, nil
}

// clearedScene clears the target before each draw.
type clearedScene struct {
	*sketch.Sketch
	begin func()
}

func (c clearedScene) Draw() {
	c.begin()
	c.Sketch.Draw()
}

// watchHeightMap decodes the height map each time it changes on disk and
// hands the result to the render thread.
func (a *App) watchHeightMap(ctx context.Context) {
	go func() {
		if err := a.watcher.Run(ctx); err != nil {
			a.log.Warn("watcher stopped", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case name := <-a.watcher.Changes():
			a.assets.Invalidate(name)
			data, err := a.assets.Load(name)
			if err != nil {
				a.log.Warn("reading changed height map", zap.String("name", name), zap.Error(err))
				continue
			}
			field, err := heightfield.Decode(data, name)
			if err != nil {
				a.log.Warn("decoding changed height map", zap.String("name", name), zap.Error(err))
				continue
			}
			a.offerReload(field)
		}
	}
}

// openHeightMap decodes a height map picked from disk and queues it.
func (a *App) openHeightMap(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	field, err := heightfield.Decode(data, filepath.Base(path))
	if err != nil {
		return err
	}
	a.offerReload(field)
	return nil
}

// offerReload replaces any reload the render thread has not picked up yet.
func (a *App) offerReload(field *heightfield.Field) {
	for {
		select {
		case a.reloads <- field:
			return
		default:
		}
		select {
		case <-a.reloads:
		default:
		}
	}
}

// applyReloads swaps in a pending height field. Render thread only.
func (a *App) applyReloads(s *sketch.Sketch) {
	select {
	case field := <-a.reloads:
		s.ReloadHeightField(field)
	default:
	}
}

// screenshot writes bottom-up RGBA pixels to the screenshot directory.
func (a *App) screenshot(pixels []byte, width, height int) {
	path, err := a.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// saveControls persists the current slider values to the config file the
// app was started from.
func (a *App) saveControls(s sketch.Settings) {
	a.cfg.RememberControls(s.X, s.Y, s.Progress)
	a.cfg.Scene.Wireframe = s.Wireframe
	if err := a.cfg.Save(); err != nil {
		a.log.Warn("saving settings", zap.Error(err))
		return
	}
	a.log.Info("settings saved", zap.String("path", a.cfg.Path()))
}
