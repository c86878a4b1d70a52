package app

import (
	"context"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/engine/input"
	"github.com/Faultbox/tubescene/internal/engine/loop"
	"github.com/Faultbox/tubescene/internal/engine/renderer"
	"github.com/Faultbox/tubescene/internal/engine/window"
	"github.com/Faultbox/tubescene/internal/sketch"
)

// sdlKeys maps scancodes to actions for the bare window.
var sdlKeys = map[sdl.Scancode]action{
	sdl.SCANCODE_SPACE:  actionTogglePlay,
	sdl.SCANCODE_RIGHT:  actionNudgeXUp,
	sdl.SCANCODE_LEFT:   actionNudgeXDown,
	sdl.SCANCODE_UP:     actionNudgeYUp,
	sdl.SCANCODE_DOWN:   actionNudgeYDown,
	sdl.SCANCODE_W:      actionToggleWireframe,
	sdl.SCANCODE_F:      actionFrame,
	sdl.SCANCODE_R:      actionResetCamera,
	sdl.SCANCODE_F12:    actionScreenshot,
	sdl.SCANCODE_ESCAPE: actionQuit,
}

// keyAction returns the action bound to a key press. Held-key repeats only
// nudge the sliders.
func keyAction(e input.Event) action {
	a, ok := sdlKeys[e.Key]
	if !ok {
		return actionNone
	}
	if e.Repeat && a != actionNudgeXUp && a != actionNudgeXDown && a != actionNudgeYUp && a != actionNudgeYDown {
		return actionNone
	}
	return a
}

// sdlHost is a plain SDL window with keyboard and mouse controls.
type sdlHost struct {
	app      *App
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *sketch.Sketch
	ctl      *controller
}

func runSDL(ctx context.Context, a *App) error {
	g := a.cfg.Graphics
	w, err := window.New(window.Config{
		Title:      Title,
		Width:      g.Width,
		Height:     g.Height,
		Fullscreen: g.Fullscreen,
		VSync:      g.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer w.Close()

	// Renderer must come after the window since it needs the GL context.
	dw, dh := w.DrawableSize()
	r, err := renderer.New(renderer.Config{Width: dw, Height: dh, ClearColor: g.ClearColor})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	s, l, err := a.newScene(r)
	if err != nil {
		return err
	}
	defer s.Close()
	s.Resize(dw, dh)

	h := &sdlHost{
		app:      a,
		window:   w,
		renderer: r,
		input:    input.New(),
		scene:    s,
		ctl:      newController(s, l, a.cfg.Controls, w.SetTitle),
	}
	a.log.Info("starting render loop", zap.String("host", "sdl"))
	return l.Run(ctx, h)
}

// Next handles pending window events. While the loop is stopped it waits a
// display frame so a paused window does not spin.
func (h *sdlHost) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.input.Update() {
		return loop.ErrQuit
	}

	for _, e := range h.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			// Event sizes are in points; GL wants pixels.
			w, ht := h.window.DrawableSize()
			h.renderer.Resize(w, ht)
			h.scene.Resize(w, ht)
		case input.EventKeyDown:
			if h.ctl.apply(keyAction(e)) {
				return loop.ErrQuit
			}
		case input.EventMouseMove:
			if e.LeftDragging() {
				h.ctl.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseWheel:
			h.ctl.camera.HandleZoom(e.Wheel)
		}
	}

	h.app.applyReloads(h.scene)

	if !h.ctl.loop.Playing() {
		sdl.Delay(16)
	}
	return nil
}

// Present captures a pending screenshot, then swaps buffers.
func (h *sdlHost) Present() {
	if h.ctl.takeScreenshot() {
		w, ht := h.renderer.Size()
		h.app.screenshot(h.renderer.ReadPixels(), w, ht)
	}
	h.window.SwapBuffers()
}
