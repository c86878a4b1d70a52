package app

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tubescene/internal/config"
	"github.com/Faultbox/tubescene/internal/engine/camera"
	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/input"
	"github.com/Faultbox/tubescene/internal/engine/loop"
	"github.com/Faultbox/tubescene/internal/sketch"
)

func newTestController() (*controller, *int) {
	fits := 0
	return &controller{
		settings: &sketch.Settings{},
		fit:      func() { fits++ },
		camera:   camera.NewOrbitCamera(70, 0.01, 10, 2),
		loop:     loop.New(nil, 0.05),
		controls: config.Default().Controls,
	}, &fits
}

func TestControllerNudge(t *testing.T) {
	c, _ := newTestController()

	c.apply(actionNudgeXUp)
	c.apply(actionNudgeXUp)
	c.apply(actionNudgeYDown)
	if math32.Abs(c.settings.X-0.02) > 1e-5 {
		t.Errorf("x = %v, want 0.02", c.settings.X)
	}
	if math32.Abs(c.settings.Y+0.01) > 1e-5 {
		t.Errorf("y = %v, want -0.01", c.settings.Y)
	}

	c.settings.X = 2
	c.apply(actionNudgeXUp)
	if c.settings.X != 2 {
		t.Errorf("x = %v, want clamped to 2", c.settings.X)
	}
	c.settings.Y = -2
	c.apply(actionNudgeYDown)
	if c.settings.Y != -2 {
		t.Errorf("y = %v, want clamped to -2", c.settings.Y)
	}
}

func TestControllerToggles(t *testing.T) {
	c, fits := newTestController()

	if quit := c.apply(actionTogglePlay); quit {
		t.Error("toggle play should not quit")
	}
	if c.loop.Playing() {
		t.Error("loop still playing after toggle")
	}
	c.apply(actionTogglePlay)
	if !c.loop.Playing() {
		t.Error("loop not playing after second toggle")
	}

	c.apply(actionToggleWireframe)
	if !c.settings.Wireframe {
		t.Error("wireframe not toggled")
	}

	c.apply(actionFrame)
	if *fits != 1 {
		t.Errorf("fit called %d times, want 1", *fits)
	}

	c.camera.HandleDrag(100, 20)
	c.apply(actionResetCamera)
	if c.camera.RotationX != 0 || c.camera.RotationY != 0 {
		t.Error("camera not reset")
	}

	c.apply(actionScreenshot)
	if !c.takeScreenshot() {
		t.Error("screenshot request lost")
	}
	if c.takeScreenshot() {
		t.Error("screenshot request not cleared")
	}

	if !c.apply(actionQuit) {
		t.Error("quit action should report quit")
	}
}

func TestControllerTitleFollowsPlayState(t *testing.T) {
	c, _ := newTestController()
	var titles []string
	c.setTitle = func(title string) { titles = append(titles, title) }

	c.apply(actionTogglePlay)
	c.apply(actionToggleWireframe)
	c.apply(actionTogglePlay)

	want := []string{Title + " (" + loop.Stopped.String() + ")", Title}
	if len(titles) != len(want) {
		t.Fatalf("titles = %q, want %q", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("title %d = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name  string
		event input.Event
		want  action
	}{
		{"space", input.Event{Key: sdl.SCANCODE_SPACE}, actionTogglePlay},
		{"space repeat", input.Event{Key: sdl.SCANCODE_SPACE, Repeat: true}, actionNone},
		{"arrow repeat", input.Event{Key: sdl.SCANCODE_RIGHT, Repeat: true}, actionNudgeXUp},
		{"down", input.Event{Key: sdl.SCANCODE_DOWN}, actionNudgeYDown},
		{"escape", input.Event{Key: sdl.SCANCODE_ESCAPE}, actionQuit},
		{"unbound", input.Event{Key: sdl.SCANCODE_Q}, actionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyAction(tt.event); got != tt.want {
				t.Errorf("keyAction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOfferReloadKeepsLatest(t *testing.T) {
	a := &App{reloads: make(chan *heightfield.Field, 1)}
	first := heightfield.Constant(1, 1, 0.1)
	second := heightfield.Constant(1, 1, 0.9)

	a.offerReload(first)
	a.offerReload(second)

	select {
	case got := <-a.reloads:
		if got != second {
			t.Error("expected the latest field")
		}
	default:
		t.Fatal("no reload queued")
	}
}

func TestOpenHeightMap(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "height.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	a := &App{reloads: make(chan *heightfield.Field, 1)}
	if err := a.openHeightMap(path); err != nil {
		t.Fatalf("openHeightMap failed: %v", err)
	}
	field := <-a.reloads
	if field.Width != 3 || field.Height != 2 {
		t.Errorf("field = %dx%d, want 3x2", field.Width, field.Height)
	}

	if err := a.openHeightMap(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
