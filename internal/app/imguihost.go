package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/engine/framebuffer"
	"github.com/Faultbox/tubescene/internal/engine/renderer"
	"github.com/Faultbox/tubescene/internal/engine/ui"
	"github.com/Faultbox/tubescene/internal/sketch"
)

// imguiKeys are the shortcuts active in the settings window host.
var imguiKeys = []struct {
	key imgui.Key
	act action
}{
	{imgui.KeySpace, actionTogglePlay},
	{imgui.KeyRightArrow, actionNudgeXUp},
	{imgui.KeyLeftArrow, actionNudgeXDown},
	{imgui.KeyUpArrow, actionNudgeYUp},
	{imgui.KeyDownArrow, actionNudgeYDown},
	{imgui.KeyW, actionToggleWireframe},
	{imgui.KeyF, actionFrame},
	{imgui.KeyR, actionResetCamera},
	{imgui.KeyF12, actionScreenshot},
	{imgui.KeyEscape, actionQuit},
}

// imguiHost renders the scene into a texture behind an ImGui settings
// window. The backend owns the frame loop, so the scene loop is ticked from
// its callback.
type imguiHost struct {
	ctx       context.Context
	app       *App
	backend   *ui.Backend
	fb        *framebuffer.Framebuffer
	scene     *sketch.Sketch
	ctl       *controller
	lastMouse imgui.Vec2

	heightMap string
	picked    chan string
}

func runImGui(ctx context.Context, a *App) error {
	g := a.cfg.Graphics
	b, err := ui.NewBackend(Title, int32(g.Width), int32(g.Height), g.ClearColor)
	if err != nil {
		return fmt.Errorf("failed to create ui backend: %w", err)
	}

	r, err := renderer.New(renderer.Config{Width: g.Width, Height: g.Height, ClearColor: g.ClearColor})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	fb, err := framebuffer.New(int32(g.Width), int32(g.Height))
	if err != nil {
		return fmt.Errorf("failed to create scene framebuffer: %w", err)
	}
	defer fb.Destroy()

	s, l, err := a.newScene(r)
	if err != nil {
		return err
	}
	defer s.Close()

	h := &imguiHost{
		ctx:     ctx,
		app:     a,
		backend: b,
		fb:      fb,
		scene:   s,
		ctl:     newController(s, l, a.cfg.Controls, b.SetWindowTitle),

		heightMap: a.cfg.Assets.HeightMap,
		picked:    make(chan string, 1),
	}

	a.log.Info("starting render loop", zap.String("host", "imgui"))
	b.Run(h.frame)
	a.log.Info("loop finished", zap.Uint64("frames", l.Frames()))
	return nil
}

// frame is called by the backend once per display frame.
func (h *imguiHost) frame() {
	if h.ctx.Err() != nil {
		h.backend.Close()
		return
	}

	h.applyPicked()
	h.app.applyReloads(h.scene)
	for _, k := range imguiKeys {
		if ui.IsKeyPressed(k.key) && h.ctl.apply(k.act) {
			h.backend.Close()
			return
		}
	}

	// A stopped loop leaves the last frame in the texture.
	h.fb.Render(func() {
		h.ctl.loop.Tick()
	})
	if h.ctl.takeScreenshot() {
		w, ht := h.fb.Size()
		h.app.screenshot(h.fb.ReadPixels(), int(w), int(ht))
	}

	vp := ui.SceneViewport(h.fb.ColorTexture(), &h.lastMouse)
	h.resize(vp)
	if vp.Hovered {
		if vp.DragX != 0 || vp.DragY != 0 {
			h.ctl.camera.HandleDrag(vp.DragX, vp.DragY)
		}
		if vp.Wheel != 0 {
			h.ctl.camera.HandleZoom(vp.Wheel)
		}
	}

	st := &h.scene.Settings
	c := h.app.cfg.Controls
	acts := ui.DrawSettings(ui.SettingsValues{
		X:         &st.X,
		Y:         &st.Y,
		Progress:  &st.Progress,
		Min:       c.Min,
		Max:       c.Max,
		Step:      c.Step,
		Playing:   h.ctl.loop.Playing(),
		Wireframe: &st.Wireframe,
		Clock:     h.ctl.loop.Clock(),
		Frames:    h.ctl.loop.Frames(),
		HeightMap: h.heightMap,
	})
	h.handle(acts)
}

// resize matches the scene texture to the viewport in pixels.
func (h *imguiHost) resize(vp ui.Viewport) {
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	w := int32(float32(vp.Width) * scale.X)
	ht := int32(float32(vp.Height) * scale.Y)
	if h.fb.Resize(w, ht) {
		fw, fh := h.fb.Size()
		h.scene.Resize(int(fw), int(fh))
	}
}

func (h *imguiHost) handle(acts ui.SettingsActions) {
	if acts.TogglePlay {
		h.ctl.apply(actionTogglePlay)
	}
	if acts.ResetCamera {
		h.ctl.apply(actionResetCamera)
	}
	if acts.FrameTube {
		h.ctl.apply(actionFrame)
	}
	if acts.Screenshot {
		h.ctl.apply(actionScreenshot)
	}
	if acts.OpenHeightMap {
		h.pickHeightMap()
	}
	if acts.SaveControls {
		h.app.saveControls(h.scene.Settings)
	}
}

// pickHeightMap shows a native file dialog without blocking the frame. The
// chosen path is applied on the render thread.
func (h *imguiHost) pickHeightMap() {
	go func() {
		filename, err := dialog.File().
			Filter("Height maps", "tiff", "tif", "png", "bmp").
			Filter("All Files", "*").
			Title("Open Height Map").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				h.app.log.Warn("file dialog", zap.Error(err))
			}
			return
		}
		select {
		case h.picked <- filename:
		default:
		}
	}()
}

func (h *imguiHost) applyPicked() {
	select {
	case path := <-h.picked:
		if err := h.app.openHeightMap(path); err != nil {
			h.app.log.Warn("opening height map", zap.String("path", path), zap.Error(err))
			return
		}
		h.heightMap = filepath.Base(path)
	default:
	}
}
