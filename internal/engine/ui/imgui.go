// Package ui provides the ImGui window that hosts the scene and its settings.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window, the ImGui context and loads GL.
func NewBackend(title string, width, height int32, clearColor uint32) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		io := imgui.CurrentIO()
		io.SetIniFilename("")
	})

	r, g, bl := hexToFloats(clearColor)
	b.backend.SetBgColor(imgui.NewVec4(r, g, bl, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func hexToFloats(c uint32) (r, g, b float32) {
	return float32((c>>16)&0xff) / 255, float32((c>>8)&0xff) / 255, float32(c&0xff) / 255
}

// Run starts the backend's render loop. renderFunc is called once per
// display frame with an ImGui frame open.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// Close asks the backend loop to exit after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// Viewport is the result of drawing the scene texture for one frame.
type Viewport struct {
	Width, Height int32 // size in pixels the scene should render at next
	Hovered       bool
	DragX, DragY  float32 // left-button drag since last frame
	Wheel         float32
}

// SceneViewport draws a GL texture filling the main viewport behind all
// windows and reports the mouse over it. The texture is flipped
// vertically because GL rows run bottom-up.
func SceneViewport(textureID uint32, lastMouse *imgui.Vec2) Viewport {
	x, y, w, h := imgui.MainViewport().WorkPos().X, imgui.MainViewport().WorkPos().Y,
		imgui.MainViewport().WorkSize().X, imgui.MainViewport().WorkSize().Y

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoBringToFrontOnFocus | imgui.WindowFlagsNoBackground
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	defer imgui.PopStyleVar()

	vp := Viewport{Width: int32(w), Height: int32(h)}
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageWithBgV(
			*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1), // UV flipped
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 0),
			imgui.NewVec4(1, 1, 1, 1),
		)

		if imgui.IsItemHovered() {
			vp.Hovered = true
			mousePos := imgui.MousePos()
			if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
				vp.DragX = mousePos.X - lastMouse.X
				vp.DragY = mousePos.Y - lastMouse.Y
			}
			*lastMouse = mousePos
			vp.Wheel = imgui.CurrentIO().MouseWheel()
		}
	}
	imgui.End()
	return vp
}
