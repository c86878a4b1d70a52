// Package renderer owns the global OpenGL state of the scene window.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor uint32 // 0xRRGGBB
}

// Renderer sets up frames on whatever framebuffer is bound.
type Renderer struct {
	width, height int
	clear         [3]float32
}

// New loads the GL entry points and sets the default state.
// The GL context must be current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{}
	r.SetClearColor(cfg.ClearColor)
	gl.DepthFunc(gl.LESS)
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// SetClearColor sets the background from 0xRRGGBB.
func (r *Renderer) SetClearColor(hex uint32) {
	for i := range r.clear {
		shift := 16 - 8*i
		r.clear[i] = float32((hex>>shift)&0xff) / 255
	}
}

// Close only logs; the GL context owns every object the renderer touched.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize sets the viewport. Sizes below 1 are raised to 1.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	logger.Debug("renderer resized",
		zap.Int("width", r.width),
		zap.Int("height", r.height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Begin clears the bound framebuffer. Depth testing is re-enabled since UI
// passes turn it off.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, r.width*r.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
