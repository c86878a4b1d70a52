package sketch

import "github.com/Faultbox/tubescene/internal/engine/material"

// Settings are the live debug controls. They are owned by the render thread
// and read once per tick.
type Settings struct {
	X         float32
	Y         float32
	Progress  float32
	Wireframe bool
}

// DisplacementUniforms are the per-material handles the compile hook adds.
// They exist only once the tube material has been compiled.
type DisplacementUniforms struct {
	Translate *material.Uniform
	Progress  *material.Uniform
}
