package material

import (
	"fmt"

	"github.com/Faultbox/tubescene/internal/engine/shader"
)

// ShaderMaterial is a material with caller-supplied sources and uniforms.
// Includes resolve against the Phong chunk library plus Chunks.
type ShaderMaterial struct {
	Base

	Source   shader.Source
	Uniforms Uniforms
	Chunks   shader.Library
	Defines  []string
}

// NewShaderMaterial creates a material from sources and uniforms. The
// uniform handles are shared with the compiled program.
func NewShaderMaterial(name string, src shader.Source, uniforms Uniforms) *ShaderMaterial {
	if uniforms == nil {
		uniforms = Uniforms{}
	}
	return &ShaderMaterial{
		Base:     Base{Name: name},
		Source:   src,
		Uniforms: uniforms,
	}
}

// Build resolves the final sources without touching GL.
func (m *ShaderMaterial) Build() (*Shader, error) {
	_, lib, err := PhongBase()
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	if len(m.Chunks) > 0 {
		lib = lib.Clone()
		for k, v := range m.Chunks {
			lib[k] = v
		}
	}

	us := transformUniforms()
	for k, v := range m.Uniforms {
		us[k] = v
	}
	sh := &Shader{
		Name:     m.Name,
		Source:   m.Source.WithDefines(m.Defines...),
		Uniforms: us,
	}
	if err := m.runHook(sh); err != nil {
		return nil, err
	}

	resolved, err := lib.Resolve(sh.Source)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", sh.Name, err)
	}
	sh.Source = resolved
	return sh, nil
}

// Compile builds and links the program. Requires a current GL context.
func (m *ShaderMaterial) Compile() error {
	sh, err := m.Build()
	if err != nil {
		return err
	}
	return m.compile(sh)
}

// Use binds the program and render state. Texture binding is left to the
// caller.
func (m *ShaderMaterial) Use() {
	if m.program == nil {
		return
	}
	m.applyState()
	m.program.Use()
}
