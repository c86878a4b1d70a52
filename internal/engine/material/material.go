// Package material builds surface programs from an embedded Phong base and
// lets callers patch that base before it is compiled.
package material

import (
	"embed"
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubescene/internal/engine/shader"
	"github.com/Faultbox/tubescene/internal/logger"
	"github.com/Faultbox/tubescene/pkg/math"
)

//go:embed glsl
var glslFS embed.FS

var (
	baseOnce   sync.Once
	baseSource shader.Source
	baseLib    shader.Library
	baseErr    error
)

// PhongBase returns the unpatched Phong program and the chunk library its
// includes resolve against. Callers must not modify the library.
func PhongBase() (shader.Source, shader.Library, error) {
	baseOnce.Do(func() {
		vert, err := glslFS.ReadFile("glsl/phong.vert")
		if err != nil {
			baseErr = err
			return
		}
		frag, err := glslFS.ReadFile("glsl/phong.frag")
		if err != nil {
			baseErr = err
			return
		}
		baseSource = shader.Source{Vertex: string(vert), Fragment: string(frag)}
		baseLib, baseErr = shader.LoadLibrary(glslFS, "glsl/chunks")
	})
	return baseSource, baseLib, baseErr
}

// Side selects which faces are drawn.
type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Shader is what an OnBeforeCompile hook sees: the sources still carrying
// their include anchors, and the uniform registry the program will use.
type Shader struct {
	Name     string
	Source   shader.Source
	Uniforms Uniforms
}

// Patch applies injections to the shader's source.
func (s *Shader) Patch(injections ...shader.Injection) error {
	out, err := shader.Patch(s.Source, injections...)
	if err != nil {
		return fmt.Errorf("patching %s: %w", s.Name, err)
	}
	s.Source = out
	return nil
}

// Base carries render state and the compiled program shared by all materials.
type Base struct {
	Name        string
	Side        Side
	Transparent bool
	Wireframe   bool

	// OnBeforeCompile runs once per Build, after the base uniforms exist and
	// before includes are resolved. An error aborts the build.
	OnBeforeCompile func(*Shader) error

	// UserData holds whatever the hook wants to keep, typically the uniform
	// handles it added.
	UserData any

	program *Program
}

// Program returns the compiled program, nil before Compile.
func (b *Base) Program() *Program {
	return b.program
}

// Uniforms returns the compiled program's registry, nil before Compile.
func (b *Base) Uniforms() Uniforms {
	if b.program == nil {
		return nil
	}
	return b.program.Uniforms
}

// runHook applies OnBeforeCompile to sh.
func (b *Base) runHook(sh *Shader) error {
	if b.OnBeforeCompile == nil {
		return nil
	}
	if err := b.OnBeforeCompile(sh); err != nil {
		return fmt.Errorf("%s before compile: %w", sh.Name, err)
	}
	return nil
}

// compile links a built shader and replaces any previous program.
func (b *Base) compile(sh *Shader) error {
	p, err := newProgram(sh)
	if err != nil {
		return err
	}
	if b.program != nil {
		b.program.Delete()
	}
	b.program = p
	return nil
}

// applyState sets culling, blending and polygon mode for a draw.
func (b *Base) applyState() {
	if b.Side == DoubleSide {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	if b.Transparent {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// End restores the fill polygon mode after a wireframe draw.
func (b *Base) End() {
	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Delete releases the program.
func (b *Base) Delete() {
	if b.program != nil {
		b.program.Delete()
		b.program = nil
	}
}

// transformUniforms are provided to every material and filled per draw.
func transformUniforms() Uniforms {
	return Uniforms{
		"modelViewMatrix":  Mat4(math.Identity()),
		"projectionMatrix": Mat4(math.Identity()),
		"normalMatrix":     Mat3(math.Identity3()),
	}
}

// SetTransforms fills the matrix uniforms of any material's registry.
func SetTransforms(us Uniforms, model, view, projection math.Mat4) {
	modelView := view.Mul(model)
	us.SetMat4("modelViewMatrix", modelView)
	us.SetMat4("projectionMatrix", projection)
	us.SetMat3("normalMatrix", modelView.NormalMatrix())
}

// Program is a linked GL program and the locations of its uniforms.
type Program struct {
	ID        uint32
	Uniforms  Uniforms
	locations map[string]int32
}

func newProgram(sh *Shader) (*Program, error) {
	id, err := shader.Compile(sh.Source)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", sh.Name, err)
	}

	p := &Program{ID: id, Uniforms: sh.Uniforms, locations: make(map[string]int32, len(sh.Uniforms))}
	var inactive []string
	for _, name := range sh.Uniforms.Names() {
		loc := shader.GetUniform(id, name)
		if loc < 0 {
			inactive = append(inactive, name)
		}
		p.locations[name] = loc
	}

	logger.Named("material").Debug("program compiled",
		zap.String("material", sh.Name),
		zap.Uint32("program", id),
		zap.Int("uniforms", len(sh.Uniforms)),
		zap.Strings("inactive", inactive),
	)
	return p, nil
}

// Location returns the location of a uniform, -1 if unknown or inactive.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

// Use binds the program and uploads every uniform.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
	for name, u := range p.Uniforms {
		u.upload(p.Location(name))
	}
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
