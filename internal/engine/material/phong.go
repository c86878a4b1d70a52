package material

import (
	"fmt"

	"github.com/Faultbox/tubescene/internal/engine/lighting"
	"github.com/Faultbox/tubescene/internal/engine/texture"
	"github.com/Faultbox/tubescene/pkg/math"
)

// Texture units used by the Phong program.
const (
	UnitMap int32 = iota
	UnitNormalMap
	UnitDisplacementMap
)

// Phong is a Blinn-Phong surface with optional diffuse, normal and
// displacement maps.
type Phong struct {
	Base

	Color     math.Vec3
	Specular  math.Vec3
	Shininess float32
	Opacity   float32

	Map         *texture.Texture
	NormalMap   *texture.Texture
	NormalScale math.Vec2

	DisplacementMap   *texture.FloatTexture
	DisplacementScale float32
	DisplacementBias  float32
}

// NewPhong returns a white Phong material with the usual defaults:
// specular 0x111111 and shininess 30.
func NewPhong() *Phong {
	return &Phong{
		Base:              Base{Name: "phong"},
		Color:             math.Vec3{X: 1, Y: 1, Z: 1},
		Specular:          lighting.Hex(0x111111),
		Shininess:         30,
		Opacity:           1,
		NormalScale:       math.Vec2{X: 1, Y: 1},
		DisplacementScale: 1,
	}
}

func (m *Phong) defines() []string {
	var d []string
	if m.Map != nil {
		d = append(d, "USE_MAP")
	}
	if m.NormalMap != nil {
		d = append(d, "USE_NORMALMAP")
	}
	if m.DisplacementMap != nil {
		d = append(d, "USE_DISPLACEMENTMAP")
	}
	if m.Side == DoubleSide {
		d = append(d, "DOUBLE_SIDED")
	}
	return d
}

func (m *Phong) uniforms() Uniforms {
	us := transformUniforms()
	us["diffuse"] = Vec3(m.Color)
	us["specular"] = Vec3(m.Specular)
	us["shininess"] = Float(m.Shininess)
	us["opacity"] = Float(m.Opacity)
	us["ambientLightColor"] = Vec3(math.Vec3{})
	us["directionalLightColor"] = Vec3(math.Vec3{})
	us["directionalLightDirection"] = Vec3(math.Vec3{Z: 1})
	if m.Map != nil {
		us["map"] = Int(UnitMap)
		us["mapTransform"] = Mat3(m.Map.UVTransform())
	}
	if m.NormalMap != nil {
		us["normalMap"] = Int(UnitNormalMap)
		us["normalScale"] = Vec2(m.NormalScale)
	}
	if m.DisplacementMap != nil {
		us["displacementMap"] = Int(UnitDisplacementMap)
		us["displacementScale"] = Float(m.DisplacementScale)
		us["displacementBias"] = Float(m.DisplacementBias)
	}
	return us
}

// Build produces the final program sources: defines for the maps that are
// set, then OnBeforeCompile, then include resolution. It needs no GL context.
func (m *Phong) Build() (*Shader, error) {
	src, lib, err := PhongBase()
	if err != nil {
		return nil, fmt.Errorf("loading phong base: %w", err)
	}

	sh := &Shader{
		Name:     m.Name,
		Source:   src.WithDefines(m.defines()...),
		Uniforms: m.uniforms(),
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
func (m *Phong) Compile() error {
	sh, err := m.Build()
	if err != nil {
		return err
	}
	return m.compile(sh)
}

// sync copies the material fields into the registry.
func (m *Phong) sync() {
	us := m.Uniforms()
	us.SetVec3("diffuse", m.Color)
	us.SetVec3("specular", m.Specular)
	us.SetFloat("shininess", m.Shininess)
	us.SetFloat("opacity", m.Opacity)
	if m.Map != nil {
		us.SetMat3("mapTransform", m.Map.UVTransform())
	}
	if u, ok := us["normalScale"]; ok {
		u.SetVec2(m.NormalScale)
	}
	us.SetFloat("displacementScale", m.DisplacementScale)
	us.SetFloat("displacementBias", m.DisplacementBias)
}

// Use binds the program, its textures and render state for a draw.
// Call End after drawing.
func (m *Phong) Use() {
	if m.program == nil {
		return
	}
	m.sync()
	m.applyState()
	m.program.Use()
	if m.Map != nil {
		m.Map.Bind(uint32(UnitMap))
	}
	if m.NormalMap != nil {
		m.NormalMap.Bind(uint32(UnitNormalMap))
	}
	if m.DisplacementMap != nil {
		m.DisplacementMap.Bind(uint32(UnitDisplacementMap))
	}
}

// SetLights fills the light uniforms of a registry from a rig.
func SetLights(us Uniforms, rig lighting.Rig, view math.Mat4) {
	us.SetVec3("ambientLightColor", rig.Ambient.Radiance())
	us.SetVec3("directionalLightColor", rig.Directional.Radiance())
	us.SetVec3("directionalLightDirection", rig.Directional.ViewDirection(view))
}
