package material

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/Faultbox/tubescene/internal/engine/displace"
	"github.com/Faultbox/tubescene/internal/engine/lighting"
	"github.com/Faultbox/tubescene/internal/engine/shader"
	"github.com/Faultbox/tubescene/internal/engine/texture"
	"github.com/Faultbox/tubescene/pkg/math"
)

func TestPhongBaseHasAnchors(t *testing.T) {
	src, lib, err := PhongBase()
	if err != nil {
		t.Fatalf("PhongBase failed: %v", err)
	}
	if err := shader.Validate(src, displace.Injections()...); err != nil {
		t.Errorf("base does not expose displacement anchors: %v", err)
	}
	for _, a := range []string{"clipping_planes_pars_vertex", "project_vertex", "common", "normal_fragment_maps"} {
		if _, ok := lib[a]; !ok {
			t.Errorf("library missing chunk %q", a)
		}
	}
}

func TestPhongBuildResolvesEverything(t *testing.T) {
	m := NewPhong()
	m.Map = texture.New(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	m.Side = DoubleSide

	sh, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for stage, text := range map[string]string{"vertex": sh.Source.Vertex, "fragment": sh.Source.Fragment} {
		if strings.Contains(text, "#include") {
			t.Errorf("%s has unresolved includes", stage)
		}
		if !strings.HasPrefix(text, "#version 410 core\n") {
			t.Errorf("%s lost its version line", stage)
		}
	}
	if !strings.Contains(sh.Source.Fragment, "#define USE_MAP") || !strings.Contains(sh.Source.Fragment, "#define DOUBLE_SIDED") {
		t.Error("expected USE_MAP and DOUBLE_SIDED defines")
	}
	if strings.Contains(sh.Source.Fragment, "#define USE_NORMALMAP") {
		t.Error("USE_NORMALMAP set without a normal map")
	}
	if _, ok := sh.Uniforms["mapTransform"]; !ok {
		t.Error("mapTransform uniform missing")
	}
	if _, ok := sh.Uniforms["normalMap"]; ok {
		t.Error("normalMap uniform should be absent")
	}
}

func TestHookUniformsExistOnlyAfterBuild(t *testing.T) {
	m := NewPhong()
	m.NormalMap = texture.New(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	m.DisplacementMap = &texture.FloatTexture{}

	var translate *Uniform
	m.OnBeforeCompile = func(sh *Shader) error {
		translate = Vec2(math.Vec2{})
		sh.Uniforms[displace.UniformTranslate] = translate
		sh.Uniforms[displace.UniformProgress] = Float(0)
		return sh.Patch(displace.Injections()...)
	}
	if translate != nil {
		t.Fatal("hook ran before Build")
	}

	sh, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if translate == nil || sh.Uniforms["translate"] != translate {
		t.Fatal("hook uniform not registered")
	}
	if !strings.Contains(sh.Source.Vertex, "vDisplacementUV = displacementUV;") {
		t.Error("vertex transform not injected")
	}
	if strings.Contains(sh.Source.Vertex, "vec4 mvPosition = vec4(transformed, 1.0);") {
		t.Error("standard projection should have been replaced")
	}
	if !strings.Contains(sh.Source.Fragment, "normal = texture(normalMap, vDisplacementUV)") {
		t.Error("normal override not injected")
	}

	translate.SetVec2(math.Vec2{X: 0.3, Y: -0.2})
	if got := sh.Uniforms["translate"].Vec2(); got.X != 0.3 || got.Y != -0.2 {
		t.Errorf("shared handle not updated: %v", got)
	}
}

func TestHookMissingAnchorFails(t *testing.T) {
	m := NewPhong()
	m.OnBeforeCompile = func(sh *Shader) error {
		return sh.Patch(shader.Injection{Stage: shader.Vertex, Anchor: "begin_vertex_v2", Mode: shader.Replace})
	}
	_, err := m.Build()
	if !errors.Is(err, shader.ErrUnsupportedBase) {
		t.Errorf("expected ErrUnsupportedBase, got %v", err)
	}
}

func TestShaderMaterialUsesChunks(t *testing.T) {
	time := Float(0)
	m := NewShaderMaterial("overlay", shader.Source{
		Vertex:   "#version 410 core\n#include <common>\n#include <extra>\nvoid main() {}\n",
		Fragment: "#version 410 core\nuniform float time;\nvoid main() {}\n",
	}, Uniforms{"time": time})
	m.Chunks = shader.Library{"extra": "// extra"}

	sh, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(sh.Source.Vertex, "#define PI ") || !strings.Contains(sh.Source.Vertex, "// extra") {
		t.Errorf("chunks not resolved:\n%s", sh.Source.Vertex)
	}
	if sh.Uniforms["time"] != time {
		t.Error("user uniform handle not shared")
	}
	if _, ok := sh.Uniforms["modelViewMatrix"]; !ok {
		t.Error("transform uniforms missing")
	}

	_, lib, _ := PhongBase()
	if _, ok := lib["extra"]; ok {
		t.Error("extra chunks leaked into the shared library")
	}
}

func TestUniformTypeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Float(1).SetVec2(math.Vec2{})
}

func TestSetTransforms(t *testing.T) {
	us := transformUniforms()
	view := math.Translate(0, 0, -2)
	SetTransforms(us, math.Identity(), view, math.Identity())
	if got := us["modelViewMatrix"].Mat4(); got[14] != -2 {
		t.Errorf("modelView z = %f, want -2", got[14])
	}
	if got := us["normalMatrix"].Mat3(); got != math.Identity3() {
		t.Errorf("normal matrix of a translation should be identity, got %v", got)
	}
}

func TestSetLights(t *testing.T) {
	m := NewPhong()
	sh, err := m.Build()
	if err != nil {
		t.Fatal(err)
	}
	SetLights(sh.Uniforms, lighting.DefaultRig(), math.Identity())
	if got := sh.Uniforms["ambientLightColor"].Vec3(); got.X == 0 {
		t.Error("ambient color not set")
	}
	if got := sh.Uniforms["directionalLightDirection"].Vec3(); got.X < 0.49 || got.X > 0.51 {
		t.Errorf("light direction = %v", got)
	}
}
