package displace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/tubescene/internal/engine/shader"
)

// Anchors in the base Phong program that the tube code attaches to.
const (
	AnchorVertexDeclarations   = "clipping_planes_pars_vertex"
	AnchorVertexTransform      = "project_vertex"
	AnchorFragmentDeclarations = "common"
	AnchorFragmentNormal       = "normal_fragment_maps"
)

// Uniform and varying names introduced by the injections.
const (
	UniformTranslate = "translate"
	UniformProgress  = "progress"
	VaryingUV        = "vDisplacementUV"
)

func glslFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// VertexDeclarations declares the varying, the per-material uniforms and the
// helper functions used by VertexTransform.
func VertexDeclarations() string {
	return fmt.Sprintf(`out vec2 %s;
uniform vec2 %s;
uniform float %s;

vec2 rotate(vec2 v, float a) {
	float s = sin(a);
	float c = cos(a);
	return mat2(c, s, -s, c) * v;
}

float remap(float value, float min1, float max1, float min2, float max2) {
	return min2 + (value - min1) * (max2 - min2) / (max1 - min1);
}`, VaryingUV, UniformTranslate, UniformProgress)
}

// VertexTransform replaces the standard projection. It declares mvPosition,
// which later chunks read.
func VertexTransform() string {
	return fmt.Sprintf(`vec2 pos = position.xy * %s * vec2(%s, %s);
float u = fract(pos.x + 0.5);
float v = remap(pos.y / 2.0, %s, %s, 0.0, 1.0);
vec2 displacementUV = vec2(u, v);
%s = displacementUV;
float displacement = (texture(displacementMap, displacementUV).r - 0.5) * 2.0;
float radius = %s + %s * displacement;
vec2 rotated = rotate(vec2(0.0, radius), 2.0 * PI * u);
vec4 mvPosition = vec4(rotated.x, position.y, rotated.y, 1.0);
mvPosition = modelViewMatrix * mvPosition;
gl_Position = projectionMatrix * mvPosition;`,
		glslFloat(PositionScale), glslFloat(StretchX), glslFloat(StretchY),
		glslFloat(VMin), glslFloat(VMax),
		VaryingUV,
		glslFloat(BaseRadius), glslFloat(RadiusScale))
}

// FragmentDeclarations declares the varying on the fragment side.
func FragmentDeclarations() string {
	return "in vec2 " + VaryingUV + ";"
}

// FragmentNormal overrides the shading normal with the raw normal map sample
// at the displacement uv.
func FragmentNormal() string {
	return "normal = texture(normalMap, " + VaryingUV + ").xyz * 2. - 1.;"
}

// Injections returns the four patches that turn the base Phong program into
// the tube program.
func Injections() []shader.Injection {
	return []shader.Injection{
		{Stage: shader.Vertex, Anchor: AnchorVertexDeclarations, Mode: shader.After, Code: VertexDeclarations()},
		{Stage: shader.Vertex, Anchor: AnchorVertexTransform, Mode: shader.Replace, Code: VertexTransform()},
		{Stage: shader.Fragment, Anchor: AnchorFragmentDeclarations, Mode: shader.After, Code: FragmentDeclarations()},
		{Stage: shader.Fragment, Anchor: AnchorFragmentNormal, Mode: shader.After, Code: FragmentNormal()},
	}
}
