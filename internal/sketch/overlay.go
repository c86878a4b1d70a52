package sketch

import (
	"github.com/Faultbox/tubescene/internal/engine/displace"
	"github.com/Faultbox/tubescene/internal/engine/material"
	"github.com/Faultbox/tubescene/internal/engine/shader"
)

// The overlay draws the tube's edges with the same displacement as the
// surface, tinted by uv and pulsing with the clock.
const overlayVertex = `#version 410 core
#include <common>
#include <attributes_vertex>

uniform sampler2D displacementMap;
uniform float time;
uniform vec4 resolution;
out vec2 vUv;

#include <tube_pars_vertex>

void main() {
	vUv = uv;
	#include <tube_vertex>
}
`

const overlayFragment = `#version 410 core
#include <common>

uniform float time;
uniform vec4 resolution;
in vec2 vUv;
out vec4 fragColor;

void main() {
	vec2 screen = (gl_FragCoord.xy / resolution.xy - 0.5) * resolution.zw + 0.5;
	float pulse = 0.5 + 0.5 * sin(time + screen.y * PI2);
	fragColor = vec4(mix(vec3(0.15), vec3(vUv, 1.0), pulse), 1.0);
}
`

// newOverlay builds the wireframe overlay material. The displacement map is
// expected on the same unit the tube material uses.
func newOverlay(unit int32) *material.ShaderMaterial {
	m := material.NewShaderMaterial("overlay",
		shader.Source{Vertex: overlayVertex, Fragment: overlayFragment},
		material.Uniforms{
			"time":            material.Float(0),
			"resolution":      material.Vec4(1, 1, 1, 1),
			"displacementMap": material.Int(unit),
		})
	m.Chunks = shader.Library{
		"tube_pars_vertex": displace.VertexDeclarations(),
		"tube_vertex":      displace.VertexTransform(),
	}
	m.Side = material.DoubleSide
	m.Wireframe = true
	return m
}
