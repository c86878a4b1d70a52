// Package lighting describes the scene lights and converts them into the
// values the Phong program reads.
package lighting

import (
	"github.com/Faultbox/tubescene/pkg/math"
)

// Hex converts 0xRRGGBB to a 0..1 color.
func Hex(c uint32) math.Vec3 {
	return math.Vec3{
		X: float32((c>>16)&0xff) / 255,
		Y: float32((c>>8)&0xff) / 255,
		Z: float32(c&0xff) / 255,
	}
}

// Ambient light lights every surface evenly.
type Ambient struct {
	Color     math.Vec3
	Intensity float32
}

// Radiance returns color times intensity.
func (a Ambient) Radiance() math.Vec3 {
	return a.Color.Scale(a.Intensity)
}

// Directional light shines from Position toward the origin.
type Directional struct {
	Color     math.Vec3
	Intensity float32
	Position  math.Vec3
}

// Radiance returns color times intensity.
func (d Directional) Radiance() math.Vec3 {
	return d.Color.Scale(d.Intensity)
}

// ViewDirection returns the unit direction toward the light in view space.
func (d Directional) ViewDirection(view math.Mat4) math.Vec3 {
	return view.TransformDirection(d.Position.Normalize()).Normalize()
}

// Rig is the set of lights in the scene.
type Rig struct {
	Ambient     Ambient
	Directional Directional
}

// DefaultRig returns a soft grey ambient light at half strength plus a
// directional light of the same color from the front right.
func DefaultRig() Rig {
	return Rig{
		Ambient:     Ambient{Color: Hex(0xeeeeee), Intensity: 0.5},
		Directional: Directional{Color: Hex(0xeeeeee), Intensity: 0.5, Position: math.Vec3{X: 0.5, Y: 0, Z: 0.866}},
	}
}
