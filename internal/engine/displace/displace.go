// Package displace bends a flat plane into a tube whose radius follows a
// height field. Evaluate runs the mapping on the CPU; the GLSL in glsl.go
// runs the same mapping per vertex and is built from the same constants.
package displace

import (
	"github.com/Faultbox/tubescene/pkg/math"
)

// Mapping constants shared by Evaluate and the generated GLSL.
const (
	// BaseRadius is the tube radius where the height field reads 0.5.
	BaseRadius float32 = 1.4
	// RadiusScale converts a centered displacement in [-1, 1] to radius.
	RadiusScale float32 = 1.25

	// The plane position is halved, then stretched along y.
	PositionScale float32 = 0.5
	StretchX      float32 = 1
	StretchY      float32 = 4

	// V is remapped from this range of pos.y/2 onto [0, 1].
	VMin float32 = -1.5
	VMax float32 = 1.5
)

// Sampler returns the height at a uv coordinate, in [0, 1].
// *heightfield.Field satisfies it.
type Sampler interface {
	Sample(u, v float32) float32
}

// Result is the displaced position of one plane vertex.
type Result struct {
	Position     math.Vec3
	UV           math.Vec2
	Displacement float32 // centered, in [-1, 1]
	Radius       float32
}

// UV returns the displacement-map coordinate for a plane position.
// U wraps once around the tube; V is not clamped.
func UV(position math.Vec3) math.Vec2 {
	pos := math.Vec2{X: position.X, Y: position.Y}.
		Scale(PositionScale).
		Mul(math.Vec2{X: StretchX, Y: StretchY})

	return math.Vec2{
		X: math.Fract(pos.X + 0.5),
		Y: math.Remap(pos.Y/2, VMin, VMax, 0, 1),
	}
}

// Radius converts a raw height sample to a tube radius.
func Radius(height float32) (displacement, radius float32) {
	displacement = (height - 0.5) * 2
	return displacement, BaseRadius + RadiusScale*displacement
}

// Evaluate maps a plane vertex onto the tube. The vertex keeps its y; x and z
// come from rotating (0, radius) counter-clockwise by a full turn times u.
func Evaluate(position math.Vec3, s Sampler) Result {
	uv := UV(position)
	d, r := Radius(s.Sample(uv.X, uv.Y))
	rotated := math.Vec2{X: 0, Y: r}.Rotate(2 * math.Pi * uv.X)

	return Result{
		Position:     math.Vec3{X: rotated.X, Y: position.Y, Z: rotated.Y},
		UV:           uv,
		Displacement: d,
		Radius:       r,
	}
}

// Bounds returns the axis-aligned box of a displaced vertex set.
func Bounds(positions []math.Vec3, s Sampler) (lo, hi math.Vec3) {
	for i, p := range positions {
		q := Evaluate(p, s).Position
		if i == 0 {
			lo, hi = q, q
			continue
		}
		lo, hi = lo.Min(q), hi.Max(q)
	}
	return lo, hi
}
