package math

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix in column-major order, matching GLSL mat3.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// UVTransform builds the texture-coordinate transform for an offset, a repeat
// factor and a rotation about center. With zero offset, unit repeat and no
// rotation it is the identity.
func UVTransform(offset, repeat Vec2, rotation float32, center Vec2) Mat3 {
	s, c := math32.Sincos(rotation)
	sx, sy := repeat.X, repeat.Y
	return Mat3{
		sx * c, -sy * s, 0,
		sx * s, sy * c, 0,
		-sx*(c*center.X+s*center.Y) + center.X + offset.X,
		-sy*(-s*center.X+c*center.Y) + center.Y + offset.Y,
		1,
	}
}

// TransformVec2 applies m to the point (v, 1).
func (m Mat3) TransformVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[3]*v.Y + m[6],
		m[1]*v.X + m[4]*v.Y + m[7],
	}
}
