package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order, matching GLSL mat4.
// Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection with clip depth in [-1, 1].
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns a view matrix for an eye at eye facing center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Mul returns m * other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformDirection applies the upper 3x3 block to d, ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		Y: m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		Z: m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// NormalMatrix returns the inverse transpose of the upper 3x3 block, which
// carries normals into the same space as m carries points. A singular block
// yields the identity.
func (m Mat4) NormalMatrix() Mat3 {
	c0 := Vec3{X: m[0], Y: m[1], Z: m[2]}
	c1 := Vec3{X: m[4], Y: m[5], Z: m[6]}
	c2 := Vec3{X: m[8], Y: m[9], Z: m[10]}

	// Rows of the inverse are these cross products over the determinant, so
	// as columns they form the inverse transpose.
	x0, x1, x2 := c1.Cross(c2), c2.Cross(c0), c0.Cross(c1)
	det := c0.Dot(x0)
	if det == 0 {
		return Identity3()
	}
	inv := 1 / det
	return Mat3{
		x0.X * inv, x0.Y * inv, x0.Z * inv,
		x1.X * inv, x1.Y * inv, x1.Z * inv,
		x2.X * inv, x2.Y * inv, x2.Z * inv,
	}
}
