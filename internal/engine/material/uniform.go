package material

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tubescene/pkg/math"
)

// UniformType is the GLSL type a Uniform holds.
type UniformType int

const (
	TypeFloat UniformType = iota
	TypeInt
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat3
	TypeMat4
)

func (t UniformType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeMat3:
		return "mat3"
	case TypeMat4:
		return "mat4"
	default:
		return fmt.Sprintf("uniform(%d)", int(t))
	}
}

// Uniform is a typed shader input. Handles are shared by pointer: whoever
// holds one can change the value and the next draw picks it up.
type Uniform struct {
	typ UniformType
	v   [16]float32
	i   int32
}

func Float(f float32) *Uniform { return &Uniform{typ: TypeFloat, v: [16]float32{f}} }

// Int is also used for sampler units.
func Int(i int32) *Uniform { return &Uniform{typ: TypeInt, i: i} }

func Vec2(v math.Vec2) *Uniform { return &Uniform{typ: TypeVec2, v: [16]float32{v.X, v.Y}} }

func Vec3(v math.Vec3) *Uniform { return &Uniform{typ: TypeVec3, v: [16]float32{v.X, v.Y, v.Z}} }

func Vec4(x, y, z, w float32) *Uniform {
	return &Uniform{typ: TypeVec4, v: [16]float32{x, y, z, w}}
}

func Mat3(m math.Mat3) *Uniform {
	u := &Uniform{typ: TypeMat3}
	copy(u.v[:], m[:])
	return u
}

func Mat4(m math.Mat4) *Uniform { return &Uniform{typ: TypeMat4, v: [16]float32(m)} }

// Type returns the GLSL type.
func (u *Uniform) Type() UniformType { return u.typ }

func (u *Uniform) mustBe(t UniformType) {
	if u.typ != t {
		panic(fmt.Sprintf("uniform is %s, not %s", u.typ, t))
	}
}

func (u *Uniform) SetFloat(f float32) {
	u.mustBe(TypeFloat)
	u.v[0] = f
}

func (u *Uniform) SetInt(i int32) {
	u.mustBe(TypeInt)
	u.i = i
}

func (u *Uniform) SetVec2(v math.Vec2) {
	u.mustBe(TypeVec2)
	u.v[0], u.v[1] = v.X, v.Y
}

func (u *Uniform) SetVec3(v math.Vec3) {
	u.mustBe(TypeVec3)
	u.v[0], u.v[1], u.v[2] = v.X, v.Y, v.Z
}

func (u *Uniform) SetVec4(x, y, z, w float32) {
	u.mustBe(TypeVec4)
	u.v[0], u.v[1], u.v[2], u.v[3] = x, y, z, w
}

func (u *Uniform) SetMat3(m math.Mat3) {
	u.mustBe(TypeMat3)
	copy(u.v[:9], m[:])
}

func (u *Uniform) SetMat4(m math.Mat4) {
	u.mustBe(TypeMat4)
	u.v = [16]float32(m)
}

func (u *Uniform) Float() float32 { return u.v[0] }

func (u *Uniform) Int() int32 { return u.i }

func (u *Uniform) Vec2() math.Vec2 { return math.Vec2{X: u.v[0], Y: u.v[1]} }

func (u *Uniform) Vec3() math.Vec3 { return math.Vec3{X: u.v[0], Y: u.v[1], Z: u.v[2]} }

func (u *Uniform) Vec4() [4]float32 { return [4]float32{u.v[0], u.v[1], u.v[2], u.v[3]} }

func (u *Uniform) Mat4() math.Mat4 { return math.Mat4(u.v) }

func (u *Uniform) Mat3() (m math.Mat3) {
	copy(m[:], u.v[:9])
	return m
}

// upload sends the value to the bound program. A location of -1 (inactive
// uniform) is skipped.
func (u *Uniform) upload(loc int32) {
	if loc < 0 {
		return
	}
	switch u.typ {
	case TypeFloat:
		gl.Uniform1f(loc, u.v[0])
	case TypeInt:
		gl.Uniform1i(loc, u.i)
	case TypeVec2:
		gl.Uniform2f(loc, u.v[0], u.v[1])
	case TypeVec3:
		gl.Uniform3f(loc, u.v[0], u.v[1], u.v[2])
	case TypeVec4:
		gl.Uniform4f(loc, u.v[0], u.v[1], u.v[2], u.v[3])
	case TypeMat3:
		gl.UniformMatrix3fv(loc, 1, false, &u.v[0])
	case TypeMat4:
		gl.UniformMatrix4fv(loc, 1, false, &u.v[0])
	}
}

// Uniforms is a program's uniform registry, keyed by GLSL name.
type Uniforms map[string]*Uniform

// Clone copies the map but shares the handles.
func (us Uniforms) Clone() Uniforms {
	out := make(Uniforms, len(us))
	for k, v := range us {
		out[k] = v
	}
	return out
}

// Names returns the uniform names in sorted order.
func (us Uniforms) Names() []string {
	names := make([]string, 0, len(us))
	for k := range us {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// The Set helpers below update a uniform if the registry has it and report
// whether it did. Scene-wide values (matrices, lights) are pushed through
// them so materials that do not declare a value are simply skipped.

func (us Uniforms) SetFloat(name string, f float32) bool {
	u, ok := us[name]
	if ok {
		u.SetFloat(f)
	}
	return ok
}

func (us Uniforms) SetVec3(name string, v math.Vec3) bool {
	u, ok := us[name]
	if ok {
		u.SetVec3(v)
	}
	return ok
}

func (us Uniforms) SetVec4(name string, x, y, z, w float32) bool {
	u, ok := us[name]
	if ok {
		u.SetVec4(x, y, z, w)
	}
	return ok
}

func (us Uniforms) SetMat3(name string, m math.Mat3) bool {
	u, ok := us[name]
	if ok {
		u.SetMat3(m)
	}
	return ok
}

func (us Uniforms) SetMat4(name string, m math.Mat4) bool {
	u, ok := us[name]
	if ok {
		u.SetMat4(m)
	}
	return ok
}
