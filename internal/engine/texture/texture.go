// Package texture provides image decoding and GPU texture management.
package texture

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tubescene/pkg/math"
)

// Texture is an RGBA image texture with a sampling transform.
// Offset, Repeat, Rotation and Center only change the uv transform handed to
// the shader; the uploaded pixels never change.
type Texture struct {
	Image *image.RGBA

	Offset   math.Vec2
	Repeat   math.Vec2
	Rotation float32
	Center   math.Vec2

	WrapS int32
	WrapT int32

	id uint32
}

// New creates a texture from any image. Wrapping defaults to repeat.
func New(img image.Image) *Texture {
	return &Texture{
		Image:  ImageToRGBA(img),
		Repeat: math.Vec2{X: 1, Y: 1},
		WrapS:  gl.REPEAT,
		WrapT:  gl.REPEAT,
	}
}

// UVTransform returns the matrix the shader applies to mesh uvs before sampling.
func (t *Texture) UVTransform() math.Mat3 {
	return math.UVTransform(t.Offset, t.Repeat, t.Rotation, t.Center)
}

// ID returns the GL texture name, 0 before Upload.
func (t *Texture) ID() uint32 {
	return t.id
}

// Upload sends the image to the GPU with mipmaps. Rows are flipped so the top
// of the image is at v=1.
func (t *Texture) Upload() {
	img := FlipRows(t.Image)
	if t.id == 0 {
		gl.GenTextures(1, &t.id)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, t.WrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, t.WrapT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GPU texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// FloatTexture is a single-channel float texture, used for height data that
// needs more than 8 bits.
type FloatTexture struct {
	id uint32
}

// UploadFloat uploads width*height floats as an R32F texture, or replaces the
// contents of an existing one. The first row of data is v=0.
// u repeats and v clamps to the edge.
func (t *FloatTexture) UploadFloat(width, height int, data []float32) {
	if t.id == 0 {
		gl.GenTextures(1, &t.id)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, int32(width), int32(height), 0, gl.RED, gl.FLOAT, unsafe.Pointer(&data[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to a texture unit.
func (t *FloatTexture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GPU texture.
func (t *FloatTexture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
