// Package heightfield provides the scalar field that drives the tube displacement.
package heightfield

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// ErrEmpty is returned when a field would have no samples.
var ErrEmpty = errors.New("heightfield: empty field")

// Field is a Width x Height grid of scalar samples in [0, 1].
// Samples are row-major with row 0 at v=0, the same order OpenGL expects for
// the first row of a 2D texture upload, so CPU and GPU sampling agree.
type Field struct {
	Width   int
	Height  int
	Samples []float32
}

// New wraps samples in a Field. len(samples) must equal width*height.
func New(width, height int, samples []float32) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmpty
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("heightfield: %d samples for %dx%d field", len(samples), width, height)
	}
	return &Field{Width: width, Height: height, Samples: samples}, nil
}

// Constant returns a field with every sample set to value.
func Constant(width, height int, value float32) *Field {
	samples := make([]float32, width*height)
	for i := range samples {
		samples[i] = value
	}
	return &Field{Width: width, Height: height, Samples: samples}
}

// FromImage converts the red channel (or gray level) of img into a field.
// The top image row becomes v=1. 16-bit sources keep their precision.
func FromImage(img image.Image) (*Field, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmpty
	}

	samples := make([]float32, w*h)
	for row := 0; row < h; row++ {
		srcY := bounds.Max.Y - 1 - row
		for x := 0; x < w; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, srcY).RGBA()
			samples[row*w+x] = float32(r) / 0xffff
		}
	}
	return &Field{Width: w, Height: h, Samples: samples}, nil
}

// At returns the sample at texel (x, y) with x wrapped and y clamped.
func (f *Field) At(x, y int) float32 {
	x %= f.Width
	if x < 0 {
		x += f.Width
	}
	if y < 0 {
		y = 0
	}
	if y >= f.Height {
		y = f.Height - 1
	}
	return f.Samples[y*f.Width+x]
}

// Sample returns the bilinearly filtered value at (u, v).
// Texel centers sit at (i+0.5)/Width like GL_LINEAR; u repeats and v clamps
// to the edge, the wrap modes the displacement texture is uploaded with.
func (f *Field) Sample(u, v float32) float32 {
	x := u*float32(f.Width) - 0.5
	y := v*float32(f.Height) - 0.5

	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0

	ix, iy := int(x0), int(y0)

	// Bottom edge (lower v): lerp between left and right
	bottom := f.At(ix, iy)*(1-fx) + f.At(ix+1, iy)*fx
	// Top edge (higher v)
	top := f.At(ix, iy+1)*(1-fx) + f.At(ix+1, iy+1)*fx

	return bottom*(1-fy) + top*fy
}

// Range returns the smallest and largest sample.
func (f *Field) Range() (lo, hi float32) {
	if len(f.Samples) == 0 {
		return 0, 0
	}
	lo, hi = f.Samples[0], f.Samples[0]
	for _, s := range f.Samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}
