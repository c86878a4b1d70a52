package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/pkg/math"
)

// Ridges returns a field that repeats seamlessly in u: a few bands around the
// tube with a slow swell along it.
func Ridges(width, height int) *heightfield.Field {
	samples := make([]float32, width*height)
	for row := 0; row < height; row++ {
		v := (float32(row) + 0.5) / float32(height)
		for x := 0; x < width; x++ {
			u := (float32(x) + 0.5) / float32(width)
			samples[row*width+x] = ridgeHeight(u, v)
		}
	}
	return &heightfield.Field{Width: width, Height: height, Samples: samples}
}

// ridgeHeight is the Ridges surface at (u, v). Every u frequency is a whole
// number, so ridgeHeight(u+1, v) == ridgeHeight(u, v).
func ridgeHeight(u, v float32) float32 {
	h := 0.5 +
		0.25*math32.Sin(2*math.Pi*u*4)*math32.Cos(2*math.Pi*v*3) +
		0.15*math32.Sin(2*math.Pi*(u*7+v*2))
	return math.Clamp(h, 0, 1)
}

// HeightImage converts a field to 16-bit gray with v=1 on the top row.
func HeightImage(f *heightfield.Field) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		y := f.Height - 1 - row
		for x := 0; x < f.Width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(f.Samples[row*f.Width+x]*0xffff + 0.5)})
		}
	}
	return img
}

// NormalMap derives tangent-space normals from a field by central
// differences. u wraps, v clamps.
func NormalMap(f *heightfield.Field, strength float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		y := f.Height - 1 - row
		for x := 0; x < f.Width; x++ {
			dx := (f.At(x+1, row) - f.At(x-1, row)) * 0.5 * strength
			dy := (f.At(x, row+1) - f.At(x, row-1)) * 0.5 * strength
			n := math.Vec3{X: -dx, Y: -dy, Z: 1}.Normalize()
			img.SetRGBA(x, y, color.RGBA{
				R: encodeUnit(n.X),
				G: encodeUnit(n.Y),
				B: encodeUnit(n.Z),
				A: 255,
			})
		}
	}
	return img
}

func encodeUnit(c float32) uint8 {
	return uint8(math.Clamp(c*0.5+0.5, 0, 1)*255 + 0.5)
}

var stickerColors = []color.RGBA{
	{0xf2, 0x5f, 0x5c, 0xff},
	{0xff, 0xe0, 0x66, 0xff},
	{0x24, 0x7b, 0xa0, 0xff},
	{0x70, 0xc1, 0xb3, 0xff},
	{0x50, 0x51, 0x4f, 0xff},
}

// Stickers draws a grid of colored discs on a light background. Cells line
// up with the right edge so the texture repeats in u.
func Stickers(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	const cols, rows = 8, 4
	cw, ch := float32(width)/cols, float32(height)/rows
	radius := min(cw, ch) * 0.35

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cx, cy := int(float32(x)/cw), int(float32(y)/ch)
			px := float32(x) - (float32(cx)+0.5)*cw
			py := float32(y) - (float32(cy)+0.5)*ch
			c := color.RGBA{0xf4, 0xf1, 0xde, 0xff}
			if px*px+py*py <= radius*radius {
				c = stickerColors[(cx+cy*3)%len(stickerColors)]
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// WriteHeightTIFF writes a field as a deflate-compressed 16-bit TIFF.
func WriteHeightTIFF(path string, f *heightfield.Field) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tiff.Encode(out, HeightImage(f), &tiff.Options{Compression: tiff.Deflate}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WritePNG writes img as a PNG file.
func WritePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
