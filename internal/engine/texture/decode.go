package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration (16-bit height maps)
)

// Decode decodes PNG, JPEG, GIF, BMP or TIFF bytes. The format is sniffed
// from the data; name only labels errors.
func Decode(data []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%s: unrecognized image format (%s): %w", name, path.Ext(name), err)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with bounds at the origin.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// FlipRows returns a copy of img with its rows in reverse order, so the top
// image row lands at v=1 once uploaded.
func FlipRows(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	rowSize := bounds.Dx() * 4
	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[(bounds.Dy()-1-y)*img.Stride:]
		copy(out.Pix[y*out.Stride:y*out.Stride+rowSize], src[:rowSize])
	}
	return out
}
