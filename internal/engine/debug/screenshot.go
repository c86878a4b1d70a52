// Package debug provides screenshot capture for the scene window.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const stampLayout = "2006-01-02_15-04-05.000"

// ScreenshotCapture writes frames to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time

	last  string
	dupes int
}

// NewScreenshotCapture returns a capture writing prefix_<time>.png files
// into outputDir. An empty outputDir means the working directory.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// ImageFromPixels converts bottom-up GL rows (width*height*4 RGBA bytes)
// into a top-down image.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	stride := width * 4
	if want := stride * height; len(pixels) != want {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", want, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for row := range height {
		src := pixels[(height-1-row)*stride:][:stride]
		copy(img.Pix[row*img.Stride:], src)
	}
	return img, nil
}

// CaptureFromPixels saves bottom-up GL pixel data as a PNG and returns the
// path written.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := ImageFromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.save(img)
}

func (sc *ScreenshotCapture) save(img image.Image) (path string, err error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path = sc.nextPath()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// nextPath names the next file. Captures within the same millisecond get a
// numeric suffix instead of overwriting each other.
func (sc *ScreenshotCapture) nextPath() string {
	stamp := sc.now().Format(stampLayout)
	name := sc.prefix + "_" + stamp
	if stamp == sc.last {
		sc.dupes++
		name = fmt.Sprintf("%s-%d", name, sc.dupes)
	} else {
		sc.last, sc.dupes = stamp, 0
	}
	return filepath.Join(sc.outputDir, name+".png")
}
