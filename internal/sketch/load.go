package sketch

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tubescene/internal/assets"
	"github.com/Faultbox/tubescene/internal/config"
	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/texture"
	"github.com/Faultbox/tubescene/internal/logger"
)

// ErrAssetLoad is returned when a required asset cannot be read or decoded.
var ErrAssetLoad = errors.New("asset load failed")

// Loaded holds decoded assets, ready for upload.
type Loaded struct {
	HeightField *heightfield.Field
	NormalMap   image.Image
	Diffuse     image.Image
}

// Load reads and decodes the three scene assets concurrently. The first
// failure cancels the rest and is returned wrapping ErrAssetLoad.
func Load(ctx context.Context, m *assets.Manager, names config.AssetsConfig) (*Loaded, error) {
	var out Loaded
	g, ctx := errgroup.WithContext(ctx)

	read := func(name string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := m.Load(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
		}
		return data, nil
	}

	g.Go(func() error {
		data, err := read(names.HeightMap)
		if err != nil {
			return err
		}
		field, err := heightfield.Decode(data, names.HeightMap)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAssetLoad, names.HeightMap, err)
		}
		out.HeightField = field
		return nil
	})
	g.Go(func() error {
		data, err := read(names.NormalMap)
		if err != nil {
			return err
		}
		img, err := texture.Decode(data, names.NormalMap)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAssetLoad, names.NormalMap, err)
		}
		out.NormalMap = img
		return nil
	})
	g.Go(func() error {
		data, err := read(names.Diffuse)
		if err != nil {
			return err
		}
		img, err := texture.Decode(data, names.Diffuse)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAssetLoad, names.Diffuse, err)
		}
		out.Diffuse = img
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	lo, hi := out.HeightField.Range()
	logger.Named("sketch").Info("assets loaded",
		zap.Int("height_w", out.HeightField.Width),
		zap.Int("height_h", out.HeightField.Height),
		zap.Float32("height_min", lo),
		zap.Float32("height_max", hi),
	)
	return &out, nil
}
