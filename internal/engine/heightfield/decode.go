package heightfield

import (
	"fmt"

	"github.com/Faultbox/tubescene/internal/engine/texture"
)

// Decode builds a field from encoded image bytes. The name's extension picks
// the decoder (see texture.Decode).
func Decode(data []byte, name string) (*Field, error) {
	img, err := texture.Decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("decoding height map %s: %w", name, err)
	}
	return FromImage(img)
}
