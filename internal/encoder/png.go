package encoder

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGEncoder writes PNGs at a fixed compression level. Go's PNG encoder
// is deterministic for a given level, which the overwrite-on-rerun
// contract relies on.
type PNGEncoder struct {
	Level png.CompressionLevel
}

// NewPNG returns the encoder used for app icons.
func NewPNG() *PNGEncoder {
	return &PNGEncoder{Level: png.BestCompression}
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	b := img.Bounds()
	buf.Grow(b.Dx() * b.Dy()) // rough guess; icons compress well below 4 B/px

	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(e.Level)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
