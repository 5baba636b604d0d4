package encoder

import (
	"image"
)

// Encoder serializes a rendered icon.
type Encoder interface {
	// Format returns the output format name (e.g. "png").
	Format() string

	// Encode converts the image to bytes. Identical input must yield
	// identical output so reruns leave files byte-for-byte unchanged.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
