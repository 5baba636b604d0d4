// Package source loads the logo every icon is rendered from.
package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/iconpad/internal/hasher"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SVGRasterSize is the edge, in pixels, of the longer side an SVG logo is
// rasterized to before any icon is resized from it.
const SVGRasterSize = 1024

// headerLen is how many bytes filetype needs to recognize any matcher.
const headerLen = 262

// Image is a decoded source logo. It is shared read-only by all renders.
type Image struct {
	// Path is the file the logo was read from.
	Path string
	// Format is the detected format (png, jpeg, gif, bmp, tiff, webp, svg).
	Format string
	// Size is the file size in bytes.
	Size int64
	// Hash is the xxHash64 of the file bytes (16 hex chars).
	Hash string
	// Img is the decoded raster.
	Img image.Image
}

// decodable lists raster formats with a registered image decoder.
var decodable = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
	"webp": true,
}

// Load reads, sniffs and decodes the logo at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	format, err := detectFormat(path, data)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if format == "svg" {
		img, err = rasterizeSVG(data, SVGRasterSize)
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decoded image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}

	return &Image{
		Path:   path,
		Format: format,
		Size:   int64(len(data)),
		Hash:   hasher.ContentHash(data, 16),
		Img:    img,
	}, nil
}

// detectFormat sniffs magic bytes. SVG is XML and has no magic number,
// so it is recognized by extension or a leading tag instead.
func detectFormat(path string, data []byte) (string, error) {
	if isSVG(path, data) {
		return "svg", nil
	}

	head := data
	if len(head) > headerLen {
		head = head[:headerLen]
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return "", fmt.Errorf("sniff: %w", err)
	}
	if kind == filetype.Unknown {
		return "", fmt.Errorf("unrecognized file type")
	}
	if !filetype.IsImage(head) {
		return "", fmt.Errorf("not an image: %s", kind.MIME.Value)
	}

	format := normalizeFormat(kind.Extension)
	if !decodable[format] {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return format, nil
}

func isSVG(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := bytes.TrimSpace(head)
	return bytes.HasPrefix(trimmed, []byte("<svg")) ||
		(bytes.HasPrefix(trimmed, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

func normalizeFormat(ext string) string {
	switch ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}

// rasterizeSVG draws the SVG so its longer side is size pixels, keeping
// the viewBox aspect ratio, on a transparent background.
func rasterizeSVG(data []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = float64(size), float64(size)
	}
	scale := float64(size) / math.Max(vw, vh)
	w := int(math.Max(1, math.Round(vw*scale)))
	h := int(math.Max(1, math.Round(vh*scale)))

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	dasher := rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, rgba, rgba.Bounds()))
	icon.Draw(dasher, 1.0)
	return rgba, nil
}
