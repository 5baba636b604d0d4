// Package render turns a source logo into one padded square icon.
package render

import (
	"image"
	"image/color"

	"github.com/AnyUserName/iconpad/internal/iconset"
	"github.com/disintegration/imaging"
)

// Render fits src into g.Logo×g.Logo, pads it by g.Padding on every side
// with bg, and returns a canvas of exactly g.Output×g.Output.
func Render(src image.Image, g iconset.Geometry, bg color.NRGBA) *image.NRGBA {
	logo := Contain(src, g.Logo)
	padded := Pad(logo, g.Padding, bg)
	return FixCanvas(padded, g.Output, bg)
}

// Contain scales src to fit inside a size×size square without cropping
// and centers it on a transparent square of exactly that size.
func Contain(src image.Image, size int) *image.NRGBA {
	b := src.Bounds()
	w, h := fitDims(b.Dx(), b.Dy(), size)
	resized := imaging.Resize(src, w, h, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(size, size, color.Transparent), resized)
}

// Pad extends img by pad pixels on all four sides, filled with bg.
func Pad(img image.Image, pad int, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, bg)
	return imaging.Paste(canvas, img, image.Pt(pad, pad))
}

// FixCanvas forces img to size×size. Missing pixels are filled with bg
// and surplus pixels are dropped, both at the right and bottom edges.
func FixCanvas(img *image.NRGBA, size int, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	return imaging.Paste(imaging.New(size, size, bg), img, image.Pt(0, 0))
}

// fitDims returns the largest w×h with the aspect ratio of srcW×srcH that
// fits in a size×size square. Both edges are at least 1.
func fitDims(srcW, srcH, size int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return size, size
	}
	w, h := size, size
	if srcW > srcH {
		h = (srcH*size + srcW/2) / srcW
	} else if srcH > srcW {
		w = (srcW*size + srcH/2) / srcH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
