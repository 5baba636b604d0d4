//go:build ignore

// gen_fixtures creates sample logos for trying the generator by hand.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 240 120" width="240" height="120">
  <rect x="0" y="0" width="240" height="120" rx="24" fill="#1e6fd9"/>
  <circle cx="60" cy="60" r="36" fill="#ffffff"/>
  <path d="M120 30 L210 60 L120 90 Z" fill="#ffd23f"/>
</svg>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "assets"), 0o755)

	// Square logo with soft alpha edge (PNG, 512x512), at the default source path.
	writeImage(filepath.Join(dir, "assets", "logo.png"), roundLogo(512))

	// Wide wordmark (JPEG, 800x240)
	writeJPEG(filepath.Join(dir, "assets", "wordmark.jpg"), gradient(800, 240))

	// Vector mark
	if err := os.WriteFile(filepath.Join(dir, "assets", "mark.svg"), []byte(logoSVG), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 fixtures in %s\n", filepath.Join(dir, "assets"))
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// roundLogo draws a filled disc on a transparent square with a 4px fade.
func roundLogo(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	r := c - 8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			d := dx*dx + dy*dy
			var a float64
			switch {
			case d <= (r-4)*(r-4):
				a = 1
			case d <= r*r:
				a = (r*r - d) / (r*r - (r-4)*(r-4))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: uint8(a * 255)})
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
