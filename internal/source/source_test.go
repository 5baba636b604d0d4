package source

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

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

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, gradient(120, 80))

	src, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Format != "png" {
		t.Errorf("format: got %q, want png", src.Format)
	}
	if b := src.Img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("bounds: got %dx%d, want 120x80", b.Dx(), b.Dy())
	}
	info, _ := os.Stat(path)
	if src.Size != info.Size() {
		t.Errorf("size: got %d, want %d", src.Size, info.Size())
	}
	if len(src.Hash) != 16 {
		t.Errorf("hash: got %q", src.Hash)
	}
}

func TestLoad_JPEGWithMisleadingExtension(t *testing.T) {
	// Content decides the format, not the file name.
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, gradient(64, 64), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", src.Format)
	}
}

func TestLoad_SVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">
  <rect x="0" y="0" width="200" height="100" fill="#ff0000"/>
</svg>`
	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Format != "svg" {
		t.Errorf("format: got %q, want svg", src.Format)
	}
	b := src.Img.Bounds()
	if b.Dx() != SVGRasterSize || b.Dy() != SVGRasterSize/2 {
		t.Errorf("raster: got %dx%d, want %dx%d", b.Dx(), b.Dy(), SVGRasterSize, SVGRasterSize/2)
	}
	_, _, _, a := src.Img.At(b.Dx()/2, b.Dy()/2).RGBA()
	if a == 0 {
		t.Error("rasterized SVG is empty in the middle")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "notes.png")
	os.WriteFile(text, []byte("definitely not an image, just some text"), 0o644)

	empty := filepath.Join(dir, "empty.png")
	os.WriteFile(empty, nil, 0o644)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "missing.png"), "no such file"},
		{"empty", empty, "empty"},
		{"text", text, "unrecognized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	for in, want := range map[string]string{"jpg": "jpeg", "tif": "tiff", "png": "png", "webp": "webp"} {
		if got := normalizeFormat(in); got != want {
			t.Errorf("normalizeFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
