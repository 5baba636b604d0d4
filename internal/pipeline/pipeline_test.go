package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/AnyUserName/iconpad/internal/iconset"
	"github.com/sirupsen/logrus"
)

// fakeEncoder records rendered sizes instead of producing PNGs.
type fakeEncoder struct {
	mu    sync.Mutex
	sizes map[image.Point]int
	fail  bool
}

func (e *fakeEncoder) Format() string    { return "fake" }
func (e *fakeEncoder) Extension() string { return "fake" }

func (e *fakeEncoder) Encode(img image.Image) ([]byte, error) {
	if e.fail {
		return nil, errors.New("codec exploded")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sizes == nil {
		e.sizes = map[image.Point]int{}
	}
	e.sizes[img.Bounds().Size()]++
	return []byte(fmt.Sprintf("%v", img.Bounds().Size())), nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Source = writeLogo(t, dir)
	cfg.IOSDir = filepath.Join(dir, "ios", "AppIcon.appiconset")
	cfg.AndroidResDir = filepath.Join(dir, "android", "res")
	return cfg
}

func decodePNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		nrgba = image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				nrgba.Set(x, y, img.At(x, y))
			}
		}
	}
	return nrgba
}

func TestPlan_DefaultTables(t *testing.T) {
	cfg := testConfig(t)
	jobs, err := Plan(cfg)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(jobs) != 21 {
		t.Fatalf("jobs: got %d, want 21 (9 ios + 6 launcher + 6 adaptive)", len(jobs))
	}

	files := 0
	for _, j := range jobs {
		files += len(j.Paths)
	}
	if files != 27 {
		t.Errorf("files: got %d, want 27", files)
	}

	// Spot-check the worked examples.
	for _, j := range jobs {
		if j.Platform == iconset.IOS && j.Spec.Name == "40@2x.png" {
			if j.Geometry != (iconset.Geometry{Output: 80, Logo: 64, Padding: 8}) {
				t.Errorf("40@2x geometry: %+v", j.Geometry)
			}
		}
		if j.Platform == iconset.AndroidAdaptive && j.Spec.Density == "ldpi" {
			if j.Geometry != (iconset.Geometry{Output: 81, Logo: 56, Padding: 12}) {
				t.Errorf("adaptive ldpi geometry: %+v", j.Geometry)
			}
			want := filepath.Join(cfg.AndroidResDir, "mipmap-ldpi-v26", "ic_foreground.png")
			if j.Paths[0] != want {
				t.Errorf("adaptive path: got %s, want %s", j.Paths[0], want)
			}
		}
	}
}

func TestPlan_DuplicateDestination(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tables = []iconset.Table{
		{Platform: iconset.IOS, Policy: iconset.Standard, Specs: []iconset.Spec{{Size: 81, Name: "ic_foreground.png"}}},
		{Platform: iconset.AndroidAdaptive, Policy: iconset.Adaptive, Specs: []iconset.Spec{{Size: 81, Density: "ldpi"}}},
	}
	cfg.IOSDir = filepath.Join(cfg.AndroidResDir, "mipmap-ldpi-v26")

	_, err := Plan(cfg)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestRun_FakeCodecSizes(t *testing.T) {
	cfg := testConfig(t)
	enc := &fakeEncoder{}
	m, err := New(cfg, WithEncoder(enc), WithLogger(quietLogger())).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Every rendered canvas must match a table size exactly.
	want := map[image.Point]int{}
	for _, tbl := range cfg.Tables {
		for _, s := range tbl.Specs {
			n := s.OutputSize()
			want[image.Pt(n, n)]++
		}
	}
	for size, count := range want {
		if enc.sizes[size] != count {
			t.Errorf("size %v: encoded %d times, want %d", size, enc.sizes[size], count)
		}
	}
	for size := range enc.sizes {
		if _, ok := want[size]; !ok {
			t.Errorf("unexpected canvas size %v", size)
		}
	}

	if m.Stats.TotalArtifacts != 27 {
		t.Errorf("artifacts: got %d, want 27", m.Stats.TotalArtifacts)
	}
	if m.Stats.PerPlatform["ios"] != 9 || m.Stats.PerPlatform["android"] != 12 || m.Stats.PerPlatform["android-adaptive"] != 6 {
		t.Errorf("per platform: %v", m.Stats.PerPlatform)
	}
}

func TestRun_FullPNG(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 4
	m, err := New(cfg, WithLogger(quietLogger())).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Artifacts) != 27 {
		t.Fatalf("artifacts: got %d, want 27", len(m.Artifacts))
	}

	for _, a := range m.Artifacts {
		img := decodePNG(t, filepath.FromSlash(a.Path))
		if b := img.Bounds(); b.Dx() != a.Output || b.Dy() != a.Output {
			t.Errorf("%s: %dx%d, want %dx%d", a.Path, b.Dx(), b.Dy(), a.Output, a.Output)
		}

		// Corner pixels are always border.
		corner := img.NRGBAAt(0, 0)
		far := img.NRGBAAt(a.Output-1, a.Output-1)
		switch a.Platform {
		case "android-adaptive":
			if corner.A != 0 || far.A != 0 {
				t.Errorf("%s: adaptive border not transparent: %v %v", a.Path, corner, far)
			}
		default:
			white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if corner != white || far != white {
				t.Errorf("%s: border not opaque white: %v %v", a.Path, corner, far)
			}
		}
	}

	// Launcher and round launcher are byte-identical.
	dir := filepath.Join(cfg.AndroidResDir, "mipmap-xxhdpi")
	a, _ := os.ReadFile(filepath.Join(dir, "ic_launcher.png"))
	b, _ := os.ReadFile(filepath.Join(dir, "ic_launcher_round.png"))
	if len(a) == 0 || !bytes.Equal(a, b) {
		t.Error("ic_launcher and ic_launcher_round differ")
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 1
	first, err := New(cfg, WithLogger(quietLogger())).Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	cfg.Workers = 8
	second, err := New(cfg, WithLogger(quietLogger())).Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first.Artifacts) != len(second.Artifacts) {
		t.Fatalf("artifact counts differ: %d vs %d", len(first.Artifacts), len(second.Artifacts))
	}
	for i := range first.Artifacts {
		if first.Artifacts[i].Path != second.Artifacts[i].Path {
			t.Fatalf("artifact order differs at %d", i)
		}
		if first.Artifacts[i].Hash != second.Artifacts[i].Hash {
			t.Errorf("%s: hash changed between runs", first.Artifacts[i].Path)
		}
	}
}

func TestRun_BadPaddingIsConfigError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tables[0].Policy.Padding = 0.5

	_, err := New(cfg, WithLogger(quietLogger())).Run(context.Background())
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if _, statErr := os.Stat(cfg.IOSDir); !os.IsNotExist(statErr) {
		t.Error("output written despite configuration error")
	}
}

func TestRun_MissingSourceWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = filepath.Join(t.TempDir(), "nope.png")

	_, err := New(cfg, WithLogger(quietLogger())).Run(context.Background())
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause not preserved: %v", err)
	}
	for _, dir := range []string{cfg.IOSDir, cfg.AndroidResDir} {
		if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
			t.Errorf("%s created despite source error", dir)
		}
	}
}

func TestRun_EncodeFailure(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg, WithEncoder(&fakeEncoder{fail: true}), WithLogger(quietLogger())).Run(context.Background())

	var artErr *ArtifactError
	if !errors.As(err, &artErr) {
		t.Fatalf("expected ArtifactError, got %v", err)
	}
	if artErr.Step != StepEncode {
		t.Errorf("step: got %s, want %s", artErr.Step, StepEncode)
	}
	if artErr.Path == "" {
		t.Error("artifact path missing from error")
	}
}

func TestRun_WriteFailureKeepsEarlierFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 1

	// A regular file where the Android res dir should be.
	if err := os.MkdirAll(filepath.Dir(cfg.AndroidResDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.AndroidResDir, []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(cfg, WithEncoder(&fakeEncoder{}), WithLogger(quietLogger())).Run(context.Background())
	var artErr *ArtifactError
	if !errors.As(err, &artErr) {
		t.Fatalf("expected ArtifactError, got %v", err)
	}
	if artErr.Step != StepWrite {
		t.Errorf("step: got %s, want %s", artErr.Step, StepWrite)
	}

	// iOS runs first with one worker and is not rolled back.
	entries, _ := os.ReadDir(cfg.IOSDir)
	if len(entries) != 9 {
		t.Errorf("ios files left: got %d, want 9", len(entries))
	}
}

func TestRun_CanvasCheck(t *testing.T) {
	orig := renderFunc
	defer func() { renderFunc = orig }()
	renderFunc = func(src image.Image, job Job) *image.NRGBA {
		n := job.Geometry.Logo + 2*job.Geometry.Padding
		return image.NewNRGBA(image.Rect(0, 0, n, n))
	}

	cfg := testConfig(t)
	cfg.Tables = cfg.Tables[2:] // adaptive ldpi is 80 before correction
	_, err := New(cfg, WithEncoder(&fakeEncoder{}), WithLogger(quietLogger())).Run(context.Background())

	var artErr *ArtifactError
	if !errors.As(err, &artErr) || artErr.Step != StepResize {
		t.Fatalf("expected resize ArtifactError, got %v", err)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, WithEncoder(&fakeEncoder{}), WithLogger(quietLogger())).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
