package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/iconpad/internal/hasher"
	"github.com/AnyUserName/iconpad/internal/manifest"
	"github.com/AnyUserName/iconpad/internal/render"
	"github.com/sirupsen/logrus"
)

// renderFunc is replaced in tests to simulate a bad canvas.
var renderFunc = func(src image.Image, job Job) *image.NRGBA {
	return render.Render(src, job.Geometry, job.Policy.Background)
}

// process handles a single job: render, verify, encode, write.
func (p *Pipeline) process(job Job, src image.Image) ([]manifest.Artifact, error) {
	g := job.Geometry

	img := renderFunc(src, job)
	if b := img.Bounds(); b.Dx() != g.Output || b.Dy() != g.Output {
		return nil, &ArtifactError{
			Path: job.Name(),
			Step: StepResize,
			Err:  fmt.Errorf("canvas is %dx%d, want %dx%d", b.Dx(), b.Dy(), g.Output, g.Output),
		}
	}

	data, err := p.enc.Encode(img)
	if err != nil {
		return nil, &ArtifactError{Path: job.Name(), Step: StepEncode, Err: err}
	}
	contentHash := hasher.ContentHash(data, 16)

	arts := make([]manifest.Artifact, 0, len(job.Paths))
	for _, path := range job.Paths {
		if err := writeFile(path, data); err != nil {
			return nil, &ArtifactError{Path: filepath.ToSlash(path), Step: StepWrite, Err: err}
		}

		p.log.WithFields(logrus.Fields{
			"size":    fmt.Sprintf("%dx%d", g.Output, g.Output),
			"logo":    g.Logo,
			"padding": g.Padding,
		}).Infof("generated %s", filepath.ToSlash(path))

		arts = append(arts, manifest.Artifact{
			Platform: string(job.Platform),
			Policy:   job.Policy.Name,
			Path:     filepath.ToSlash(path),
			Output:   g.Output,
			Logo:     g.Logo,
			Padding:  g.Padding,
			Fill:     job.Policy.Padding,
			Size:     int64(len(data)),
			Hash:     contentHash,
		})
	}
	return arts, nil
}

// writeFile creates parent directories and overwrites path.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
