package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/AnyUserName/iconpad/internal/encoder"
	"github.com/AnyUserName/iconpad/internal/manifest"
	"github.com/AnyUserName/iconpad/internal/source"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pipeline renders every icon of a configuration from one source logo.
type Pipeline struct {
	cfg     *config.Config
	workers int
	enc     encoder.Encoder
	log     logrus.FieldLogger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithEncoder replaces the PNG encoder, e.g. with a fake in tests.
func WithEncoder(enc encoder.Encoder) Option {
	return func(p *Pipeline) { p.enc = enc }
}

// WithLogger sets where progress lines go.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = log }
}

// New creates a configured pipeline.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		workers: cfg.Workers,
		enc:     encoder.NewPNG(),
		log:     logrus.StandardLogger(),
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers is the effective pool size.
func (p *Pipeline) Workers() int { return p.workers }

// Run plans, loads the source and writes every artifact. It stops at the
// first failing artifact; files already written stay on disk. The
// returned manifest lists what was written, in plan order.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	start := time.Now()

	// Step 1: Validate and expand tables. Fails before any I/O.
	jobs, err := Plan(p.cfg)
	if err != nil {
		return nil, err
	}

	// Step 2: Load the source. Fails before any output is touched.
	src, err := source.Load(p.cfg.Source)
	if err != nil {
		return nil, &SourceError{Path: p.cfg.Source, Err: err}
	}
	b := src.Img.Bounds()
	p.log.Debugf("source: %s (%s, %dx%d, hash %s)", src.Path, src.Format, b.Dx(), b.Dy(), src.Hash)
	p.log.Debugf("%d artifacts, %d workers, encoder %s", len(jobs), p.workers, p.enc.Format())

	// Step 3: Render jobs on a bounded pool. The first error cancels the
	// group so queued jobs are skipped.
	results := make([][]manifest.Artifact, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			arts, err := p.process(job, src.Img)
			if err != nil {
				return err
			}
			results[i] = arts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Collect results into manifest.
	m := manifest.New(manifest.SourceInfo{
		Path:   src.Path,
		Format: src.Format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Size:   src.Size,
		Hash:   src.Hash,
	})
	m.BuildInfo = &manifest.BuildInfo{Workers: p.workers}
	for _, arts := range results {
		m.Artifacts = append(m.Artifacts, arts...)
	}
	m.ComputeStats()

	p.log.Debugf("run finished in %s", time.Since(start).Round(time.Millisecond))
	return m, nil
}
