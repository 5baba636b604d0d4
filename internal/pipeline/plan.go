package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/AnyUserName/iconpad/internal/iconset"
)

// Job is one rendered raster and the files it is written to. Android
// launcher jobs carry two paths (ic_launcher and ic_launcher_round).
type Job struct {
	Platform iconset.Platform
	Policy   iconset.Policy
	Spec     iconset.Spec
	Geometry iconset.Geometry
	Paths    []string
}

// Name is a short label for logs.
func (j Job) Name() string {
	if len(j.Paths) == 0 {
		return string(j.Platform)
	}
	return filepath.ToSlash(j.Paths[0])
}

// Plan validates cfg and expands its tables into jobs, in table order.
// It performs no I/O.
func Plan(cfg *config.Config) ([]Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	var jobs []Job
	seen := map[string]iconset.Platform{}
	for _, t := range cfg.Tables {
		root := cfg.Root(t.Platform)
		for _, s := range t.Specs {
			job := Job{
				Platform: t.Platform,
				Policy:   t.Policy,
				Spec:     s,
				Geometry: s.Geometry(t.Policy),
			}
			for _, rel := range t.Files(s) {
				p := filepath.Join(root, filepath.FromSlash(rel))
				if other, dup := seen[p]; dup {
					return nil, &ConfigError{Err: fmt.Errorf("%s and %s both write %s", other, t.Platform, p)}
				}
				seen[p] = t.Platform
				job.Paths = append(job.Paths, p)
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}
