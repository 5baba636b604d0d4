package cmd

import (
	"context"
	"errors"

	"github.com/AnyUserName/iconpad/internal/pipeline"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitSource   = 3
	ExitArtifact = 4
	ExitCanceled = 130
)

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		cfgErr *pipeline.ConfigError
		srcErr *pipeline.SourceError
		artErr *pipeline.ArtifactError
	)
	switch {
	case errors.As(err, &cfgErr):
		return ExitConfig
	case errors.As(err, &srcErr):
		return ExitSource
	case errors.As(err, &artErr):
		return ExitArtifact
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}
	return ExitFailure
}
