package pipeline

import "fmt"

// Step names the stage of an artifact that failed.
type Step string

const (
	StepResize Step = "resize"
	StepEncode Step = "encode"
	StepWrite  Step = "write"
)

// ConfigError is an invalid policy, table or path. Nothing has been
// read or written when it is returned.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// SourceError means the logo could not be read or decoded. Nothing has
// been written when it is returned.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Path, e.Err)
}
func (e *SourceError) Unwrap() error { return e.Err }

// ArtifactError identifies the icon being produced when a run aborted.
// Files written by earlier artifacts are left in place.
type ArtifactError struct {
	Path string
	Step Step
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %s: %s: %v", e.Path, e.Step, e.Err)
}
func (e *ArtifactError) Unwrap() error { return e.Err }
