package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// New creates an empty manifest with defaults.
func New(src SourceInfo) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      src,
	}
}

// ComputeStats recalculates aggregate statistics from artifacts.
func (m *Manifest) ComputeStats() {
	s := Stats{PerPlatform: map[string]int{}}
	s.TotalArtifacts = len(m.Artifacts)
	for _, a := range m.Artifacts {
		s.TotalOutputBytes += a.Size
		s.PerPlatform[a.Platform]++
	}
	m.Stats = s
}

// Sort orders artifacts by platform then path so the file is stable
// regardless of worker scheduling.
func (m *Manifest) Sort() {
	sort.SliceStable(m.Artifacts, func(i, j int) bool {
		a, b := m.Artifacts[i], m.Artifacts[j]
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		return a.Path < b.Path
	})
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.Sort()
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest and checks its version.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != SupportedManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	return &m, nil
}
