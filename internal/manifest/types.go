package manifest

// Manifest records one generator run.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt string     `json:"generated_at"`
	Source      SourceInfo `json:"source"`
	BuildInfo   *BuildInfo `json:"build_info,omitempty"`
	Artifacts   []Artifact `json:"artifacts"`
	Stats       Stats      `json:"stats"`
}

// SourceInfo describes the logo the icons were rendered from.
type SourceInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // 16 hex chars of xxhash64
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Artifact is one written icon file.
type Artifact struct {
	Platform string  `json:"platform"` // "ios", "android", "android-adaptive"
	Policy   string  `json:"policy"`
	Path     string  `json:"path"`     // as written, slash-separated
	Output   int     `json:"output"`   // canvas edge in px
	Logo     int     `json:"logo"`     // logo square edge in px
	Padding  int     `json:"padding"`  // symmetric border in px
	Fill     float64 `json:"fill_pct"` // padding fraction of the policy
	Size     int64   `json:"size"`     // bytes on disk
	Hash     string  `json:"hash"`     // first 16 hex chars of xxhash64
}

// Stats aggregates run metrics.
type Stats struct {
	TotalArtifacts   int            `json:"total_artifacts"`
	TotalOutputBytes int64          `json:"total_output_bytes"`
	PerPlatform      map[string]int `json:"per_platform"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
