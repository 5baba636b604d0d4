package cmd

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/iconpad/internal/hasher"
	"github.com/AnyUserName/iconpad/internal/manifest"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <manifest_path>",
	Short: "Check that the icons recorded in a manifest are present and unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	m, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}

	errs, warnings := verifyManifest(m)
	for _, w := range warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}

	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d icons present, sizes and hashes match\n", len(m.Artifacts))
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errs))
}

// verifyManifest checks every recorded artifact against the disk. Paths
// are used as recorded (relative to the working directory when relative).
func verifyManifest(m *manifest.Manifest) (errs, warnings []string) {
	seen := map[string]bool{}
	for i, a := range m.Artifacts {
		label := fmt.Sprintf("artifact[%d] %s", i, a.Path)

		if a.Path == "" {
			errs = append(errs, fmt.Sprintf("artifact[%d]: missing path", i))
			continue
		}
		if seen[a.Path] {
			errs = append(errs, fmt.Sprintf("%s: duplicate path", label))
		}
		seen[a.Path] = true

		if a.Output <= 0 || a.Logo <= 0 || a.Logo > a.Output {
			errs = append(errs, fmt.Sprintf("%s: invalid geometry output=%d logo=%d", label, a.Output, a.Logo))
		}
		if a.Padding*2+a.Logo > a.Output {
			errs = append(errs, fmt.Sprintf("%s: padding %d overflows %dpx canvas", label, a.Padding, a.Output))
		}

		path := filepath.FromSlash(a.Path)
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: file not found", label))
			continue
		}
		if a.Size > 0 && info.Size() != a.Size {
			errs = append(errs, fmt.Sprintf("%s: size mismatch: manifest=%d, disk=%d", label, a.Size, info.Size()))
		}

		if a.Hash != "" {
			sum, err := hasher.FileHash(path, len(a.Hash))
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", label, err))
			} else if sum != a.Hash {
				errs = append(errs, fmt.Sprintf("%s: hash mismatch: manifest=%s, disk=%s", label, a.Hash, sum))
			}
		}

		if w, h, err := pngDims(path); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", label, err))
		} else if w != a.Output || h != a.Output {
			errs = append(errs, fmt.Sprintf("%s: dimensions %dx%d, want %dx%d", label, w, h, a.Output, a.Output))
		}
	}

	if m.Stats.TotalArtifacts != len(m.Artifacts) {
		errs = append(errs, fmt.Sprintf("stats.total_artifacts mismatch: %d != %d", m.Stats.TotalArtifacts, len(m.Artifacts)))
	}

	if m.Source.Path != "" && m.Source.Hash != "" {
		sum, err := hasher.FileHash(m.Source.Path, len(m.Source.Hash))
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("source %s not readable: %v", m.Source.Path, err))
		case sum != m.Source.Hash:
			warnings = append(warnings, fmt.Sprintf("source %s changed since the icons were generated", m.Source.Path))
		}
	}
	return errs, warnings
}

func pngDims(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode header: %w", err)
	}
	if format != "png" {
		return 0, 0, fmt.Errorf("format is %s, want png", format)
	}
	return cfg.Width, cfg.Height, nil
}
