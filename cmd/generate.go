package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/AnyUserName/iconpad/internal/manifest"
	"github.com/AnyUserName/iconpad/internal/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	genWorkers  int
	genManifest string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render every icon from the source logo (default command)",
	Long: `Reads the source logo and writes:

  <ios_dir>/<name>                                  9 iOS icons
  <android_res_dir>/mipmap-<density>/ic_launcher.png and ic_launcher_round.png
  <android_res_dir>/mipmap-<density>-v26/ic_foreground.png

Existing files are overwritten. The run stops at the first failure;
files written before it are kept.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU, 1 = sequential)")
	generateCmd.Flags().StringVarP(&genManifest, "manifest", "m", "", "write a JSON run manifest to this path")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if genWorkers > 0 {
		cfg.Workers = genWorkers
	}
	if genManifest != "" {
		cfg.Manifest = genManifest
	}

	_, err = generate(cmd.Context(), cfg)
	return err
}

// generate runs the pipeline once, writes the manifest when configured
// and prints the report. Shared with watch.
func generate(ctx context.Context, cfg *config.Config) (*manifest.Manifest, error) {
	start := time.Now()

	log.Debugf("source:  %s", cfg.Source)
	log.Debugf("ios:     %s", cfg.IOSDir)
	log.Debugf("android: %s", cfg.AndroidResDir)

	p := pipeline.New(cfg, pipeline.WithLogger(log))
	m, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Manifest != "" {
		if err := manifest.WriteJSON(m, cfg.Manifest); err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		log.Debugf("manifest: %s", cfg.Manifest)
	}

	printGenerateReport(cfg, m, time.Since(start))
	return m, nil
}

func printGenerateReport(cfg *config.Config, m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  iconpad: icons generated")
	fmt.Println()
	fmt.Printf("  Source:      %s (%s, %dx%d, %s)\n",
		m.Source.Path, m.Source.Format, m.Source.Width, m.Source.Height, humanize.Bytes(uint64(m.Source.Size)))

	platforms := make([]string, 0, len(m.Stats.PerPlatform))
	for p := range m.Stats.PerPlatform {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		fmt.Printf("  %-17s %2d files\n", p+":", m.Stats.PerPlatform[p])
	}

	fmt.Printf("  Total:       %d files, %s\n", m.Stats.TotalArtifacts, humanize.Bytes(uint64(m.Stats.TotalOutputBytes)))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if cfg.Manifest != "" {
		fmt.Printf("  Manifest:    %s\n", filepath.ToSlash(cfg.Manifest))
	}
	fmt.Println()
}
