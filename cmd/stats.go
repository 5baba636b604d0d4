package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/iconpad/internal/manifest"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <manifest_or_dir>",
	Short: "Display statistics for a generator run manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// defaultManifestName is looked up when stats is given a directory.
const defaultManifestName = "iconpad.manifest.json"

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, defaultManifestName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Source:           %s (%s, %dx%d, %s, hash %s)\n",
		m.Source.Path, m.Source.Format, m.Source.Width, m.Source.Height,
		humanize.Bytes(uint64(m.Source.Size)), m.Source.Hash)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total icons:      %d\n", s.TotalArtifacts)
	fmt.Printf("  Output size:      %s\n", humanize.Bytes(uint64(s.TotalOutputBytes)))
	fmt.Println()

	// Per-platform breakdown.
	type platformStat struct {
		count int
		bytes int64
	}
	byPlatform := map[string]platformStat{}
	for _, a := range m.Artifacts {
		ps := byPlatform[a.Platform]
		ps.count++
		ps.bytes += a.Size
		byPlatform[a.Platform] = ps
	}
	fmt.Println("  Platform breakdown:")
	for _, p := range []string{"ios", "android", "android-adaptive"} {
		if ps, ok := byPlatform[p]; ok {
			fmt.Printf("    %-17s %4d files  %s\n", p, ps.count, humanize.Bytes(uint64(ps.bytes)))
		}
	}
	fmt.Println()

	// Per-size breakdown.
	bySize := map[int]int{}
	for _, a := range m.Artifacts {
		bySize[a.Output]++
	}
	var sizes []int
	for sz := range bySize {
		sizes = append(sizes, sz)
	}
	sort.Ints(sizes)
	fmt.Println("  Size breakdown:")
	for _, sz := range sizes {
		fmt.Printf("    %5dpx  %4d files\n", sz, bySize[sz])
	}

	// Warnings.
	var warnings []string
	for _, a := range m.Artifacts {
		if a.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("%s missing hash", a.Path))
		}
		if slack := a.Output - a.Logo - 2*a.Padding; slack < 0 || slack > 1 {
			warnings = append(warnings, fmt.Sprintf("%s: geometry %d/%d/%d leaves %dpx slack", a.Path, a.Output, a.Logo, a.Padding, slack))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
