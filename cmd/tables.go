package cmd

import (
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the resolved icon tables and their geometry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		printTables(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func printTables(w io.Writer, cfg *config.Config) {
	total := 0
	for _, t := range cfg.Tables {
		root := filepath.ToSlash(cfg.Root(t.Platform))
		fmt.Fprintf(w, "\n  %s  (policy %s, padding %.0f%%, background #%02x%02x%02x%02x)\n",
			t.Platform, t.Policy.Name, t.Policy.Padding*100,
			t.Policy.Background.R, t.Policy.Background.G, t.Policy.Background.B, t.Policy.Background.A)
		fmt.Fprintf(w, "  %-6s %6s %6s %6s  %s\n", "size", "output", "logo", "pad", "files")
		for _, s := range t.Specs {
			g := s.Geometry(t.Policy)
			size := fmt.Sprintf("%d@%dx", s.Size, s.EffectiveScale())
			for i, f := range t.Files(s) {
				if i == 0 {
					fmt.Fprintf(w, "  %-6s %6d %6d %6d  %s\n", size, g.Output, g.Logo, g.Padding, path.Join(root, f))
				} else {
					fmt.Fprintf(w, "  %-6s %6s %6s %6s  %s\n", "", "", "", "", path.Join(root, f))
				}
			}
		}
		total += t.FileCount()
	}
	fmt.Fprintf(w, "\n  %d files\n\n", total)
}
