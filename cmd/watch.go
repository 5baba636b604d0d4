package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the icons whenever the source logo changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
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
		return watch(cmd.Context(), cfg, watchDebounce)
	},
}

func init() {
	watchCmd.Flags().IntVarP(&genWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU, 1 = sequential)")
	watchCmd.Flags().StringVarP(&genManifest, "manifest", "m", "", "write a JSON run manifest to this path")
	rootCmd.AddCommand(watchCmd)
}

// watch runs generate once, then again after every change to the source
// file until ctx is canceled. Run failures are logged and do not stop it.
//
// The parent directory is watched rather than the file so editors that
// replace the file on save keep triggering events.
func watch(ctx context.Context, cfg *config.Config, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	srcAbs, err := filepath.Abs(cfg.Source)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cfg.Source, err)
	}
	if err := w.Add(filepath.Dir(srcAbs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(srcAbs), err)
	}

	runOnce := func() {
		if _, err := generate(ctx, cfg); err != nil && ctx.Err() == nil {
			log.Errorf("%v", err)
		}
	}
	runOnce()
	log.Infof("watching %s (ctrl-c to stop)", cfg.Source)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != srcAbs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debugf("change: %s %s", ev.Op, ev.Name)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher: %v", err)

		case <-timer.C:
			runOnce()
		}
	}
}
