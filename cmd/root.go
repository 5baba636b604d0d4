package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"github.com/AnyUserName/iconpad/internal/config"
	"github.com/AnyUserName/iconpad/internal/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

// log is the CLI logger; progress at Info, --verbose adds Debug.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "iconpad",
	Short: "Generate padded iOS and Android app icons from one logo",
	Long: `iconpad resizes a source logo into every icon slot a mobile app
bundle needs: the iOS AppIcon.appiconset, Android mipmap launcher icons
and Android adaptive-icon foreground layers.

Each icon is the logo fitted into a centered square with a fixed
padding ratio: 10% on an opaque white background for iOS and launcher
icons, 15% on a transparent background for adaptive foregrounds.

Run without arguments to regenerate everything using the built-in
configuration.`,
	Version:           version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runGenerate,
}

// Execute runs the CLI, cancelling on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML file overriding the built-in configuration")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"iconpad %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(prefixFormatter{})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// loadConfig returns the built-in configuration, or the --config file
// layered over it.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	log.Debugf("config: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, &pipeline.ConfigError{Err: err}
	}
	return cfg, nil
}

// prefixFormatter prints "[iconpad] message key=value ..." lines.
type prefixFormatter struct{}

func (prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[iconpad] ")
	if e.Level <= logrus.WarnLevel {
		b.WriteString(strings.ToLower(e.Level.String()))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
