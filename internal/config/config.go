// Package config holds the generator settings. The defaults are the
// project's fixed configuration; a YAML file may override any of them.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/AnyUserName/iconpad/internal/iconset"
	"gopkg.in/yaml.v3"
)

// Default paths, relative to the app project root.
const (
	DefaultSource        = "assets/logo.png"
	DefaultIOSDir        = "ios/App/Images.xcassets/AppIcon.appiconset"
	DefaultAndroidResDir = "android/app/src/main/res"
)

// Config is everything a generator run needs.
type Config struct {
	Source        string
	IOSDir        string
	AndroidResDir string
	Manifest      string // optional run record; empty disables it
	Workers       int    // 0 = NumCPU
	Tables        []iconset.Table
}

// Default returns the in-code configuration.
func Default() *Config {
	return &Config{
		Source:        DefaultSource,
		IOSDir:        DefaultIOSDir,
		AndroidResDir: DefaultAndroidResDir,
		Tables:        iconset.DefaultTables(),
	}
}

// Validate checks paths and every table.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("no icon tables configured")
	}
	seen := map[iconset.Platform]bool{}
	for _, t := range c.Tables {
		if seen[t.Platform] {
			return fmt.Errorf("platform %q configured twice", t.Platform)
		}
		seen[t.Platform] = true
		if err := t.Validate(); err != nil {
			return err
		}
		if c.Root(t.Platform) == "" {
			return fmt.Errorf("%s: output directory is required", t.Platform)
		}
	}
	return nil
}

// Root returns the output directory for a platform.
func (c *Config) Root(p iconset.Platform) string {
	if p == iconset.IOS {
		return c.IOSDir
	}
	return c.AndroidResDir
}

// File is the YAML shape. Unset fields keep their defaults.
type File struct {
	Source        string               `yaml:"source"`
	IOSDir        string               `yaml:"ios_dir"`
	AndroidResDir string               `yaml:"android_res_dir"`
	Manifest      string               `yaml:"manifest"`
	Workers       int                  `yaml:"workers"`
	Policies      map[string]PolicyDef `yaml:"policies"`
	Tables        map[string][]SpecDef `yaml:"tables"`
}

// PolicyDef overrides a table's padding policy. Keys are platform names.
type PolicyDef struct {
	Padding    *float64 `yaml:"padding"`
	Background string   `yaml:"background"`
}

// SpecDef is one icon entry.
type SpecDef struct {
	Size    int    `yaml:"size"`
	Scale   int    `yaml:"scale"`
	Name    string `yaml:"name"`
	Density string `yaml:"density"`
}

// Load reads a YAML file and applies it on top of Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	if err := f.apply(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (f *File) apply(cfg *Config) error {
	if f.Source != "" {
		cfg.Source = f.Source
	}
	if f.IOSDir != "" {
		cfg.IOSDir = f.IOSDir
	}
	if f.AndroidResDir != "" {
		cfg.AndroidResDir = f.AndroidResDir
	}
	if f.Manifest != "" {
		cfg.Manifest = f.Manifest
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}

	for name := range f.Policies {
		if !iconset.Platform(name).Valid() {
			return fmt.Errorf("policies: unknown platform %q", name)
		}
	}
	for name := range f.Tables {
		if !iconset.Platform(name).Valid() {
			return fmt.Errorf("tables: unknown platform %q", name)
		}
	}

	for i := range cfg.Tables {
		t := &cfg.Tables[i]
		if def, ok := f.Policies[string(t.Platform)]; ok {
			if def.Padding != nil {
				t.Policy.Padding = *def.Padding
			}
			if def.Background != "" {
				bg, err := ParseColor(def.Background)
				if err != nil {
					return fmt.Errorf("policies.%s.background: %w", t.Platform, err)
				}
				t.Policy.Background = bg
			}
		}
		if defs, ok := f.Tables[string(t.Platform)]; ok {
			specs := make([]iconset.Spec, len(defs))
			for j, d := range defs {
				specs[j] = iconset.Spec{Size: d.Size, Scale: d.Scale, Name: d.Name, Density: d.Density}
			}
			t.Specs = specs
		}
	}
	return nil
}

// ParseColor accepts "#RRGGBB", "#RRGGBBAA", "white" and "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transparent", "none":
		return color.NRGBA{}, nil
	case "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil
	case "black":
		return color.NRGBA{A: 255}, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
