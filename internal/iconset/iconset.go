// Package iconset describes the icon slots a mobile app bundle needs and
// the padding arithmetic used to fill them.
package iconset

import (
	"fmt"
	"image/color"
	"math"
	"path"
	"strings"
)

// Platform identifies an output family with its own path convention.
type Platform string

const (
	IOS             Platform = "ios"
	Android         Platform = "android"
	AndroidAdaptive Platform = "android-adaptive"
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case IOS, Android, AndroidAdaptive:
		return true
	}
	return false
}

// floorEpsilon absorbs float representation error in Output×(1−2p),
// e.g. 80×0.8 evaluating to 63.99999.
const floorEpsilon = 1e-9

// Policy is the padding fraction (per side) and the fill color used for
// every icon in a table.
type Policy struct {
	Name       string
	Padding    float64
	Background color.NRGBA
}

// Built-in policies.
var (
	Standard = Policy{
		Name:       "standard",
		Padding:    0.10,
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	Adaptive = Policy{
		Name:       "adaptive",
		Padding:    0.15,
		Background: color.NRGBA{},
	}
)

// Validate rejects padding fractions that would leave no room for the logo.
func (p Policy) Validate() error {
	if math.IsNaN(p.Padding) || p.Padding < 0 || p.Padding >= 0.5 {
		return fmt.Errorf("policy %q: padding %v outside [0, 0.5)", p.Name, p.Padding)
	}
	return nil
}

// Spec is one required output icon.
type Spec struct {
	Size    int    // edge length in points (iOS) or pixels (Android)
	Scale   int    // density multiplier, 0 means 1
	Name    string // iOS file name; derived from Size/Scale when empty
	Density string // Android bucket, e.g. "xxhdpi"
}

// EffectiveScale returns Scale with the zero value mapped to 1.
func (s Spec) EffectiveScale() int {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// OutputSize is the final raster edge in pixels.
func (s Spec) OutputSize() int {
	return s.Size * s.EffectiveScale()
}

// FileName returns the iOS file name, deriving "20@2x.png" / "1024.png"
// style names when none is set.
func (s Spec) FileName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.EffectiveScale() == 1 {
		return fmt.Sprintf("%d.png", s.Size)
	}
	return fmt.Sprintf("%d@%dx.png", s.Size, s.EffectiveScale())
}

// Geometry holds the pixel layout of one padded icon.
type Geometry struct {
	Output  int // final canvas edge
	Logo    int // edge of the square the logo is fitted into
	Padding int // border added on every side before the canvas is fixed
}

// Slack is the number of pixels the symmetric padding leaves uncovered
// (positive) or overshoots (negative) along each axis.
func (g Geometry) Slack() int {
	return g.Output - g.Logo - 2*g.Padding
}

// Geometry computes the layout of s under policy p.
func (s Spec) Geometry(p Policy) Geometry {
	out := s.OutputSize()
	logo := int(math.Floor(float64(out)*(1-2*p.Padding) + floorEpsilon))
	if logo > out {
		logo = out
	}
	pad := 0
	if out > logo {
		pad = (out - logo) / 2
	}
	return Geometry{Output: out, Logo: logo, Padding: pad}
}

// Table is an ordered set of specs sharing a platform and a policy.
type Table struct {
	Platform Platform
	Policy   Policy
	Specs    []Spec
}

// Files returns the output paths of spec s relative to the platform root,
// using forward slashes.
func (t Table) Files(s Spec) []string {
	switch t.Platform {
	case IOS:
		return []string{s.FileName()}
	case Android:
		dir := "mipmap-" + s.Density
		return []string{
			path.Join(dir, "ic_launcher.png"),
			path.Join(dir, "ic_launcher_round.png"),
		}
	case AndroidAdaptive:
		return []string{path.Join("mipmap-"+s.Density+"-v26", "ic_foreground.png")}
	}
	return nil
}

// FileCount is the number of files a full run writes for this table.
func (t Table) FileCount() int {
	n := 0
	for _, s := range t.Specs {
		n += len(t.Files(s))
	}
	return n
}

// Validate checks the policy and every entry. It does no I/O.
func (t Table) Validate() error {
	if !t.Platform.Valid() {
		return fmt.Errorf("unknown platform %q", t.Platform)
	}
	if err := t.Policy.Validate(); err != nil {
		return fmt.Errorf("%s: %w", t.Platform, err)
	}
	if len(t.Specs) == 0 {
		return fmt.Errorf("%s: table is empty", t.Platform)
	}

	seen := map[string]bool{}
	for i, s := range t.Specs {
		if s.Size <= 0 {
			return fmt.Errorf("%s[%d]: size must be positive, got %d", t.Platform, i, s.Size)
		}
		if s.Scale < 0 {
			return fmt.Errorf("%s[%d]: scale must be positive, got %d", t.Platform, i, s.Scale)
		}
		switch t.Platform {
		case IOS:
			name := s.FileName()
			if strings.ContainsAny(name, `/\`) || !strings.HasSuffix(name, ".png") {
				return fmt.Errorf("%s[%d]: invalid file name %q", t.Platform, i, name)
			}
		default:
			if s.Density == "" || strings.ContainsAny(s.Density, `/\`) {
				return fmt.Errorf("%s[%d]: invalid density %q", t.Platform, i, s.Density)
			}
		}
		if g := s.Geometry(t.Policy); g.Logo < 1 {
			return fmt.Errorf("%s[%d]: %dpx icon leaves no room for the logo at %.0f%% padding",
				t.Platform, i, g.Output, t.Policy.Padding*100)
		}
		for _, f := range t.Files(s) {
			if seen[f] {
				return fmt.Errorf("%s[%d]: duplicate output %q", t.Platform, i, f)
			}
			seen[f] = true
		}
	}
	return nil
}
