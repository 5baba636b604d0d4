package iconset

// Built-in tables. DefaultTables hands out copies so callers may edit them.
var (
	iosSpecs = []Spec{
		{Size: 20, Scale: 2, Name: "20@2x.png"},
		{Size: 20, Scale: 3, Name: "20@3x.png"},
		{Size: 29, Scale: 2, Name: "29@2x.png"},
		{Size: 29, Scale: 3, Name: "29@3x.png"},
		{Size: 40, Scale: 2, Name: "40@2x.png"},
		{Size: 40, Scale: 3, Name: "40@3x.png"},
		{Size: 60, Scale: 2, Name: "60@2x.png"},
		{Size: 60, Scale: 3, Name: "60@3x.png"},
		{Size: 1024, Scale: 1, Name: "1024.png"}, // App Store
	}

	// Launcher icons: 48dp at each density.
	androidSpecs = []Spec{
		{Size: 36, Density: "ldpi"},
		{Size: 48, Density: "mdpi"},
		{Size: 72, Density: "hdpi"},
		{Size: 96, Density: "xhdpi"},
		{Size: 144, Density: "xxhdpi"},
		{Size: 192, Density: "xxxhdpi"},
	}

	// Adaptive foreground layers: 108dp at each density.
	adaptiveSpecs = []Spec{
		{Size: 81, Density: "ldpi"},
		{Size: 108, Density: "mdpi"},
		{Size: 162, Density: "hdpi"},
		{Size: 216, Density: "xhdpi"},
		{Size: 324, Density: "xxhdpi"},
		{Size: 432, Density: "xxxhdpi"},
	}
)

// DefaultTables returns the iOS, Android launcher and Android adaptive tables.
func DefaultTables() []Table {
	return []Table{
		{Platform: IOS, Policy: Standard, Specs: clone(iosSpecs)},
		{Platform: Android, Policy: Standard, Specs: clone(androidSpecs)},
		{Platform: AndroidAdaptive, Policy: Adaptive, Specs: clone(adaptiveSpecs)},
	}
}

func clone(specs []Spec) []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}
