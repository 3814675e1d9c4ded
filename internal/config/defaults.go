package config

const (
	defaultStateDirFallback = "~/.local/state/mia"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultGlyphs           = GlyphsAuto
	defaultColor            = ColorAuto
	defaultOnConflict       = "skip"
)

// Display.Glyphs values.
const (
	GlyphsAuto    = "auto"
	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"
)

// Display.Color values.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Display: Display{
			Glyphs: defaultGlyphs,
			Color:  defaultColor,
		},
		Organize: Organize{
			OnConflict: defaultOnConflict,
		},
	}
}
