package config

const (
	defaultSearchDir = "~/.local/share/basecat/sets"
	defaultStateDir  = "~/.local/share/basecat"
	defaultLanguage  = "en"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults: a graphics
// kind with the classic six-slot layout, a single-slot sound kind, and a
// music kind that tolerates empty slots.
func Default() Config {
	return Config{
		Paths: Paths{
			SearchDirs: []string{defaultSearchDir},
			StateDir:   defaultStateDir,
		},
		Display: Display{
			Language: defaultLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Kinds: map[string]Kind{
			"graphics": {
				Files:     []string{"base", "logos", "arctic", "tropical", "toyland", "extra"},
				Extension: ".gset",
			},
			"sounds": {
				Files:     []string{"samples"},
				Extension: ".sset",
			},
			"music": {
				Files:           []string{"theme"},
				Extension:       ".mset",
				AllowEmptyFiles: true,
			},
		},
	}
}
