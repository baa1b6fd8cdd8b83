package config

const (
	defaultLibraryDir  = "~/Music/Music/Media.localized/Music"
	defaultLogDir      = "~/.local/share/crate/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultReportPath  = "imported_tracks.json"
	defaultCatalogPath = "~/.local/share/crate/catalog.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Report: Report{
			Path: defaultReportPath,
		},
		Catalog: Catalog{
			Enabled: false,
			Path:    defaultCatalogPath,
		},
	}
}
