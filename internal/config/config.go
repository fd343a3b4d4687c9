// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ResultsDir is the directory scanned for tournament PGN files.
	ResultsDir string `koanf:"results_dir"`

	// MappingFile points at the name-consolidation JSON file. Empty means
	// heuristic-only normalization with no rating overrides.
	MappingFile string `koanf:"mapping_file"`

	// OutputPath is where the compiled report JSON is written.
	OutputPath string `koanf:"output_path"`

	// Serve keeps the process alive after the batch run and exposes the
	// report over HTTP for dashboard collaborators.
	Serve bool `koanf:"serve"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		ResultsDir: "results",
		OutputPath: "results/unified_tournament_analysis.json",
		Serve:      false,
		Addr:       ":9080",
	}
}
