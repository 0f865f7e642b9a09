// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ModelPath locates the trained model artifact. The service refuses to
	// start without a loadable artifact.
	ModelPath string `koanf:"model_path"`

	// StorePath locates the decision record store. Empty disables recording;
	// decisions are still returned to callers.
	StorePath string `koanf:"store_path"`

	// RecordQueueSize bounds the in-memory decision record write queue.
	RecordQueueSize int `koanf:"record_queue_size"`

	// RecordWriterCount sets the number of background record writers.
	RecordWriterCount int `koanf:"record_writer_count"`

	// MaxRecentLimit caps GET /recent?limit.
	MaxRecentLimit int `koanf:"max_recent_limit"`

	// ExplainMode selects the explanation strategy: heuristic or attribution.
	ExplainMode string `koanf:"explain_mode"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8000",
		ModelPath:         "models/credit_model.json",
		StorePath:         "",
		RecordQueueSize:   1024,
		RecordWriterCount: 2,
		MaxRecentLimit:    100,
		ExplainMode:       "heuristic",
	}
}
