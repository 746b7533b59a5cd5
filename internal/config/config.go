// Package config defines process configuration and its loading order.
package config

// Config contains application configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath overrides the default database location (~/.lapin.db).
	DBPath string `koanf:"db_path"`

	// PlayerName is the display name shown in the dashboard header.
	PlayerName string `koanf:"player_name"`

	// Theme picks the terminal color theme: bright, neon or cyber.
	Theme string `koanf:"theme"`
}

// New returns the defaults; Load layers file and environment on top.
func New() *Config {
	return &Config{
		LogLevel:   "warn",
		PlayerName: "Chercheur",
		Theme:      "bright",
	}
}
