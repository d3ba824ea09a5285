// Package config loads runtime settings for the note keeper.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, environment variables (with optional .env file),
// a JSON config file (-c/-config), and command-line flags.
package config

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: filesystem path of the SQLite database.
//   - Verbose: enables debug-level logging.
type Config struct {
	DatabasePath string
	Verbose      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "noteapp.db"
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
