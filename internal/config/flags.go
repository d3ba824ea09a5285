package config

import (
	"flag"
	"os"

	"github.com/reishandy/noteapp/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   SQLite database path (default from Config)
//	-v          verbose (debug) logging
//
// The function filters os.Args to only the flags it owns, using
// flagx.FilterArgs, so the -c/-config flags handled elsewhere do not
// trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
