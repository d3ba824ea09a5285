package config

import (
	"encoding/json"
	"os"

	"github.com/reishandy/noteapp/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Parsed values
// are copied into the runtime Config.
type JsonConfig struct {
	DatabasePath *string `json:"database_path"`
	Verbose      *bool   `json:"verbose"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given the function returns without touching cfg.
//
// Fields absent from the JSON are left unchanged. Read or unmarshal errors
// panic, matching the fail-fast behavior of flag parsing.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
