package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// JsonConfig is the DTO for reading a JSON configuration file. The token
// validity is given in hours, matching the -t flag.
type JsonConfig struct {
	EndpointAddr       string `json:"endpoint_addr"`
	DatabaseDSN        string `json:"database_dsn"`
	SecretKey          string `json:"secret_key"`
	TokenValidityHours int    `json:"token_validity_hours"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// A missing flag means no file is loaded; an unreadable or invalid file panics,
// since starting with half-applied configuration is worse than not starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityHours > 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityHours) * time.Hour
	}
}
