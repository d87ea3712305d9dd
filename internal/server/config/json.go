package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/dmitrijs2005/itemkeeper/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Pointer fields tell an omitted value from an explicit zero.
type JsonConfig struct {
	HTTPAddr        string          `json:"http_addr"`
	GRPCAddr        string          `json:"grpc_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	BasePath        string          `json:"base_path"`
	Ephemeral       *bool           `json:"ephemeral"`
	SeedCount       *int            `json:"seed_count"`
	Logger          string          `json:"logger"`
	LogLevel        string          `json:"log_level"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing is loaded. Panics if the
// file cannot be read or contains invalid JSON.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.GRPCAddr != "" {
		config.GRPCAddr = c.GRPCAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.BasePath != "" {
		config.BasePath = c.BasePath
	}
	if c.Ephemeral != nil {
		config.Ephemeral = *c.Ephemeral
	}
	if c.SeedCount != nil {
		config.SeedCount = *c.SeedCount
	}
	if c.Logger != "" {
		config.Logger = c.Logger
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
