// Package config handles configuration for the collection server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the collection server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCAddr: bind address of the gRPC health endpoint.
//   - DatabaseDSN: storage backend; empty selects the in-memory store.
//   - BasePath: path the collection is mounted at.
//   - Ephemeral: acknowledge writes without applying them.
//   - SeedCount: number of generated items in a fresh store.
//   - Logger / LogLevel: logging.New kind and level.
//   - ShutdownTimeout: grace period for in-flight HTTP requests.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DatabaseDSN     string
	BasePath        string
	Ephemeral       bool
	SeedCount       int
	Logger          string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults that mirror the
// public placeholder backend.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.BasePath = "/posts"
	c.Ephemeral = true
	c.SeedCount = 100
	c.Logger = "json"
	c.LogLevel = "info"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
