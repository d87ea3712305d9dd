package config

import "time"

// Config holds runtime settings for the item client.
//
// Units: StaleTime, RetryDelay and OnlineCheckInterval are time.Duration.
type Config struct {
	ServerURL string
	ListLimit int
	StaleTime time.Duration
	Retries   int
	// RetryDelay is the base of the exponential backoff between list attempts.
	RetryDelay time.Duration
	// HealthAddr is the host:port of the gRPC health endpoint. Empty
	// disables the online watcher.
	HealthAddr          string
	OnlineCheckInterval time.Duration
	Logger              string
	LogLevel            string
	// TrustIDs keeps the ids the server puts into create responses instead
	// of replacing them with local ones.
	TrustIDs bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "https://jsonplaceholder.typicode.com/posts"
	c.ListLimit = 10
	c.StaleTime = 5 * time.Minute
	c.Retries = 2
	c.RetryDelay = time.Second
	c.HealthAddr = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.Logger = "text"
	c.LogLevel = "info"
	c.TrustIDs = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
