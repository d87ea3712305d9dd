package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/dmitrijs2005/itemkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so they can be written as "5m" or as integer
// nanoseconds. Pointer fields tell an omitted value from an explicit zero.
type JsonConfig struct {
	ServerURL           string          `json:"server_url"`
	ListLimit           *int            `json:"list_limit"`
	StaleTime           *timex.Duration `json:"stale_time"`
	Retries             *int            `json:"retries"`
	RetryDelay          *timex.Duration `json:"retry_delay"`
	HealthAddr          string          `json:"health_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	Logger              string          `json:"logger"`
	LogLevel            string          `json:"log_level"`
	TrustIDs            *bool           `json:"trust_ids"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current values.
// Panics on read or unmarshal errors.
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.ListLimit != nil {
		cfg.ListLimit = *jc.ListLimit
	}
	if jc.StaleTime != nil {
		cfg.StaleTime = jc.StaleTime.Duration
	}
	if jc.Retries != nil {
		cfg.Retries = *jc.Retries
	}
	if jc.RetryDelay != nil {
		cfg.RetryDelay = jc.RetryDelay.Duration
	}
	if jc.HealthAddr != "" {
		cfg.HealthAddr = jc.HealthAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.Logger != "" {
		cfg.Logger = jc.Logger
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.TrustIDs != nil {
		cfg.TrustIDs = *jc.TrustIDs
	}
}
