// Package config loads runtime configuration for the item client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "https://jsonplaceholder.typicode.com/posts",
//	  "list_limit": 10,
//	  "stale_time": "5m",
//	  "retries": 2,
//	  "retry_delay": "1s",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "logger": "text",
//	  "log_level": "info",
//	  "trust_ids": false
//	}
//
// This package does not read environment variables.
package config
