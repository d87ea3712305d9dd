package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-d", "sqlite://db", "-b", "/items",
			"-e=false", "-n", "5", "-l", "text",
		}, expectPanic: false,
			expected: &Config{
				HTTPAddr:    "127.0.0.1:9090",
				GRPCAddr:    "127.0.0.1:9091",
				DatabaseDSN: "sqlite://db",
				BasePath:    "/items",
				Ephemeral:   false,
				SeedCount:   5,
				Logger:      "text",
			}},
		{name: "Test2 bare bool", args: []string{"cmd", "-e", "-n", "1"}, expectPanic: false,
			expected: &Config{Ephemeral: true, SeedCount: 1}},
		{name: "Test3 bad seed count", args: []string{"cmd", "-n", "x"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
