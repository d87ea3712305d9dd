package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   storage DSN: "", sqlite://path or postgres://...
//	-b string   collection base path
//	-e          ephemeral writes (use -e=false to persist)
//	-n int      seed item count
//	-l string   logger kind: text, json or zap
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-b", "-n", "-l"}, "-e")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port of the HTTP API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BasePath, "b", config.BasePath, "collection base path")
	fs.BoolVar(&config.Ephemeral, "e", config.Ephemeral, "acknowledge writes without storing them")
	fs.IntVar(&config.SeedCount, "n", config.SeedCount, "seed item count")
	fs.StringVar(&config.Logger, "l", config.Logger, "logger kind")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
