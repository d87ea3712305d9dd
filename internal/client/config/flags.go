package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   collection URL
//	-n int      list limit, 0 keeps every item
//	-s int      stale time (seconds)
//	-r int      list retries after the first attempt
//	-h string   host:port of the gRPC health endpoint
//	-i int      online check interval (seconds)
//	-l string   logger kind: text, json or zap
//	-trust-ids  keep server issued ids on create
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-u", "-n", "-s", "-r", "-h", "-i", "-l"},
		"-trust-ids")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "collection URL")
	fs.IntVar(&cfg.ListLimit, "n", cfg.ListLimit, "list limit")
	staleTime := fs.Int("s", int(cfg.StaleTime.Seconds()), "stale time (in seconds)")
	fs.IntVar(&cfg.Retries, "r", cfg.Retries, "list retries")
	fs.StringVar(&cfg.HealthAddr, "h", cfg.HealthAddr, "address and port of the health endpoint")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.Logger, "l", cfg.Logger, "logger kind")
	fs.BoolVar(&cfg.TrustIDs, "trust-ids", cfg.TrustIDs, "keep server issued ids")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StaleTime = time.Duration(*staleTime) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
