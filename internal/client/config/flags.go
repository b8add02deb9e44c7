package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/feedclient/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the feed backend API (default from Config)
//	-t string   API bearer token
//	-d string   SQLite DSN of the local draft store
//	-p int      feed page size
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIEndpointAddr, "a", cfg.APIEndpointAddr, "base URL of the feed backend API")
	fs.StringVar(&cfg.APIToken, "t", cfg.APIToken, "API bearer token")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN of the local draft store")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "feed page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
