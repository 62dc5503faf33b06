package config

import (
	"flag"
	"os"
	"time"

	"github.com/vrmarket/vrmarket/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string     network to target: "local" or "ic"
//	-host string  replica base URL, overriding the network default
//	-idle int     session idle timeout in minutes
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-host", "-idle"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	network := fs.String("n", cfg.Network, "network to target (local or ic)")
	host := fs.String("host", "", "replica base URL")
	idleMinutes := fs.Int("idle", int(cfg.IdleTimeout.Minutes()), "session idle timeout (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *network != cfg.Network {
		cfg.Network = *network
		if h, ok := hosts[*network]; ok {
			cfg.Host = h
		}
	}
	// an explicit host wins over the network default
	if *host != "" {
		cfg.Host = *host
	}
	cfg.IdleTimeout = time.Duration(*idleMinutes) * time.Minute
}
