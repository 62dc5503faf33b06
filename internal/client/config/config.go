package config

import "time"

// Network names the replica environment the client talks to.
const (
	NetworkLocal = "local"
	NetworkIC    = "ic"
)

// hosts maps a network name to its replica host.
var hosts = map[string]string{
	NetworkLocal: "http://127.0.0.1:4943",
	NetworkIC:    "https://icp0.io",
}

// Config holds runtime settings for the marketplace client.
//
// Fields:
//   - Network: replica environment, "local" or "ic".
//   - Host: base URL of the replica; derived from Network unless set.
//   - AssetsCanisterID, MarketplaceCanisterID, UsersCanisterID: the three
//     backend canisters.
//   - RequestTimeout: per-request deadline for canister calls.
//   - IdleTimeout: inactivity window before the session is closed.
type Config struct {
	Network               string
	Host                  string
	AssetsCanisterID      string
	MarketplaceCanisterID string
	UsersCanisterID       string
	RequestTimeout        time.Duration
	IdleTimeout           time.Duration
}

// LoadDefaults populates c with sensible defaults. The canister IDs default
// to the well-known names the local replica registers, so a plain Config
// works against cmd/replica out of the box; a real deployment overrides them
// via CANISTER_ID_* env vars.
func (c *Config) LoadDefaults() {
	c.Network = NetworkLocal
	c.Host = hosts[NetworkLocal]
	c.AssetsCanisterID = "assets"
	c.MarketplaceCanisterID = "marketplace"
	c.UsersCanisterID = "users"
	c.RequestTimeout = 30 * time.Second
	c.IdleTimeout = 30 * time.Minute
}

// IsLocal reports whether the client targets a local replica.
func (c *Config) IsLocal() bool {
	return c.Network != NetworkIC
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	if cfg.Host == "" {
		if h, ok := hosts[cfg.Network]; ok {
			cfg.Host = h
		} else {
			cfg.Host = hosts[NetworkLocal]
		}
	}
	return cfg
}
