package config

import "os"

// Environment variables follow the dfx naming convention so a client can run
// next to a dfx project without extra wiring.
const (
	envNetwork             = "DFX_NETWORK"
	envAssetsCanister      = "CANISTER_ID_ASSETS"
	envMarketplaceCanister = "CANISTER_ID_MARKETPLACE"
	envUsersCanister       = "CANISTER_ID_USERS"
)

// parseEnv overlays Config with values from the environment. Unset
// variables leave the current values in place.
func parseEnv(cfg *Config) {
	if v := os.Getenv(envNetwork); v != "" {
		cfg.Network = v
		if h, ok := hosts[v]; ok {
			cfg.Host = h
		}
	}
	if v := os.Getenv(envAssetsCanister); v != "" {
		cfg.AssetsCanisterID = v
	}
	if v := os.Getenv(envMarketplaceCanister); v != "" {
		cfg.MarketplaceCanisterID = v
	}
	if v := os.Getenv(envUsersCanister); v != "" {
		cfg.UsersCanisterID = v
	}
}
