// Package config loads runtime configuration for the marketplace client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables using the dfx names: DFX_NETWORK,
//     CANISTER_ID_ASSETS, CANISTER_ID_MARKETPLACE, CANISTER_ID_USERS.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-n string     network to target ("local" or "ic")
//	-host string  replica base URL
//	-idle int     session idle timeout (minutes)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "network": "local",
//	  "canister_id_assets": "uxrrr-q7777-77774-qaaaq-cai",
//	  "request_timeout": "30s",
//	  "idle_timeout": "30m"
//	}
//
// Primary API
//
//   - type Config                   — networks, canister ids and timeouts
//   - func LoadConfig() *Config     — builds Config by applying every source
//   - func (*Config) LoadDefaults() — sets sensible defaults
package config
