package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vrmarket/vrmarket/internal/flagx"
	"github.com/vrmarket/vrmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	Network               string         `json:"network"`
	Host                  string         `json:"host"`
	AssetsCanisterID      string         `json:"canister_id_assets"`
	MarketplaceCanisterID string         `json:"canister_id_marketplace"`
	UsersCanisterID       string         `json:"canister_id_users"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	IdleTimeout           timex.Duration `json:"idle_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Empty JSON fields leave the current values in place. Panics on read or
// unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> env -> parseJson -> parseFlags, where
// later stages override earlier ones.
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

	if jc.Network != "" {
		cfg.Network = jc.Network
		if h, ok := hosts[jc.Network]; ok {
			cfg.Host = h
		}
	}
	if jc.Host != "" {
		cfg.Host = jc.Host
	}
	if jc.AssetsCanisterID != "" {
		cfg.AssetsCanisterID = jc.AssetsCanisterID
	}
	if jc.MarketplaceCanisterID != "" {
		cfg.MarketplaceCanisterID = jc.MarketplaceCanisterID
	}
	if jc.UsersCanisterID != "" {
		cfg.UsersCanisterID = jc.UsersCanisterID
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.IdleTimeout.Duration != 0 {
		cfg.IdleTimeout = time.Duration(jc.IdleTimeout.Duration)
	}
}
