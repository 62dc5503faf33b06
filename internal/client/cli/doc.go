// Package cli provides the interactive VR Market command-line client.
//
// It wires configuration, the canister call gateway, the session manager,
// and an interactive REPL over the marketplace services. Typical flow:
// sign in with a passphrase-derived dev identity, browse or search the
// asset catalog, list assets for sale, and buy from other sellers.
//
// Key features:
//   - Login / Logout with an idle-timeout watched session
//   - Browse, search and inspect assets
//   - Sell (create listings) and buy from active listings
//   - Profile setup, transaction history, marketplace stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
