// Package services contains the application services of the marketplace
// client: assets, marketplace and users. Each service validates its inputs,
// routes the request through the call gateway, and decodes responses into
// display-ready domain records.
package services

import "context"

// Actor names registered with the call gateway.
const (
	ActorAssets      = "assets"
	ActorMarketplace = "marketplace"
	ActorUsers       = "users"
)

// Gateway routes canister invocations. Call performs state changes and
// requires an authenticated session; Query is read-only.
type Gateway interface {
	Call(ctx context.Context, actor, method string, args ...any) (any, error)
	Query(ctx context.Context, actor, method string, args ...any) (any, error)
}
