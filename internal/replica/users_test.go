package replica

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrmarket/vrmarket/internal/identity"
)

func TestCreateUser(t *testing.T) {
	c := NewUsersCanister(newTestStore())

	v, err := c.Invoke(identity.AnonymousPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "ghost"}})
	requireErrTag(t, v, err, "Unauthorized")

	v, err = c.Invoke(buyerPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "vr_collector", "bio": "I buy worlds"}})
	u := requireOK(t, v, err)
	assert.Equal(t, "id-1", u.Str("id"))
	assert.Equal(t, buyerPrincipal, u.Str("principal"))
	assert.Equal(t, "vr_collector", u.Str("username"))
	assert.Equal(t, "I buy worlds", u.Str("bio"))

	// One profile per principal.
	v, err = c.Invoke(buyerPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "second_try"}})
	requireErrTag(t, v, err, "BadRequest")

	// Usernames are unique across principals.
	v, err = c.Invoke(sellerPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "vr_collector"}})
	requireErrTag(t, v, err, "BadRequest")
}

func TestGetCurrentUser(t *testing.T) {
	c := NewUsersCanister(newTestStore())

	v, err := c.Invoke(buyerPrincipal, "query", "getCurrentUser", nil)
	requireErrTag(t, v, err, "NotFound")

	v, err = c.Invoke(buyerPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "vr_collector"}})
	requireOK(t, v, err)

	v, err = c.Invoke(buyerPrincipal, "query", "getCurrentUser", nil)
	assert.Equal(t, "vr_collector", requireOK(t, v, err).Str("username"))
}

func TestUpdateUser(t *testing.T) {
	c := NewUsersCanister(newTestStore())

	v, err := c.Invoke(buyerPrincipal, "call", "updateUser",
		[]any{map[string]any{"bio": "nobody"}})
	requireErrTag(t, v, err, "NotFound")

	for _, caller := range []string{buyerPrincipal, sellerPrincipal} {
		v, err = c.Invoke(caller, "call", "createUser",
			[]any{map[string]any{"username": "user_" + caller[:5]}})
		requireOK(t, v, err)
	}

	v, err = c.Invoke(buyerPrincipal, "call", "updateUser",
		[]any{map[string]any{"username": "user_" + sellerPrincipal[:5]}})
	requireErrTag(t, v, err, "BadRequest")

	v, err = c.Invoke(buyerPrincipal, "call", "updateUser",
		[]any{map[string]any{"bio": "collector of strange worlds"}})
	u := requireOK(t, v, err)
	assert.Equal(t, "collector of strange worlds", u.Str("bio"))
	assert.Equal(t, "user_"+buyerPrincipal[:5], u.Str("username"))
}

func TestUserStats(t *testing.T) {
	store := newTestStore()
	users := NewUsersCanister(store)

	v, err := users.Invoke(sellerPrincipal, "call", "createUser",
		[]any{map[string]any{"username": "world_builder"}})
	userID := requireOK(t, v, err).Str("id")

	_, listingID := listedAsset(t, store, float64(500_000_000))
	market := NewMarketplaceCanister(store)
	v, err = market.Invoke(buyerPrincipal, "call", "purchaseAsset",
		[]any{map[string]any{"listingId": listingID}})
	requireOK(t, v, err)

	v, err = users.Invoke(buyerPrincipal, "query", "getUserStats", []any{userID})
	stats := requireOK(t, v, err)
	assert.Equal(t, int64(1), stats.Int("totalAssetsCreated"))
	assert.Equal(t, int64(1), stats.Int("totalAssetsSold"))
	assert.Equal(t, int64(500_000_000), stats.Int("totalEarnings"))
	assert.Equal(t, 0.0, stats.Num("averageRating"))
	assert.Greater(t, stats.Int("joinedAt"), int64(0))

	v, err = users.Invoke(buyerPrincipal, "query", "getUserStats", []any{"missing"})
	requireErrTag(t, v, err, "NotFound")
}
