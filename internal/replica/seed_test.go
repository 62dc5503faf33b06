package replica

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrmarket/vrmarket/internal/client/models"
)

// Seeded demo data must satisfy the client's own validation vocabulary.
func TestSeedPlatformsMatchClientVocabulary(t *testing.T) {
	store := newTestStore()
	Seed(store)

	known := make(map[string]bool, len(models.VRPlatforms))
	for _, p := range models.VRPlatforms {
		known[p] = true
	}

	require.Len(t, store.assets, 3)
	for id, a := range store.assets {
		require.NotEmpty(t, a.VRPlatforms, "asset %s", id)
		for _, p := range a.VRPlatforms {
			assert.True(t, known[p], "asset %s declares unknown platform %q", id, p)
		}
	}
}
