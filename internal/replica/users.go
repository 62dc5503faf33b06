package replica

import (
	"fmt"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/identity"
)

// UsersCanister serves profiles and per-user statistics.
type UsersCanister struct {
	store *Store
}

func NewUsersCanister(store *Store) *UsersCanister {
	return &UsersCanister{store: store}
}

func (c *UsersCanister) Invoke(caller, kind, method string, args []any) (any, error) {
	switch method {
	case "createUser":
		return c.createUser(caller, args)
	case "getCurrentUser":
		return c.getCurrentUser(caller)
	case "getUser":
		return c.getUser(args)
	case "updateUser":
		return c.updateUser(caller, args)
	case "getUserStats":
		return c.getUserStats(args)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownMethod, method)
	}
}

func (c *UsersCanister) createUser(caller string, args []any) (any, error) {
	if caller == identity.AnonymousPrincipal {
		return fail(errUnauthorized()), nil
	}
	if len(args) < 1 {
		return fail(errBadRequest("user data is required")), nil
	}
	data, isRec := candid.AsRecord(args[0])
	if !isRec {
		return fail(errBadRequest("user data must be a record")), nil
	}
	username := data.Str("username")
	if username == "" {
		return fail(errBadRequest("username is required")), nil
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByPrincipal(caller) != nil {
		return fail(errBadRequest("profile already exists")), nil
	}
	if s.userByName(username) != nil {
		return fail(errBadRequest("username is already taken")), nil
	}

	now := s.nanos()
	u := &userRec{
		ID:        s.newID(),
		Principal: caller,
		Username:  username,
		Bio:       data.Str("bio"),
		AvatarURL: data.Str("avatarUrl"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	return ok(u.wire()), nil
}

func (c *UsersCanister) getCurrentUser(caller string) (any, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	u := c.store.userByPrincipal(caller)
	if u == nil {
		return fail(errNotFound()), nil
	}
	return ok(u.wire()), nil
}

func (c *UsersCanister) getUser(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("user id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	u, found := c.store.users[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(u.wire()), nil
}

func (c *UsersCanister) updateUser(caller string, args []any) (any, error) {
	patch := candid.Record{}
	if len(args) > 0 {
		if r, isRec := candid.AsRecord(args[0]); isRec {
			patch = r
		}
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByPrincipal(caller)
	if u == nil {
		return fail(errNotFound()), nil
	}

	if _, set := patch["username"]; set {
		username := patch.Str("username")
		if other := s.userByName(username); other != nil && other.ID != u.ID {
			return fail(errBadRequest("username is already taken")), nil
		}
		u.Username = username
	}
	if _, set := patch["bio"]; set {
		u.Bio = patch.Str("bio")
	}
	if _, set := patch["avatarUrl"]; set {
		u.AvatarURL = patch.Str("avatarUrl")
	}
	u.UpdatedAt = s.nanos()
	return ok(u.wire()), nil
}

// getUserStats derives statistics from the shared store rather than keeping
// a second copy that could drift.
func (c *UsersCanister) getUserStats(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("user id is required")), nil
	}

	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, found := s.users[id]
	if !found {
		return fail(errNotFound()), nil
	}

	var (
		created  int64
		sold     int64
		earnings int64
		ratings  float64
		rated    int64
	)
	for _, a := range s.assets {
		if a.Creator == u.Principal {
			created++
			if a.Rating > 0 {
				ratings += a.Rating
				rated++
			}
		}
	}
	for _, p := range s.purchases {
		if p.Seller == u.Principal {
			sold++
			earnings += p.Price
		}
	}
	avg := 0.0
	if rated > 0 {
		avg = ratings / float64(rated)
	}

	return ok(map[string]any{
		"totalAssetsCreated": created,
		"totalAssetsSold":    sold,
		"totalEarnings":      earnings,
		"averageRating":      avg,
		"joinedAt":           u.CreatedAt,
	}), nil
}
