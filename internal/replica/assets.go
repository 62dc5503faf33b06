package replica

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/identity"
)

// Canister dispatches one canister method. Methods return the full response
// value, envelope included, so error variants travel in-band the way a real
// canister reports them.
type Canister interface {
	Invoke(caller, kind, method string, args []any) (any, error)
}

var errUnknownMethod = fmt.Errorf("unknown method")

// AssetsCanister serves the asset catalog.
type AssetsCanister struct {
	store *Store
}

func NewAssetsCanister(store *Store) *AssetsCanister {
	return &AssetsCanister{store: store}
}

func (c *AssetsCanister) Invoke(caller, kind, method string, args []any) (any, error) {
	switch method {
	case "createAsset":
		return c.createAsset(caller, args)
	case "getAsset":
		return c.getAsset(args)
	case "getAssetWithOwnership":
		return c.getAssetWithOwnership(caller, args)
	case "getAllAssets":
		return c.getAllAssets(), nil
	case "getAssetsByCategory":
		return c.getAssetsByCategory(args)
	case "getAssetsByCreator":
		return c.getAssetsByCreator(args)
	case "getAssetsByTag":
		return c.getAssetsByTag(args)
	case "getMyAssets":
		return c.assetsWhere(func(a *assetRec) bool { return a.Creator == caller }), nil
	case "getOwnedAssets":
		return c.assetsWhere(func(a *assetRec) bool { return a.Owner == caller }), nil
	case "checkOwnership":
		return c.checkOwnership(caller, args)
	case "searchAssets":
		return c.searchAssets(args)
	case "updateAsset":
		return c.updateAsset(caller, args)
	case "getFeaturedAssets":
		return c.getFeaturedAssets(), nil
	case "getAssetStats":
		return c.getAssetStats(args)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownMethod, method)
	}
}

func (c *AssetsCanister) createAsset(caller string, args []any) (any, error) {
	if caller == identity.AnonymousPrincipal {
		return fail(errUnauthorized()), nil
	}
	if len(args) < 1 {
		return fail(errBadRequest("asset data is required")), nil
	}
	data, okRec := candid.AsRecord(args[0])
	if !okRec {
		return fail(errBadRequest("asset data must be a record")), nil
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nanos()
	a := &assetRec{
		ID:          s.newID(),
		Creator:     caller,
		Owner:       caller,
		Title:       data.Str("title"),
		Description: data.Str("description"),
		Category:    data.Variant("category"),
		Tags:        data.Strs("tags"),
		Price:       data.Int("price"),
		IsForSale:   false,
		FileSize:    data.Int("fileSize"),
		FileFormat:  data.Str("fileFormat"),
		FileHash:    data.Str("fileHash"),
		PreviewURL:  data.Str("previewUrl"),
		VRPlatforms: data.Strs("vrPlatforms"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Title == "" {
		return fail(errBadRequest("title is required")), nil
	}
	s.assets[a.ID] = a
	return ok(a.wire()), nil
}

func (c *AssetsCanister) getAsset(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("asset id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	a, found := c.store.assets[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(a.wire()), nil
}

func (c *AssetsCanister) getAssetWithOwnership(caller string, args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("asset id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	a, found := c.store.assets[id]
	if !found {
		return fail(errNotFound()), nil
	}
	w := a.wire()
	w["isOwned"] = a.Owner == caller
	return ok(w), nil
}

func (c *AssetsCanister) getAllAssets() any {
	return c.assetsWhere(func(*assetRec) bool { return true })
}

func (c *AssetsCanister) getAssetsByCategory(args []any) (any, error) {
	if len(args) < 1 {
		return fail(errBadRequest("category is required")), nil
	}
	category, _ := candid.VariantName(args[0])
	if category == "" {
		if s, isStr := args[0].(string); isStr {
			category = s
		}
	}
	return c.assetsWhere(func(a *assetRec) bool { return a.Category == category }), nil
}

func (c *AssetsCanister) getAssetsByCreator(args []any) (any, error) {
	creator, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("creator id is required")), nil
	}
	return c.assetsWhere(func(a *assetRec) bool { return a.Creator == creator }), nil
}

func (c *AssetsCanister) getAssetsByTag(args []any) (any, error) {
	tag, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("tag is required")), nil
	}
	return c.assetsWhere(func(a *assetRec) bool {
		for _, t := range a.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}), nil
}

func (c *AssetsCanister) checkOwnership(caller string, args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("asset id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	a, found := c.store.assets[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(a.Owner == caller), nil
}

func (c *AssetsCanister) searchAssets(args []any) (any, error) {
	filters := candid.Record{}
	if len(args) > 0 {
		if r, isRec := candid.AsRecord(args[0]); isRec {
			filters = r
		}
	}

	query := strings.ToLower(filters.Str("query"))
	category := filters.Variant("category")
	tags := filters.Strs("tags")
	_, hasMin := filters["minPrice"]
	_, hasMax := filters["maxPrice"]
	minPrice := filters.Int("minPrice")
	maxPrice := filters.Int("maxPrice")

	return c.assetsWhere(func(a *assetRec) bool {
		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title), query) &&
			!strings.Contains(strings.ToLower(a.Description), query) {
			return false
		}
		if category != "" && a.Category != category {
			return false
		}
		for _, want := range tags {
			found := false
			for _, have := range a.Tags {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if hasMin && a.Price < minPrice {
			return false
		}
		if hasMax && a.Price > maxPrice {
			return false
		}
		return true
	}), nil
}

func (c *AssetsCanister) updateAsset(caller string, args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("asset id is required")), nil
	}
	patch := candid.Record{}
	if len(args) > 1 {
		if r, isRec := candid.AsRecord(args[1]); isRec {
			patch = r
		}
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.assets[id]
	if !found {
		return fail(errNotFound()), nil
	}
	if a.Owner != caller {
		return fail(errUnauthorized()), nil
	}

	if _, set := patch["title"]; set {
		a.Title = patch.Str("title")
	}
	if _, set := patch["description"]; set {
		a.Description = patch.Str("description")
	}
	if _, set := patch["tags"]; set {
		a.Tags = patch.Strs("tags")
	}
	if _, set := patch["price"]; set {
		a.Price = patch.Int("price")
	}
	if _, set := patch["isForSale"]; set {
		a.IsForSale = patch.Bool("isForSale")
	}
	if _, set := patch["previewUrl"]; set {
		a.PreviewURL = patch.Str("previewUrl")
	}
	a.UpdatedAt = s.nanos()
	return ok(a.wire()), nil
}

// getFeaturedAssets returns the catalog ordered by rating. A real canister
// would curate; the replica approximates.
func (c *AssetsCanister) getFeaturedAssets() any {
	type featured struct {
		id     string
		rating float64
		rec    map[string]any
	}

	c.store.mu.RLock()
	recs := make([]featured, 0, len(c.store.assets))
	for _, a := range c.store.assets {
		recs = append(recs, featured{id: a.ID, rating: a.Rating, rec: a.wire()})
	}
	c.store.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].rating != recs[j].rating {
			return recs[i].rating > recs[j].rating
		}
		return recs[i].id < recs[j].id
	})
	out := make([]any, 0, len(recs))
	for _, f := range recs {
		out = append(out, f.rec)
	}
	return out
}

func (c *AssetsCanister) getAssetStats(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("asset id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	a, found := c.store.assets[id]
	if !found {
		return fail(errNotFound()), nil
	}

	var timesSold, revenue int64
	for _, p := range c.store.purchases {
		if p.AssetID == id {
			timesSold++
			revenue += p.Price
		}
	}
	return ok(map[string]any{
		"assetId":      a.ID,
		"downloads":    a.Downloads,
		"rating":       a.Rating,
		"timesSold":    timesSold,
		"totalRevenue": revenue,
	}), nil
}

func (c *AssetsCanister) assetsWhere(keep func(*assetRec) bool) []any {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	ids := make([]string, 0, len(c.store.assets))
	for id, a := range c.store.assets {
		if keep(a) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.store.assets[id].wire())
	}
	return out
}

func argStr(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	s, isStr := args[i].(string)
	if !isStr || s == "" {
		return "", fmt.Errorf("argument %d must be a non-empty string", i)
	}
	return s, nil
}
