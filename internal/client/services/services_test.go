package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/validation"
)

type recordedCall struct {
	kind   string
	actor  string
	method string
	args   []any
}

type fakeGateway struct {
	calls   []recordedCall
	results map[string]any
	errs    map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{results: map[string]any{}, errs: map[string]error{}}
}

func (f *fakeGateway) invoke(kind, actor, method string, args []any) (any, error) {
	f.calls = append(f.calls, recordedCall{kind: kind, actor: actor, method: method, args: args})
	if err, ok := f.errs[method]; ok {
		return nil, err
	}
	return f.results[method], nil
}

func (f *fakeGateway) Call(_ context.Context, actor, method string, args ...any) (any, error) {
	return f.invoke("call", actor, method, args)
}

func (f *fakeGateway) Query(_ context.Context, actor, method string, args ...any) (any, error) {
	return f.invoke("query", actor, method, args)
}

func (f *fakeGateway) last(t *testing.T) recordedCall {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func wireAsset(id string, priceE8s int64, createdAtNanos float64, downloads float64) map[string]any {
	return map[string]any{
		"id":        id,
		"creator":   "2vxsx-fae",
		"owner":     "2vxsx-fae",
		"price":     float64(priceE8s),
		"isForSale": true,
		"downloads": downloads,
		"rating":    4.5,
		"metadata": map[string]any{
			"title":     "Asset " + id,
			"category":  map[string]any{"Environment": nil},
			"tags":      []any{"vr"},
			"fileSize":  float64(1024),
			"createdAt": createdAtNanos,
		},
	}
}

func validCreateAsset() CreateAssetInput {
	return CreateAssetInput{
		Title:       "Cyberpunk City",
		Description: "A futuristic cityscape for VR exploration",
		Category:    models.CategoryEnvironment,
		Tags:        []string{"cyberpunk", "city"},
		Price:       2.5,
		FileSize:    2048,
		FileFormat:  "glb",
		FileHash:    "abc123",
		VRPlatforms: []string{"Oculus Quest"},
	}
}

func TestCreateAsset(t *testing.T) {
	gw := newFakeGateway()
	gw.results["createAsset"] = wireAsset("asset-1", 250_000_000, 0, 0)
	svc := NewAssetsService(gw)

	a, err := svc.CreateAsset(context.Background(), validCreateAsset())
	require.NoError(t, err)
	assert.Equal(t, "asset-1", a.ID)
	assert.Equal(t, "2.50 ICP", a.PriceFormatted)

	call := gw.last(t)
	assert.Equal(t, "call", call.kind)
	assert.Equal(t, ActorAssets, call.actor)

	payload, ok := call.args[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(250_000_000), payload["price"], "price must go out in e8s")
	assert.Equal(t, map[string]any{"Environment": nil}, payload["category"], "category must go out as a variant")
}

func TestCreateAssetValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateAssetInput)
		field  string
	}{
		{name: "short title", mutate: func(in *CreateAssetInput) { in.Title = "ab" }, field: "title"},
		{name: "short description", mutate: func(in *CreateAssetInput) { in.Description = "too short" }, field: "description"},
		{name: "bad category", mutate: func(in *CreateAssetInput) { in.Category = "Weapons" }, field: "category"},
		{name: "too many tags", mutate: func(in *CreateAssetInput) {
			in.Tags = make([]string, 11)
			for i := range in.Tags {
				in.Tags[i] = "t"
			}
		}, field: "tags"},
		{name: "negative price", mutate: func(in *CreateAssetInput) { in.Price = -1 }, field: "price"},
		{name: "price over cap", mutate: func(in *CreateAssetInput) { in.Price = 1_000_001 }, field: "price"},
		{name: "file too large", mutate: func(in *CreateAssetInput) { in.FileSize = 101 * 1024 * 1024 }, field: "fileSize"},
		{name: "zero file size", mutate: func(in *CreateAssetInput) { in.FileSize = 0 }, field: "fileSize"},
		{name: "bad format", mutate: func(in *CreateAssetInput) { in.FileFormat = "exe" }, field: "fileFormat"},
		{name: "no platforms", mutate: func(in *CreateAssetInput) { in.VRPlatforms = nil }, field: "vrPlatforms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway()
			svc := NewAssetsService(gw)

			in := validCreateAsset()
			tt.mutate(&in)

			_, err := svc.CreateAsset(context.Background(), in)
			require.Error(t, err)

			errs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, errs, tt.field)
			assert.Empty(t, gw.calls, "invalid input must not reach the gateway")
		})
	}
}

func TestGetAllAssetsPaginates(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getAllAssets"] = []any{
		wireAsset("a", 0, 0, 0),
		wireAsset("b", 0, 0, 0),
		wireAsset("c", 0, 0, 0),
	}
	svc := NewAssetsService(gw)

	page, err := svc.GetAllAssets(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "c", page.Data[0].ID)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
	assert.Equal(t, "query", gw.last(t).kind)
}

func TestGetAssetStats(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getAssetStats"] = map[string]any{
		"assetId":      "asset-1",
		"downloads":    float64(156),
		"rating":       4.8,
		"timesSold":    float64(2),
		"totalRevenue": float64(1_000_000_000),
	}
	svc := NewAssetsService(gw)

	stats, err := svc.GetAssetStats(context.Background(), "asset-1")
	require.NoError(t, err)
	assert.Equal(t, int64(156), stats.Downloads)
	assert.Equal(t, int64(2), stats.TimesSold)
	assert.Equal(t, "10.00 ICP", stats.TotalRevenueFormatted)
	assert.Equal(t, "query", gw.last(t).kind)
}

func TestSearchAssetsSortsNewestByDefault(t *testing.T) {
	gw := newFakeGateway()
	gw.results["searchAssets"] = []any{
		wireAsset("old", 0, 1e18, 0),
		wireAsset("new", 0, 2e18, 0),
	}
	svc := NewAssetsService(gw)

	assets, err := svc.SearchAssets(context.Background(), SearchFilters{Query: "city"})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "new", assets[0].ID)

	payload, ok := gw.last(t).args[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "city", payload["query"])
}

func TestSearchAssetsWiresPriceFilters(t *testing.T) {
	gw := newFakeGateway()
	gw.results["searchAssets"] = []any{}
	svc := NewAssetsService(gw)

	min, max := 1.0, 5.0
	_, err := svc.SearchAssets(context.Background(), SearchFilters{
		Category: models.CategoryCharacter,
		MinPrice: &min,
		MaxPrice: &max,
	})
	require.NoError(t, err)

	payload := gw.last(t).args[0].(map[string]any)
	assert.Equal(t, int64(100_000_000), payload["minPrice"])
	assert.Equal(t, int64(500_000_000), payload["maxPrice"])
	assert.Equal(t, map[string]any{"Character": nil}, payload["category"])
}

func TestUpdateAssetPartialWire(t *testing.T) {
	gw := newFakeGateway()
	gw.results["updateAsset"] = wireAsset("asset-1", 300_000_000, 0, 0)
	svc := NewAssetsService(gw)

	price := 3.0
	_, err := svc.UpdateAsset(context.Background(), "asset-1", UpdateAssetInput{Price: &price})
	require.NoError(t, err)

	call := gw.last(t)
	assert.Equal(t, "asset-1", call.args[0])
	payload := call.args[1].(map[string]any)
	assert.Equal(t, map[string]any{"price": int64(300_000_000)}, payload)
}

func TestGetTrendingAssetsSortsByDownloads(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getFeaturedAssets"] = []any{
		wireAsset("quiet", 0, 0, 3),
		wireAsset("hot", 0, 0, 300),
		wireAsset("warm", 0, 0, 30),
	}
	svc := NewAssetsService(gw)

	trending, err := svc.GetTrendingAssets(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, "hot", trending[0].ID)
	assert.Equal(t, "warm", trending[1].ID)
}

func TestGetCategoryCountsAndPopularTags(t *testing.T) {
	env := wireAsset("a", 0, 0, 0)
	char := wireAsset("b", 0, 0, 0)
	char["metadata"].(map[string]any)["category"] = map[string]any{"Character": nil}
	char["metadata"].(map[string]any)["tags"] = []any{"vr", "rigged"}

	gw := newFakeGateway()
	gw.results["getAllAssets"] = []any{env, char}
	svc := NewAssetsService(gw)

	counts, err := svc.GetCategoryCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[models.Category]int{
		models.CategoryEnvironment: 1,
		models.CategoryCharacter:   1,
	}, counts)

	tags, err := svc.GetPopularTags(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, TagCount{Tag: "vr", Count: 2}, tags[0])
}
