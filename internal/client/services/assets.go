package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/listops"
)

// AssetsService defines operations on VR assets.
//
// Contract:
//   - Create/Update validate inputs before any network traffic and convert
//     ICP prices to e8s on the way out.
//   - Bulk reads return the full remote result set; pagination and sorting
//     happen client-side.
//   - Every returned record carries display fields (formatted price and
//     file size) alongside the raw values.
//
// All methods must honor context cancellation/timeouts.
type AssetsService interface {
	CreateAsset(ctx context.Context, in CreateAssetInput) (models.Asset, error)
	GetAsset(ctx context.Context, assetID string) (models.Asset, error)
	GetAssetWithOwnership(ctx context.Context, assetID string) (models.Asset, error)
	GetAllAssets(ctx context.Context, page, limit int) (listops.Page[models.Asset], error)
	GetAssetsByCategory(ctx context.Context, category models.Category, page, limit int) (listops.Page[models.Asset], error)
	GetAssetsByCreator(ctx context.Context, creatorID string) ([]models.Asset, error)
	GetAssetsByTag(ctx context.Context, tag string) ([]models.Asset, error)
	GetMyAssets(ctx context.Context) ([]models.Asset, error)
	GetOwnedAssets(ctx context.Context) ([]models.Asset, error)
	CheckOwnership(ctx context.Context, assetID string) (bool, error)
	SearchAssets(ctx context.Context, filters SearchFilters) ([]models.Asset, error)
	UpdateAsset(ctx context.Context, assetID string, in UpdateAssetInput) (models.Asset, error)
	GetAssetStats(ctx context.Context, assetID string) (models.AssetStats, error)
	GetFeaturedAssets(ctx context.Context, limit int) ([]models.Asset, error)
	GetTrendingAssets(ctx context.Context, limit int) ([]models.Asset, error)
	GetCategoryCounts(ctx context.Context) (map[models.Category]int, error)
	GetPopularTags(ctx context.Context, limit int) ([]TagCount, error)
}

// TagCount is a tag with the number of assets carrying it.
type TagCount struct {
	Tag   string
	Count int
}

type assetsService struct {
	gw Gateway
}

// NewAssetsService constructs an AssetsService bound to the given gateway.
func NewAssetsService(gw Gateway) AssetsService {
	return &assetsService{gw: gw}
}

func (s *assetsService) CreateAsset(ctx context.Context, in CreateAssetInput) (models.Asset, error) {
	if err := in.Validate(); err != nil {
		return models.Asset{}, err
	}
	v, err := s.gw.Call(ctx, ActorAssets, "createAsset", in.wire())
	if err != nil {
		return models.Asset{}, err
	}
	return models.AssetFromValue(v)
}

func (s *assetsService) GetAsset(ctx context.Context, assetID string) (models.Asset, error) {
	v, err := s.gw.Query(ctx, ActorAssets, "getAsset", assetID)
	if err != nil {
		return models.Asset{}, err
	}
	return models.AssetFromValue(v)
}

// GetAssetWithOwnership resolves an asset together with whether the caller
// owns it, so it requires a session.
func (s *assetsService) GetAssetWithOwnership(ctx context.Context, assetID string) (models.Asset, error) {
	v, err := s.gw.Call(ctx, ActorAssets, "getAssetWithOwnership", assetID)
	if err != nil {
		return models.Asset{}, err
	}
	return models.AssetFromValue(v)
}

func (s *assetsService) GetAllAssets(ctx context.Context, page, limit int) (listops.Page[models.Asset], error) {
	assets, err := s.queryAssets(ctx, "getAllAssets")
	if err != nil {
		return listops.Page[models.Asset]{}, err
	}
	return listops.Paginate(assets, page, limit), nil
}

func (s *assetsService) GetAssetsByCategory(ctx context.Context, category models.Category, page, limit int) (listops.Page[models.Asset], error) {
	assets, err := s.queryAssets(ctx, "getAssetsByCategory", candid.Variant(string(category)))
	if err != nil {
		return listops.Page[models.Asset]{}, err
	}
	return listops.Paginate(assets, page, limit), nil
}

func (s *assetsService) GetAssetsByCreator(ctx context.Context, creatorID string) ([]models.Asset, error) {
	return s.queryAssets(ctx, "getAssetsByCreator", creatorID)
}

func (s *assetsService) GetAssetsByTag(ctx context.Context, tag string) ([]models.Asset, error) {
	return s.queryAssets(ctx, "getAssetsByTag", tag)
}

func (s *assetsService) GetMyAssets(ctx context.Context) ([]models.Asset, error) {
	v, err := s.gw.Call(ctx, ActorAssets, "getMyAssets")
	if err != nil {
		return nil, err
	}
	return decodeAssets(v)
}

func (s *assetsService) GetOwnedAssets(ctx context.Context) ([]models.Asset, error) {
	v, err := s.gw.Call(ctx, ActorAssets, "getOwnedAssets")
	if err != nil {
		return nil, err
	}
	return decodeAssets(v)
}

func (s *assetsService) CheckOwnership(ctx context.Context, assetID string) (bool, error) {
	v, err := s.gw.Call(ctx, ActorAssets, "checkOwnership", assetID)
	if err != nil {
		return false, err
	}
	owned, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("checkOwnership: expected bool, got %T", v)
	}
	return owned, nil
}

func (s *assetsService) SearchAssets(ctx context.Context, filters SearchFilters) ([]models.Asset, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	assets, err := s.queryAssets(ctx, "searchAssets", filters.wire())
	if err != nil {
		return nil, err
	}
	key := filters.SortBy
	if key == "" {
		key = SortNewest
	}
	return SortAssets(assets, key), nil
}

func (s *assetsService) UpdateAsset(ctx context.Context, assetID string, in UpdateAssetInput) (models.Asset, error) {
	if err := in.Validate(); err != nil {
		return models.Asset{}, err
	}
	v, err := s.gw.Call(ctx, ActorAssets, "updateAsset", assetID, in.wire())
	if err != nil {
		return models.Asset{}, err
	}
	return models.AssetFromValue(v)
}

func (s *assetsService) GetAssetStats(ctx context.Context, assetID string) (models.AssetStats, error) {
	v, err := s.gw.Query(ctx, ActorAssets, "getAssetStats", assetID)
	if err != nil {
		return models.AssetStats{}, err
	}
	return models.AssetStatsFromValue(v)
}

func (s *assetsService) GetFeaturedAssets(ctx context.Context, limit int) ([]models.Asset, error) {
	assets, err := s.queryAssets(ctx, "getFeaturedAssets")
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(assets) > limit {
		assets = assets[:limit]
	}
	return assets, nil
}

// GetTrendingAssets approximates trending by download count over the
// featured set until the canister grows a dedicated method.
func (s *assetsService) GetTrendingAssets(ctx context.Context, limit int) ([]models.Asset, error) {
	if limit <= 0 {
		limit = 10
	}
	featured, err := s.GetFeaturedAssets(ctx, limit*2)
	if err != nil {
		return nil, err
	}
	trending := SortAssets(featured, SortPopular)
	if len(trending) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}

func (s *assetsService) GetCategoryCounts(ctx context.Context) (map[models.Category]int, error) {
	assets, err := s.queryAssets(ctx, "getAllAssets")
	if err != nil {
		return nil, err
	}
	grouped := listops.GroupBy(assets, func(a models.Asset) models.Category { return a.Metadata.Category })
	counts := make(map[models.Category]int, len(grouped))
	for cat, group := range grouped {
		counts[cat] = len(group)
	}
	return counts, nil
}

func (s *assetsService) GetPopularTags(ctx context.Context, limit int) ([]TagCount, error) {
	assets, err := s.queryAssets(ctx, "getAllAssets")
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, a := range assets {
		for _, tag := range a.Metadata.Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

func (s *assetsService) queryAssets(ctx context.Context, method string, args ...any) ([]models.Asset, error) {
	v, err := s.gw.Query(ctx, ActorAssets, method, args...)
	if err != nil {
		return nil, err
	}
	return decodeAssets(v)
}

func decodeAssets(v any) ([]models.Asset, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected asset list, got %T", v)
	}
	assets := make([]models.Asset, 0, len(list))
	for _, e := range list {
		a, err := models.AssetFromValue(e)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}
