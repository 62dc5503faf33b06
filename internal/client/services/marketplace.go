package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/icpx"
	"github.com/vrmarket/vrmarket/internal/listops"
)

// Marketplace fee parameters, matching the marketplace canister.
const (
	marketplaceFeeRate = 0.025
	networkFeeE8s      = 10_000
)

// MarketplaceService defines listing, purchase and analytics operations.
type MarketplaceService interface {
	CreateListing(ctx context.Context, in CreateListingInput) (models.Listing, error)
	GetListing(ctx context.Context, listingID string) (models.Listing, error)
	GetActiveListings(ctx context.Context, page, limit int) (listops.Page[models.Listing], error)
	GetListings(ctx context.Context, filters SearchFilters) ([]models.Listing, error)
	GetListingsBySeller(ctx context.Context, sellerID string) ([]models.Listing, error)
	GetMyListings(ctx context.Context) ([]models.Listing, error)
	UpdateListing(ctx context.Context, listingID string, in UpdateListingInput) (models.Listing, error)
	DeleteListing(ctx context.Context, listingID string) error
	PurchaseAsset(ctx context.Context, in PurchaseInput) (models.Purchase, error)
	GetMyTransactionHistory(ctx context.Context) (models.TransactionHistory, error)
	GetTransaction(ctx context.Context, transactionID string) (models.Transaction, error)
	GetPurchaseRecord(ctx context.Context, purchaseID string) (models.Purchase, error)
	GetMarketplaceStats(ctx context.Context) (models.MarketplaceStats, error)
	GetFeaturedListings(ctx context.Context, limit int) ([]models.Listing, error)
	SearchListings(ctx context.Context, term string, filters SearchFilters) ([]models.Listing, error)
	GetSalesAnalytics(ctx context.Context, timeframe Timeframe) (SalesAnalytics, error)
	CanPurchaseListing(ctx context.Context, listingID string) (PurchaseCheck, error)
	EstimateTransactionFees(priceICP float64) models.FeeEstimate
}

// Timeframe bounds an analytics window.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

func (t Timeframe) window() (time.Duration, bool) {
	switch t {
	case TimeframeDay:
		return 24 * time.Hour, true
	case TimeframeWeek:
		return 7 * 24 * time.Hour, true
	case TimeframeMonth:
		return 30 * 24 * time.Hour, true
	case TimeframeYear:
		return 365 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// AssetSales aggregates the sales of a single asset.
type AssetSales struct {
	Asset        *models.Asset
	SalesCount   int
	TotalRevenue int64
}

// SalesAnalytics summarizes a seller's results over a timeframe.
type SalesAnalytics struct {
	Timeframe                 Timeframe
	TotalSales                int
	TotalRevenue              int64
	TotalRevenueFormatted     string
	AverageSalePrice          int64
	AverageSalePriceFormatted string
	TopSellingAssets          []AssetSales
	RecentSales               []models.Purchase
}

// PurchaseCheck is the result of a pre-purchase eligibility probe.
type PurchaseCheck struct {
	CanPurchase bool
	Reason      string
	Listing     *models.Listing
}

type marketplaceService struct {
	gw  Gateway
	now func() time.Time
}

// NewMarketplaceService constructs a MarketplaceService bound to the given
// gateway.
func NewMarketplaceService(gw Gateway) MarketplaceService {
	return &marketplaceService{gw: gw, now: time.Now}
}

func (s *marketplaceService) CreateListing(ctx context.Context, in CreateListingInput) (models.Listing, error) {
	if err := in.Validate(); err != nil {
		return models.Listing{}, err
	}
	v, err := s.gw.Call(ctx, ActorMarketplace, "createListing", in.wire())
	if err != nil {
		return models.Listing{}, err
	}
	return models.ListingFromValue(v)
}

func (s *marketplaceService) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	v, err := s.gw.Query(ctx, ActorMarketplace, "getListing", listingID)
	if err != nil {
		return models.Listing{}, err
	}
	return models.ListingFromValue(v)
}

func (s *marketplaceService) GetActiveListings(ctx context.Context, page, limit int) (listops.Page[models.Listing], error) {
	listings, err := s.queryListings(ctx, "getActiveListings")
	if err != nil {
		return listops.Page[models.Listing]{}, err
	}
	return listops.Paginate(listings, page, limit), nil
}

func (s *marketplaceService) GetListingsBySeller(ctx context.Context, sellerID string) ([]models.Listing, error) {
	return s.queryListings(ctx, "getListingsBySeller", sellerID)
}

func (s *marketplaceService) GetMyListings(ctx context.Context) ([]models.Listing, error) {
	v, err := s.gw.Call(ctx, ActorMarketplace, "getMyListings")
	if err != nil {
		return nil, err
	}
	return decodeListings(v)
}

func (s *marketplaceService) UpdateListing(ctx context.Context, listingID string, in UpdateListingInput) (models.Listing, error) {
	if err := in.Validate(); err != nil {
		return models.Listing{}, err
	}
	v, err := s.gw.Call(ctx, ActorMarketplace, "updateListing", listingID, in.wire())
	if err != nil {
		return models.Listing{}, err
	}
	return models.ListingFromValue(v)
}

func (s *marketplaceService) DeleteListing(ctx context.Context, listingID string) error {
	_, err := s.gw.Call(ctx, ActorMarketplace, "deleteListing", listingID)
	return err
}

func (s *marketplaceService) PurchaseAsset(ctx context.Context, in PurchaseInput) (models.Purchase, error) {
	if err := in.Validate(); err != nil {
		return models.Purchase{}, err
	}
	v, err := s.gw.Call(ctx, ActorMarketplace, "purchaseAsset", in.wire())
	if err != nil {
		return models.Purchase{}, err
	}
	return models.PurchaseFromValue(v)
}

func (s *marketplaceService) GetMyTransactionHistory(ctx context.Context) (models.TransactionHistory, error) {
	v, err := s.gw.Call(ctx, ActorMarketplace, "getMyTransactionHistory")
	if err != nil {
		return models.TransactionHistory{}, err
	}
	return models.HistoryFromValue(v)
}

func (s *marketplaceService) GetTransaction(ctx context.Context, transactionID string) (models.Transaction, error) {
	v, err := s.gw.Query(ctx, ActorMarketplace, "getTransaction", transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.TransactionFromValue(v)
}

func (s *marketplaceService) GetPurchaseRecord(ctx context.Context, purchaseID string) (models.Purchase, error) {
	v, err := s.gw.Query(ctx, ActorMarketplace, "getPurchaseRecord", purchaseID)
	if err != nil {
		return models.Purchase{}, err
	}
	return models.PurchaseFromValue(v)
}

func (s *marketplaceService) GetMarketplaceStats(ctx context.Context) (models.MarketplaceStats, error) {
	v, err := s.gw.Query(ctx, ActorMarketplace, "getMarketplaceStats")
	if err != nil {
		return models.MarketplaceStats{}, err
	}
	return models.MarketplaceStatsFromValue(v)
}

func (s *marketplaceService) GetFeaturedListings(ctx context.Context, limit int) ([]models.Listing, error) {
	listings, err := s.queryListings(ctx, "getFeaturedListings")
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}
	return listings, nil
}

// GetListings returns the active listings with filters and sort applied
// client-side.
func (s *marketplaceService) GetListings(ctx context.Context, filters SearchFilters) ([]models.Listing, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	listings, err := s.queryListings(ctx, "getActiveListings")
	if err != nil {
		return nil, err
	}
	return applyListingFilters(listings, filters), nil
}

// SearchListings runs the text search remotely and applies the remaining
// filters client-side.
func (s *marketplaceService) SearchListings(ctx context.Context, term string, filters SearchFilters) ([]models.Listing, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	listings, err := s.queryListings(ctx, "searchListings", term)
	if err != nil {
		return nil, err
	}
	return applyListingFilters(listings, filters), nil
}

func applyListingFilters(listings []models.Listing, filters SearchFilters) []models.Listing {
	if filters.Category != "" {
		listings = listops.Filter(listings, func(l models.Listing) bool {
			return l.Asset != nil && l.Asset.Metadata.Category == filters.Category
		})
	}
	if filters.MinPrice != nil {
		min := icpx.ToE8s(*filters.MinPrice)
		listings = listops.Filter(listings, func(l models.Listing) bool { return l.Price >= min })
	}
	if filters.MaxPrice != nil {
		max := icpx.ToE8s(*filters.MaxPrice)
		listings = listops.Filter(listings, func(l models.Listing) bool { return l.Price <= max })
	}

	if filters.SortBy != "" {
		listings = SortListings(listings, filters.SortBy)
	}
	return listings
}

func (s *marketplaceService) GetSalesAnalytics(ctx context.Context, timeframe Timeframe) (SalesAnalytics, error) {
	history, err := s.GetMyTransactionHistory(ctx)
	if err != nil {
		return SalesAnalytics{}, err
	}

	sales := history.Sales
	if window, bounded := timeframe.window(); bounded {
		cutoff := s.now().Add(-window)
		sales = listops.Filter(sales, func(p models.Purchase) bool {
			return p.Timestamp.After(cutoff)
		})
	}

	analytics := SalesAnalytics{Timeframe: timeframe, TotalSales: len(sales)}
	for _, sale := range sales {
		analytics.TotalRevenue += sale.Price
	}
	if analytics.TotalSales > 0 {
		analytics.AverageSalePrice = analytics.TotalRevenue / int64(analytics.TotalSales)
	}
	analytics.TotalRevenueFormatted = icpx.Format(analytics.TotalRevenue)
	analytics.AverageSalePriceFormatted = icpx.Format(analytics.AverageSalePrice)

	byAsset := map[string]*AssetSales{}
	for i := range sales {
		sale := &sales[i]
		entry, ok := byAsset[sale.AssetID]
		if !ok {
			entry = &AssetSales{Asset: sale.Asset}
			byAsset[sale.AssetID] = entry
		}
		entry.SalesCount++
		entry.TotalRevenue += sale.Price
	}
	top := make([]AssetSales, 0, len(byAsset))
	for _, entry := range byAsset {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].SalesCount > top[j].SalesCount })
	if len(top) > 10 {
		top = top[:10]
	}
	analytics.TopSellingAssets = top

	recent := sales
	if len(recent) > 10 {
		recent = recent[:10]
	}
	analytics.RecentSales = recent
	return analytics, nil
}

// CanPurchaseListing reports eligibility without committing anything.
// Failures surface as a reason rather than an error.
func (s *marketplaceService) CanPurchaseListing(ctx context.Context, listingID string) (PurchaseCheck, error) {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return PurchaseCheck{CanPurchase: false, Reason: err.Error()}, nil
	}
	if !listing.IsActive {
		return PurchaseCheck{CanPurchase: false, Reason: "Listing is not active"}, nil
	}
	return PurchaseCheck{CanPurchase: true, Listing: &listing}, nil
}

// EstimateTransactionFees breaks a sale price into the marketplace fee
// (2.5%), the flat network fee and what the seller keeps.
func (s *marketplaceService) EstimateTransactionFees(priceICP float64) models.FeeEstimate {
	price := icpx.ToE8s(priceICP)
	marketplaceFee := int64(float64(price) * marketplaceFeeRate)
	totalFees := marketplaceFee + networkFeeE8s

	return models.FeeEstimate{
		Price:          price,
		MarketplaceFee: marketplaceFee,
		NetworkFee:     networkFeeE8s,
		TotalFees:      totalFees,
		SellerReceives: price - marketplaceFee,
		Formatted: models.FeeEstimateFormatted{
			Price:          icpx.Format(price),
			MarketplaceFee: icpx.Format(marketplaceFee),
			NetworkFee:     icpx.Format(networkFeeE8s),
			TotalFees:      icpx.Format(totalFees),
			SellerReceives: icpx.Format(price - marketplaceFee),
		},
	}
}

func (s *marketplaceService) queryListings(ctx context.Context, method string, args ...any) ([]models.Listing, error) {
	v, err := s.gw.Query(ctx, ActorMarketplace, method, args...)
	if err != nil {
		return nil, err
	}
	return decodeListings(v)
}

func decodeListings(v any) ([]models.Listing, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected listing list, got %T", v)
	}
	listings := make([]models.Listing, 0, len(list))
	for _, e := range list {
		l, err := models.ListingFromValue(e)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}
