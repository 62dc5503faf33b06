package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrmarket/vrmarket/internal/client/agent"
	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/icpx"
)

func wireListing(id string, priceE8s int64, active bool) map[string]any {
	return map[string]any{
		"id":       id,
		"assetId":  "asset-" + id,
		"seller":   "2vxsx-fae",
		"price":    float64(priceE8s),
		"isActive": active,
		"listedAt": float64(1_700_000_000_000_000_000),
		"asset":    wireAsset("asset-"+id, priceE8s, 0, 0),
	}
}

func wirePurchase(id, assetID string, priceE8s int64, ts time.Time) map[string]any {
	return map[string]any{
		"id":        id,
		"assetId":   assetID,
		"buyer":     "2vxsx-fae",
		"seller":    "aaaaa-aa",
		"price":     float64(priceE8s),
		"timestamp": float64(ts.UnixNano()),
	}
}

func TestCreateListing(t *testing.T) {
	gw := newFakeGateway()
	gw.results["createListing"] = wireListing("l1", 500_000_000, true)
	svc := NewMarketplaceService(gw)

	l, err := svc.CreateListing(context.Background(), CreateListingInput{AssetID: "asset-l1", Price: 5})
	require.NoError(t, err)
	assert.Equal(t, "5.00 ICP", l.PriceFormatted)
	require.NotNil(t, l.Asset)
	assert.Equal(t, "5.00 ICP", l.Asset.PriceFormatted)

	payload := gw.last(t).args[0].(map[string]any)
	assert.Equal(t, int64(500_000_000), payload["price"])
}

func TestCreateListingValidation(t *testing.T) {
	gw := newFakeGateway()
	svc := NewMarketplaceService(gw)

	_, err := svc.CreateListing(context.Background(), CreateListingInput{AssetID: "", Price: 1})
	require.Error(t, err)
	assert.Empty(t, gw.calls)
}

func TestPurchaseAssetWiresPaymentVariant(t *testing.T) {
	gw := newFakeGateway()
	gw.results["purchaseAsset"] = wirePurchase("p1", "asset-1", 500_000_000, time.Now())
	svc := NewMarketplaceService(gw)

	p, err := svc.PurchaseAsset(context.Background(), PurchaseInput{
		ListingID:     "l1",
		PaymentMethod: models.PaymentICP,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "5.00 ICP", p.PriceFormatted)

	payload := gw.last(t).args[0].(map[string]any)
	assert.Equal(t, map[string]any{"ICP": nil}, payload["paymentMethod"])
}

func TestPurchaseAssetBadPaymentMethod(t *testing.T) {
	svc := NewMarketplaceService(newFakeGateway())
	_, err := svc.PurchaseAsset(context.Background(), PurchaseInput{ListingID: "l1", PaymentMethod: "BTC"})
	require.Error(t, err)
}

func TestGetActiveListingsPaginates(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getActiveListings"] = []any{
		wireListing("a", 0, true),
		wireListing("b", 0, true),
	}
	svc := NewMarketplaceService(gw)

	page, err := svc.GetActiveListings(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.True(t, page.HasNextPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "a", page.Data[0].ID)
}

func TestGetMarketplaceStats(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getMarketplaceStats"] = map[string]any{
		"totalListings":     float64(12),
		"activeListings":    float64(7),
		"totalTransactions": float64(4),
		"totalVolume":       float64(800_000_000),
		"totalFees":         float64(20_000_000),
	}
	svc := NewMarketplaceService(gw)

	stats, err := svc.GetMarketplaceStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8.00 ICP", stats.TotalVolumeFormatted)
	assert.InDelta(t, 200_000_000, stats.AverageTransactionValue, 1e-9)
}

func TestSearchListingsAppliesClientFilters(t *testing.T) {
	cheap := wireListing("cheap", 50_000_000, true)
	mid := wireListing("mid", 200_000_000, true)
	pricey := wireListing("pricey", 900_000_000, true)

	gw := newFakeGateway()
	gw.results["searchListings"] = []any{cheap, mid, pricey}
	svc := NewMarketplaceService(gw)

	min, max := 1.0, 5.0
	listings, err := svc.SearchListings(context.Background(), "city", SearchFilters{
		MinPrice: &min,
		MaxPrice: &max,
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "mid", listings[0].ID)

	assert.Equal(t, []any{"city"}, gw.last(t).args)
}

func TestGetListingsFiltersAndSorts(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getActiveListings"] = []any{
		wireListing("pricey", 900_000_000, true),
		wireListing("cheap", 50_000_000, true),
	}
	svc := NewMarketplaceService(gw)

	listings, err := svc.GetListings(context.Background(), SearchFilters{SortBy: SortPriceLow})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "cheap", listings[0].ID)
	assert.Equal(t, "pricey", listings[1].ID)
}

func TestCanPurchaseListing(t *testing.T) {
	gw := newFakeGateway()
	gw.results["getListing"] = wireListing("l1", 100, false)
	svc := NewMarketplaceService(gw)

	check, err := svc.CanPurchaseListing(context.Background(), "l1")
	require.NoError(t, err)
	assert.False(t, check.CanPurchase)
	assert.Equal(t, "Listing is not active", check.Reason)

	gw.results["getListing"] = wireListing("l2", 100, true)
	check, err = svc.CanPurchaseListing(context.Background(), "l2")
	require.NoError(t, err)
	assert.True(t, check.CanPurchase)
	require.NotNil(t, check.Listing)

	gw.errs["getListing"] = &agent.RemoteError{Kind: agent.KindNotFound, Message: "Resource not found"}
	check, err = svc.CanPurchaseListing(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, check.CanPurchase)
	assert.Equal(t, "Resource not found", check.Reason)
}

func TestEstimateTransactionFees(t *testing.T) {
	svc := NewMarketplaceService(newFakeGateway())

	est := svc.EstimateTransactionFees(10)
	assert.Equal(t, int64(1_000_000_000), est.Price)
	assert.Equal(t, int64(25_000_000), est.MarketplaceFee)
	assert.Equal(t, int64(10_000), est.NetworkFee)
	assert.Equal(t, int64(25_010_000), est.TotalFees)
	assert.Equal(t, int64(975_000_000), est.SellerReceives)
	assert.Equal(t, "10.00 ICP", est.Formatted.Price)
	assert.Equal(t, "0.25 ICP", est.Formatted.MarketplaceFee)
	assert.Equal(t, "0.0001 ICP", est.Formatted.NetworkFee)
	assert.Equal(t, "9.75 ICP", est.Formatted.SellerReceives)
}

func TestGetSalesAnalytics(t *testing.T) {
	now := time.Now()
	gw := newFakeGateway()
	gw.results["getMyTransactionHistory"] = map[string]any{
		"purchases": []any{},
		"sales": []any{
			wirePurchase("recent", "asset-1", 200_000_000, now.Add(-time.Hour)),
			wirePurchase("alsoRecent", "asset-1", 200_000_000, now.Add(-2*time.Hour)),
			wirePurchase("ancient", "asset-2", 100_000_000, now.AddDate(0, -2, 0)),
		},
		"totalSpent":  float64(0),
		"totalEarned": float64(500_000_000),
	}
	svc := NewMarketplaceService(gw).(*marketplaceService)
	svc.now = func() time.Time { return now }

	analytics, err := svc.GetSalesAnalytics(context.Background(), TimeframeWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalSales)
	assert.Equal(t, int64(400_000_000), analytics.TotalRevenue)
	assert.Equal(t, int64(200_000_000), analytics.AverageSalePrice)
	assert.Equal(t, icpx.Format(400_000_000), analytics.TotalRevenueFormatted)
	require.Len(t, analytics.TopSellingAssets, 1)
	assert.Equal(t, 2, analytics.TopSellingAssets[0].SalesCount)

	all, err := svc.GetSalesAnalytics(context.Background(), TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalSales)
}

func TestDeleteListing(t *testing.T) {
	gw := newFakeGateway()
	svc := NewMarketplaceService(gw)

	require.NoError(t, svc.DeleteListing(context.Background(), "l1"))
	call := gw.last(t)
	assert.Equal(t, "call", call.kind)
	assert.Equal(t, "deleteListing", call.method)
}
