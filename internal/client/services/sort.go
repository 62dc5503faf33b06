package services

import (
	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/listops"
)

// SortKey selects the client-side ordering of a result set.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
	SortTitle     SortKey = "title"
)

// SortAssets orders assets by the given key. Unknown keys return the input
// order unchanged.
func SortAssets(assets []models.Asset, key SortKey) []models.Asset {
	var less func(a, b models.Asset) bool
	switch key {
	case SortNewest:
		less = func(a, b models.Asset) bool { return a.Metadata.CreatedAt.After(b.Metadata.CreatedAt) }
	case SortOldest:
		less = func(a, b models.Asset) bool { return a.Metadata.CreatedAt.Before(b.Metadata.CreatedAt) }
	case SortPriceLow:
		less = func(a, b models.Asset) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b models.Asset) bool { return a.Price > b.Price }
	case SortPopular:
		less = func(a, b models.Asset) bool { return a.Downloads > b.Downloads }
	case SortRating:
		less = func(a, b models.Asset) bool { return a.Rating > b.Rating }
	case SortTitle:
		less = func(a, b models.Asset) bool { return a.Metadata.Title < b.Metadata.Title }
	default:
		return assets
	}
	return listops.SortBy(assets, less)
}

// SortListings orders listings by the given key. Keys that depend on asset
// fields fall back to input order when the listing carries no asset.
func SortListings(listings []models.Listing, key SortKey) []models.Listing {
	var less func(a, b models.Listing) bool
	switch key {
	case SortNewest:
		less = func(a, b models.Listing) bool { return a.ListedAt.After(b.ListedAt) }
	case SortOldest:
		less = func(a, b models.Listing) bool { return a.ListedAt.Before(b.ListedAt) }
	case SortPriceLow:
		less = func(a, b models.Listing) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b models.Listing) bool { return a.Price > b.Price }
	case SortPopular:
		less = func(a, b models.Listing) bool {
			if a.Asset == nil || b.Asset == nil {
				return false
			}
			return a.Asset.Downloads > b.Asset.Downloads
		}
	default:
		return listings
	}
	return listops.SortBy(listings, less)
}
