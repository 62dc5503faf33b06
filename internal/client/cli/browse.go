package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/client/services"
)

const browsePageSize = 10

func printAsset(a models.Asset) {
	status := ""
	if a.IsForSale {
		status = "  [for sale]"
	}
	fmt.Printf("%-38s %-30s %-12s %s%s\n",
		a.ID, a.Metadata.Title, a.Metadata.Category, a.PriceFormatted, status)
}

// Browse lists active listings page by page.
func (a *App) Browse(ctx context.Context) error {
	page, err := a.market.GetActiveListings(ctx, 1, browsePageSize)
	if err != nil {
		report(err)
		return err
	}
	if page.TotalItems == 0 {
		fmt.Println("Nothing is for sale right now.")
		return nil
	}
	for _, l := range page.Data {
		title := l.AssetID
		if l.Asset != nil {
			title = l.Asset.Metadata.Title
		}
		fmt.Printf("%-38s %-30s %s\n", l.ID, title, l.PriceFormatted)
	}
	fmt.Printf("Page %d of %d (%d listings). Use 'buy <listing-id>' to purchase.\n",
		page.CurrentPage, page.TotalPages, page.TotalItems)
	return nil
}

// Search runs a free-text search over the asset catalog.
func (a *App) Search(ctx context.Context, term string) error {
	assets, err := a.assets.SearchAssets(ctx, services.SearchFilters{Query: term})
	if err != nil {
		report(err)
		return err
	}
	if len(assets) == 0 {
		fmt.Printf("No assets matching %q.\n", term)
		return nil
	}
	for _, asset := range assets {
		printAsset(asset)
	}
	return nil
}

// Show prints one asset in full, with ownership info when signed in.
func (a *App) Show(ctx context.Context, assetID string) error {
	var (
		asset models.Asset
		err   error
	)
	if a.isSignedIn() {
		asset, err = a.assets.GetAssetWithOwnership(ctx, assetID)
	} else {
		asset, err = a.assets.GetAsset(ctx, assetID)
	}
	if err != nil {
		report(err)
		return err
	}

	fmt.Printf("%s\n%s\n\n", asset.Metadata.Title, asset.Metadata.Description)
	fmt.Printf("Category:  %s\n", asset.Metadata.Category)
	fmt.Printf("Price:     %s\n", asset.PriceFormatted)
	fmt.Printf("File:      %s (%s)\n", asset.Metadata.FileFormat, asset.Metadata.FileSizeFormatted)
	fmt.Printf("Platforms: %s\n", strings.Join(asset.Metadata.VRPlatforms, ", "))
	fmt.Printf("Tags:      %s\n", strings.Join(asset.Metadata.Tags, ", "))
	fmt.Printf("Rating:    %.1f  Downloads: %d\n", asset.Rating, asset.Downloads)
	if asset.IsOwned {
		fmt.Println("You own this asset.")
	}
	return nil
}

// Stats prints the marketplace-wide aggregates.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.market.GetMarketplaceStats(ctx)
	if err != nil {
		report(err)
		return err
	}
	fmt.Printf("Listings:     %d (%d active)\n", stats.TotalListings, stats.ActiveListings)
	fmt.Printf("Transactions: %d\n", stats.TotalTransactions)
	fmt.Printf("Volume:       %s\n", stats.TotalVolumeFormatted)
	fmt.Printf("Fees:         %s\n", stats.TotalFeesFormatted)
	return nil
}
