package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/client/services"
)

// Sell interactively creates an asset and lists it for sale.
func (a *App) Sell(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Asset title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader,
		fmt.Sprintf("Category %v", models.Categories()), os.Stdout)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated)", os.Stdout)
	if err != nil {
		return err
	}
	format, err := GetSimpleText(a.reader, "File format (glb, fbx, gltf, ...)", os.Stdout)
	if err != nil {
		return err
	}
	price, err := GetNumber(a.reader, "Price in ICP", os.Stdout)
	if err != nil {
		report(err)
		return err
	}

	asset, err := a.assets.CreateAsset(ctx, services.CreateAssetInput{
		Title:       title,
		Description: description,
		Category:    models.Category(category),
		Tags:        splitTags(tags),
		Price:       price,
		FileSize:    1,
		FileFormat:  format,
		FileHash:    "pending-upload",
		VRPlatforms: []string{"WebXR"},
	})
	if err != nil {
		report(err)
		return err
	}

	listing, err := a.market.CreateListing(ctx, services.CreateListingInput{
		AssetID:     asset.ID,
		Price:       price,
		Description: description,
	})
	if err != nil {
		report(err)
		return err
	}

	fees := a.market.EstimateTransactionFees(price)
	fmt.Printf("Listed %q as %s for %s.\n", title, listing.ID, listing.PriceFormatted)
	fmt.Printf("On sale you receive %s after the %s marketplace fee.\n",
		fees.Formatted.SellerReceives, fees.Formatted.MarketplaceFee)
	return nil
}

// Buy purchases an active listing after a confirmation prompt.
func (a *App) Buy(ctx context.Context, listingID string) error {
	check, err := a.market.CanPurchaseListing(ctx, listingID)
	if err != nil {
		report(err)
		return err
	}
	if !check.CanPurchase {
		fmt.Println(check.Reason)
		return nil
	}

	prompt := fmt.Sprintf("Buy for %s? (yes/no)", check.Listing.PriceFormatted)
	answer, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") && !strings.EqualFold(answer, "y") {
		fmt.Println("Cancelled.")
		return nil
	}

	purchase, err := a.market.PurchaseAsset(ctx, services.PurchaseInput{
		ListingID:     listingID,
		PaymentMethod: models.PaymentICP,
	})
	if err != nil {
		report(err)
		return err
	}
	fmt.Printf("Purchased for %s. The asset is now yours.\n", purchase.PriceFormatted)
	return nil
}

// Listings prints the caller's own listings.
func (a *App) Listings(ctx context.Context) error {
	listings, err := a.market.GetMyListings(ctx)
	if err != nil {
		report(err)
		return err
	}
	if len(listings) == 0 {
		fmt.Println("You have no listings.")
		return nil
	}
	for _, l := range listings {
		state := "inactive"
		if l.IsActive {
			state = "active"
		}
		title := l.AssetID
		if l.Asset != nil {
			title = l.Asset.Metadata.Title
		}
		fmt.Printf("%-38s %-30s %-12s %s\n", l.ID, title, l.PriceFormatted, state)
	}
	return nil
}

// Mine prints the assets the caller created and the ones they own.
func (a *App) Mine(ctx context.Context) error {
	created, err := a.assets.GetMyAssets(ctx)
	if err != nil {
		report(err)
		return err
	}
	owned, err := a.assets.GetOwnedAssets(ctx)
	if err != nil {
		report(err)
		return err
	}

	fmt.Printf("Created (%d):\n", len(created))
	for _, asset := range created {
		printAsset(asset)
	}
	fmt.Printf("Owned (%d):\n", len(owned))
	for _, asset := range owned {
		printAsset(asset)
	}
	return nil
}

// History prints the caller's purchases and sales.
func (a *App) History(ctx context.Context) error {
	h, err := a.market.GetMyTransactionHistory(ctx)
	if err != nil {
		report(err)
		return err
	}

	fmt.Printf("Purchases (%d, %s spent):\n", len(h.Purchases), h.TotalSpentFormatted)
	for _, p := range h.Purchases {
		fmt.Printf("  %s  %-38s %s\n", p.Timestamp.Format("2006-01-02 15:04"), p.AssetID, p.PriceFormatted)
	}
	fmt.Printf("Sales (%d, %s earned):\n", len(h.Sales), h.TotalEarnedFormatted)
	for _, p := range h.Sales {
		fmt.Printf("  %s  %-38s %s\n", p.Timestamp.Format("2006-01-02 15:04"), p.AssetID, p.PriceFormatted)
	}
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
