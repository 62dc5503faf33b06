// Package models defines the domain records the marketplace canisters
// exchange, together with decoders from the loosely typed wire values.
// Decoders also fill the derived display fields (formatted prices, file
// sizes) so callers never touch raw e8s amounts directly.
package models

import (
	"fmt"
	"time"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/icpx"
)

// Category classifies a VR asset. Values travel on the wire as variants
// ({"Environment": null}) and are stored here as their tag strings.
type Category string

const (
	CategoryEnvironment        Category = "Environment"
	CategoryCharacter          Category = "Character"
	CategoryObject             Category = "Object"
	CategoryAnimation          Category = "Animation"
	CategoryAudio              Category = "Audio"
	CategoryCompleteExperience Category = "Complete_Experience"
)

// Categories lists every valid asset category.
func Categories() []Category {
	return []Category{
		CategoryEnvironment,
		CategoryCharacter,
		CategoryObject,
		CategoryAnimation,
		CategoryAudio,
		CategoryCompleteExperience,
	}
}

// ParseCategory converts a variant tag into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown asset category %q", s)
}

// PaymentMethod selects the token a purchase settles in.
type PaymentMethod string

const (
	PaymentICP    PaymentMethod = "ICP"
	PaymentCycles PaymentMethod = "Cycles"
)

// TransactionStatus tracks a ledger transfer through its lifecycle.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "Pending"
	TxCompleted TransactionStatus = "Completed"
	TxFailed    TransactionStatus = "Failed"
	TxRefunded  TransactionStatus = "Refunded"
)

// VRPlatforms lists the headsets and runtimes an asset can declare
// compatibility with.
var VRPlatforms = []string{
	"Oculus Quest",
	"Oculus Rift",
	"HTC Vive",
	"Valve Index",
	"PlayStation VR",
	"Windows Mixed Reality",
	"Pico",
	"WebXR",
	"Unity VR",
	"Unreal Engine VR",
}

// FileFormats lists the accepted asset file extensions.
var FileFormats = []string{
	"fbx", "obj", "gltf", "glb", "unity", "unreal", "blend", "dae", "max", "ma",
}

// AssetMetadata is the descriptive part of an asset record.
type AssetMetadata struct {
	Title             string
	Description       string
	Category          Category
	Tags              []string
	FileSize          int64
	FileSizeFormatted string
	FileFormat        string
	PreviewURL        string
	VRPlatforms       []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Asset is a VR asset as returned by the assets canister.
type Asset struct {
	ID       string
	Creator  string
	Owner    string
	Metadata AssetMetadata

	// Price is in e8s; PriceICP and PriceFormatted are derived for display.
	Price          int64
	PriceICP       float64
	PriceFormatted string

	IsForSale bool
	Downloads int64
	Rating    float64

	// IsOwned is only meaningful on responses from ownership-aware calls.
	IsOwned bool
}

// Listing is an active marketplace entry for an asset.
type Listing struct {
	ID             string
	AssetID        string
	Seller         string
	Price          int64
	PriceICP       float64
	PriceFormatted string
	IsActive       bool
	ListedAt       time.Time
	Asset          *Asset
}

// Purchase is one completed sale.
type Purchase struct {
	ID             string
	AssetID        string
	Buyer          string
	Seller         string
	Price          int64
	PriceICP       float64
	PriceFormatted string
	Timestamp      time.Time
	Asset          *Asset
}

// Transaction is a ledger transfer backing a purchase.
type Transaction struct {
	ID              string
	Amount          int64
	AmountICP       float64
	AmountFormatted string
	Status          TransactionStatus
	PaymentMethod   PaymentMethod
	From            string
	To              string
	Timestamp       time.Time
}

// TransactionHistory aggregates one user's marketplace activity.
type TransactionHistory struct {
	Purchases            []Purchase
	Sales                []Purchase
	TotalSpent           int64
	TotalSpentFormatted  string
	TotalEarned          int64
	TotalEarnedFormatted string
}

// User is a marketplace user profile.
type User struct {
	ID        string
	Principal string
	Username  string
	Bio       string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStats summarizes a user's marketplace track record.
type UserStats struct {
	TotalAssetsCreated     int64
	TotalAssetsSold        int64
	TotalEarnings          int64
	TotalEarningsFormatted string
	AverageRating          float64
	JoinedAt               time.Time
}

// AssetStats are the per-asset sale aggregates.
type AssetStats struct {
	AssetID               string
	Downloads             int64
	Rating                float64
	TimesSold             int64
	TotalRevenue          int64
	TotalRevenueFormatted string
}

// UserProfile is a user joined with their stats. Stats fall back to zero
// values when the stats record does not exist yet.
type UserProfile struct {
	User
	Stats UserStats
}

// MarketplaceStats are the marketplace-wide aggregates.
type MarketplaceStats struct {
	TotalListings           int64
	ActiveListings          int64
	TotalTransactions       int64
	TotalVolume             int64
	TotalVolumeFormatted    string
	TotalFees               int64
	TotalFeesFormatted      string
	AverageTransactionValue float64
}

// FeeEstimate breaks a sale price into its fee components, all in e8s.
type FeeEstimate struct {
	Price          int64
	MarketplaceFee int64
	NetworkFee     int64
	TotalFees      int64
	SellerReceives int64
	Formatted      FeeEstimateFormatted
}

// FeeEstimateFormatted carries the display strings for a FeeEstimate.
type FeeEstimateFormatted struct {
	Price          string
	MarketplaceFee string
	NetworkFee     string
	TotalFees      string
	SellerReceives string
}

// UserSetup reports whether the signed-in principal has a usable profile.
type UserSetup struct {
	Exists         bool
	IsComplete     bool
	RequiredFields []string
	User           *User
}

func metadataFromRecord(r candid.Record) AssetMetadata {
	cat, _ := ParseCategory(r.Variant("category"))
	return AssetMetadata{
		Title:             r.Str("title"),
		Description:       r.Str("description"),
		Category:          cat,
		Tags:              r.Strs("tags"),
		FileSize:          r.Int("fileSize"),
		FileSizeFormatted: icpx.FormatFileSize(r.Int("fileSize")),
		FileFormat:        r.Str("fileFormat"),
		PreviewURL:        r.Str("previewUrl"),
		VRPlatforms:       r.Strs("vrPlatforms"),
		CreatedAt:         icpx.NanosToTime(r.Int("createdAt")),
		UpdatedAt:         icpx.NanosToTime(r.Int("updatedAt")),
	}
}

// AssetFromValue decodes a normalized wire value into an Asset.
func AssetFromValue(v any) (Asset, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return Asset{}, fmt.Errorf("asset: expected record, got %T", v)
	}

	a := Asset{
		ID:        r.Str("id"),
		Creator:   r.Str("creator"),
		Owner:     r.Str("owner"),
		Price:     r.Int("price"),
		IsForSale: r.Bool("isForSale"),
		Downloads: r.Int("downloads"),
		Rating:    r.Num("rating"),
		IsOwned:   r.Bool("isOwned"),
	}
	if md := r.Rec("metadata"); md != nil {
		a.Metadata = metadataFromRecord(md)
	}
	a.PriceICP = icpx.FromE8s(a.Price)
	a.PriceFormatted = icpx.Format(a.Price)
	return a, nil
}

// ListingFromValue decodes a normalized wire value into a Listing.
func ListingFromValue(v any) (Listing, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return Listing{}, fmt.Errorf("listing: expected record, got %T", v)
	}

	l := Listing{
		ID:       r.Str("id"),
		AssetID:  r.Str("assetId"),
		Seller:   r.Str("seller"),
		Price:    r.Int("price"),
		IsActive: r.Bool("isActive"),
		ListedAt: icpx.NanosToTime(r.Int("listedAt")),
	}
	if av, ok := r["asset"]; ok && av != nil {
		a, err := AssetFromValue(av)
		if err != nil {
			return Listing{}, err
		}
		l.Asset = &a
	}
	l.PriceICP = icpx.FromE8s(l.Price)
	l.PriceFormatted = icpx.Format(l.Price)
	return l, nil
}

// PurchaseFromValue decodes a normalized wire value into a Purchase.
func PurchaseFromValue(v any) (Purchase, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return Purchase{}, fmt.Errorf("purchase: expected record, got %T", v)
	}

	p := Purchase{
		ID:        r.Str("id"),
		AssetID:   r.Str("assetId"),
		Buyer:     r.Str("buyer"),
		Seller:    r.Str("seller"),
		Price:     r.Int("price"),
		Timestamp: icpx.NanosToTime(r.Int("timestamp")),
	}
	if av, ok := r["asset"]; ok && av != nil {
		a, err := AssetFromValue(av)
		if err != nil {
			return Purchase{}, err
		}
		p.Asset = &a
	}
	p.PriceICP = icpx.FromE8s(p.Price)
	p.PriceFormatted = icpx.Format(p.Price)
	return p, nil
}

// TransactionFromValue decodes a normalized wire value into a Transaction.
func TransactionFromValue(v any) (Transaction, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return Transaction{}, fmt.Errorf("transaction: expected record, got %T", v)
	}

	t := Transaction{
		ID:            r.Str("id"),
		Amount:        r.Int("amount"),
		Status:        TransactionStatus(r.Variant("status")),
		PaymentMethod: PaymentMethod(r.Variant("paymentMethod")),
		From:          r.Str("from"),
		To:            r.Str("to"),
		Timestamp:     icpx.NanosToTime(r.Int("timestamp")),
	}
	t.AmountICP = icpx.FromE8s(t.Amount)
	t.AmountFormatted = icpx.Format(t.Amount)
	return t, nil
}

// HistoryFromValue decodes a normalized wire value into a TransactionHistory.
func HistoryFromValue(v any) (TransactionHistory, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return TransactionHistory{}, fmt.Errorf("history: expected record, got %T", v)
	}

	h := TransactionHistory{
		TotalSpent:  r.Int("totalSpent"),
		TotalEarned: r.Int("totalEarned"),
	}
	for _, pv := range r.List("purchases") {
		p, err := PurchaseFromValue(pv)
		if err != nil {
			return TransactionHistory{}, err
		}
		h.Purchases = append(h.Purchases, p)
	}
	for _, sv := range r.List("sales") {
		s, err := PurchaseFromValue(sv)
		if err != nil {
			return TransactionHistory{}, err
		}
		h.Sales = append(h.Sales, s)
	}
	h.TotalSpentFormatted = icpx.Format(h.TotalSpent)
	h.TotalEarnedFormatted = icpx.Format(h.TotalEarned)
	return h, nil
}

// UserFromValue decodes a normalized wire value into a User.
func UserFromValue(v any) (User, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return User{}, fmt.Errorf("user: expected record, got %T", v)
	}
	return User{
		ID:        r.Str("id"),
		Principal: r.Str("principal"),
		Username:  r.Str("username"),
		Bio:       r.Str("bio"),
		AvatarURL: r.Str("avatarUrl"),
		CreatedAt: icpx.NanosToTime(r.Int("createdAt")),
		UpdatedAt: icpx.NanosToTime(r.Int("updatedAt")),
	}, nil
}

// AssetStatsFromValue decodes a normalized wire value into AssetStats.
func AssetStatsFromValue(v any) (AssetStats, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return AssetStats{}, fmt.Errorf("asset stats: expected record, got %T", v)
	}
	s := AssetStats{
		AssetID:      r.Str("assetId"),
		Downloads:    r.Int("downloads"),
		Rating:       r.Num("rating"),
		TimesSold:    r.Int("timesSold"),
		TotalRevenue: r.Int("totalRevenue"),
	}
	s.TotalRevenueFormatted = icpx.Format(s.TotalRevenue)
	return s, nil
}

// StatsFromValue decodes a normalized wire value into UserStats.
func StatsFromValue(v any) (UserStats, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return UserStats{}, fmt.Errorf("stats: expected record, got %T", v)
	}
	s := UserStats{
		TotalAssetsCreated: r.Int("totalAssetsCreated"),
		TotalAssetsSold:    r.Int("totalAssetsSold"),
		TotalEarnings:      r.Int("totalEarnings"),
		AverageRating:      r.Num("averageRating"),
		JoinedAt:           icpx.NanosToTime(r.Int("joinedAt")),
	}
	s.TotalEarningsFormatted = icpx.Format(s.TotalEarnings)
	return s, nil
}

// MarketplaceStatsFromValue decodes the marketplace-wide aggregates and
// derives the formatted volume, fee and average-value fields.
func MarketplaceStatsFromValue(v any) (MarketplaceStats, error) {
	r, ok := candid.AsRecord(v)
	if !ok {
		return MarketplaceStats{}, fmt.Errorf("marketplace stats: expected record, got %T", v)
	}
	s := MarketplaceStats{
		TotalListings:     r.Int("totalListings"),
		ActiveListings:    r.Int("activeListings"),
		TotalTransactions: r.Int("totalTransactions"),
		TotalVolume:       r.Int("totalVolume"),
		TotalFees:         r.Int("totalFees"),
	}
	s.TotalVolumeFormatted = icpx.Format(s.TotalVolume)
	s.TotalFeesFormatted = icpx.Format(s.TotalFees)
	if s.TotalTransactions > 0 {
		s.AverageTransactionValue = float64(s.TotalVolume) / float64(s.TotalTransactions)
	}
	return s, nil
}
