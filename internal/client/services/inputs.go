package services

import (
	"github.com/vrmarket/vrmarket/internal/client/models"
	"github.com/vrmarket/vrmarket/internal/icpx"
	"github.com/vrmarket/vrmarket/internal/validation"
)

const maxAssetFileSize = 100 * 1024 * 1024

// CreateAssetInput describes a new asset. Price is in ICP, not e8s; the
// service converts before the request leaves the process.
type CreateAssetInput struct {
	Title       string
	Description string
	Category    models.Category
	Tags        []string
	Price       float64
	FileSize    int64
	FileFormat  string
	FileHash    string
	PreviewURL  string
	VRPlatforms []string
}

func (in *CreateAssetInput) Validate() error {
	var v validation.Validator
	v.Check(validation.LenBetween(in.Title, 3, 100), "title", "Title must be between 3 and 100 characters")
	v.Check(validation.LenBetween(in.Description, 10, 2000), "description", "Description must be between 10 and 2000 characters")
	v.Check(isCategory(string(in.Category)), "category", "Invalid asset category")
	v.Check(len(in.Tags) <= 10, "tags", "Cannot have more than 10 tags")
	for _, tag := range in.Tags {
		v.Check(validation.LenBetween(tag, 1, 30), "tags", "Tags must be between 1 and 30 characters")
	}
	v.Check(validation.Between(in.Price, 0, 1_000_000), "price", "Price must be between 0 and 1,000,000 ICP")
	v.Check(in.FileSize > 0, "fileSize", "File size must be positive")
	v.Check(in.FileSize <= maxAssetFileSize, "fileSize", "File size cannot exceed 100MB")
	v.Check(validation.OneOf(in.FileFormat, models.FileFormats...), "fileFormat", "Unsupported file format")
	v.Check(validation.NotBlank(in.FileHash), "fileHash", "File hash is required")
	v.Check(len(in.VRPlatforms) >= 1, "vrPlatforms", "At least one VR platform must be selected")
	v.Check(len(in.VRPlatforms) <= 10, "vrPlatforms", "Cannot select more than 10 platforms")
	for _, p := range in.VRPlatforms {
		v.Check(validation.OneOf(p, models.VRPlatforms...), "vrPlatforms", "Unknown VR platform")
	}
	return v.Err()
}

func (in *CreateAssetInput) wire() map[string]any {
	return map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"category":    map[string]any{string(in.Category): nil},
		"tags":        in.Tags,
		"price":       icpx.ToE8s(in.Price),
		"fileSize":    in.FileSize,
		"fileFormat":  in.FileFormat,
		"fileHash":    in.FileHash,
		"previewUrl":  in.PreviewURL,
		"vrPlatforms": in.VRPlatforms,
	}
}

// UpdateAssetInput carries a partial asset update; nil fields stay
// unchanged.
type UpdateAssetInput struct {
	Title       *string
	Description *string
	Tags        []string
	Price       *float64
	IsForSale   *bool
	PreviewURL  *string
}

func (in *UpdateAssetInput) Validate() error {
	var v validation.Validator
	if in.Title != nil {
		v.Check(validation.LenBetween(*in.Title, 3, 100), "title", "Title must be between 3 and 100 characters")
	}
	if in.Description != nil {
		v.Check(validation.LenBetween(*in.Description, 10, 2000), "description", "Description must be between 10 and 2000 characters")
	}
	v.Check(len(in.Tags) <= 10, "tags", "Cannot have more than 10 tags")
	if in.Price != nil {
		v.Check(validation.Between(*in.Price, 0, 1_000_000), "price", "Price must be between 0 and 1,000,000 ICP")
	}
	return v.Err()
}

func (in *UpdateAssetInput) wire() map[string]any {
	m := map[string]any{}
	if in.Title != nil {
		m["title"] = *in.Title
	}
	if in.Description != nil {
		m["description"] = *in.Description
	}
	if in.Tags != nil {
		m["tags"] = in.Tags
	}
	if in.Price != nil {
		m["price"] = icpx.ToE8s(*in.Price)
	}
	if in.IsForSale != nil {
		m["isForSale"] = *in.IsForSale
	}
	if in.PreviewURL != nil {
		m["previewUrl"] = *in.PreviewURL
	}
	return m
}

// SearchFilters narrow an asset search. Prices are in ICP.
type SearchFilters struct {
	Query    string
	Category models.Category
	Tags     []string
	MinPrice *float64
	MaxPrice *float64
	SortBy   SortKey
}

func (f *SearchFilters) Validate() error {
	var v validation.Validator
	v.Check(len(f.Query) <= 100, "query", "Search query too long")
	if f.Category != "" {
		v.Check(isCategory(string(f.Category)), "category", "Invalid asset category")
	}
	if f.MinPrice != nil {
		v.Check(*f.MinPrice >= 0, "minPrice", "Price must be non-negative")
	}
	if f.MaxPrice != nil {
		v.Check(*f.MaxPrice >= 0, "maxPrice", "Price must be non-negative")
	}
	return v.Err()
}

// wire re-encodes the filters for the canister: category becomes a variant
// and prices become e8s.
func (f *SearchFilters) wire() map[string]any {
	m := map[string]any{}
	if f.Query != "" {
		m["query"] = f.Query
	}
	if f.Category != "" {
		m["category"] = map[string]any{string(f.Category): nil}
	}
	if len(f.Tags) > 0 {
		m["tags"] = f.Tags
	}
	if f.MinPrice != nil {
		m["minPrice"] = icpx.ToE8s(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		m["maxPrice"] = icpx.ToE8s(*f.MaxPrice)
	}
	return m
}

// CreateListingInput puts an asset up for sale. Price is in ICP.
type CreateListingInput struct {
	AssetID     string
	Price       float64
	Description string
}

func (in *CreateListingInput) Validate() error {
	var v validation.Validator
	v.Check(validation.NotBlank(in.AssetID), "assetId", "Asset ID is required")
	v.Check(validation.Between(in.Price, 0, 1_000_000), "price", "Price must be between 0 and 1,000,000 ICP")
	v.Check(len(in.Description) <= 500, "description", "Description cannot exceed 500 characters")
	return v.Err()
}

func (in *CreateListingInput) wire() map[string]any {
	return map[string]any{
		"assetId":     in.AssetID,
		"price":       icpx.ToE8s(in.Price),
		"description": in.Description,
	}
}

// UpdateListingInput carries a partial listing update.
type UpdateListingInput struct {
	Price       *float64
	Description *string
	IsActive    *bool
}

func (in *UpdateListingInput) Validate() error {
	var v validation.Validator
	if in.Price != nil {
		v.Check(validation.Between(*in.Price, 0, 1_000_000), "price", "Price must be between 0 and 1,000,000 ICP")
	}
	if in.Description != nil {
		v.Check(len(*in.Description) <= 500, "description", "Description cannot exceed 500 characters")
	}
	return v.Err()
}

func (in *UpdateListingInput) wire() map[string]any {
	m := map[string]any{}
	if in.Price != nil {
		m["price"] = icpx.ToE8s(*in.Price)
	}
	if in.Description != nil {
		m["description"] = *in.Description
	}
	if in.IsActive != nil {
		m["isActive"] = *in.IsActive
	}
	return m
}

// PurchaseInput pays for a listing with the chosen token.
type PurchaseInput struct {
	ListingID     string
	PaymentMethod models.PaymentMethod
}

func (in *PurchaseInput) Validate() error {
	var v validation.Validator
	v.Check(validation.NotBlank(in.ListingID), "listingId", "Listing ID is required")
	v.Check(validation.OneOf(string(in.PaymentMethod), string(models.PaymentICP), string(models.PaymentCycles)),
		"paymentMethod", "Invalid payment method")
	return v.Err()
}

func (in *PurchaseInput) wire() map[string]any {
	return map[string]any{
		"listingId":     in.ListingID,
		"paymentMethod": map[string]any{string(in.PaymentMethod): nil},
	}
}

// CreateUserInput registers a profile for the signed-in principal.
type CreateUserInput struct {
	Username  string
	Bio       string
	AvatarURL string
}

func (in *CreateUserInput) Validate() error {
	var v validation.Validator
	v.Check(validation.IsUsername(in.Username), "username",
		"Username must be 3-20 characters using letters, numbers and underscores")
	v.Check(len(in.Bio) <= 500, "bio", "Bio cannot exceed 500 characters")
	return v.Err()
}

func (in *CreateUserInput) wire() map[string]any {
	return map[string]any{
		"username":  in.Username,
		"bio":       in.Bio,
		"avatarUrl": in.AvatarURL,
	}
}

// UpdateUserInput carries a partial profile update.
type UpdateUserInput struct {
	Username  *string
	Bio       *string
	AvatarURL *string
}

func (in *UpdateUserInput) Validate() error {
	var v validation.Validator
	if in.Username != nil {
		v.Check(validation.IsUsername(*in.Username), "username",
			"Username must be 3-20 characters using letters, numbers and underscores")
	}
	if in.Bio != nil {
		v.Check(len(*in.Bio) <= 500, "bio", "Bio cannot exceed 500 characters")
	}
	return v.Err()
}

func (in *UpdateUserInput) wire() map[string]any {
	m := map[string]any{}
	if in.Username != nil {
		m["username"] = *in.Username
	}
	if in.Bio != nil {
		m["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		m["avatarUrl"] = *in.AvatarURL
	}
	return m
}

func isCategory(s string) bool {
	_, err := models.ParseCategory(s)
	return err == nil
}
