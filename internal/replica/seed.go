package replica

// Seed loads a few demo assets so a fresh replica has something to
// browse. Each asset is owned by its creator and listed for sale.
func Seed(s *Store) {
	samples := []*assetRec{
		{
			ID:          "asset-1",
			Creator:     "demo-seller-1",
			Owner:       "demo-seller-1",
			Title:       "Cyberpunk City Environment",
			Description: "A futuristic cyberpunk cityscape perfect for VR exploration",
			Category:    "Environment",
			Tags:        []string{"cyberpunk", "city", "futuristic", "neon"},
			Price:       500_000_000,
			IsForSale:   true,
			Downloads:   156,
			Rating:      4.8,
			FileSize:    48 * 1024 * 1024,
			FileFormat:  "glb",
			PreviewURL:  "/demo-assets/cyberpunk-city.jpg",
			VRPlatforms: []string{"Oculus Quest", "HTC Vive", "WebXR"},
		},
		{
			ID:          "asset-2",
			Creator:     "demo-seller-2",
			Owner:       "demo-seller-2",
			Title:       "Medieval Knight Character",
			Description: "Fully rigged medieval knight with animations",
			Category:    "Character",
			Tags:        []string{"medieval", "knight", "character", "rigged"},
			Price:       300_000_000,
			IsForSale:   true,
			Downloads:   203,
			Rating:      4.9,
			FileSize:    24 * 1024 * 1024,
			FileFormat:  "fbx",
			PreviewURL:  "/demo-assets/medieval-knight.jpg",
			VRPlatforms: []string{"Oculus Quest", "Valve Index"},
		},
		{
			ID:          "asset-3",
			Creator:     "demo-seller-1",
			Owner:       "demo-seller-1",
			Title:       "Space Station Interior",
			Description: "Detailed space station interior with interactive elements",
			Category:    "Environment",
			Tags:        []string{"space", "station", "sci-fi", "interior"},
			Price:       800_000_000,
			IsForSale:   true,
			Downloads:   98,
			Rating:      4.7,
			FileSize:    64 * 1024 * 1024,
			FileFormat:  "gltf",
			PreviewURL:  "/demo-assets/space-station.jpg",
			VRPlatforms: []string{"HTC Vive", "Valve Index", "WebXR"},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nanos()
	for _, a := range samples {
		a.FileHash = "sha256:" + a.ID
		a.CreatedAt = now
		a.UpdatedAt = now
		s.assets[a.ID] = a
		s.listings["listing-"+a.ID] = &listingRec{
			ID:          "listing-" + a.ID,
			AssetID:     a.ID,
			Seller:      a.Owner,
			Price:       a.Price,
			Description: a.Description,
			IsActive:    true,
			ListedAt:    now,
		}
	}
}
