package replica

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vrmarket/vrmarket/internal/candid"
	"github.com/vrmarket/vrmarket/internal/identity"
)

// marketplaceFeeRate matches the fee the client's estimator assumes.
const marketplaceFeeRate = 0.025

// MarketplaceCanister serves listings, purchases and marketplace stats.
type MarketplaceCanister struct {
	store *Store
}

func NewMarketplaceCanister(store *Store) *MarketplaceCanister {
	return &MarketplaceCanister{store: store}
}

func (c *MarketplaceCanister) Invoke(caller, kind, method string, args []any) (any, error) {
	switch method {
	case "createListing":
		return c.createListing(caller, args)
	case "getListing":
		return c.getListing(args)
	case "getActiveListings":
		return c.listingsWhere(func(l *listingRec) bool { return l.IsActive }), nil
	case "getListingsBySeller":
		return c.getListingsBySeller(args)
	case "getMyListings":
		return c.listingsWhere(func(l *listingRec) bool { return l.Seller == caller }), nil
	case "updateListing":
		return c.updateListing(caller, args)
	case "deleteListing":
		return c.deleteListing(caller, args)
	case "purchaseAsset":
		return c.purchaseAsset(caller, args)
	case "getMyTransactionHistory":
		return c.getMyTransactionHistory(caller)
	case "getTransaction":
		return c.getTransaction(args)
	case "getPurchaseRecord":
		return c.getPurchaseRecord(args)
	case "getMarketplaceStats":
		return c.getMarketplaceStats(), nil
	case "getFeaturedListings":
		return c.listingsWhere(func(l *listingRec) bool { return l.IsActive }), nil
	case "searchListings":
		return c.searchListings(args)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownMethod, method)
	}
}

func (c *MarketplaceCanister) createListing(caller string, args []any) (any, error) {
	if caller == identity.AnonymousPrincipal {
		return fail(errUnauthorized()), nil
	}
	if len(args) < 1 {
		return fail(errBadRequest("listing data is required")), nil
	}
	data, isRec := candid.AsRecord(args[0])
	if !isRec {
		return fail(errBadRequest("listing data must be a record")), nil
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, found := s.assets[data.Str("assetId")]
	if !found {
		return fail(errNotFound()), nil
	}
	if asset.Owner != caller {
		return fail(errUnauthorized()), nil
	}

	l := &listingRec{
		ID:          s.newID(),
		AssetID:     asset.ID,
		Seller:      caller,
		Price:       data.Int("price"),
		Description: data.Str("description"),
		IsActive:    true,
		ListedAt:    s.nanos(),
	}
	s.listings[l.ID] = l
	asset.IsForSale = true
	asset.Price = l.Price
	asset.UpdatedAt = s.nanos()
	return ok(c.listingWireLocked(l)), nil
}

func (c *MarketplaceCanister) getListing(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("listing id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	l, found := c.store.listings[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(c.listingWireLocked(l)), nil
}

func (c *MarketplaceCanister) getListingsBySeller(args []any) (any, error) {
	seller, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("seller id is required")), nil
	}
	return c.listingsWhere(func(l *listingRec) bool { return l.Seller == seller }), nil
}

func (c *MarketplaceCanister) updateListing(caller string, args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("listing id is required")), nil
	}
	patch := candid.Record{}
	if len(args) > 1 {
		if r, isRec := candid.AsRecord(args[1]); isRec {
			patch = r
		}
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	l, found := s.listings[id]
	if !found {
		return fail(errNotFound()), nil
	}
	if l.Seller != caller {
		return fail(errUnauthorized()), nil
	}

	if _, set := patch["price"]; set {
		l.Price = patch.Int("price")
		if asset, ok := s.assets[l.AssetID]; ok {
			asset.Price = l.Price
		}
	}
	if _, set := patch["description"]; set {
		l.Description = patch.Str("description")
	}
	if _, set := patch["isActive"]; set {
		l.IsActive = patch.Bool("isActive")
	}
	return ok(c.listingWireLocked(l)), nil
}

// deleteListing deactivates rather than removes, keeping purchase history
// resolvable.
func (c *MarketplaceCanister) deleteListing(caller string, args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("listing id is required")), nil
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	l, found := s.listings[id]
	if !found {
		return fail(errNotFound()), nil
	}
	if l.Seller != caller {
		return fail(errUnauthorized()), nil
	}
	l.IsActive = false
	if asset, ok := s.assets[l.AssetID]; ok {
		asset.IsForSale = false
	}
	return ok(true), nil
}

func (c *MarketplaceCanister) purchaseAsset(caller string, args []any) (any, error) {
	if caller == identity.AnonymousPrincipal {
		return fail(errUnauthorized()), nil
	}
	if len(args) < 1 {
		return fail(errBadRequest("purchase data is required")), nil
	}
	data, isRec := candid.AsRecord(args[0])
	if !isRec {
		return fail(errBadRequest("purchase data must be a record")), nil
	}
	payment := data.Variant("paymentMethod")
	if payment == "" {
		payment = "ICP"
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	l, found := s.listings[data.Str("listingId")]
	if !found {
		return fail(errNotFound()), nil
	}
	if !l.IsActive {
		return fail(errNotForSale()), nil
	}
	asset, found := s.assets[l.AssetID]
	if !found {
		return fail(errInternal("listing references a missing asset")), nil
	}
	if asset.Owner == caller {
		return fail(errAlreadyOwned()), nil
	}
	if s.balance(caller) < l.Price {
		return fail(errInsufficientFunds()), nil
	}

	fee := int64(float64(l.Price) * marketplaceFeeRate)
	s.balances[caller] = s.balance(caller) - l.Price
	s.balances[l.Seller] = s.balance(l.Seller) + l.Price - fee
	s.totalVolume += l.Price
	s.totalFees += fee

	now := s.nanos()
	tx := &transactionRec{
		ID:            s.newID(),
		Amount:        l.Price,
		Status:        "Completed",
		PaymentMethod: payment,
		From:          caller,
		To:            l.Seller,
		Timestamp:     now,
	}
	s.transactions[tx.ID] = tx

	p := &purchaseRec{
		ID:        s.newID(),
		AssetID:   asset.ID,
		ListingID: l.ID,
		Buyer:     caller,
		Seller:    l.Seller,
		Price:     l.Price,
		Timestamp: now,
	}
	s.purchases[p.ID] = p

	asset.Owner = caller
	asset.IsForSale = false
	asset.Downloads++
	asset.UpdatedAt = now
	l.IsActive = false

	return ok(c.purchaseWireLocked(p)), nil
}

func (c *MarketplaceCanister) getMyTransactionHistory(caller string) (any, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		purchases   []any
		sales       []any
		totalSpent  int64
		totalEarned int64
	)
	for _, id := range sortedPurchaseIDs(s) {
		p := s.purchases[id]
		if p.Buyer == caller {
			purchases = append(purchases, c.purchaseWireLocked(p))
			totalSpent += p.Price
		}
		if p.Seller == caller {
			sales = append(sales, c.purchaseWireLocked(p))
			totalEarned += p.Price
		}
	}
	if purchases == nil {
		purchases = []any{}
	}
	if sales == nil {
		sales = []any{}
	}
	return ok(map[string]any{
		"purchases":   purchases,
		"sales":       sales,
		"totalSpent":  totalSpent,
		"totalEarned": totalEarned,
	}), nil
}

func (c *MarketplaceCanister) getTransaction(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("transaction id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	tx, found := c.store.transactions[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(tx.wire()), nil
}

func (c *MarketplaceCanister) getPurchaseRecord(args []any) (any, error) {
	id, err := argStr(args, 0)
	if err != nil {
		return fail(errBadRequest("purchase id is required")), nil
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	p, found := c.store.purchases[id]
	if !found {
		return fail(errNotFound()), nil
	}
	return ok(c.purchaseWireLocked(p)), nil
}

func (c *MarketplaceCanister) getMarketplaceStats() any {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, l := range s.listings {
		if l.IsActive {
			active++
		}
	}
	return ok(map[string]any{
		"totalListings":     int64(len(s.listings)),
		"activeListings":    int64(active),
		"totalTransactions": int64(len(s.transactions)),
		"totalVolume":       s.totalVolume,
		"totalFees":         s.totalFees,
	})
}

func (c *MarketplaceCanister) searchListings(args []any) (any, error) {
	term := ""
	if len(args) > 0 {
		term, _ = args[0].(string)
	}
	term = strings.ToLower(term)

	return c.listingsWhere(func(l *listingRec) bool {
		if !l.IsActive {
			return false
		}
		if term == "" {
			return true
		}
		asset, found := c.store.assets[l.AssetID]
		if !found {
			return false
		}
		return strings.Contains(strings.ToLower(asset.Title), term) ||
			strings.Contains(strings.ToLower(asset.Description), term)
	}), nil
}

func (c *MarketplaceCanister) listingsWhere(keep func(*listingRec) bool) []any {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	ids := make([]string, 0, len(c.store.listings))
	for id, l := range c.store.listings {
		if keep(l) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.listingWireLocked(c.store.listings[id]))
	}
	return out
}

// listingWireLocked renders a listing with its asset embedded. Caller holds
// the store lock.
func (c *MarketplaceCanister) listingWireLocked(l *listingRec) map[string]any {
	w := map[string]any{
		"id":          l.ID,
		"assetId":     l.AssetID,
		"seller":      l.Seller,
		"price":       l.Price,
		"description": l.Description,
		"isActive":    l.IsActive,
		"listedAt":    l.ListedAt,
	}
	if asset, found := c.store.assets[l.AssetID]; found {
		w["asset"] = asset.wire()
	}
	return w
}

func (c *MarketplaceCanister) purchaseWireLocked(p *purchaseRec) map[string]any {
	w := map[string]any{
		"id":        p.ID,
		"assetId":   p.AssetID,
		"listingId": p.ListingID,
		"buyer":     p.Buyer,
		"seller":    p.Seller,
		"price":     p.Price,
		"timestamp": p.Timestamp,
	}
	if asset, found := c.store.assets[p.AssetID]; found {
		w["asset"] = asset.wire()
	}
	return w
}

func sortedPurchaseIDs(s *Store) []string {
	ids := make([]string, 0, len(s.purchases))
	for id := range s.purchases {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.purchases[ids[i]].Timestamp > s.purchases[ids[j]].Timestamp
	})
	return ids
}
