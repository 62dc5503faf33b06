// Package replica runs an in-memory stand-in for the marketplace canisters
// behind the same HTTP surface a real replica exposes. It backs local
// development and end-to-end tests without a network dependency.
package replica

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vrmarket/vrmarket/internal/identity"
)

// initialGrantE8s is the play-money balance granted to every principal the
// ledger sees for the first time. Local replicas mint freely.
const initialGrantE8s = 100 * 100_000_000

type assetRec struct {
	ID          string
	Creator     string
	Owner       string
	Title       string
	Description string
	Category    string
	Tags        []string
	Price       int64
	IsForSale   bool
	Downloads   int64
	Rating      float64
	FileSize    int64
	FileFormat  string
	FileHash    string
	PreviewURL  string
	VRPlatforms []string
	CreatedAt   int64
	UpdatedAt   int64
}

func (a *assetRec) wire() map[string]any {
	return map[string]any{
		"id":        a.ID,
		"creator":   a.Creator,
		"owner":     a.Owner,
		"price":     a.Price,
		"isForSale": a.IsForSale,
		"downloads": a.Downloads,
		"rating":    a.Rating,
		"metadata": map[string]any{
			"title":       a.Title,
			"description": a.Description,
			"category":    map[string]any{a.Category: nil},
			"tags":        a.Tags,
			"fileSize":    a.FileSize,
			"fileFormat":  a.FileFormat,
			"previewUrl":  a.PreviewURL,
			"vrPlatforms": a.VRPlatforms,
			"createdAt":   a.CreatedAt,
			"updatedAt":   a.UpdatedAt,
		},
	}
}

type listingRec struct {
	ID          string
	AssetID     string
	Seller      string
	Price       int64
	Description string
	IsActive    bool
	ListedAt    int64
}

type purchaseRec struct {
	ID        string
	AssetID   string
	ListingID string
	Buyer     string
	Seller    string
	Price     int64
	Timestamp int64
}

type transactionRec struct {
	ID            string
	Amount        int64
	Status        string
	PaymentMethod string
	From          string
	To            string
	Timestamp     int64
}

func (t *transactionRec) wire() map[string]any {
	return map[string]any{
		"id":            t.ID,
		"amount":        t.Amount,
		"status":        map[string]any{t.Status: nil},
		"paymentMethod": map[string]any{t.PaymentMethod: nil},
		"from":          t.From,
		"to":            t.To,
		"timestamp":     t.Timestamp,
	}
}

type userRec struct {
	ID        string
	Principal string
	Username  string
	Bio       string
	AvatarURL string
	CreatedAt int64
	UpdatedAt int64
}

func (u *userRec) wire() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"principal": u.Principal,
		"username":  u.Username,
		"bio":       u.Bio,
		"avatarUrl": u.AvatarURL,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

// Store is the shared state behind the three canisters. A single lock
// guards everything; canister calls are short and the replica is a dev
// tool, not a throughput target.
type Store struct {
	mu           sync.RWMutex
	assets       map[string]*assetRec
	listings     map[string]*listingRec
	purchases    map[string]*purchaseRec
	transactions map[string]*transactionRec
	users        map[string]*userRec
	balances     map[string]int64
	totalVolume  int64
	totalFees    int64

	now   func() time.Time
	newID func() string
}

func NewStore() *Store {
	return &Store{
		assets:       map[string]*assetRec{},
		listings:     map[string]*listingRec{},
		purchases:    map[string]*purchaseRec{},
		transactions: map[string]*transactionRec{},
		users:        map[string]*userRec{},
		balances:     map[string]int64{},
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}
}

func (s *Store) nanos() int64 { return s.now().UnixNano() }

// balance returns the principal's balance, granting the initial allowance
// on first sight. Caller holds the lock.
func (s *Store) balance(principal string) int64 {
	if principal == identity.AnonymousPrincipal {
		return 0
	}
	if _, seen := s.balances[principal]; !seen {
		s.balances[principal] = initialGrantE8s
	}
	return s.balances[principal]
}

func (s *Store) userByPrincipal(principal string) *userRec {
	for _, u := range s.users {
		if u.Principal == principal {
			return u
		}
	}
	return nil
}

func (s *Store) userByName(username string) *userRec {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}
