package listing

import (
	"fmt"
	"strings"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s != StatusActive
}

// CanTransitionTo allows only active to sold, cancelled or expired.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusActive {
		return false
	}
	switch next {
	case StatusSold, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

type Asset struct {
	CollectionId domain.CollectionId `json:"collectionId"`
	Index        uint64              `json:"index"`
	Name         string              `json:"name"`
	ImageUrl     *string             `json:"imageUrl,omitempty"`
	Creator      domain.Address      `json:"creator"`
	Owner        domain.Address      `json:"owner"`
	RoyaltyBps   uint32              `json:"royaltyBps"`
	ExplorerUrl  string              `json:"explorerUrl,omitempty"`
}

// Id is the klever asset id COL-XXXX/42.
func (a Asset) Id() string {
	return fmt.Sprintf("%s/%d", a.CollectionId, a.Index)
}

type Listing struct {
	Id        string            `json:"id"`
	Asset     Asset             `json:"asset"`
	Seller    domain.Address    `json:"seller"`
	Price     uint64            `json:"price"`
	Currency  domain.CurrencyId `json:"currency"`
	Status    Status            `json:"status"`
	CreatedAt int64             `json:"createdAt"`
	ExpiresAt *int64            `json:"expiresAt,omitempty"`
}

// Expire returns l marked expired when it is active and past its expiry, l otherwise.
func (l *Listing) Expire(now int64) *Listing {
	if l.ExpiresAt == nil || *l.ExpiresAt > now || !l.Status.CanTransitionTo(StatusExpired) {
		return l
	}
	cp := *l
	cp.Status = StatusExpired
	return &cp
}

type SortOption string

const (
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortRecent    SortOption = "recent"
	SortOldest    SortOption = "oldest"
)

func (s SortOption) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortRecent, SortOldest:
		return true
	}
	return false
}

type Filter struct {
	CollectionId *domain.CollectionId `json:"collectionId,omitempty"`
	MinPrice     *uint64              `json:"minPrice,omitempty"`
	MaxPrice     *uint64              `json:"maxPrice,omitempty"`
	Search       string               `json:"search,omitempty"`
	Sort         SortOption           `json:"sort,omitempty"`
}

// Key serializes the filter deterministically. Two filters selecting the same
// listings produce the same key.
func (f Filter) Key() string {
	parts := make([]string, 0, 5)
	if f.CollectionId != nil {
		parts = append(parts, "collection="+string(*f.CollectionId))
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min=%d", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max=%d", *f.MaxPrice))
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		parts = append(parts, "search="+s)
	}
	parts = append(parts, "sort="+string(f.Sort))
	return strings.Join(parts, "|")
}

// Apply keeps the listings matching min, max and search, in that order. Collection
// and sort are answered upstream.
func (f Filter) Apply(ls []*Listing) []*Listing {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	res := make([]*Listing, 0, len(ls))
	for _, l := range ls {
		if f.MinPrice != nil && l.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && l.Price > *f.MaxPrice {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Asset.Name), search) &&
			!strings.Contains(strings.ToLower(string(l.Asset.CollectionId)), search) {
			continue
		}
		res = append(res, l)
	}
	return res
}

type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p PageRequest) Key() string {
	return fmt.Sprintf("page=%d|limit=%d", p.Page, p.Limit)
}

type Page struct {
	Listings []*Listing `json:"listings"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"hasMore"`
}

// EmptyPage is what callers see next to a query error.
func EmptyPage() *Page {
	return &Page{Listings: []*Listing{}}
}

type UseCase interface {
	List(c ctx.Ctx, network domain.Network, filter Filter, page PageRequest) (*Page, error)
	// Invalidate drops every cached page of the network.
	Invalidate(c ctx.Ctx, network domain.Network) error
}
