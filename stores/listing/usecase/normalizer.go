package usecase

import (
	"fmt"
	"strings"

	"github.com/x-xyz/klvmarket/base/ptr"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/listing"
	"github.com/x-xyz/klvmarket/domain/order"
)

// orderStatuses maps upstream statuses, anything missing is cancelled.
var orderStatuses = map[order.Status]listing.Status{
	order.StatusCreated:   listing.StatusActive,
	order.StatusFulfilled: listing.StatusSold,
}

func ToListingStatus(s order.Status) listing.Status {
	if st, ok := orderStatuses[order.Status(strings.ToLower(string(s)))]; ok {
		return st
	}
	return listing.StatusCancelled
}

// AssetIdOf returns the identity of the asset an order sells.
func AssetIdOf(o *order.Order) asset.Id {
	col := o.CollectionId
	if col == "" {
		if c, _, ok := asset.SplitId(o.AssetId); ok {
			col = domain.CollectionId(c)
		}
	}
	return asset.Id{CollectionId: col, Index: asset.ParseIndex(o.AssetId)}
}

// Normalize builds a listing out of an order and its metadata, m may be nil.
func Normalize(o *order.Order, m *asset.Metadata, img asset.ImageResolver) *listing.Listing {
	id := AssetIdOf(o)

	a := listing.Asset{
		CollectionId: id.CollectionId,
		Index:        id.Index,
		Name:         fmt.Sprintf("%s #%d", displayName(id.CollectionId, m), id.Index),
		Owner:        o.Owner,
	}
	if m != nil {
		if url, ok := img.Resolve(m.Logo, m.Uris); ok {
			a.ImageUrl = ptr.String(url)
		}
		a.Creator = m.Creator
		if !m.Owner.IsEmpty() {
			a.Owner = m.Owner
		}
		a.RoyaltyBps = m.RoyaltyBps()
	}

	l := &listing.Listing{
		Id:        o.OrderId,
		Asset:     a,
		Seller:    o.Owner,
		Price:     o.Price,
		Currency:  o.CurrencyId,
		Status:    ToListingStatus(o.Status),
		CreatedAt: domain.UnixSeconds(o.CreatedAt),
	}
	if o.EndTime > 0 {
		l.ExpiresAt = ptr.Int64(domain.UnixSeconds(o.EndTime))
	}
	return l
}

func displayName(col domain.CollectionId, m *asset.Metadata) string {
	if m != nil {
		for _, n := range []string{m.Name, m.DisplayName, m.Ticker} {
			if n = strings.TrimSpace(n); n != "" {
				return n
			}
		}
	}
	return string(col)
}
