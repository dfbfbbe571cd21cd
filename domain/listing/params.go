package listing

import "github.com/x-xyz/klvmarket/domain"

// ListParams are the query parameters of GET /listings.
type ListParams struct {
	Network    domain.Network       `query:"network" validate:"required"`
	Collection *domain.CollectionId `query:"collection"`
	// smallest units, inclusive
	MinPrice   *uint64              `query:"minPrice"`
	MaxPrice   *uint64              `query:"maxPrice"`
	Search     string               `query:"search"`
	Sort       SortOption           `query:"sort"`
	Page       int                  `query:"page" validate:"gte=0"`
	Limit      int                  `query:"limit" validate:"gte=0,lte=100"`
}

func (p ListParams) Filter() Filter {
	return Filter{
		CollectionId: p.Collection,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		Search:       p.Search,
		Sort:         p.Sort,
	}
}

func (p ListParams) PageRequest() PageRequest {
	return PageRequest{Page: p.Page, Limit: p.Limit}
}
