package order

import (
	"github.com/x-xyz/klvmarket/domain"
)

// Status is the raw upstream order status.
type Status string

const (
	StatusCreated   Status = "created"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

// Order is a marketplace order as returned by the api.
type Order struct {
	OrderId       string              `json:"orderId"`
	MarketplaceId string              `json:"marketplaceId"`
	OrderType     int                 `json:"orderType"`
	Status        Status              `json:"status"`
	// AssetId is the item identifier, either the bare index or COL-XXXX/42
	AssetId       string              `json:"assetId"`
	CollectionId  domain.CollectionId `json:"collectionId"`
	Owner         domain.Address      `json:"ownerAddress"`
	CurrencyId    domain.CurrencyId   `json:"currencyId"`
	Price         uint64              `json:"price"`
	CreatedAt     int64               `json:"createdAt"`
	EndTime       int64               `json:"endTime"`
}

type Page struct {
	Orders     []*Order          `json:"orders"`
	Pagination domain.Pagination `json:"pagination"`
}
