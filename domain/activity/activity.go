package activity

import (
	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
)

type Kind string

const (
	KindSale    Kind = "sale"
	KindListing Kind = "listing"
	KindCancel  Kind = "cancel"
)

// ContractType is the numeric klever contract code.
type ContractType int32

const (
	ContractTypeBuy               ContractType = 17
	ContractTypeSell              ContractType = 18
	ContractTypeCancelMarketOrder ContractType = 19
)

// ContractKinds maps marketplace contract codes to activity kinds. Codes missing
// here produce no activity.
var ContractKinds = map[ContractType]Kind{
	ContractTypeBuy:               KindSale,
	ContractTypeSell:              KindListing,
	ContractTypeCancelMarketOrder: KindCancel,
}

// MarketplaceContractTypes lists the codes in a stable order.
var MarketplaceContractTypes = []ContractType{
	ContractTypeBuy,
	ContractTypeSell,
	ContractTypeCancelMarketOrder,
}

func KindOf(t ContractType) (Kind, bool) {
	k, ok := ContractKinds[t]
	return k, ok
}

// Activity is a marketplace event rebuilt from a transaction record.
type Activity struct {
	Kind             Kind               `json:"kind"`
	TxHash           domain.TxHash      `json:"txHash"`
	Timestamp        int64              `json:"timestamp"`
	CollectionId     string             `json:"collectionId"`
	Index            string             `json:"index"`
	OrderId          string             `json:"orderId,omitempty"`
	Price            *uint64            `json:"price,omitempty"`
	Currency         *domain.CurrencyId `json:"currency,omitempty"`
	CounterpartyFrom *domain.Address    `json:"counterpartyFrom,omitempty"`
	CounterpartyTo   *domain.Address    `json:"counterpartyTo,omitempty"`
}

type UseCase interface {
	// List returns the feed of a network, most recent first.
	List(c ctx.Ctx, network domain.Network, page, limit int) ([]*Activity, error)
}

// ListParams are the query parameters of GET /activities.
type ListParams struct {
	Network domain.Network `query:"network" validate:"required"`
	Page    int            `query:"page" validate:"gte=0"`
	Limit   int            `query:"limit" validate:"gte=0,lte=100"`
}
