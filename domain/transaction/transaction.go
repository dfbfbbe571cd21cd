package transaction

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
)

type Op string

const (
	OpBuy    Op = "buy"
	OpSell   Op = "sell"
	OpCancel Op = "cancel"
)

// ContractType returns the contract code an operation submits.
func (o Op) ContractType() activity.ContractType {
	switch o {
	case OpBuy:
		return activity.ContractTypeBuy
	case OpSell:
		return activity.ContractTypeSell
	case OpCancel:
		return activity.ContractTypeCancelMarketOrder
	}
	return 0
}

type State string

const (
	StateIdle         State = "idle"
	StateBuilding     State = "building"
	StateSigning      State = "signing"
	StateBroadcasting State = "broadcasting"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

var nextStates = map[State][]State{
	StateIdle:         {StateBuilding, StateFailed},
	StateBuilding:     {StateSigning, StateFailed},
	StateSigning:      {StateBroadcasting, StateFailed},
	StateBroadcasting: {StateSucceeded, StateFailed},
}

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransitionTo only allows moving forward one step, or failing from any
// non terminal state.
func (s State) CanTransitionTo(next State) bool {
	for _, n := range nextStates[s] {
		if n == next {
			return true
		}
	}
	return false
}

const (
	// BuyTypeMarket buys a listed order at its price
	BuyTypeMarket = 1
	// MarketTypeBuyItNow lists at a fixed price
	MarketTypeBuyItNow = 0
)

type BuyPayload struct {
	BuyType    int               `json:"buyType"`
	Id         string            `json:"id"`
	CurrencyId domain.CurrencyId `json:"currencyId"`
	Amount     uint64            `json:"amount"`
}

type SellPayload struct {
	MarketType    int               `json:"marketType"`
	MarketplaceId string            `json:"marketplaceId"`
	AssetId       string            `json:"assetId"`
	CurrencyId    domain.CurrencyId `json:"currencyId"`
	Price         uint64            `json:"price"`
	EndTime       int64             `json:"endTime"`
}

type CancelPayload struct {
	OrderId string `json:"orderId"`
}

// ContractCall is one entry of the array handed to the bridge build call.
type ContractCall struct {
	Type    activity.ContractType `json:"type"`
	Payload interface{}           `json:"payload"`
}

// Built and Signed are opaque to this service, they travel between bridge calls as is.
type Built json.RawMessage

type Signed json.RawMessage

func (b Built) MarshalJSON() ([]byte, error) {
	return marshalRaw(b)
}

func (b *Built) UnmarshalJSON(data []byte) error {
	*b = append((*b)[0:0], data...)
	return nil
}

func (s Signed) MarshalJSON() ([]byte, error) {
	return marshalRaw(s)
}

func (s *Signed) UnmarshalJSON(data []byte) error {
	*s = append((*s)[0:0], data...)
	return nil
}

func marshalRaw(b []byte) ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return b, nil
}

type BroadcastData struct {
	TxsHashes []domain.TxHash `json:"txsHashes"`
}

type BroadcastResponse struct {
	Data  *BroadcastData `json:"data,omitempty"`
	Error string         `json:"error,omitempty"`
}

// FirstHash returns the first broadcast hash, false when there is none or the
// response carries an error.
func (r *BroadcastResponse) FirstHash() (domain.TxHash, bool) {
	if r == nil || r.Error != "" || r.Data == nil {
		return "", false
	}
	for _, h := range r.Data.TxsHashes {
		if h != "" {
			return h, true
		}
	}
	return "", false
}

// Bridge is the wallet capability that builds, signs and broadcasts transactions.
type Bridge interface {
	BuildTransaction(c ctx.Ctx, network domain.Network, calls []ContractCall) (Built, error)
	SignTransaction(c ctx.Ctx, network domain.Network, tx Built) (Signed, error)
	BroadcastTransactions(c ctx.Ctx, network domain.Network, txs []Signed) (*BroadcastResponse, error)
}

type BuyInput struct {
	OrderId    string            `json:"orderId" validate:"required"`
	CurrencyId domain.CurrencyId `json:"currencyId" validate:"required"`
	// Price is the display price, converted to smallest units before building
	Price      decimal.Decimal   `json:"price"`
}

type SellInput struct {
	CollectionId  domain.CollectionId `json:"collectionId" validate:"required"`
	Index         uint64              `json:"index"`
	CurrencyId    domain.CurrencyId   `json:"currencyId" validate:"required"`
	Price         decimal.Decimal     `json:"price"`
	Days          int                 `json:"days"`
	// MarketplaceId overrides the network default when set
	MarketplaceId string              `json:"marketplaceId,omitempty"`
}

type CancelInput struct {
	OrderId string `json:"orderId" validate:"required"`
}

// Result is the terminal outcome of one operation.
type Result struct {
	OperationId string           `json:"operationId"`
	Op          Op               `json:"op"`
	State       State            `json:"state"`
	TxHash      domain.TxHash    `json:"txHash,omitempty"`
	ExplorerUrl string           `json:"explorerUrl,omitempty"`
	ErrorKind   domain.ErrorKind `json:"errorKind,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// StateChange is reported to observers on every transition.
type StateChange struct {
	OperationId string
	Op          Op
	From        State
	To          State
}

type UseCase interface {
	Buy(c ctx.Ctx, network domain.Network, in BuyInput) (*Result, error)
	Sell(c ctx.Ctx, network domain.Network, in SellInput) (*Result, error)
	Cancel(c ctx.Ctx, network domain.Network, in CancelInput) (*Result, error)
}

// BuyRequest, SellRequest and CancelRequest are the bodies of POST /transactions/*.
type BuyRequest struct {
	Network domain.Network `json:"network" validate:"required"`
	BuyInput
}

type SellRequest struct {
	Network domain.Network `json:"network" validate:"required"`
	SellInput
}

type CancelRequest struct {
	Network domain.Network `json:"network" validate:"required"`
	CancelInput
}
