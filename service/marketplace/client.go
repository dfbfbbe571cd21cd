package marketplace

import (
	"net/http"
	"time"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/order"
)

type QueryOptions struct {
	Status       *order.Status
	Page         *int
	Limit        *int
	SortBy       *string
	OrderBy      *string
	Collection   *domain.CollectionId
	ContractType *activity.ContractType
	TxStatus     *string
}

type QueryOptionsFunc func(*QueryOptions) error

func ParseQueryOptions(opts ...QueryOptionsFunc) (QueryOptions, error) {
	opt := QueryOptions{}
	for _, f := range opts {
		err := f(&opt)
		if err != nil {
			return opt, err
		}
	}
	return opt, nil
}

func WithStatus(s order.Status) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		opt.Status = &s
		return nil
	}
}

func WithPage(page int) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		if page < 1 {
			return domain.Errorf(domain.KindInvalidInput, "page %d < 1", page)
		}
		opt.Page = &page
		return nil
	}
}

func WithLimit(limit int) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		if limit < 1 {
			return domain.Errorf(domain.KindInvalidInput, "limit %d < 1", limit)
		}
		opt.Limit = &limit
		return nil
	}
}

// WithSort sets the upstream sort field and direction (asc|desc).
func WithSort(sortBy, orderBy string) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		opt.SortBy = &sortBy
		opt.OrderBy = &orderBy
		return nil
	}
}

func WithCollection(c domain.CollectionId) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		opt.Collection = &c
		return nil
	}
}

func WithContractType(t activity.ContractType) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		opt.ContractType = &t
		return nil
	}
}

func WithTxStatus(s string) QueryOptionsFunc {
	return func(opt *QueryOptions) error {
		opt.TxStatus = &s
		return nil
	}
}

// Client talks to the klever marketplace api. apiUrl is resolved per network by
// the caller.
type Client interface {
	ListOrders(ctx bCtx.Ctx, apiUrl string, opts ...QueryOptionsFunc) (*order.Page, error)
	GetAsset(ctx bCtx.Ctx, apiUrl string, id asset.Id) (*asset.Metadata, error)
	ListTransactions(ctx bCtx.Ctx, apiUrl string, opts ...QueryOptionsFunc) (*TransactionPage, error)
}

type ClientCfg struct {
	HttpClient        http.Client
	Timeout           time.Duration
	// RequestsPerSecond caps outbound calls, 0 disables the limit
	RequestsPerSecond float64
	Burst             int
}

// Receipt is a side effect emitted by the chain while executing a contract.
type Receipt struct {
	Type          int            `json:"type"`
	AssetId       string         `json:"assetId"`
	From          domain.Address `json:"from"`
	To            domain.Address `json:"to"`
	Value         uint64         `json:"value"`
	OrderId       string         `json:"orderId"`
	MarketplaceId string         `json:"marketplaceId"`
}

// Parameter is the union of the buy, sell and cancel contract parameters.
type Parameter struct {
	// buy
	BuyType       int    `json:"buyType"`
	Id            string `json:"id"`
	Amount        uint64 `json:"amount"`
	// sell
	MarketType    int    `json:"marketType"`
	MarketplaceId string `json:"marketplaceId"`
	AssetId       string `json:"assetId"`
	Price         uint64 `json:"price"`
	EndTime       int64  `json:"endTime"`
	// cancel
	OrderId       string `json:"orderId"`

	CurrencyId domain.CurrencyId `json:"currencyId"`
}

type Contract struct {
	Type      activity.ContractType `json:"type"`
	TypeName  string                `json:"typeString"`
	Parameter Parameter             `json:"parameter"`
}

type Transaction struct {
	Hash      domain.TxHash  `json:"hash"`
	Sender    domain.Address `json:"sender"`
	Timestamp int64          `json:"timestamp"`
	Status    string         `json:"status"`
	Contract  []Contract     `json:"contract"`
	Receipts  []Receipt      `json:"receipts"`
}

type TransactionPage struct {
	Transactions []*Transaction    `json:"transactions"`
	Pagination   domain.Pagination `json:"pagination"`
}

type ordersResp struct {
	Data struct {
		Orders []*order.Order `json:"orders"`
	} `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Error      string            `json:"error"`
}

type assetResp struct {
	Data struct {
		Asset *asset.Metadata `json:"asset"`
	} `json:"data"`
	Error string `json:"error"`
}

type transactionsResp struct {
	Data struct {
		Transactions []*Transaction `json:"transactions"`
	} `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Error      string            `json:"error"`
}
