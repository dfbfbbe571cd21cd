package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/base/metrics"
	pricefomatter "github.com/x-xyz/klvmarket/base/price_fomatter"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/listing"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/domain/transaction"
)

const secondsPerDay = 86400

type TransactionUseCaseCfg struct {
	// Bridge may be nil, every operation then fails with domain.ErrNotConnected
	Bridge         transaction.Bridge
	Networks       network.Provider
	Listing        listing.UseCase
	PriceFormatter pricefomatter.PriceFormatter
	OnStateChange  StateObserver
	Now            func() time.Time
}

type transactionUseCase struct {
	bridge    transaction.Bridge
	networks  network.Provider
	listing   listing.UseCase
	formatter pricefomatter.PriceFormatter
	observer  StateObserver
	now       func() time.Time
	metrics   metrics.Service
}

func NewTransactionUseCase(cfg *TransactionUseCaseCfg) transaction.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &transactionUseCase{
		bridge:    cfg.Bridge,
		networks:  cfg.Networks,
		listing:   cfg.Listing,
		formatter: cfg.PriceFormatter,
		observer:  cfg.OnStateChange,
		now:       now,
		metrics:   metrics.New("transaction"),
	}
}

// payloadBuilder assembles the contract calls of an operation. It runs in the
// building state and must not talk to the bridge.
type payloadBuilder func(cfg *network.Config) ([]transaction.ContractCall, error)

func (u *transactionUseCase) Buy(c bCtx.Ctx, n domain.Network, in transaction.BuyInput) (*transaction.Result, error) {
	return u.run(c, n, transaction.OpBuy, func(cfg *network.Config) ([]transaction.ContractCall, error) {
		if strings.TrimSpace(in.OrderId) == "" {
			return nil, domain.Errorf(domain.KindInvalidInput, "missing order id")
		}
		currency := in.CurrencyId.Normalize()
		amount, err := u.toPositiveUnits(in.Price, currency)
		if err != nil {
			return nil, err
		}
		return []transaction.ContractCall{{
			Type: transaction.OpBuy.ContractType(),
			Payload: transaction.BuyPayload{
				BuyType:    transaction.BuyTypeMarket,
				Id:         in.OrderId,
				CurrencyId: currency,
				Amount:     amount,
			},
		}}, nil
	})
}

func (u *transactionUseCase) Sell(c bCtx.Ctx, n domain.Network, in transaction.SellInput) (*transaction.Result, error) {
	return u.run(c, n, transaction.OpSell, func(cfg *network.Config) ([]transaction.ContractCall, error) {
		if in.CollectionId == "" {
			return nil, domain.Errorf(domain.KindInvalidInput, "missing collection id")
		}
		if in.Days < 1 {
			return nil, domain.Errorf(domain.KindInvalidInput, "listing duration %d days < 1", in.Days)
		}
		marketplaceId := in.MarketplaceId
		if marketplaceId == "" {
			marketplaceId = cfg.MarketplaceId
		}
		if marketplaceId == "" {
			return nil, domain.Errorf(domain.KindInvalidInput, "no marketplace id for network %s, pass one or set networks.%s.marketplaceId", cfg.Name, cfg.Name)
		}
		currency := in.CurrencyId.Normalize()
		price, err := u.toPositiveUnits(in.Price, currency)
		if err != nil {
			return nil, err
		}
		return []transaction.ContractCall{{
			Type: transaction.OpSell.ContractType(),
			Payload: transaction.SellPayload{
				MarketType:    transaction.MarketTypeBuyItNow,
				MarketplaceId: marketplaceId,
				AssetId:       fmt.Sprintf("%s/%d", in.CollectionId, in.Index),
				CurrencyId:    currency,
				Price:         price,
				EndTime:       u.now().Unix() + int64(in.Days)*secondsPerDay,
			},
		}}, nil
	})
}

func (u *transactionUseCase) Cancel(c bCtx.Ctx, n domain.Network, in transaction.CancelInput) (*transaction.Result, error) {
	return u.run(c, n, transaction.OpCancel, func(cfg *network.Config) ([]transaction.ContractCall, error) {
		if strings.TrimSpace(in.OrderId) == "" {
			return nil, domain.Errorf(domain.KindInvalidInput, "missing order id")
		}
		return []transaction.ContractCall{{
			Type:    transaction.OpCancel.ContractType(),
			Payload: transaction.CancelPayload{OrderId: in.OrderId},
		}}, nil
	})
}

func (u *transactionUseCase) toPositiveUnits(display decimal.Decimal, currency domain.CurrencyId) (uint64, error) {
	if !display.IsPositive() {
		return 0, domain.Errorf(domain.KindInvalidInput, "price %s must be positive", display)
	}
	units, err := u.formatter.ToSmallestUnits(display, currency)
	if err != nil {
		return 0, err
	}
	if units == 0 {
		return 0, domain.Errorf(domain.KindInvalidInput, "price %s is below one unit of %s", display, currency)
	}
	return units, nil
}

// run drives one operation through building, signing and broadcasting. Nothing is
// retried, a failed operation has to be started again by the caller.
func (u *transactionUseCase) run(c bCtx.Ctx, n domain.Network, opType transaction.Op, build payloadBuilder) (*transaction.Result, error) {
	n = n.Normalize()
	op, err := newOperation(opType, n, u.observer)
	if err != nil {
		c.WithField("err", err).Error("uuid.NewRandom failed")
		return nil, err
	}
	c = bCtx.WithValues(c, map[string]interface{}{
		"operationId": op.id,
		"op":          opType,
		"network":     n,
	})

	cfg, hash, err := u.execute(c, op, build)
	if err != nil {
		u.metrics.BumpSum(string(opType)+".failed", 1, "network", string(n), "kind", string(domain.KindOf(err)))
		c.WithFields(log.Fields{
			"err":   err,
			"state": op.state,
		}).Error("operation failed")
		return op.fail(c, err), err
	}

	u.metrics.BumpSum(string(opType)+".succeeded", 1, "network", string(n))
	if err := u.listing.Invalidate(c, cfg.Name); err != nil {
		c.WithField("err", err).Warn("listing.Invalidate failed")
	}
	return op.succeed(c, hash, cfg.TxUrl(hash)), nil
}

func (u *transactionUseCase) execute(c bCtx.Ctx, op *operation, build payloadBuilder) (*network.Config, domain.TxHash, error) {
	if u.bridge == nil {
		return nil, "", domain.Errorf(domain.KindNotConnected, "wallet bridge not available")
	}

	cfg, err := u.networks.Get(c, op.network)
	if err != nil {
		return nil, "", err
	}

	op.transition(c, transaction.StateBuilding)
	calls, err := build(cfg)
	if err != nil {
		return nil, "", err
	}

	op.transition(c, transaction.StateSigning)
	built, err := u.bridge.BuildTransaction(c, op.network, calls)
	if err != nil {
		return nil, "", classify(err)
	}
	signed, err := u.bridge.SignTransaction(c, op.network, built)
	if err != nil {
		return nil, "", classify(err)
	}

	op.transition(c, transaction.StateBroadcasting)
	resp, err := u.bridge.BroadcastTransactions(c, op.network, []transaction.Signed{signed})
	if err != nil {
		return nil, "", classify(err)
	}
	if resp != nil && resp.Error != "" {
		return nil, "", classify(xerrors.New(resp.Error))
	}
	hash, ok := resp.FirstHash()
	if !ok {
		return nil, "", domain.Errorf(domain.KindMalformedResponse, "broadcast returned no transaction hash")
	}
	return cfg, hash, nil
}

// KindFromMessage guesses the kind of a raw wallet error from its text.
func KindFromMessage(msg string) domain.ErrorKind {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "rejected"), strings.Contains(m, "denied"), strings.Contains(m, "cancel by user"):
		return domain.KindUserRejected
	case strings.Contains(m, "insufficient"):
		return domain.KindInsufficientFunds
	}
	return domain.KindUpstreamUnavailable
}

// classify keeps kinded errors and assigns one to raw wallet errors. The original
// error stays in the chain so its text reaches the caller unchanged.
func classify(err error) error {
	if domain.KindOf(err) != domain.KindUnknown {
		return err
	}
	return domain.NewError(KindFromMessage(err.Error()), "", err)
}
