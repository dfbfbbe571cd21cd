package usecase

import (
	"golang.org/x/sync/errgroup"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

const (
	TxStatusSuccess = "success"
	DefaultLimit    = 20
)

type ActivityUseCaseCfg struct {
	Client   marketplace.Client
	Networks network.Provider
}

type activityUseCase struct {
	client   marketplace.Client
	networks network.Provider
}

func NewActivityUseCase(cfg *ActivityUseCaseCfg) activity.UseCase {
	return &activityUseCase{
		client:   cfg.Client,
		networks: cfg.Networks,
	}
}

// List fetches one page of each marketplace contract type and merges them.
func (u *activityUseCase) List(c bCtx.Ctx, network domain.Network, page, limit int) ([]*activity.Activity, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	cfg, err := u.networks.Get(c, network)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"network": network,
		}).Error("networks.Get failed")
		return nil, err
	}

	pages := make([][]*marketplace.Transaction, len(activity.MarketplaceContractTypes))
	g, gctx := errgroup.WithContext(c)
	for i, t := range activity.MarketplaceContractTypes {
		i, t := i, t
		g.Go(func() error {
			gc := bCtx.Ctx{Context: gctx, Logger: c.Logger.WithField("contractType", t)}
			res, err := u.client.ListTransactions(gc, cfg.ApiUrl,
				marketplace.WithContractType(t),
				marketplace.WithTxStatus(TxStatusSuccess),
				marketplace.WithPage(page),
				marketplace.WithLimit(limit),
			)
			if err != nil {
				gc.WithField("err", err).Error("client.ListTransactions failed")
				return err
			}
			pages[i] = res.Transactions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if domain.KindOf(err) == domain.KindUpstreamUnavailable {
			return nil, err
		}
		return nil, domain.NewError(domain.KindUpstreamUnavailable, "list transactions", err)
	}

	txs := []*marketplace.Transaction{}
	for _, p := range pages {
		txs = append(txs, p...)
	}
	return Reconstruct(txs), nil
}
