package repository

import (
	"bytes"
	"errors"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	hcdomain "github.com/x-xyz/klvmarket/domain/healthcheck"
	"github.com/x-xyz/klvmarket/domain/keys"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/service/cache/provider"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

const probeTimeout = 2 * time.Second

type impl struct {
	cache    provider.Provider
	client   marketplace.Client
	networks network.Provider
}

// New creates new HealthCheckRepo probing the cache and the marketplace api
func New(
	cache provider.Provider,
	client marketplace.Client,
	networks network.Provider,
) hcdomain.HealthCheckRepo {
	return &impl{
		cache:    cache,
		client:   client,
		networks: networks,
	}
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, probeTimeout)
	defer cancel()

	key := keys.RedisKey(keys.PfxHealthCheck, "testset")
	if err := im.cache.Set(ctx, key, []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test cache set failed")
		return err
	}
	val, _, err := im.cache.Get(ctx, key)
	if err != nil {
		context.WithField("err", err).Error("test cache get failed")
		return err
	}
	if !bytes.Equal(val, []byte("1")) {
		context.WithField("val", string(val)).Error("test cache get mismatch")
		return xerrors.Errorf("cache returned %q", val)
	}
	if err := im.cache.Del(ctx, key); err != nil {
		context.WithField("err", err).Error("test cache del failed")
		return err
	}
	if _, _, err := im.cache.Get(ctx, key); !errors.Is(err, provider.ErrNotFound) {
		context.WithField("err", err).Error("test cache key survived del")
		return xerrors.Errorf("cache kept deleted key: %w", err)
	}
	return nil
}

func (im *impl) PingUpstream(context ctx.Ctx, n domain.Network) error {
	ctx, cancel := ctx.WithTimeout(context, probeTimeout)
	defer cancel()

	cfg, err := im.networks.Get(ctx, n)
	if err != nil {
		context.WithField("err", err).Error("networks.Get failed")
		return err
	}
	if _, err := im.client.ListOrders(ctx, cfg.ApiUrl, marketplace.WithLimit(1)); err != nil {
		context.WithFields(log.Fields{
			"err":     err,
			"network": n,
		}).Error("probe ListOrders failed")
		return err
	}
	return nil
}
