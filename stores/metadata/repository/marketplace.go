package repository

import (
	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/keys"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/service/cache"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

type marketplaceRepo struct {
	client   marketplace.Client
	networks network.Provider
	cache    cache.Service
}

// NewMarketplaceRepo reads assets from the marketplace api of each network. With a
// non nil cache, found metadata is kept for the cache's ttl.
func NewMarketplaceRepo(client marketplace.Client, networks network.Provider, metaCache cache.Service) asset.Repository {
	return &marketplaceRepo{client: client, networks: networks, cache: metaCache}
}

func (r *marketplaceRepo) FindOne(c ctx.Ctx, n domain.Network, id asset.Id) (*asset.Metadata, error) {
	if r.cache == nil {
		return r.fetch(c, n, id)
	}
	m := &asset.Metadata{}
	key := keys.AssetMetaKey(string(n.Normalize()), id.String())
	if err := r.cache.GetByFunc(c, key, m, func() (interface{}, error) {
		return r.fetch(c, n, id)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *marketplaceRepo) fetch(c ctx.Ctx, n domain.Network, id asset.Id) (*asset.Metadata, error) {
	cfg, err := r.networks.Get(c, n)
	if err != nil {
		c.WithField("err", err).WithField("network", n).Error("networks.Get failed")
		return nil, err
	}
	m, err := r.client.GetAsset(c, cfg.ApiUrl, id)
	if err != nil {
		c.WithFields(log.Fields{
			"network": n,
			"assetId": id.String(),
			"err":     err,
		}).Warn("client.GetAsset failed")
		return nil, err
	}
	return m, nil
}
