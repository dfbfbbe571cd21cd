package repository

import (
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/network"
)

type viperRepo struct {
	networks map[domain.Network]*network.Config
	names    []domain.Network
}

// NewViperRepo loads `networks.<name>.{apiUrl,explorerUrl,marketplaceId}` once.
func NewViperRepo(v *viper.Viper) (network.Provider, error) {
	raw := map[string]*network.Config{}
	if err := v.UnmarshalKey("networks", &raw); err != nil {
		return nil, err
	}

	r := &viperRepo{networks: map[domain.Network]*network.Config{}}
	for name, cfg := range raw {
		if cfg == nil || cfg.ApiUrl == "" {
			return nil, domain.Errorf(domain.KindInvalidInput, "network %s has no apiUrl", name)
		}
		n := domain.Network(name).Normalize()
		cfg.Name = n
		cfg.ApiUrl = strings.TrimRight(cfg.ApiUrl, "/")
		cfg.ExplorerUrl = strings.TrimRight(cfg.ExplorerUrl, "/")
		r.networks[n] = cfg
		r.names = append(r.names, n)
	}
	sort.Slice(r.names, func(i, j int) bool { return r.names[i] < r.names[j] })
	return r, nil
}

func (r *viperRepo) Get(c ctx.Ctx, n domain.Network) (*network.Config, error) {
	cfg, ok := r.networks[n.Normalize()]
	if !ok {
		return nil, domain.Errorf(domain.KindInvalidInput, "unknown network %q", n)
	}
	cp := *cfg
	return &cp, nil
}

func (r *viperRepo) List(c ctx.Ctx) []domain.Network {
	res := make([]domain.Network, len(r.names))
	copy(res, r.names)
	return res
}

// MissingMarketplaceIds lists the networks without a default marketplace id. Sells
// on them need the id in the request.
func MissingMarketplaceIds(c ctx.Ctx, p network.Provider) []domain.Network {
	res := []domain.Network{}
	for _, n := range p.List(c) {
		cfg, err := p.Get(c, n)
		if err != nil || cfg.MarketplaceId == "" {
			res = append(res, n)
		}
	}
	return res
}
