package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/klvmarket/base/ctx"
	hcdomain "github.com/x-xyz/klvmarket/domain/healthcheck"
	"github.com/x-xyz/klvmarket/domain/network"
)

type impl struct {
	repo     hcdomain.HealthCheckRepo
	networks network.Provider
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo, networks network.Provider) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:     repo,
		networks: networks,
	}
}

// Check fails on the first unhealthy dependency, the cache first and then every
// configured network.
func (im *impl) Check(context ctx.Ctx) error {
	if err := im.repo.PingCache(context); err != nil {
		return xerrors.Errorf("cache: %w", err)
	}
	for _, n := range im.networks.List(context) {
		if err := im.repo.PingUpstream(context, n); err != nil {
			return xerrors.Errorf("network %s: %w", n, err)
		}
	}
	return nil
}
