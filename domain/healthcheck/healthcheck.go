package healthcheck

import (
	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	// PingCache writes and reads back a probe key
	PingCache(context ctx.Ctx) error
	// PingUpstream asks the marketplace api of a network for one order
	PingUpstream(context ctx.Ctx, network domain.Network) error
}
