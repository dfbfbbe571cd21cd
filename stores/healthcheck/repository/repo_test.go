package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/mocks"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/domain/order"
	"github.com/x-xyz/klvmarket/service/cache/provider"
	"github.com/x-xyz/klvmarket/service/cache/provider/primitive"
)

func TestPingCache(t *testing.T) {
	r := New(primitive.NewPrimitive("healthcheck", 1), &mocks.MarketplaceClient{}, &mocks.NetworkProvider{})
	require.NoError(t, r.PingCache(ctx.Background()))
}

type stickyCache struct {
	provider.Provider
}

func (s stickyCache) Del(c ctx.Ctx, key string) error {
	return nil
}

func TestPingCacheDetectsUndeletedKey(t *testing.T) {
	r := New(stickyCache{primitive.NewPrimitive("healthcheck", 1)}, &mocks.MarketplaceClient{}, &mocks.NetworkProvider{})
	require.Error(t, r.PingCache(ctx.Background()))
}

func TestPingUpstream(t *testing.T) {
	req := require.New(t)
	client := &mocks.MarketplaceClient{}
	networks := &mocks.NetworkProvider{}
	networks.On("Get", mock.Anything, domain.Network("mainnet")).Return(&network.Config{ApiUrl: "https://main.example"}, nil)
	networks.On("Get", mock.Anything, domain.Network("testnet")).Return(&network.Config{ApiUrl: "https://test.example"}, nil)
	client.On("ListOrders", mock.Anything, "https://main.example", mock.Anything).Return(&order.Page{}, nil)
	client.On("ListOrders", mock.Anything, "https://test.example", mock.Anything).
		Return(nil, domain.NewError(domain.KindUpstreamUnavailable, "status 502", nil))

	r := New(primitive.NewPrimitive("healthcheck", 1), client, networks)
	req.NoError(r.PingUpstream(ctx.Background(), "mainnet"))
	err := r.PingUpstream(ctx.Background(), "testnet")
	req.True(errors.Is(err, domain.ErrUpstreamUnavailable))
}
