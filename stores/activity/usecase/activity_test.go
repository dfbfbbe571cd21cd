package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/mocks"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/domain/order"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

type txClient struct {
	mu   sync.Mutex
	opts []marketplace.QueryOptions
	txs  map[activity.ContractType][]*marketplace.Transaction
	errs map[activity.ContractType]error
}

func (f *txClient) ListOrders(c bCtx.Ctx, apiUrl string, opts ...marketplace.QueryOptionsFunc) (*order.Page, error) {
	return nil, errors.New("not implemented")
}

func (f *txClient) GetAsset(c bCtx.Ctx, apiUrl string, id asset.Id) (*asset.Metadata, error) {
	return nil, errors.New("not implemented")
}

func (f *txClient) ListTransactions(c bCtx.Ctx, apiUrl string, opts ...marketplace.QueryOptionsFunc) (*marketplace.TransactionPage, error) {
	o, err := marketplace.ParseQueryOptions(opts...)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opts = append(f.opts, o)
	f.mu.Unlock()

	if err := f.errs[*o.ContractType]; err != nil {
		return nil, err
	}
	return &marketplace.TransactionPage{Transactions: f.txs[*o.ContractType]}, nil
}

type ActivityTestSuite struct {
	suite.Suite
	client   *txClient
	networks *mocks.NetworkProvider
	u        activity.UseCase
}

func (s *ActivityTestSuite) SetupTest() {
	s.client = &txClient{
		txs: map[activity.ContractType][]*marketplace.Transaction{
			activity.ContractTypeBuy: {
				tx("buy", 1700000300, activity.ContractTypeBuy, marketplace.Parameter{Id: "o1", Amount: 10},
					marketplace.Receipt{AssetId: "ABC-1234/1", From: seller}),
			},
			activity.ContractTypeSell: {
				tx("sell", 1700000100, activity.ContractTypeSell, marketplace.Parameter{AssetId: "ABC-1234/1", Price: 10}),
			},
			activity.ContractTypeCancelMarketOrder: {
				tx("cancel", 1700000200000, activity.ContractTypeCancelMarketOrder, marketplace.Parameter{OrderId: "o2"}),
			},
		},
		errs: map[activity.ContractType]error{},
	}
	s.networks = &mocks.NetworkProvider{}
	s.networks.On("Get", mock.Anything, domain.Network("mainnet")).Return(&network.Config{ApiUrl: "https://api.example"}, nil)
	s.networks.On("Get", mock.Anything, domain.Network("nope")).
		Return(nil, domain.Errorf(domain.KindInvalidInput, "unknown network %q", "nope"))

	s.u = NewActivityUseCase(&ActivityUseCaseCfg{Client: s.client, Networks: s.networks})
}

func (s *ActivityTestSuite) TestList() {
	res, err := s.u.List(bCtx.Background(), "mainnet", 2, 5)
	s.Require().NoError(err)
	s.Require().Len(res, 3)
	s.Equal(activity.KindSale, res[0].Kind)
	s.Equal(activity.KindCancel, res[1].Kind)
	s.Equal(activity.KindListing, res[2].Kind)

	s.Require().Len(s.client.opts, 3)
	seen := map[activity.ContractType]bool{}
	for _, o := range s.client.opts {
		seen[*o.ContractType] = true
		s.Equal(TxStatusSuccess, *o.TxStatus)
		s.Equal(2, *o.Page)
		s.Equal(5, *o.Limit)
	}
	s.Len(seen, 3)
}

func (s *ActivityTestSuite) TestListDefaults() {
	_, err := s.u.List(bCtx.Background(), "mainnet", 0, 0)
	s.Require().NoError(err)
	for _, o := range s.client.opts {
		s.Equal(1, *o.Page)
		s.Equal(DefaultLimit, *o.Limit)
	}
}

func (s *ActivityTestSuite) TestAnyFailureFailsTheFeed() {
	s.client.errs[activity.ContractTypeSell] = domain.NewError(domain.KindMalformedResponse, "bad json", nil)

	res, err := s.u.List(bCtx.Background(), "mainnet", 1, 10)
	s.Nil(res)
	s.True(errors.Is(err, domain.ErrUpstreamUnavailable))
}

func (s *ActivityTestSuite) TestUnknownNetwork() {
	_, err := s.u.List(bCtx.Background(), "nope", 1, 10)
	s.True(errors.Is(err, domain.ErrInvalidInput))
	s.Empty(s.client.opts)
}

func TestActivityTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityTestSuite))
}
