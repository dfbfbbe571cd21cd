package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	pricefomatter "github.com/x-xyz/klvmarket/base/price_fomatter"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/mocks"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/domain/transaction"
)

const mainnet = domain.Network("mainnet")

var (
	built  = transaction.Built(`{"raw":"built"}`)
	signed = transaction.Signed(`{"raw":"signed"}`)
)

type TransactionTestSuite struct {
	suite.Suite
	bridge   *mocks.TransactionBridge
	networks *mocks.NetworkProvider
	listing  *mocks.ListingUseCase
	now      time.Time

	mu      sync.Mutex
	changes []transaction.StateChange

	u transaction.UseCase
}

func (s *TransactionTestSuite) SetupTest() {
	s.bridge = &mocks.TransactionBridge{}
	s.networks = &mocks.NetworkProvider{}
	s.networks.On("Get", mock.Anything, mainnet).Return(&network.Config{
		Name:          mainnet,
		ApiUrl:        "https://api.example",
		ExplorerUrl:   "https://kleverscan.org",
		MarketplaceId: "MKT-1",
	}, nil)
	s.listing = &mocks.ListingUseCase{}
	s.now = time.Unix(1700000000, 0)
	s.changes = nil
	s.u = s.newUseCase(s.bridge)
}

func (s *TransactionTestSuite) newUseCase(bridge transaction.Bridge) transaction.UseCase {
	return NewTransactionUseCase(&TransactionUseCaseCfg{
		Bridge:         bridge,
		Networks:       s.networks,
		Listing:        s.listing,
		PriceFormatter: pricefomatter.NewPriceFormatter(&pricefomatter.PriceFormatterCfg{}),
		OnStateChange: func(c bCtx.Ctx, ch transaction.StateChange) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.changes = append(s.changes, ch)
		},
		Now: func() time.Time { return s.now },
	})
}

func (s *TransactionTestSuite) states() []transaction.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []transaction.State{}
	for _, ch := range s.changes {
		res = append(res, ch.To)
	}
	return res
}

func (s *TransactionTestSuite) expectBroadcast(resp *transaction.BroadcastResponse, err error) {
	s.bridge.On("SignTransaction", mock.Anything, mainnet, built).Return(signed, nil)
	s.bridge.On("BroadcastTransactions", mock.Anything, mainnet, []transaction.Signed{signed}).Return(resp, err)
}

func success(hash string) *transaction.BroadcastResponse {
	return &transaction.BroadcastResponse{Data: &transaction.BroadcastData{TxsHashes: []domain.TxHash{domain.TxHash(hash)}}}
}

func (s *TransactionTestSuite) TestBuy() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, []transaction.ContractCall{{
		Type: 17,
		Payload: transaction.BuyPayload{
			BuyType:    1,
			Id:         "order-1",
			CurrencyId: "KLV",
			Amount:     1500000,
		},
	}}).Return(built, nil)
	s.expectBroadcast(success("h1"), nil)
	s.listing.On("Invalidate", mock.Anything, mainnet).Return(nil).Once()

	res, err := s.u.Buy(bCtx.Background(), mainnet, transaction.BuyInput{
		OrderId:    "order-1",
		CurrencyId: "klv",
		Price:      decimal.RequireFromString("1.5000009"),
	})
	s.Require().NoError(err)
	s.Equal(transaction.StateSucceeded, res.State)
	s.Equal(transaction.OpBuy, res.Op)
	s.Equal(domain.TxHash("h1"), res.TxHash)
	s.Equal("https://kleverscan.org/transaction/h1", res.ExplorerUrl)
	s.NotEmpty(res.OperationId)
	s.Equal([]transaction.State{
		transaction.StateBuilding,
		transaction.StateSigning,
		transaction.StateBroadcasting,
		transaction.StateSucceeded,
	}, s.states())
	s.listing.AssertExpectations(s.T())
}

func (s *TransactionTestSuite) TestMixedCaseNetworkInvalidatesCanonicalNetwork() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, mock.Anything).Return(built, nil)
	s.expectBroadcast(success("h1"), nil)
	s.listing.On("Invalidate", mock.Anything, mainnet).Return(nil).Once()

	res, err := s.u.Cancel(bCtx.Background(), domain.Network(" Mainnet"), transaction.CancelInput{OrderId: "order-1"})
	s.Require().NoError(err)
	s.Equal(transaction.StateSucceeded, res.State)
	s.listing.AssertExpectations(s.T())
	s.networks.AssertCalled(s.T(), "Get", mock.Anything, mainnet)
}

func (s *TransactionTestSuite) TestSell() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, []transaction.ContractCall{{
		Type: 18,
		Payload: transaction.SellPayload{
			MarketType:    0,
			MarketplaceId: "MKT-1",
			AssetId:       "ABC-1234/42",
			CurrencyId:    "KLV",
			Price:         250000000,
			EndTime:       1700000000 + 3*86400,
		},
	}}).Return(built, nil)
	s.expectBroadcast(success("h2"), nil)
	s.listing.On("Invalidate", mock.Anything, mainnet).Return(nil)

	res, err := s.u.Sell(bCtx.Background(), mainnet, transaction.SellInput{
		CollectionId: "ABC-1234",
		Index:        42,
		CurrencyId:   "KLV",
		Price:        decimal.NewFromInt(250),
		Days:         3,
	})
	s.Require().NoError(err)
	s.Equal(domain.TxHash("h2"), res.TxHash)
}

func (s *TransactionTestSuite) TestSellMarketplaceOverride() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, mock.MatchedBy(func(calls []transaction.ContractCall) bool {
		p, ok := calls[0].Payload.(transaction.SellPayload)
		return ok && p.MarketplaceId == "MKT-OTHER"
	})).Return(built, nil)
	s.expectBroadcast(success("h3"), nil)
	s.listing.On("Invalidate", mock.Anything, mainnet).Return(nil)

	_, err := s.u.Sell(bCtx.Background(), mainnet, transaction.SellInput{
		CollectionId:  "ABC-1234",
		Index:         1,
		CurrencyId:    "KLV",
		Price:         decimal.NewFromInt(1),
		Days:          1,
		MarketplaceId: "MKT-OTHER",
	})
	s.Require().NoError(err)
}

func (s *TransactionTestSuite) TestSellValidation() {
	for _, in := range []transaction.SellInput{
		{CollectionId: "ABC-1234", CurrencyId: "KLV", Price: decimal.Zero, Days: 1},
		{CollectionId: "ABC-1234", CurrencyId: "KLV", Price: decimal.NewFromInt(-1), Days: 1},
		{CollectionId: "ABC-1234", CurrencyId: "KLV", Price: decimal.RequireFromString("0.0000001"), Days: 1},
		{CollectionId: "ABC-1234", CurrencyId: "KLV", Price: decimal.NewFromInt(1), Days: 0},
		{CurrencyId: "KLV", Price: decimal.NewFromInt(1), Days: 1},
	} {
		res, err := s.u.Sell(bCtx.Background(), mainnet, in)
		s.True(errors.Is(err, domain.ErrInvalidInput), "input %+v", in)
		s.Require().NotNil(res)
		s.Equal(transaction.StateFailed, res.State)
		s.Equal(domain.KindInvalidInput, res.ErrorKind)
	}
	s.bridge.AssertNotCalled(s.T(), "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
	s.listing.AssertNotCalled(s.T(), "Invalidate", mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestSellWithoutMarketplaceId() {
	s.networks.On("Get", mock.Anything, domain.Network("testnet")).Return(&network.Config{
		Name:        "testnet",
		ApiUrl:      "https://api.testnet.example",
		ExplorerUrl: "https://testnet.kleverscan.org",
	}, nil)

	res, err := s.u.Sell(bCtx.Background(), "testnet", transaction.SellInput{
		CollectionId: "ABC-1234",
		Index:        1,
		CurrencyId:   "KLV",
		Price:        decimal.NewFromInt(1),
		Days:         1,
	})
	s.True(errors.Is(err, domain.ErrInvalidInput))
	s.Contains(err.Error(), "networks.testnet.marketplaceId")
	s.Equal(transaction.StateFailed, res.State)
	s.bridge.AssertNotCalled(s.T(), "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestCancel() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, []transaction.ContractCall{{
		Type:    19,
		Payload: transaction.CancelPayload{OrderId: "order-7"},
	}}).Return(built, nil)
	s.expectBroadcast(success("h4"), nil)
	s.listing.On("Invalidate", mock.Anything, mainnet).Return(errors.New("cache down"))

	res, err := s.u.Cancel(bCtx.Background(), mainnet, transaction.CancelInput{OrderId: "order-7"})
	s.Require().NoError(err)
	s.Equal(transaction.StateSucceeded, res.State)
}

func (s *TransactionTestSuite) TestNotConnected() {
	u := s.newUseCase(nil)

	res, err := u.Cancel(bCtx.Background(), mainnet, transaction.CancelInput{OrderId: "order-7"})
	s.True(errors.Is(err, domain.ErrNotConnected))
	s.Equal(domain.KindNotConnected, res.ErrorKind)
	s.Equal([]transaction.State{transaction.StateFailed}, s.states())
	s.networks.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestUserRejected() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, mock.Anything).Return(built, nil)
	s.bridge.On("SignTransaction", mock.Anything, mainnet, built).Return(nil, xerrors.New("User rejected the request"))

	res, err := s.u.Cancel(bCtx.Background(), mainnet, transaction.CancelInput{OrderId: "order-7"})
	s.True(errors.Is(err, domain.ErrUserRejected))
	s.Equal(domain.KindUserRejected, res.ErrorKind)
	s.Equal("User rejected the request", res.Message)
	s.Equal([]transaction.State{
		transaction.StateBuilding,
		transaction.StateSigning,
		transaction.StateFailed,
	}, s.states())
	s.bridge.AssertNotCalled(s.T(), "BroadcastTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestBroadcastFailures() {
	s.bridge.On("BuildTransaction", mock.Anything, mainnet, mock.Anything).Return(built, nil)
	s.bridge.On("SignTransaction", mock.Anything, mainnet, built).Return(signed, nil)
	call := s.bridge.On("BroadcastTransactions", mock.Anything, mainnet, []transaction.Signed{signed})

	for _, tc := range []struct {
		resp *transaction.BroadcastResponse
		err  error
		kind domain.ErrorKind
	}{
		{resp: &transaction.BroadcastResponse{Error: "insufficient funds for fee"}, kind: domain.KindInsufficientFunds},
		{resp: &transaction.BroadcastResponse{Error: "request denied"}, kind: domain.KindUserRejected},
		{resp: &transaction.BroadcastResponse{Error: "node is syncing"}, kind: domain.KindUpstreamUnavailable},
		{resp: &transaction.BroadcastResponse{Data: &transaction.BroadcastData{}}, kind: domain.KindMalformedResponse},
		{resp: &transaction.BroadcastResponse{Data: &transaction.BroadcastData{TxsHashes: []domain.TxHash{"h"}}, Error: "rejected"}, kind: domain.KindUserRejected},
		{err: domain.NewError(domain.KindUpstreamUnavailable, "post /broadcast", errors.New("connection refused")), kind: domain.KindUpstreamUnavailable},
	} {
		call.Return(tc.resp, tc.err)

		res, err := s.u.Cancel(bCtx.Background(), mainnet, transaction.CancelInput{OrderId: "order-7"})
		s.Require().Error(err)
		s.Equal(tc.kind, domain.KindOf(err))
		s.Equal(tc.kind, res.ErrorKind)
		s.Equal(transaction.StateFailed, res.State)
	}
	s.listing.AssertNotCalled(s.T(), "Invalidate", mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestOperationIdsAreUnique() {
	u := s.newUseCase(nil)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, _ := u.Cancel(bCtx.Background(), mainnet, transaction.CancelInput{OrderId: "o"})
		s.False(seen[res.OperationId])
		seen[res.OperationId] = true
	}
}

func TestKindFromMessage(t *testing.T) {
	for msg, want := range map[string]domain.ErrorKind{
		"User Rejected":              domain.KindUserRejected,
		"permission denied":          domain.KindUserRejected,
		"transaction cancel by user": domain.KindUserRejected,
		"Insufficient balance":       domain.KindInsufficientFunds,
		"timeout":                    domain.KindUpstreamUnavailable,
	} {
		if got := KindFromMessage(msg); got != want {
			t.Errorf("KindFromMessage(%q) = %s, want %s", msg, got, want)
		}
	}
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
