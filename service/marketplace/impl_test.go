package marketplace

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/order"
)

var mockCtx = bCtx.Background()

type ClientTestSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	client Client
}

func (s *ClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = NewClient(&ClientCfg{Timeout: time.Second})
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) TestListOrders() {
	s.mux.HandleFunc("/marketplaces/orders", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.Equal("created", q.Get("status"))
		s.Equal("2", q.Get("page"))
		s.Equal("20", q.Get("limit"))
		s.Equal("price", q.Get("sortBy"))
		s.Equal("asc", q.Get("orderBy"))
		s.Equal("ABC-1234", q.Get("collection"))
		fmt.Fprint(w, `{
			"data": {"orders": [{"orderId":"o1","assetId":"42","collectionId":"ABC-1234","ownerAddress":"klv1x","price":5000000,"currencyId":"KLV","status":"created","createdAt":1690000000}]},
			"pagination": {"self":2,"totalPages":3,"totalRecords":55},
			"error": "", "code": "successful"
		}`)
	})

	page, err := s.client.ListOrders(mockCtx, s.server.URL+"/",
		WithStatus(order.StatusCreated),
		WithPage(2),
		WithLimit(20),
		WithSort("price", "asc"),
		WithCollection("ABC-1234"),
	)
	s.Require().NoError(err)
	s.Require().Len(page.Orders, 1)
	s.Equal("o1", page.Orders[0].OrderId)
	s.Equal(uint64(5000000), page.Orders[0].Price)
	s.Equal(domain.Pagination{Self: 2, TotalPages: 3, TotalRecords: 55}, page.Pagination)
}

func (s *ClientTestSuite) TestGetAsset() {
	s.mux.HandleFunc("/assets/ABC-1234/42", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"asset":{"assetId":"ABC-1234/42","name":"Cat","logo":"https://x/y.png","uris":{"image":"ipfs://Qm1"}}}}`)
	})

	m, err := s.client.GetAsset(mockCtx, s.server.URL, asset.Id{CollectionId: "ABC-1234", Index: 42})
	s.Require().NoError(err)
	s.Equal("Cat", m.Name)
	s.Equal(asset.Uris{{Key: "image", Value: "ipfs://Qm1"}}, m.Uris)
}

func (s *ClientTestSuite) TestListTransactions() {
	s.mux.HandleFunc("/transaction/list", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("18", r.URL.Query().Get("type"))
		s.Equal("success", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"data":{"transactions":[{"hash":"h1","sender":"klv1s","timestamp":1690000000,
			"contract":[{"type":18,"parameter":{"assetId":"XYZ-1/7","price":100,"currencyId":"KLV"}}]}]},
			"pagination":{"self":1,"totalPages":1}}`)
	})

	page, err := s.client.ListTransactions(mockCtx, s.server.URL, WithContractType(activity.ContractTypeSell), WithTxStatus("success"))
	s.Require().NoError(err)
	s.Require().Len(page.Transactions, 1)
	s.Equal(activity.ContractTypeSell, page.Transactions[0].Contract[0].Type)
	s.Equal("XYZ-1/7", page.Transactions[0].Contract[0].Parameter.AssetId)
}

func (s *ClientTestSuite) TestErrorKinds() {
	s.mux.HandleFunc("/marketplaces/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	s.mux.HandleFunc("/assets/BAD-1/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":`)
	})
	s.mux.HandleFunc("/assets/GONE-1/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	})
	s.mux.HandleFunc("/transaction/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"error":"internal issue"}`)
	})

	_, err := s.client.ListOrders(mockCtx, s.server.URL)
	s.True(errors.Is(err, domain.ErrUpstreamUnavailable), err)

	_, err = s.client.GetAsset(mockCtx, s.server.URL, asset.Id{CollectionId: "BAD-1", Index: 1})
	s.True(errors.Is(err, domain.ErrMalformedResponse), err)

	_, err = s.client.GetAsset(mockCtx, s.server.URL, asset.Id{CollectionId: "GONE-1", Index: 1})
	s.True(errors.Is(err, domain.ErrMalformedResponse), err)

	_, err = s.client.ListTransactions(mockCtx, s.server.URL)
	s.True(errors.Is(err, domain.ErrUpstreamUnavailable), err)

	// nothing listens there
	_, err = s.client.ListOrders(mockCtx, "http://127.0.0.1:1")
	s.True(errors.Is(err, domain.ErrUpstreamUnavailable), err)

	_, err = s.client.ListOrders(mockCtx, s.server.URL, WithPage(0))
	s.True(errors.Is(err, domain.ErrInvalidInput), err)
}

func (s *ClientTestSuite) TestRateLimit() {
	var calls int32
	s.mux.HandleFunc("/marketplaces/orders", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"data":{"orders":[]}}`)
	})
	c := NewClient(&ClientCfg{Timeout: time.Second, RequestsPerSecond: 10, Burst: 1})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.ListOrders(mockCtx, s.server.URL)
		s.NoError(err)
	}
	// burst 1 at 10 rps, the 2nd and 3rd wait about 100ms each
	s.True(time.Since(start) >= 150*time.Millisecond)
	s.Equal(int32(3), atomic.LoadInt32(&calls))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
