package usecase

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

const (
	seller = domain.Address("klv1seller")
	buyer  = domain.Address("klv1buyer")
)

func tx(hash string, ts int64, t activity.ContractType, p marketplace.Parameter, receipts ...marketplace.Receipt) *marketplace.Transaction {
	return &marketplace.Transaction{
		Hash:      domain.TxHash(hash),
		Sender:    seller,
		Timestamp: ts,
		Status:    "success",
		Contract:  []marketplace.Contract{{Type: t, Parameter: p}},
		Receipts:  receipts,
	}
}

func TestReconstructListing(t *testing.T) {
	req := require.New(t)
	res := Reconstruct([]*marketplace.Transaction{
		tx("h1", 1700000000, activity.ContractTypeSell, marketplace.Parameter{
			AssetId:    "XYZ-1/7",
			Price:      2000000,
			CurrencyId: "KLV",
		}, marketplace.Receipt{OrderId: "order-9"}),
	})

	req.Len(res, 1)
	a := res[0]
	req.Equal(activity.KindListing, a.Kind)
	req.Equal("XYZ-1", a.CollectionId)
	req.Equal("7", a.Index)
	req.Equal("order-9", a.OrderId)
	req.Equal(uint64(2000000), *a.Price)
	req.Equal(domain.CurrencyId("KLV"), *a.Currency)
	req.Equal(seller, *a.CounterpartyFrom)
	req.Nil(a.CounterpartyTo)
}

func TestReconstructSale(t *testing.T) {
	req := require.New(t)
	buy := tx("h2", 1700000000, activity.ContractTypeBuy, marketplace.Parameter{
		BuyType:    1,
		Id:         "order-1",
		Amount:     5000000,
		CurrencyId: "KLV",
	},
		marketplace.Receipt{Type: 0, AssetId: "KLV", From: buyer, To: seller, Value: 5000000},
		marketplace.Receipt{Type: 0, AssetId: "ABC-1234/42", From: seller, To: buyer, Value: 1},
	)
	buy.Sender = buyer

	res := Reconstruct([]*marketplace.Transaction{buy})
	req.Len(res, 1)
	a := res[0]
	req.Equal(activity.KindSale, a.Kind)
	req.Equal("ABC-1234", a.CollectionId)
	req.Equal("42", a.Index)
	req.Equal("order-1", a.OrderId)
	req.Equal(uint64(5000000), *a.Price)
	req.Equal(buyer, *a.CounterpartyTo)
	req.Equal(seller, *a.CounterpartyFrom)
}

func TestReconstructSaleWithoutReceipts(t *testing.T) {
	req := require.New(t)

	res := Reconstruct([]*marketplace.Transaction{
		tx("h3", 1700000000, activity.ContractTypeBuy, marketplace.Parameter{Id: "ABC-1234/5", Amount: 1}),
	})
	req.Equal("ABC-1234", res[0].CollectionId)
	req.Equal("5", res[0].Index)
	req.Nil(res[0].CounterpartyFrom)

	res = Reconstruct([]*marketplace.Transaction{
		tx("h4", 1700000000, activity.ContractTypeBuy, marketplace.Parameter{Id: "a1b2c3", Amount: 1}),
	})
	req.Empty(res[0].CollectionId)
	req.Empty(res[0].Index)
}

func TestReconstructCancel(t *testing.T) {
	req := require.New(t)
	res := Reconstruct([]*marketplace.Transaction{
		tx("h5", 1700000000, activity.ContractTypeCancelMarketOrder, marketplace.Parameter{OrderId: "order-3"},
			marketplace.Receipt{AssetId: "ABC-1234/42"}),
	})

	req.Len(res, 1)
	a := res[0]
	req.Equal(activity.KindCancel, a.Kind)
	req.Equal("order-3", a.OrderId)
	req.Equal(seller, *a.CounterpartyFrom)
	req.Empty(a.CollectionId)
	req.Empty(a.Index)
	req.Nil(a.Price)
	req.Nil(a.Currency)
}

func TestReconstructSkipsUnknownTypes(t *testing.T) {
	req := require.New(t)
	res := Reconstruct([]*marketplace.Transaction{
		tx("h6", 1700000000, 0, marketplace.Parameter{}),
		tx("h7", 1700000000, 20, marketplace.Parameter{}),
		nil,
	})
	req.Empty(res)
}

func TestReconstructOrdering(t *testing.T) {
	req := require.New(t)
	txs := []*marketplace.Transaction{
		tx("old", 1700000000, activity.ContractTypeSell, marketplace.Parameter{AssetId: "A-1/1"}),
		// milliseconds
		tx("new", 1700000500000, activity.ContractTypeSell, marketplace.Parameter{AssetId: "A-1/2"}),
		tx("mid-a", 1700000100, activity.ContractTypeCancelMarketOrder, marketplace.Parameter{OrderId: "x"}),
		tx("mid-b", 1700000100, activity.ContractTypeCancelMarketOrder, marketplace.Parameter{OrderId: "y"}),
	}

	res := Reconstruct(txs)
	req.Len(res, 4)
	req.Equal(domain.TxHash("new"), res[0].TxHash)
	req.Equal(int64(1700000500), res[0].Timestamp)
	req.Equal(domain.TxHash("mid-a"), res[1].TxHash)
	req.Equal(domain.TxHash("mid-b"), res[2].TxHash)
	req.Equal(domain.TxHash("old"), res[3].TxHash)
}

func TestReconstructNonIncreasingTimestamps(t *testing.T) {
	req := require.New(t)
	r := rand.New(rand.NewSource(7))
	types := []activity.ContractType{
		activity.ContractTypeBuy,
		activity.ContractTypeSell,
		activity.ContractTypeCancelMarketOrder,
		99,
	}

	for round := 0; round < 50; round++ {
		txs := make([]*marketplace.Transaction, r.Intn(30))
		for i := range txs {
			ts := 1600000000 + r.Int63n(100000000)
			if r.Intn(2) == 0 {
				ts *= 1000
			}
			txs[i] = tx("h", ts, types[r.Intn(len(types))], marketplace.Parameter{AssetId: "A-1/1", Id: "o"})
		}

		res := Reconstruct(txs)
		for i := 1; i < len(res); i++ {
			req.GreaterOrEqual(res[i-1].Timestamp, res[i].Timestamp)
		}
	}
}
