package usecase

import (
	"sort"

	"github.com/x-xyz/klvmarket/base/ptr"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/activity"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

type builder func(tx *marketplace.Transaction, p *marketplace.Parameter) *activity.Activity

var builders = map[activity.Kind]builder{
	activity.KindSale:    buildSale,
	activity.KindListing: buildListing,
	activity.KindCancel:  buildCancel,
}

// Reconstruct turns raw transactions into activities, most recent first. Contracts
// with an unknown type are skipped.
func Reconstruct(txs []*marketplace.Transaction) []*activity.Activity {
	res := []*activity.Activity{}
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		for i := range tx.Contract {
			kind, ok := activity.KindOf(tx.Contract[i].Type)
			if !ok {
				continue
			}
			a := builders[kind](tx, &tx.Contract[i].Parameter)
			a.Kind = kind
			a.TxHash = tx.Hash
			a.Timestamp = domain.UnixSeconds(tx.Timestamp)
			res = append(res, a)
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Timestamp > res[j].Timestamp
	})
	return res
}

func buildSale(tx *marketplace.Transaction, p *marketplace.Parameter) *activity.Activity {
	a := &activity.Activity{
		OrderId:        p.Id,
		Price:          ptr.Uint64(p.Amount),
		Currency:       currency(p.CurrencyId),
		CounterpartyTo: address(tx.Sender),
	}

	for _, r := range tx.Receipts {
		if col, idx, ok := asset.SplitId(r.AssetId); ok {
			a.CollectionId, a.Index = col, idx
			a.CounterpartyFrom = address(r.From)
			return a
		}
	}

	// no transfer receipt, the order id may still name the asset
	if col, idx, ok := asset.SplitId(p.Id); ok {
		a.CollectionId, a.Index = col, idx
	}
	return a
}

func buildListing(tx *marketplace.Transaction, p *marketplace.Parameter) *activity.Activity {
	a := &activity.Activity{
		Price:            ptr.Uint64(p.Price),
		Currency:         currency(p.CurrencyId),
		CounterpartyFrom: address(tx.Sender),
	}
	if col, idx, ok := asset.SplitId(p.AssetId); ok {
		a.CollectionId, a.Index = col, idx
	}
	for _, r := range tx.Receipts {
		if r.OrderId != "" {
			a.OrderId = r.OrderId
			break
		}
	}
	return a
}

// buildCancel leaves the asset empty, a cancel record does not carry it.
func buildCancel(tx *marketplace.Transaction, p *marketplace.Parameter) *activity.Activity {
	return &activity.Activity{
		OrderId:          p.OrderId,
		CounterpartyFrom: address(tx.Sender),
	}
}

func address(a domain.Address) *domain.Address {
	if a.IsEmpty() {
		return nil
	}
	return &a
}

func currency(c domain.CurrencyId) *domain.CurrencyId {
	if c == "" {
		return nil
	}
	return &c
}
