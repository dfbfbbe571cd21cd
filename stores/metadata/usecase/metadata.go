package usecase

import (
	"github.com/viney-shih/goroutines"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/base/metrics"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/asset"
)

// DefaultBatchSize bounds the requests in flight at any time.
const DefaultBatchSize = 10

type MetadataUseCaseCfg struct {
	Repo      asset.Repository
	BatchSize int
}

type metadataUseCase struct {
	repo      asset.Repository
	batchSize int
	metrics   metrics.Service
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) asset.UseCase {
	size := cfg.BatchSize
	if size < 1 {
		size = DefaultBatchSize
	}
	return &metadataUseCase{
		repo:      cfg.Repo,
		batchSize: size,
		metrics:   metrics.New("metadata"),
	}
}

type indexed struct {
	idx  int
	meta *asset.Metadata
}

// GetBatch runs batches one after another, the items of a batch concurrently. A
// failed item stays nil and never fails its batch.
func (u *metadataUseCase) GetBatch(c bCtx.Ctx, network domain.Network, ids []asset.Id) []*asset.Metadata {
	res := make([]*asset.Metadata, len(ids))
	failed := 0

	for start := 0; start < len(ids); start += u.batchSize {
		if err := c.Err(); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"fetched": start,
				"total":   len(ids),
			}).Warn("context done, skipping remaining batches")
			failed += len(ids) - start
			break
		}

		end := start + u.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		failed += u.fetchBatch(c, network, ids, start, end, res)
	}

	if len(ids) > 0 {
		u.metrics.BumpAvg("fetch.failure_ratio", float64(failed)/float64(len(ids)), "network", string(network))
	}
	if failed > 0 {
		u.metrics.BumpSum("fetch.err", float64(failed), "network", string(network))
		c.WithFields(log.Fields{
			"network": network,
			"failed":  failed,
			"total":   len(ids),
		}).Warn("some metadata fetches failed")
	}
	return res
}

// fetchBatch fills res[start:end] and returns how many items failed.
func (u *metadataUseCase) fetchBatch(c bCtx.Ctx, network domain.Network, ids []asset.Id, start, end int, res []*asset.Metadata) int {
	n := end - start
	b := goroutines.NewBatch(n, goroutines.WithBatchSize(n))
	defer b.Close()

	for i := start; i < end; i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			m, err := u.repo.FindOne(c, network, ids[idx])
			if err != nil {
				return indexed{idx: idx}, err
			}
			return indexed{idx: idx, meta: m}, nil
		})
	}
	b.QueueComplete()

	failed := 0
	for ret := range b.Results() {
		v, _ := ret.Value().(indexed)
		if ret.Error() != nil || v.meta == nil {
			failed++
			continue
		}
		res[v.idx] = v.meta
	}
	return failed
}
