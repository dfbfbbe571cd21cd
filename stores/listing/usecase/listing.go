package usecase

import (
	"errors"
	"strconv"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/goroutine"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/base/metrics"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/asset"
	"github.com/x-xyz/klvmarket/domain/keys"
	"github.com/x-xyz/klvmarket/domain/listing"
	"github.com/x-xyz/klvmarket/domain/network"
	"github.com/x-xyz/klvmarket/domain/order"
	"github.com/x-xyz/klvmarket/service/cache"
	"github.com/x-xyz/klvmarket/service/cache/provider"
	"github.com/x-xyz/klvmarket/service/marketplace"
)

const (
	DefaultPageLimit    = 20
	MaxPageLimit        = 100
	DefaultStaleAfter   = 30 * time.Second
	DefaultFetchTimeout = 15 * time.Second
)

type sortParam struct {
	sortBy  string
	orderBy string
}

var sortParams = map[listing.SortOption]sortParam{
	listing.SortPriceAsc:  {"price", "asc"},
	listing.SortPriceDesc: {"price", "desc"},
	listing.SortRecent:    {"createdAt", "desc"},
	listing.SortOldest:    {"createdAt", "asc"},
}

// SortParams returns the upstream sortBy and orderBy of a sort option.
func SortParams(s listing.SortOption) (string, string, bool) {
	p, ok := sortParams[s]
	return p.sortBy, p.orderBy, ok
}

type ListingUseCaseCfg struct {
	Client   marketplace.Client
	Networks network.Provider
	Metadata asset.UseCase
	Images   asset.ImageResolver

	// Pages stores whole result pages, its ttl is the hard expiry.
	Pages       cache.Service
	// Generations holds the per network counter bumped by Invalidate.
	Generations provider.Provider

	StaleAfter   time.Duration
	FetchTimeout time.Duration
	PageLimit    int

	Now func() time.Time
}

type listingUseCase struct {
	client   marketplace.Client
	networks network.Provider
	metadata asset.UseCase
	images   asset.ImageResolver
	pages    cache.Service
	gens     provider.Provider

	staleAfter   time.Duration
	fetchTimeout time.Duration
	pageLimit    int
	now          func() time.Time

	group      singleflight.Group
	workerPool *goroutines.Pool
	metrics    metrics.Service
}

func NewListingUseCase(cfg *ListingUseCaseCfg) listing.UseCase {
	u := &listingUseCase{
		client:       cfg.Client,
		networks:     cfg.Networks,
		metadata:     cfg.Metadata,
		images:       cfg.Images,
		pages:        cfg.Pages,
		gens:         cfg.Generations,
		staleAfter:   cfg.StaleAfter,
		fetchTimeout: cfg.FetchTimeout,
		pageLimit:    cfg.PageLimit,
		now:          cfg.Now,
		workerPool:   goroutines.NewPool(16, goroutines.WithTaskQueueLength(256), goroutines.WithPreAllocWorkers(2)),
		metrics:      metrics.New("listing"),
	}
	if u.staleAfter <= 0 {
		u.staleAfter = DefaultStaleAfter
	}
	if u.fetchTimeout <= 0 {
		u.fetchTimeout = DefaultFetchTimeout
	}
	if u.pageLimit <= 0 {
		u.pageLimit = DefaultPageLimit
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

// envelope is what a cached page looks like.
type envelope struct {
	FetchedAt int64         `json:"fetchedAt"`
	Result    *listing.Page `json:"result"`
}

type query struct {
	network domain.Network
	filter  listing.Filter
	page    listing.PageRequest
}

func (q query) key(generation int64) string {
	return keys.ListingKey(string(q.network), generation, q.filter.Key()+"|"+q.page.Key())
}

func (u *listingUseCase) List(c bCtx.Ctx, network domain.Network, filter listing.Filter, page listing.PageRequest) (*listing.Page, error) {
	network = network.Normalize()
	defer u.metrics.BumpTime("list.time", "network", string(network)).End()

	q, err := u.normalizeQuery(network, filter, page)
	if err != nil {
		return listing.EmptyPage(), err
	}

	key := q.key(u.generation(c, network))

	env := envelope{}
	err = u.pages.Get(c, key, &env)
	if err == nil && env.Result != nil {
		age := u.now().Sub(time.Unix(0, env.FetchedAt))
		if age < u.staleAfter {
			u.metrics.BumpSum("cache.hit", 1, "network", string(network))
		} else {
			u.metrics.BumpSum("cache.stale", 1, "network", string(network))
			u.refresh(c, key, q)
		}
		return u.expire(env.Result), nil
	}
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Warn("pages.Get failed, fetching")
	}
	u.metrics.BumpSum("cache.miss", 1, "network", string(network))

	p, err := u.fetchShared(c, key, q)
	if err != nil {
		return listing.EmptyPage(), err
	}
	return u.expire(p), nil
}

func (u *listingUseCase) normalizeQuery(network domain.Network, filter listing.Filter, page listing.PageRequest) (query, error) {
	if filter.Sort == "" {
		filter.Sort = listing.SortRecent
	}
	if !filter.Sort.Valid() {
		return query{}, domain.Errorf(domain.KindInvalidInput, "unknown sort %q", filter.Sort)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return query{}, domain.Errorf(domain.KindInvalidInput, "minPrice %d > maxPrice %d", *filter.MinPrice, *filter.MaxPrice)
	}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = u.pageLimit
	}
	if page.Limit > MaxPageLimit {
		page.Limit = MaxPageLimit
	}
	return query{network: network, filter: filter, page: page}, nil
}

// fetchShared attaches to the in-flight fetch of key or starts one. The fetch itself
// is detached from c so a caller giving up leaves it running for the others.
func (u *listingUseCase) fetchShared(c bCtx.Ctx, key string, q query) (*listing.Page, error) {
	ch := u.group.DoChan(key, func() (interface{}, error) {
		fc, cancel := bCtx.WithTimeout(bCtx.Detach(c), u.fetchTimeout)
		defer cancel()

		p, err := u.fetch(fc, q)
		if err != nil {
			return nil, err
		}

		env := envelope{FetchedAt: u.now().UnixNano(), Result: p}
		if err := u.pages.Set(fc, key, env); err != nil {
			fc.WithFields(log.Fields{
				"err": err,
				"key": key,
			}).Warn("pages.Set failed")
		}
		return p, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*listing.Page), nil
	case <-c.Done():
		return nil, xerrors.Errorf("listing query abandoned: %w", c.Err())
	}
}

func (u *listingUseCase) refresh(c bCtx.Ctx, key string, q query) {
	task := func(bc bCtx.Ctx) {
		if _, err := u.fetchShared(bc, key, q); err != nil {
			bc.WithFields(log.Fields{
				"err": err,
				"key": key,
			}).Warn("background refresh failed")
		}
	}

	bc := bCtx.Detach(c)
	err := u.workerPool.ScheduleWithTimeout(time.Second, func() { task(bc) })
	if err != nil {
		c.WithField("err", err).Warn("workerPool.ScheduleWithTimeout failed, refreshing on a new goroutine")
		goroutine.Go(c, "listing.refresh", task)
	}
}

func (u *listingUseCase) fetch(c bCtx.Ctx, q query) (*listing.Page, error) {
	cfg, err := u.networks.Get(c, q.network)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"network": q.network,
		}).Error("networks.Get failed")
		return nil, err
	}

	sortBy, orderBy, _ := SortParams(q.filter.Sort)
	opts := []marketplace.QueryOptionsFunc{
		marketplace.WithStatus(order.StatusCreated),
		marketplace.WithPage(q.page.Page),
		marketplace.WithLimit(q.page.Limit),
		marketplace.WithSort(sortBy, orderBy),
	}
	if q.filter.CollectionId != nil {
		opts = append(opts, marketplace.WithCollection(*q.filter.CollectionId))
	}

	res, err := u.client.ListOrders(c, cfg.ApiUrl, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"network": q.network,
			"filter":  q.filter.Key(),
		}).Error("client.ListOrders failed")
		return nil, xerrors.Errorf("list orders: %w", err)
	}

	ids := make([]asset.Id, len(res.Orders))
	for i, o := range res.Orders {
		ids[i] = AssetIdOf(o)
	}
	metas := u.metadata.GetBatch(c, q.network, ids)

	ls := make([]*listing.Listing, len(res.Orders))
	for i, o := range res.Orders {
		l := Normalize(o, metas[i], u.images)
		l.Asset.ExplorerUrl = cfg.AssetUrl(l.Asset.CollectionId, l.Asset.Index)
		ls[i] = l
	}

	kept := q.filter.Apply(ls)
	u.metrics.BumpHistogram("page.size", float64(len(kept)), "network", string(q.network))

	return &listing.Page{
		Listings: kept,
		Total:    res.Pagination.TotalRecords,
		HasMore:  res.Pagination.HasMore(),
	}, nil
}

// expire copies p with the active listings past their expiry marked expired. Cached
// pages are never modified.
func (u *listingUseCase) expire(p *listing.Page) *listing.Page {
	now := u.now().Unix()
	ls := make([]*listing.Listing, len(p.Listings))
	for i, l := range p.Listings {
		ls[i] = l.Expire(now)
	}
	return &listing.Page{Listings: ls, Total: p.Total, HasMore: p.HasMore}
}

// generation reads the counter of network, a missing or unreadable counter is 0.
func (u *listingUseCase) generation(c bCtx.Ctx, network domain.Network) int64 {
	raw, _, err := u.gens.Get(c, keys.ListingGenerationKey(string(network)))
	if errors.Is(err, provider.ErrNotFound) {
		return 0
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"network": network,
		}).Warn("gens.Get failed")
		return 0
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"raw": string(raw),
		}).Warn("strconv.ParseInt failed")
		return 0
	}
	return gen
}

func (u *listingUseCase) Invalidate(c bCtx.Ctx, network domain.Network) error {
	network = network.Normalize()
	key := keys.ListingGenerationKey(string(network))
	_, _, err := u.gens.Incr(c, key, 1)
	if errors.Is(err, provider.ErrNotFound) {
		err = u.gens.Set(c, key, []byte("1"), 0)
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"network": network,
		}).Error("failed to bump listing generation")
		return err
	}
	return nil
}
