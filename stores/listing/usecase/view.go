package usecase

import (
	"sync"

	bCtx "github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
	"github.com/x-xyz/klvmarket/domain/listing"
)

// ViewState is one committed query outcome. Page is empty when Err is set.
type ViewState struct {
	Key  string
	Page *listing.Page
	Err  error
}

// View keeps the listings of whatever query a session asked for last. A load that
// finishes after a newer one started is dropped.
type View struct {
	uc      listing.UseCase
	network domain.Network

	mu        sync.Mutex
	activeKey string
	current   ViewState
}

func NewView(uc listing.UseCase, network domain.Network) *View {
	return &View{
		uc:      uc,
		network: network,
		current: ViewState{Page: listing.EmptyPage()},
	}
}

// Load fetches the query and commits it only if no other query became active in the
// meantime. It returns the outcome of this query and whether it was committed.
func (v *View) Load(c bCtx.Ctx, filter listing.Filter, page listing.PageRequest) (ViewState, bool) {
	key := filter.Key() + "|" + page.Key()

	v.mu.Lock()
	v.activeKey = key
	v.mu.Unlock()

	p, err := v.uc.List(c, v.network, filter, page)
	if err != nil {
		p = listing.EmptyPage()
	}
	st := ViewState{Key: key, Page: p, Err: err}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.activeKey != key {
		c.WithField("key", key).Debug("dropping stale listing load")
		return st, false
	}
	v.current = st
	return st, true
}

func (v *View) Current() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
