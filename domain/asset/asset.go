package asset

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
)

// Id identifies one NFT/SFT unit, the pair (collection, index).
type Id struct {
	CollectionId domain.CollectionId `json:"collectionId"`
	Index        uint64              `json:"index"`
}

// String returns the klever asset id form COL-XXXX/42.
func (i Id) String() string {
	return string(i.CollectionId) + "/" + strconv.FormatUint(i.Index, 10)
}

// ParseIndex parses an item identifier best-effort. COL-XXXX/42 and 42 both give 42,
// anything non-numeric gives 0.
func ParseIndex(s string) uint64 {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	idx, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return idx
}

// SplitId splits COL-XXXX/42 into its collection and index parts. ok is false when s
// has no separator.
func SplitId(s string) (collection, index string, ok bool) {
	i := strings.Index(s, "/")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

type Uri struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Uris accepts both shapes the api emits: [{"key":..,"value":..}] and {"key": "value"}.
// The object shape is flattened in key order.
type Uris []Uri

func (u *Uris) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*u = nil
		return nil
	}

	if b[0] == '[' {
		var list []Uri
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*u = list
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	list := make([]Uri, 0, len(obj))
	for k, v := range obj {
		list = append(list, Uri{Key: k, Value: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	*u = list
	return nil
}

type Royalties struct {
	Address          domain.Address `json:"address"`
	// MarketPercentage is in basis points
	MarketPercentage int64          `json:"marketPercentage"`
}

// Metadata is an asset as returned by the marketplace api.
type Metadata struct {
	AssetId     string              `json:"assetId"`
	Collection  domain.CollectionId `json:"collection"`
	Name        string              `json:"name"`
	DisplayName string              `json:"displayName"`
	Ticker      string              `json:"ticker"`
	Logo        string              `json:"logo"`
	Uris        Uris                `json:"uris"`
	Owner       domain.Address      `json:"ownerAddress"`
	Creator     domain.Address      `json:"creatorAddress"`
	Royalties   *Royalties          `json:"royalties,omitempty"`
}

// RoyaltyBps is the market royalty clamped to [0, 10000].
func (m *Metadata) RoyaltyBps() uint32 {
	if m == nil || m.Royalties == nil {
		return 0
	}
	return ClampBps(m.Royalties.MarketPercentage)
}

func ClampBps(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > 10000 {
		return 10000
	}
	return uint32(v)
}

// Repository reads asset metadata from a network
type Repository interface {
	FindOne(c ctx.Ctx, network domain.Network, id Id) (*Metadata, error)
}

// UseCase fetches metadata for many assets at once. The result has the same length
// and order as ids, nil marking an asset whose fetch failed.
type UseCase interface {
	GetBatch(c ctx.Ctx, network domain.Network, ids []Id) []*Metadata
}

// ImageResolver picks a displayable image url out of an asset's hints.
type ImageResolver interface {
	Resolve(logo string, hints []Uri) (string, bool)
}
