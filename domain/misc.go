package domain

import (
	"strings"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

func (d SortDir) String() string {
	if d == SortDirDesc {
		return "desc"
	}
	return "asc"
}

// Network names a Klever network, e.g. mainnet or testnet.
type Network string

func (n Network) String() string {
	return string(n)
}

// Normalize is the canonical form used for lookups and cache keys.
func (n Network) Normalize() Network {
	return Network(strings.ToLower(strings.TrimSpace(string(n))))
}

// Address is a bech32 klever account, klv1...
type Address string

const AddressPrefix = "klv1"

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TxHash string

// CurrencyId is a KDA ticker such as KLV or KFI.
type CurrencyId string

func (c CurrencyId) Normalize() CurrencyId {
	return CurrencyId(strings.ToUpper(strings.TrimSpace(string(c))))
}

// CollectionId is a KDA collection ticker such as ABC-1234.
type CollectionId string

func (c CollectionId) String() string {
	return string(c)
}

// Pagination mirrors the marketplace api pagination block.
type Pagination struct {
	Self         int `json:"self"`
	Next         int `json:"next"`
	Previous     int `json:"previous"`
	PerPage      int `json:"perPage"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// HasMore reports whether pages exist after the current one.
func (p Pagination) HasMore() bool {
	return p.Self < p.TotalPages
}

const msThreshold = 1e12

// UnixSeconds accepts a unix timestamp in seconds or milliseconds and returns seconds.
func UnixSeconds(ts int64) int64 {
	if ts >= msThreshold || ts <= -msThreshold {
		return ts / 1000
	}
	return ts
}
