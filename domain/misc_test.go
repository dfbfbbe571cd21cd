package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnixSeconds(t *testing.T) {
	require.Equal(t, int64(1690000000), UnixSeconds(1690000000))
	require.Equal(t, int64(1690000000), UnixSeconds(1690000000123))
	require.Equal(t, int64(0), UnixSeconds(0))
}

func TestPaginationHasMore(t *testing.T) {
	require.True(t, Pagination{Self: 1, TotalPages: 3}.HasMore())
	require.False(t, Pagination{Self: 3, TotalPages: 3}.HasMore())
	require.False(t, Pagination{}.HasMore())
}

func TestCurrencyIdNormalize(t *testing.T) {
	require.Equal(t, CurrencyId("KLV"), CurrencyId(" klv ").Normalize())
}

func TestNetworkNormalize(t *testing.T) {
	require.Equal(t, Network("mainnet"), Network(" Mainnet ").Normalize())
	require.Equal(t, Network("testnet"), Network("testnet").Normalize())
}
