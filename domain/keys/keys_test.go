package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListingKey(t *testing.T) {
	k := ListingKey("mainnet", 3, "sort=recent|page=1")
	require.Equal(t, "listing:mainnet:3:"+MD5("sort=recent|page=1"), k)
	require.NotEqual(t, k, ListingKey("mainnet", 4, "sort=recent|page=1"))
	require.NotEqual(t, k, ListingKey("testnet", 3, "sort=recent|page=1"))
	require.Equal(t, "listing:mainnet", GetPrefix(k))
}

func TestListingGenerationKey(t *testing.T) {
	require.Equal(t, "listingGen:mainnet", ListingGenerationKey("mainnet"))
	require.Equal(t, "listingGen", GetPrefix(ListingGenerationKey("mainnet")))
}

func TestAssetMetaKey(t *testing.T) {
	require.Equal(t, "assetMeta:mainnet:ABC-1234/42", AssetMetaKey("mainnet", "ABC-1234/42"))
	require.Equal(t, "assetMeta:mainnet", GetPrefix(AssetMetaKey("mainnet", "ABC-1234/42")))
}
