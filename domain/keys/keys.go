package keys

import (
	"crypto/md5"
	"fmt"
	"strconv"
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check cache key
	PfxHealthCheck = "healthcheck"
	// PfxListing is used for prefixing cached listing pages
	PfxListing = "listing"
	// PfxListingGen is used for prefixing the per-network listing generation counter
	PfxListingGen = "listingGen"
	// PfxAssetMeta is used for prefixing cached asset metadata
	PfxAssetMeta = "assetMeta"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// ListingKey addresses one cached listing page. Bumping the generation orphans every
// page of the network at once.
func ListingKey(network string, generation int64, query string) string {
	return RedisKey(PfxListing, network, strconv.FormatInt(generation, 10), MD5(query))
}

// ListingGenerationKey holds the generation counter of a network.
func ListingGenerationKey(network string) string {
	return RedisKey(PfxListingGen, network)
}

// AssetMetaKey addresses the cached metadata of one asset, id is COL-XXXX/42.
func AssetMetaKey(network, id string) string {
	return RedisKey(PfxAssetMeta, network, id)
}

// GetPrefix extracts the prefix of a key.
// will take more than one prefix.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
