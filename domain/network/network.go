package network

import (
	"fmt"
	"strings"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/domain"
)

// Config holds what differs between networks.
type Config struct {
	Name          domain.Network `mapstructure:"-" json:"name"`
	ApiUrl        string         `mapstructure:"apiUrl" json:"apiUrl"`
	ExplorerUrl   string         `mapstructure:"explorerUrl" json:"explorerUrl"`
	MarketplaceId string         `mapstructure:"marketplaceId" json:"marketplaceId"`
}

// TxUrl links a transaction on the explorer.
func (c *Config) TxUrl(hash domain.TxHash) string {
	return fmt.Sprintf("%s/transaction/%s", strings.TrimRight(c.ExplorerUrl, "/"), hash)
}

// AssetUrl links an asset on the explorer.
func (c *Config) AssetUrl(collection domain.CollectionId, index uint64) string {
	return fmt.Sprintf("%s/asset/%s/%d", strings.TrimRight(c.ExplorerUrl, "/"), collection, index)
}

type Provider interface {
	// Get fails with domain.ErrInvalidInput for a network that is not configured.
	Get(c ctx.Ctx, network domain.Network) (*Config, error)
	List(c ctx.Ctx) []domain.Network
}
