package pricefomatter

import (
	"github.com/shopspring/decimal"

	"github.com/x-xyz/klvmarket/domain"
)

// FallbackPrecision is used for currencies missing from the table when no default
// is configured.
const FallbackPrecision int32 = 6

// KnownPrecisions are the decimals of the currencies the marketplace trades in.
var KnownPrecisions = map[domain.CurrencyId]int32{
	"KLV": 6,
	"KFI": 6,
}

type PriceFormatter interface {
	// Precision never fails, unknown currencies get the default precision.
	Precision(currency domain.CurrencyId) int32
	// ToSmallestUnits floors display to an integer amount of smallest units.
	ToSmallestUnits(display decimal.Decimal, currency domain.CurrencyId) (uint64, error)
	FromSmallestUnits(amount uint64, currency domain.CurrencyId) decimal.Decimal
}

// ParseDisplay parses a display amount such as "1.5".
func ParseDisplay(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewError(domain.KindInvalidInput, "invalid amount "+s, err)
	}
	return d, nil
}
