package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/klvmarket/domain"
)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

type PriceFormatterCfg struct {
	// Precisions override or extend KnownPrecisions
	Precisions       map[domain.CurrencyId]int32
	// DefaultPrecision applies to unknown currencies, FallbackPrecision when nil
	DefaultPrecision *int32
}

type impl struct {
	precisions       map[domain.CurrencyId]int32
	defaultPrecision int32
}

func NewPriceFormatter(cfg *PriceFormatterCfg) PriceFormatter {
	precisions := make(map[domain.CurrencyId]int32, len(KnownPrecisions)+len(cfg.Precisions))
	for k, v := range KnownPrecisions {
		precisions[k] = v
	}
	for k, v := range cfg.Precisions {
		precisions[k.Normalize()] = v
	}

	def := FallbackPrecision
	if cfg.DefaultPrecision != nil {
		def = *cfg.DefaultPrecision
	}

	return &impl{
		precisions:       precisions,
		defaultPrecision: def,
	}
}

func (f *impl) Precision(currency domain.CurrencyId) int32 {
	if p, ok := f.precisions[currency.Normalize()]; ok {
		return p
	}
	return f.defaultPrecision
}

func (f *impl) ToSmallestUnits(display decimal.Decimal, currency domain.CurrencyId) (uint64, error) {
	if display.IsNegative() {
		return 0, domain.Errorf(domain.KindInvalidInput, "negative amount %s", display)
	}
	v := display.Shift(f.Precision(currency)).Floor()
	if v.GreaterThan(maxUint64) {
		return 0, domain.Errorf(domain.KindInvalidInput, "amount %s %s overflows", display, currency)
	}
	return v.BigInt().Uint64(), nil
}

func (f *impl) FromSmallestUnits(amount uint64, currency domain.CurrencyId) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -f.Precision(currency))
}
