package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/klvmarket/domain"
)

const (
	// klv1 + 58 bech32 characters
	addressLength = 62
	bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

// IsValidAddress reports whether address looks like a klever bech32 address. The
// checksum is left to the wallet.
func IsValidAddress(address string) bool {
	if len(address) != addressLength || !strings.HasPrefix(address, domain.AddressPrefix) {
		return false
	}
	for _, r := range address[len(domain.AddressPrefix):] {
		if !strings.ContainsRune(bech32Charset, r) {
			return false
		}
	}
	return true
}

// IsValidAssetId accepts COL-XXXX/42.
func IsValidAssetId(id string) bool {
	i := strings.Index(id, "/")
	if i <= 0 || i == len(id)-1 {
		return false
	}
	for _, r := range id[i+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// New returns a validator knowing the klvaddr and assetid tags.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("klvaddr", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("assetid", func(fl validator.FieldLevel) bool {
		return IsValidAssetId(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate reports failures as domain.ErrInvalidInput.
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return domain.NewError(domain.KindInvalidInput, "validation failed", err)
	}
	return nil
}
