package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
	// ErrNilValue is returned by GetByFunc when the getter yields nothing to store
	ErrNilValue = errors.New("Cache getter returned nil")
)

type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// high order cache service
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
}

type ServiceConfig struct {
	// Ttl applies to every Set, 0 keeps entries until evicted
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}
