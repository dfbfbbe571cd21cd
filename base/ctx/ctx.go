package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/klvmarket/base/log"
)

// Ctx carries a context together with a field logger so every layer logs with the
// request's fields.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func Todo() Ctx {
	return Ctx{
		Context: context.TODO(),
		Logger:  log.Log(),
	}
}

// From wraps a plain context with the default logger.
func From(c context.Context) Ctx {
	if c == nil {
		return Background()
	}
	return Ctx{
		Context: c,
		Logger:  log.Log(),
	}
}

// Detach keeps the logger fields of parent but drops its deadline and cancellation.
// Work shared by several callers runs on a detached context so one caller giving up
// does not abort it for the others.
func Detach(parent Ctx) Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  parent.Logger,
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, ctxKey(key), val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

// Value reads back a value stored with WithValue.
func Value(c Ctx, key string) interface{} {
	return c.Context.Value(ctxKey(key))
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

type ctxKey string
