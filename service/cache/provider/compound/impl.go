package compound

import (
	"strconv"
	"time"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks providers, fastest first. Reads stop at the first hit and
// back-fill the layers in front of it; writes go to every layer.
func NewCompound(layers ...provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, time.Duration(0), err
		}

		for _, front := range im.layers[:idx] {
			if err := front.Set(c, key, val, ttl); err != nil {
				// the value is still good, only the back-fill is lost
				c.WithField("err", err).WithField("key", key).Warn("back-fill failed")
			}
		}
		return val, ttl, nil
	}
	return nil, time.Duration(0), provider.ErrNotFound
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Incr counts on the last layer, the shared one, and copies the result forward.
func (im *impl) Incr(c ctx.Ctx, key string, val int) (int64, time.Duration, error) {
	last := im.layers[len(im.layers)-1]
	res, ttl, err := last.Incr(c, key, val)
	if err != nil {
		return 0, time.Duration(0), err
	}

	for _, lyr := range im.layers[:len(im.layers)-1] {
		if err := lyr.Set(c, key, []byte(strconv.FormatInt(res, 10)), ttl); err != nil {
			return 0, time.Duration(0), err
		}
	}
	return res, ttl, nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
