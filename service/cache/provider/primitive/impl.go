package primitive

import (
	"strconv"
	"sync"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/base/log"
	"github.com/x-xyz/klvmarket/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache

	// serializes read-modify-write in Incr
	incrMu sync.Mutex
}

// NewPrimitive creates an in-process provider holding sizeMB megabytes.
func NewPrimitive(name string, sizeMB int) provider.Provider {
	return &impl{name: name, cache: freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithFields(logFields(im.name, key, err)).Error("cache.GetWithExpiration failed")
		return nil, time.Duration(0), err
	}
	return val, remaining(expireAt), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, ttlSeconds(ttl)); err != nil {
		c.WithFields(logFields(im.name, key, err)).Error("cache.Set failed")
		return err
	}
	return nil
}

// Incr adds val to an existing integer key keeping its expiry. A missing key is
// provider.ErrNotFound, same as the redis provider.
func (im *impl) Incr(c ctx.Ctx, key string, val int) (int64, time.Duration, error) {
	im.incrMu.Lock()
	defer im.incrMu.Unlock()

	v, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return 0, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithFields(logFields(im.name, key, err)).Error("cache.GetWithExpiration failed")
		return 0, time.Duration(0), err
	}

	i, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		c.WithFields(logFields(im.name, key, err)).Error("strconv.ParseInt failed")
		return 0, time.Duration(0), err
	}

	nv := i + int64(val)
	ttl := remaining(expireAt)
	if expireAt != 0 && ttl == 0 {
		// expired between the read and now
		return 0, time.Duration(0), provider.ErrNotFound
	}
	return nv, ttl, im.Set(c, key, []byte(strconv.FormatInt(nv, 10)), ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

// remaining converts freecache's absolute expiry to a ttl, 0 meaning no expiry.
func remaining(expireAt uint32) time.Duration {
	if expireAt == 0 {
		return time.Duration(0)
	}
	d := time.Until(time.Unix(int64(expireAt), 0))
	if d < 0 {
		return time.Duration(0)
	}
	return d
}

// ttlSeconds rounds up so a sub-second ttl does not turn into "never expire".
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	s := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		s++
	}
	return s
}

func logFields(name, key string, err error) log.Fields {
	return log.Fields{"cache": name, "key": key, "err": err}
}
