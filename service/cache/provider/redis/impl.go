package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/klvmarket/base/ctx"
	"github.com/x-xyz/klvmarket/service/cache/provider"
)

// incrExisting increments only when the key exists, matching the local provider.
var incrExisting = redis.NewScript(1, `
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
local v = redis.call("INCRBY", KEYS[1], ARGV[1])
return {v, redis.call("PTTL", KEYS[1])}
`)

type impl struct {
	pool *redis.Pool
}

func NewRedis(pool *redis.Pool) provider.Provider {
	return &impl{pool}
}

func (im *impl) conn(c ctx.Ctx) (redis.Conn, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, err
	}
	return conn, nil
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	conn, err := im.conn(c)
	if err != nil {
		return nil, time.Duration(0), err
	}
	defer conn.Close()

	if err := conn.Send("GET", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis GET failed")
		return nil, time.Duration(0), err
	}
	if err := conn.Send("PTTL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis PTTL failed")
		return nil, time.Duration(0), err
	}
	if err := conn.Flush(); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis flush failed")
		return nil, time.Duration(0), err
	}

	val, err := redis.Bytes(conn.Receive())
	if err == redis.ErrNil {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Bytes failed")
		return nil, time.Duration(0), err
	}
	pttl, err := redis.Int64(conn.Receive())
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Int64 failed")
		return nil, time.Duration(0), err
	}
	return val, pttlToDuration(pttl), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	args := redis.Args{}.Add(key, value)
	if ms := ttl.Milliseconds(); ms > 0 {
		args = args.Add("PX", ms)
	}
	if _, err := conn.Do("SET", args...); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Incr(c ctx.Ctx, key string, val int) (int64, time.Duration, error) {
	conn, err := im.conn(c)
	if err != nil {
		return 0, time.Duration(0), err
	}
	defer conn.Close()

	res, err := redis.Int64s(incrExisting.Do(conn, key, val))
	if err == redis.ErrNil {
		return 0, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("incrExisting failed")
		return 0, time.Duration(0), err
	}
	return res[0], pttlToDuration(res[1]), nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	conn, err := im.conn(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis DEL failed")
		return err
	}
	return nil
}

// pttlToDuration maps PTTL's -1 (no expiry) and -2 (missing) to 0.
func pttlToDuration(ms int64) time.Duration {
	if ms <= 0 {
		return time.Duration(0)
	}
	return time.Duration(ms) * time.Millisecond
}
