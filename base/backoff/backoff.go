package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Strategy returns the wait before attempt n+1, n starting at 0.
type Strategy interface {
	Duration(n int, start time.Duration) time.Duration
}

// Backoff sleeps between attempts. It is not safe for concurrent use.
type Backoff struct {
	Next     time.Duration
	start    time.Duration
	limit    time.Duration
	jitter   time.Duration
	attempts int
	strategy Strategy
	rand     *rand.Rand
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{
		strategy: strategy,
		start:    start,
		limit:    limit,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	b.Reset()
	return b
}

// WithJitter adds up to d of random wait to every sleep.
func (b *Backoff) WithJitter(d time.Duration) *Backoff {
	b.jitter = d
	return b
}

func (b *Backoff) Reset() {
	b.attempts = 0
	b.Next = b.next()
}

func (b *Backoff) Attempts() int {
	return b.attempts
}

// Wait sleeps for the next duration, or until c is done.
func (b *Backoff) Wait(c context.Context) error {
	d := b.Next
	if b.jitter > 0 {
		d += time.Duration(b.rand.Int63n(int64(b.jitter)))
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.Done():
		return c.Err()
	case <-t.C:
	}

	b.attempts++
	b.Next = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.attempts, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(n int, start time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(n))) * start
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type constant struct{}

func (constant) Duration(n int, start time.Duration) time.Duration {
	return start
}

func NewConstant(d time.Duration) *Backoff {
	return New(constant{}, d, 0)
}
