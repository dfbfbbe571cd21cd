package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	want := []time.Duration{1, 2, 4, 5, 5}
	for _, w := range want {
		req.Equal(w*time.Millisecond, b.Next)
		req.NoError(b.Wait(context.Background()))
	}
	req.Equal(5, b.Attempts())

	b.Reset()
	req.Equal(time.Millisecond, b.Next)
	req.Equal(0, b.Attempts())
}

func TestConstantWithJitter(t *testing.T) {
	req := require.New(t)
	b := NewConstant(time.Millisecond).WithJitter(time.Millisecond)
	start := time.Now()
	req.NoError(b.Wait(context.Background()))
	req.GreaterOrEqual(time.Since(start), time.Millisecond)
	req.Equal(time.Millisecond, b.Next)
}

func TestWaitCancelled(t *testing.T) {
	req := require.New(t)
	c, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewConstant(time.Hour)
	req.ErrorIs(b.Wait(c), context.Canceled)
	req.Equal(0, b.Attempts())
}
