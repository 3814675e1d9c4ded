package testsupport

import (
	"context"
	"sync/atomic"
)

type cancelAfter struct {
	context.Context
	remaining atomic.Int64
}

// CancelAfter returns a context whose Err reports context.Canceled from the
// (n+1)th call on. Done never closes, so only code that polls Err sees it.
func CancelAfter(parent context.Context, n int) context.Context {
	ctx := &cancelAfter{Context: parent}
	ctx.remaining.Store(int64(n))
	return ctx
}

func (c *cancelAfter) Err() error {
	if c.remaining.Add(-1) < 0 {
		return context.Canceled
	}
	return c.Context.Err()
}
