package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled limits the byte throughput of Put and Get on an inner store.
// Large snapshot transfers are admitted in burst-sized chunks.
type Throttled struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a limit of bytesPerSec.
// A non-positive limit disables throttling.
func NewThrottled(inner BlobStore, bytesPerSec int) *Throttled {
	t := &Throttled{inner: inner}
	if bytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
	return t
}

func (t *Throttled) wait(ctx context.Context, n int) error {
	if t.limiter == nil {
		return nil
	}
	burst := t.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Put waits for len(data) bytes of budget, then writes.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	if err := t.wait(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.Put(ctx, name, data)
}

// Get reads, then waits for len(data) bytes of budget before returning.
func (t *Throttled) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := t.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := t.wait(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete is not throttled.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	return t.inner.Delete(ctx, name)
}

// List is not throttled.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}
