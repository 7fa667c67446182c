package locking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/divya9658/financial-ledger-api/internal/core/locking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	m := locking.NewManager(time.Second)

	h, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h.Release()

	// Lock is free again after release.
	h2, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h2.Release()
}

func TestAcquireTimesOutOnHeldLock(t *testing.T) {
	m := locking.NewManager(50 * time.Millisecond)

	h, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	defer h.Release()

	_, err = m.Acquire(context.Background(), "acct-1")
	assert.ErrorIs(t, err, locking.ErrLockTimeout)
}

func TestAcquireRespectsContextCancellation(t *testing.T) {
	m := locking.NewManager(5 * time.Second)

	h, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	defer h.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = m.Acquire(ctx, "acct-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPartialAcquisitionReleasesHeldLocks(t *testing.T) {
	m := locking.NewManager(50 * time.Millisecond)

	// Hold acct-2 so a multi-account acquire of {acct-1, acct-2} times out
	// after having taken acct-1.
	h, err := m.Acquire(context.Background(), "acct-2")
	require.NoError(t, err)

	_, err = m.Acquire(context.Background(), "acct-1", "acct-2")
	require.ErrorIs(t, err, locking.ErrLockTimeout)

	// acct-1 must have been released on the way out.
	h1, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h1.Release()
	h.Release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	m := locking.NewManager(time.Second)

	h, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h.Release()
	h.Release() // must not panic or corrupt state

	h2, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h2.Release()
}

func TestOppositeOrderAcquisitionDoesNotDeadlock(t *testing.T) {
	m := locking.NewManager(2 * time.Second)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h, err := m.Acquire(context.Background(), "acct-a", "acct-b")
			if err != nil {
				errs <- err
				return
			}
			h.Release()
		}()
		go func() {
			defer wg.Done()
			h, err := m.Acquire(context.Background(), "acct-b", "acct-a")
			if err != nil {
				errs <- err
				return
			}
			h.Release()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("lock acquisitions did not complete; likely deadlock")
	}
	close(errs)
	for err := range errs {
		t.Errorf("unexpected acquisition error: %v", err)
	}
}

func TestDuplicateIDsAreCollapsed(t *testing.T) {
	m := locking.NewManager(time.Second)

	h, err := m.Acquire(context.Background(), "acct-1", "acct-1")
	require.NoError(t, err)
	h.Release()

	h2, err := m.Acquire(context.Background(), "acct-1")
	require.NoError(t, err)
	h2.Release()
}
