// Package locking serializes ledger operations that touch the same accounts.
// Each account id maps to an exclusive lock; multi-account acquisition always
// proceeds in ascending id order so that two transfers referencing the same
// pair of accounts in opposite directions can never deadlock.
package locking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrLockTimeout is returned when an account lock cannot be acquired within
// the manager's bounded wait. No state has changed; callers may retry.
var ErrLockTimeout = errors.New("timed out waiting for account lock")

// DefaultTimeout bounds lock acquisition when no explicit timeout is configured.
const DefaultTimeout = 5 * time.Second

// Manager hands out exclusive per-account locks. The zero value is not usable;
// construct with NewManager.
type Manager struct {
	mu      sync.Mutex
	locks   map[string]chan struct{}
	timeout time.Duration
}

// NewManager creates a lock manager whose Acquire calls give up after timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		locks:   make(map[string]chan struct{}),
		timeout: timeout,
	}
}

// Handle represents a held set of account locks. Release returns them; a
// Handle must be released exactly once.
type Handle struct {
	manager  *Manager
	ids      []string
	released bool
	mu       sync.Mutex
}

func (m *Manager) lockChan(accountID string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.locks[accountID]
	if !ok {
		// Buffered channel of size one acts as a binary semaphore.
		ch = make(chan struct{}, 1)
		m.locks[accountID] = ch
	}
	return ch
}

// Acquire blocks until every requested account is exclusively held by the
// caller, or fails with ErrLockTimeout / the context's error. Duplicate ids
// are collapsed and acquisition order is always ascending by account id.
// On failure no locks remain held.
func (m *Manager) Acquire(ctx context.Context, accountIDs ...string) (*Handle, error) {
	ids := uniqueSorted(accountIDs)
	if len(ids) == 0 {
		return nil, errors.New("no account ids to lock")
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	held := make([]string, 0, len(ids))
	for _, id := range ids {
		ch := m.lockChan(id)
		select {
		case ch <- struct{}{}:
			held = append(held, id)
		case <-timer.C:
			m.releaseAll(held)
			return nil, ErrLockTimeout
		case <-ctx.Done():
			m.releaseAll(held)
			return nil, ctx.Err()
		}
	}

	return &Handle{manager: m, ids: ids}, nil
}

// Release returns every lock in the handle. Safe to call more than once;
// subsequent calls are no-ops.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	h.manager.releaseAll(h.ids)
}

func (m *Manager) releaseAll(ids []string) {
	// Release in reverse acquisition order.
	for i := len(ids) - 1; i >= 0; i-- {
		<-m.lockChan(ids[i])
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
