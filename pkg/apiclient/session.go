// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"context"
	"sync"
)

// # Session Manager

// refreshCall is one in-flight refresh attempt. Waiters block on done and
// then read err; err is written exactly once, before done is closed.
type refreshCall struct {
	done chan struct{}
	err  error
}

// SessionManager coalesces concurrent session refreshes into a single call.
//
// # Why an explicit object?
//
// The manager owns at most ONE in-flight refresh handle. Holding that handle
// on an injected object (rather than package state) lets each [Client] carry
// its own refresh lifecycle and lets tests substitute the refresh function.
type SessionManager struct {
	mu       sync.Mutex
	inflight *refreshCall
	refresh  func(ctx context.Context) error
}

// NewSessionManager constructs a [SessionManager] around a refresh function.
func NewSessionManager(refresh func(ctx context.Context) error) *SessionManager {
	return &SessionManager{refresh: refresh}
}

/*
EnsureFreshSession refreshes the session, coalescing concurrent callers.

Description: When a refresh is already in flight the caller awaits that
call's result instead of starting another; N concurrent expired requests
produce exactly one refresh round trip. The in-flight slot is cleared
unconditionally once the call settles, success or failure, so a later
expiry starts a fresh attempt.

Parameters:
  - ctx: context.Context

Returns:
  - error: The refresh call's error, or ctx.Err() if the caller gave up
    while awaiting another caller's refresh
*/
func (manager *SessionManager) EnsureFreshSession(ctx context.Context) error {

	// ── 1. Join an existing in-flight refresh ─────────────────────────────
	manager.mu.Lock()
	if call := manager.inflight; call != nil {
		manager.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// ── 2. Claim the slot ─────────────────────────────────────────────────
	call := &refreshCall{done: make(chan struct{})}
	manager.inflight = call
	manager.mu.Unlock()

	// ── 3. Perform the refresh ────────────────────────────────────────────
	call.err = manager.refresh(ctx)
	close(call.done)

	// ── 4. Clear the slot ─────────────────────────────────────────────────
	manager.mu.Lock()
	manager.inflight = nil
	manager.mu.Unlock()

	return call.err
}
