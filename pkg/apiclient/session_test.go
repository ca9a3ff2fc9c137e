// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/selluna/pkg/apiclient"
)

func TestSessionManager_CoalescesConcurrentCallers(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	manager := apiclient.NewSessionManager(func(_ context.Context) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	})

	// First caller claims the slot and blocks inside the refresh.
	results := make(chan error, 4)
	go func() { results <- manager.EnsureFreshSession(context.Background()) }()
	<-started

	// Three more callers arrive while the refresh is in flight.
	var waiters sync.WaitGroup
	for i := 0; i < 3; i++ {
		waiters.Add(1)
		go func() {
			defer waiters.Done()
			results <- manager.EnsureFreshSession(context.Background())
		}()
	}

	// Give the waiters time to join the in-flight call, then let it finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	waiters.Wait()

	for i := 0; i < 4; i++ {
		require.NoError(t, <-results)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestSessionManager_SlotClearedAfterFailure(t *testing.T) {
	var calls atomic.Int32
	manager := apiclient.NewSessionManager(func(_ context.Context) error {
		calls.Add(1)
		return assert.AnError
	})

	require.Error(t, manager.EnsureFreshSession(context.Background()))

	// The failed call released the slot, so the next attempt is a fresh one.
	require.Error(t, manager.EnsureFreshSession(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSessionManager_WaiterHonorsContext(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	manager := apiclient.NewSessionManager(func(_ context.Context) error {
		close(started)
		<-release
		return nil
	})

	go func() { _ = manager.EnsureFreshSession(context.Background()) }()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.EnsureFreshSession(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
