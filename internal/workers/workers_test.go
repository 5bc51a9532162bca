// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorker runs until its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) error {
	b.started.Add(1)
	<-ctx.Done()
	b.stopped.Add(1)
	return nil
}

func TestWorkers_Run_AllWorkersStopOnCancel(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := New(w1, w2)
	ws.Add(w3)
	require.Equal(t, 3, ws.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.started.Load()+w2.started.Load()+w3.started.Load() == 3
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
	for i, w := range []*blockingWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.stopped.Load(), "worker %d", i)
	}
}

func TestWorkers_Run_FirstFailureStopsTheRest(t *testing.T) {
	boom := errors.New("bind failed")
	survivor := &blockingWorker{}

	ws := New(survivor, WorkerFunc(func(ctx context.Context) error {
		return boom
	}))

	err := ws.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), survivor.stopped.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, New().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}
