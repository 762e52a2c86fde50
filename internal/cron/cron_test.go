package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	calls atomic.Int32
	days  atomic.Int32
	err   error
}

func (p *countingPruner) CleanupOldLogs(days int) error {
	p.calls.Add(1)
	p.days.Store(int32(days))
	return p.err
}

func TestStartCleanupTask_RunsOnStartup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &countingPruner{}
	StartCleanupTask(ctx, p, 90)

	assert.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(90), p.days.Load())
}

func TestStartCleanupTask_ErrorDoesNotStopLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &countingPruner{err: errors.New("db down")}
	StartCleanupTask(ctx, p, 30)

	assert.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestStartCleanupTask_Disabled(t *testing.T) {
	p := &countingPruner{}
	StartCleanupTask(context.Background(), p, 0)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), p.calls.Load())
}
