package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sidhu69/live-room-chat/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	mu   sync.Mutex
	jobs []queue.Job
}

func (p *recordingProducer) Enqueue(ctx context.Context, job queue.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *recordingProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func TestCleanupScheduler_EnqueuesOnTick(t *testing.T) {
	producer := &recordingProducer{}
	scheduler := NewCleanupScheduler(producer, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.Start(ctx)

	require.Eventually(t, func() bool {
		return producer.count() >= 2
	}, 2*time.Second, 10*time.Millisecond, "Scheduler should enqueue on every tick")

	producer.mu.Lock()
	job := producer.jobs[0]
	producer.mu.Unlock()

	assert.Equal(t, queue.TypeRoomCleanup, job.Type)
	assert.NotEmpty(t, job.ID)
	assert.Greater(t, job.ExpireAt, job.CreatedAt, "Job expires after one interval")
}

func TestCleanupScheduler_StopsWithContext(t *testing.T) {
	producer := &recordingProducer{}
	scheduler := NewCleanupScheduler(producer, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)

	require.Eventually(t, func() bool {
		return producer.count() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	n := producer.count()
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, n, producer.count(), "No enqueues after cancellation")
}
