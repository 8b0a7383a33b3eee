package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/queue"
)

// CleanupScheduler periodically enqueues a room cleanup job so expired empty
// rooms get reaped even when no client calls the cleanup endpoint.
type CleanupScheduler struct {
	Producer queue.Producer
	Interval time.Duration
}

func NewCleanupScheduler(producer queue.Producer, interval time.Duration) *CleanupScheduler {
	return &CleanupScheduler{
		Producer: producer,
		Interval: interval,
	}
}

func (s *CleanupScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", s.Interval).Msg("Scheduler: room cleanup started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Scheduler: room cleanup stopped")
				return
			case <-ticker.C:
				s.enqueueCleanup(ctx)
			}
		}
	}()
}

func (s *CleanupScheduler) enqueueCleanup(ctx context.Context) {
	now := time.Now()
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.TypeRoomCleanup,
		MaxRetry:  3,
		CreatedAt: now.Unix(),
		// A cleanup run that hasn't happened within one interval is stale;
		// the next tick enqueues a fresh one.
		ExpireAt: now.Add(s.Interval).Unix(),
	}

	if err := s.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to enqueue cleanup job")
		return
	}

	log.Debug().Str("job_id", job.ID).Msg("Scheduler: cleanup job enqueued")
}
