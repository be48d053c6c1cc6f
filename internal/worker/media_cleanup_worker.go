package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/internal/repository"
	"github.com/learnhub/learnhub-backend/internal/service"
)

// cleanupJob is the queued request to delete a remote media object whose
// course record was never written.
type cleanupJob struct {
	PublicID string `json:"public_id"`
	Reason   string `json:"reason"`
	Attempts int    `json:"attempts"`
}

// CleanupQueue enqueues media-cleanup jobs onto the shared Redis list.
// It satisfies service.CleanupQueue.
type CleanupQueue struct {
	rdb *redis.Client
}

// NewCleanupQueue creates a CleanupQueue.
func NewCleanupQueue(rdb *redis.Client) *CleanupQueue {
	return &CleanupQueue{rdb: rdb}
}

// Enqueue pushes a cleanup job for the given remote object.
func (q *CleanupQueue) Enqueue(ctx context.Context, publicID, reason string) error {
	payload, err := json.Marshal(cleanupJob{PublicID: publicID, Reason: reason})
	if err != nil {
		return fmt.Errorf("marshal cleanup job: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.CleanupQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue cleanup job: %w", err)
	}
	return nil
}

// MediaCleanupWorker consumes the cleanup queue and retries remote deletes.
// Jobs that exhaust their attempts are written to the orphaned-media ledger
// for manual reconciliation.
type MediaCleanupWorker struct {
	rdb         *redis.Client
	media       service.MediaHost
	orphans     *repository.OrphanRepository
	maxAttempts int
	log         zerolog.Logger
}

// NewMediaCleanupWorker creates a new MediaCleanupWorker.
func NewMediaCleanupWorker(rdb *redis.Client, media service.MediaHost, orphans *repository.OrphanRepository, maxAttempts int, log zerolog.Logger) *MediaCleanupWorker {
	return &MediaCleanupWorker{
		rdb:         rdb,
		media:       media,
		orphans:     orphans,
		maxAttempts: maxAttempts,
		log:         log.With().Str("component", "media_cleanup_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *MediaCleanupWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MediaCleanupWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.CleanupQueueKey).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if requeued := w.handlePayload(ctx, result[1]); requeued {
		// Back off so a dead media host is not hammered in a tight loop.
		time.Sleep(5 * time.Second)
	}
}

// handlePayload attempts one remote delete. Failed jobs go back on the queue
// with a bumped attempt counter until the limit, then into the ledger.
// Reports whether the job was re-queued.
func (w *MediaCleanupWorker) handlePayload(ctx context.Context, payload string) bool {
	var job cleanupJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, dropping job")
		return false
	}

	err := w.media.DeleteVideo(ctx, job.PublicID)
	if err == nil {
		w.log.Info().Str("public_id", job.PublicID).Msg("Orphaned remote object deleted")
		return false
	}

	job.Attempts++
	if job.Attempts >= w.maxAttempts {
		w.log.Error().Err(err).
			Str("public_id", job.PublicID).
			Int("attempts", job.Attempts).
			Msg("Cleanup retries exhausted, recording orphaned media")
		if rerr := w.orphans.Record(ctx, job.PublicID, job.Reason); rerr != nil {
			w.log.Error().Err(rerr).Str("public_id", job.PublicID).Msg("Failed to record orphaned media")
		}
		return false
	}

	w.log.Warn().Err(err).
		Str("public_id", job.PublicID).
		Int("attempts", job.Attempts).
		Msg("Cleanup delete failed, re-queueing")

	requeued, merr := json.Marshal(job)
	if merr != nil {
		w.log.Error().Err(merr).Msg("Marshal error, dropping job")
		return false
	}
	w.rdb.RPush(ctx, config.CleanupQueueKey, requeued)
	return true
}

// drain gives every queued job one more attempt before shutdown. Bounded by
// the queue length at entry so re-queued failures wait for the next start
// instead of stalling shutdown.
func (w *MediaCleanupWorker) drain(ctx context.Context) {
	pending, err := w.rdb.LLen(ctx, config.CleanupQueueKey).Result()
	if err != nil {
		return
	}

	drained := 0
	for i := int64(0); i < pending; i++ {
		result, err := w.rdb.LPop(ctx, config.CleanupQueueKey).Result()
		if err != nil {
			break
		}
		w.handlePayload(ctx, result)
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining cleanup jobs")
	}
}
