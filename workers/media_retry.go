package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"crm_bridge/models"
)

const (
	RetryBatchSize  = 20
	MaxMediaRetries = 3
)

// MediaStore is the slice of the canonical store the retry worker needs.
type MediaStore interface {
	FallbackMedia(ctx context.Context, maxAttempts, limit int) ([]models.MediaAsset, error)
	UpdateMedia(ctx context.Context, asset *models.MediaAsset) error
}

// MediaRetryWorker re-runs migration for assets that were left on their
// source URL.
type MediaRetryWorker struct {
	store    MediaStore
	migrator *MediaMigrator
	logFn    LogFunc
	now      func() time.Time
}

func NewMediaRetryWorker(store MediaStore, migrator *MediaMigrator) *MediaRetryWorker {
	return &MediaRetryWorker{store: store, migrator: migrator, logFn: NoOpLogger, now: time.Now}
}

// SetLogFunc sets the function used to record retry outcomes.
func (w *MediaRetryWorker) SetLogFunc(fn LogFunc) {
	w.logFn = fn
}

// RetryResult summarises one retry batch.
type RetryResult struct {
	Attempted int `json:"attempted"`
	Migrated  int `json:"migrated"`
	Failed    int `json:"failed"`
}

// RetryBatch retries up to limit fallback assets and writes each one back.
// Ordinals are preserved; only delivery fields and attempts change.
func (w *MediaRetryWorker) RetryBatch(ctx context.Context, limit int) (RetryResult, error) {
	var res RetryResult

	pending, err := w.store.FallbackMedia(ctx, MaxMediaRetries, limit)
	if err != nil {
		return res, fmt.Errorf("query fallback media: %w", err)
	}
	if len(pending) == 0 {
		return res, nil
	}
	log.Printf("[media] Retrying %d fallback assets", len(pending))

	urls := make([]string, len(pending))
	for i, a := range pending {
		urls[i] = a.SourceURL
	}
	migrated, _ := w.migrator.Migrate(ctx, urls)

	for i := range pending {
		a := &pending[i]
		m := migrated[i]
		res.Attempted++

		a.Attempts++
		a.UpdatedAt = w.now()
		if m.Migrated() {
			a.DeliveryURL = m.DeliveryURL
			a.AssetID = m.AssetID
			a.ContentHash = m.ContentHash
			a.SizeBytes = m.SizeBytes
			a.Status = m.Status
			res.Migrated++
		} else {
			res.Failed++
		}

		if err := w.store.UpdateMedia(ctx, a); err != nil {
			log.Printf("[media] Failed to update asset %d: %v", a.ID, err)
			w.logFn(models.LogLevelError, "", fmt.Sprintf("media asset %d update failed: %v", a.ID, err))
		}
	}

	msg := fmt.Sprintf("media retry: %d attempted, %d migrated, %d still on source", res.Attempted, res.Migrated, res.Failed)
	log.Printf("[media] %s", msg)
	level := models.LogLevelInfo
	if res.Failed > 0 {
		level = models.LogLevelWarn
	}
	w.logFn(level, "", msg)
	return res, nil
}
