package syncq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrPermanent wraps handler errors that must not be retried. The item is
// moved straight to its terminal failed state.
var ErrPermanent = errors.New("permanent sync failure")

// Handler applies one queued item's payload to durable storage.
type Handler func(ctx context.Context, item Item) error

// Config bounds retry and retention behavior.
type Config struct {
	// MaxAttempts caps processing tries per item; at the cap a failed item
	// is terminal.
	MaxAttempts int

	// InitialBackoff is the wait after the first failure; each further
	// failure multiplies it by Multiplier.
	InitialBackoff time.Duration
	Multiplier     float64

	// Retention is how long terminal items are kept for audit before the
	// post-run purge evicts them.
	Retention time.Duration
}

// DefaultConfig returns the retry and retention defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    5,
		InitialBackoff: time.Minute,
		Multiplier:     2.0,
		Retention:      7 * 24 * time.Hour,
	}
}

// ItemOutcome is the per-item result of one reconciliation run.
type ItemOutcome struct {
	ID       string
	DataType DataType
	Status   Status
	Err      string
}

// Report summarizes one reconciliation run.
type Report struct {
	SyncedCount  int
	FailedCount  int
	SkippedCount int
	PurgedCount  int64
	PerItem      []ItemOutcome
}

// Reconciler drains a user's queue, dispatching each item by data type.
// Items are independent: one failure never aborts the batch. Only an
// unreachable queue is a batch-level error.
type Reconciler struct {
	queue    Queue
	handlers map[DataType]Handler
	cfg      Config
	log      *zap.Logger

	now func() time.Time
}

// NewReconciler wires a reconciler over a queue and its type handlers.
func NewReconciler(queue Queue, handlers map[DataType]Handler, cfg Config, log *zap.Logger) *Reconciler {
	return &Reconciler{
		queue:    queue,
		handlers: handlers,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Run processes every eligible item for the user oldest-first: pending
// items always, failed items once their backoff window has elapsed. Synced
// and terminal-failed items are never reprocessed. Terminal items past the
// retention period are purged after the pass.
func (r *Reconciler) Run(ctx context.Context, userID string) (*Report, error) {
	items, err := r.queue.All(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load sync queue: %w", err)
	}

	report := &Report{}
	now := r.now()

	for _, item := range items {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		switch {
		case item.Status == StatusSynced:
			continue
		case item.Status == StatusFailed && item.Attempts >= r.cfg.MaxAttempts:
			continue
		case item.Status == StatusFailed && now.Before(item.LastTriedAt.Add(r.backoff(item.Attempts))):
			report.SkippedCount++
			continue
		}

		outcome := r.process(ctx, item)
		report.PerItem = append(report.PerItem, outcome)
		switch outcome.Status {
		case StatusSynced:
			report.SyncedCount++
		case StatusFailed:
			report.FailedCount++
		}
	}

	purged, err := r.queue.Purge(ctx, userID, now.Add(-r.cfg.Retention), r.cfg.MaxAttempts)
	if err != nil {
		r.log.Warn("sync queue purge failed", zap.String("user_id", userID), zap.Error(err))
	}
	report.PurgedCount = purged

	r.log.Info("sync reconciliation finished",
		zap.String("user_id", userID),
		zap.Int("synced", report.SyncedCount),
		zap.Int("failed", report.FailedCount),
		zap.Int("skipped", report.SkippedCount),
		zap.Int64("purged", purged))

	return report, nil
}

// process applies one item and persists the resulting state.
func (r *Reconciler) process(ctx context.Context, item Item) ItemOutcome {
	outcome := ItemOutcome{ID: item.ID, DataType: item.DataType}

	handler, ok := r.handlers[item.DataType]
	var err error
	if !ok {
		err = fmt.Errorf("%w: no handler for data type %q", ErrPermanent, item.DataType)
	} else {
		err = handler(ctx, item)
	}

	item.Attempts++
	if err != nil {
		item.Status = StatusFailed
		item.LastError = err.Error()
		if errors.Is(err, ErrPermanent) {
			item.Attempts = r.cfg.MaxAttempts
		}
		outcome.Status = StatusFailed
		outcome.Err = err.Error()
		r.log.Warn("sync item failed",
			zap.String("item_id", item.ID),
			zap.String("data_type", string(item.DataType)),
			zap.Int("attempts", item.Attempts),
			zap.Error(err))
	} else {
		now := r.now()
		item.Status = StatusSynced
		item.LastError = ""
		item.SyncedAt = &now
		outcome.Status = StatusSynced
	}

	if uerr := r.queue.Update(ctx, &item); uerr != nil {
		r.log.Error("sync item state not persisted",
			zap.String("item_id", item.ID), zap.Error(uerr))
	}
	return outcome
}

// backoff returns the wait before retry number attempts+1.
func (r *Reconciler) backoff(attempts int) time.Duration {
	d := r.cfg.InitialBackoff
	for i := 1; i < attempts; i++ {
		d = time.Duration(float64(d) * r.cfg.Multiplier)
	}
	return d
}
