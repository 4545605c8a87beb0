package syncq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anupamd/studiq/internal/store"
)

// Queue is the storage the reconciler drains. The interface is narrow on
// purpose: the reconciler does not care what backs it.
type Queue interface {
	// Enqueue adds a pending item.
	Enqueue(ctx context.Context, item *Item) error

	// All returns a user's items oldest-first, any status.
	All(ctx context.Context, userID string) ([]Item, error)

	// Update persists status, attempts, error, and timestamp changes.
	Update(ctx context.Context, item *Item) error

	// Purge removes terminal items created before cutoff: synced items, and
	// failed items whose attempts reached maxAttempts. Retryable failed
	// items are kept regardless of age.
	Purge(ctx context.Context, userID string, cutoff time.Time, maxAttempts int) (int64, error)
}

// storeQueue backs the queue with the relational store.
type storeQueue struct {
	repo store.SyncItemRepo
}

// NewStoreQueue wraps a SyncItemRepo as a Queue.
func NewStoreQueue(repo store.SyncItemRepo) Queue {
	return &storeQueue{repo: repo}
}

func (q *storeQueue) Enqueue(ctx context.Context, item *Item) error {
	rec := &store.SyncItem{
		ID:       item.ID,
		UserID:   item.UserID,
		DataType: string(item.DataType),
		Payload:  item.Payload,
		Status:   string(StatusPending),
	}
	if err := q.repo.Enqueue(ctx, rec); err != nil {
		return err
	}
	item.ID = rec.ID
	item.Status = StatusPending
	return nil
}

func (q *storeQueue) All(ctx context.Context, userID string) ([]Item, error) {
	recs, err := q.repo.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(recs))
	for i, rec := range recs {
		items[i] = Item{
			ID:          rec.ID,
			UserID:      rec.UserID,
			DataType:    DataType(rec.DataType),
			Payload:     rec.Payload,
			Status:      Status(rec.Status),
			Attempts:    rec.Attempts,
			LastError:   rec.LastError,
			CreatedAt:   rec.CreatedAt,
			LastTriedAt: rec.UpdatedAt,
			SyncedAt:    rec.SyncedAt,
		}
	}
	return items, nil
}

func (q *storeQueue) Update(ctx context.Context, item *Item) error {
	return q.repo.Update(ctx, &store.SyncItem{
		ID:        item.ID,
		Status:    string(item.Status),
		Attempts:  item.Attempts,
		LastError: item.LastError,
		SyncedAt:  item.SyncedAt,
	})
}

func (q *storeQueue) Purge(ctx context.Context, userID string, cutoff time.Time, maxAttempts int) (int64, error) {
	return q.repo.Purge(ctx, userID, cutoff, maxAttempts)
}

// EnqueuePayload marshals v and enqueues it under the given type.
func EnqueuePayload(ctx context.Context, q Queue, userID string, dt DataType, v any) (*Item, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", dt, err)
	}
	item := &Item{UserID: userID, DataType: dt, Payload: payload}
	if err := q.Enqueue(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
