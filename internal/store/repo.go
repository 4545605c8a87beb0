package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuizRepo provides read access to quizzes.
type QuizRepo interface {
	// Find returns the quiz with its course preloaded, or ErrNotFound.
	Find(ctx context.Context, id string) (*Quiz, error)
}

// SubmissionRepo persists graded quiz attempts.
type SubmissionRepo interface {
	// CreateWithResult writes the submission and its result in one
	// transaction. On any failure neither row exists.
	CreateWithResult(ctx context.Context, sub *Submission, res *Result) error

	// ForUser returns a user's submissions with results, newest first.
	ForUser(ctx context.Context, userID string, limit int) ([]Submission, error)
}

// SessionRepo persists study sessions.
type SessionRepo interface {
	Create(ctx context.Context, sess *StudySession) error
}

// ActivityRepo persists analytics events.
type ActivityRepo interface {
	Create(ctx context.Context, ev *ActivityEvent) error
}

// SocialRepo persists social activities.
type SocialRepo interface {
	Create(ctx context.Context, act *SocialActivity) error
}

// SyncItemRepo manages the offline write queue.
type SyncItemRepo interface {
	// Enqueue adds a pending item.
	Enqueue(ctx context.Context, item *SyncItem) error

	// Pending returns a user's pending items oldest-first.
	Pending(ctx context.Context, userID string) ([]SyncItem, error)

	// ForUser returns all of a user's items oldest-first, any status.
	ForUser(ctx context.Context, userID string) ([]SyncItem, error)

	// Update persists status, attempts, error, and sync timestamp changes.
	Update(ctx context.Context, item *SyncItem) error

	// Purge deletes terminal items older than cutoff and returns how many
	// were removed. Synced items are terminal by age alone; failed items only
	// once their attempts reached maxAttempts — a failed item with retry
	// budget left is never evicted.
	Purge(ctx context.Context, userID string, cutoff time.Time, maxAttempts int) (int64, error)
}

// Quizzes returns a QuizRepo backed by this store.
func (s *Store) Quizzes() QuizRepo { return &quizRepo{db: s.db} }

// Submissions returns a SubmissionRepo backed by this store.
func (s *Store) Submissions() SubmissionRepo { return &submissionRepo{db: s.db} }

// Sessions returns a SessionRepo backed by this store.
func (s *Store) Sessions() SessionRepo { return &sessionRepo{db: s.db} }

// Activities returns an ActivityRepo backed by this store.
func (s *Store) Activities() ActivityRepo { return &activityRepo{db: s.db} }

// Social returns a SocialRepo backed by this store.
func (s *Store) Social() SocialRepo { return &socialRepo{db: s.db} }

// SyncItems returns a SyncItemRepo backed by this store.
func (s *Store) SyncItems() SyncItemRepo { return &syncItemRepo{db: s.db} }

type quizRepo struct{ db *gorm.DB }

func (r *quizRepo) Find(ctx context.Context, id string) (*Quiz, error) {
	var q Quiz
	err := r.db.WithContext(ctx).Preload("Course").First(&q, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("find quiz %s: %w", id, translate(err))
	}
	return &q, nil
}

type submissionRepo struct{ db *gorm.DB }

func (r *submissionRepo) CreateWithResult(ctx context.Context, sub *Submission, res *Result) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	res.SubmissionID = sub.ID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sub).Error; err != nil {
			return err
		}
		return tx.Create(res).Error
	})
	if err != nil {
		return fmt.Errorf("create submission: %w", translate(err))
	}
	return nil
}

func (r *submissionRepo) ForUser(ctx context.Context, userID string, limit int) ([]Submission, error) {
	var subs []Submission
	q := r.db.WithContext(ctx).
		Preload("Result").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", translate(err))
	}
	return subs, nil
}

type sessionRepo struct{ db *gorm.DB }

func (r *sessionRepo) Create(ctx context.Context, sess *StudySession) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(sess).Error; err != nil {
		return fmt.Errorf("create study session: %w", translate(err))
	}
	return nil
}

type activityRepo struct{ db *gorm.DB }

func (r *activityRepo) Create(ctx context.Context, ev *ActivityEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("create activity event: %w", translate(err))
	}
	return nil
}

type socialRepo struct{ db *gorm.DB }

func (r *socialRepo) Create(ctx context.Context, act *SocialActivity) error {
	if act.ID == "" {
		act.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(act).Error; err != nil {
		return fmt.Errorf("create social activity: %w", translate(err))
	}
	return nil
}

type syncItemRepo struct{ db *gorm.DB }

func (r *syncItemRepo) Enqueue(ctx context.Context, item *SyncItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = "pending"
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("enqueue sync item: %w", translate(err))
	}
	return nil
}

func (r *syncItemRepo) Pending(ctx context.Context, userID string) ([]SyncItem, error) {
	var items []SyncItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "pending").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list pending sync items: %w", translate(err))
	}
	return items, nil
}

func (r *syncItemRepo) ForUser(ctx context.Context, userID string) ([]SyncItem, error) {
	var items []SyncItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list sync items: %w", translate(err))
	}
	return items, nil
}

func (r *syncItemRepo) Update(ctx context.Context, item *SyncItem) error {
	err := r.db.WithContext(ctx).
		Model(&SyncItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"status":     item.Status,
			"attempts":   item.Attempts,
			"last_error": item.LastError,
			"synced_at":  item.SyncedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update sync item %s: %w", item.ID, translate(err))
	}
	return nil
}

func (r *syncItemRepo) Purge(ctx context.Context, userID string, cutoff time.Time, maxAttempts int) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, cutoff).
		Where("status = ? OR (status = ? AND attempts >= ?)", "synced", "failed", maxAttempts).
		Delete(&SyncItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sync items: %w", translate(res.Error))
	}
	return res.RowsAffected, nil
}
