package syncq

import (
	"encoding/json"
	"time"
)

// DataType names the kind of queued write.
type DataType string

const (
	DataQuizSubmission DataType = "quiz_submission"
	DataStudySession   DataType = "study_session"
	DataAnalytics      DataType = "analytics"
	DataSocialActivity DataType = "social_activity"
)

// Status is the per-item sync state. Items move pending → synced or
// pending → failed; failed items may re-enter processing until the attempt
// cap is hit.
type Status string

const (
	StatusPending Status = "pending"
	StatusSynced  Status = "synced"
	StatusFailed  Status = "failed"
)

// Item is one queued offline write.
type Item struct {
	ID          string
	UserID      string
	DataType    DataType
	Payload     json.RawMessage
	Status      Status
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	LastTriedAt time.Time
	SyncedAt    *time.Time
}

// Terminal reports whether the item will never be processed again.
func (i Item) Terminal(maxAttempts int) bool {
	if i.Status == StatusSynced {
		return true
	}
	return i.Status == StatusFailed && i.Attempts >= maxAttempts
}
