package syncq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anupamd/studiq/internal/store"
)

// Payload shapes for the queued write types. These are the wire format of
// the queue; changing a field breaks drained-but-unsynced items.

type QuizSubmissionPayload struct {
	QuizID           string   `json:"quizId"`
	Attempt          int      `json:"attempt"`
	Answers          []string `json:"answers"`
	Score            int      `json:"score"`
	Total            int      `json:"total"`
	CorrectIndexes   []int    `json:"correctIndexes"`
	IncorrectIndexes []int    `json:"incorrectIndexes"`
}

type StudySessionPayload struct {
	CourseID    string    `json:"courseId"`
	StartedAt   time.Time `json:"startedAt"`
	EndedAt     time.Time `json:"endedAt"`
	DurationSec int       `json:"durationSec"`
}

type AnalyticsPayload struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type SocialActivityPayload struct {
	Verb     string `json:"verb"`
	ObjectID string `json:"objectId"`
}

// StoreHandlers builds the full handler set over a store. A duplicate
// submission is a permanent failure: the attempt already exists and retrying
// cannot change that.
func StoreHandlers(s *store.Store) map[DataType]Handler {
	submissions := s.Submissions()
	sessions := s.Sessions()
	activities := s.Activities()
	social := s.Social()

	return map[DataType]Handler{
		DataQuizSubmission: func(ctx context.Context, item Item) error {
			var p QuizSubmissionPayload
			if err := json.Unmarshal(item.Payload, &p); err != nil {
				return fmt.Errorf("%w: decode quiz submission: %v", ErrPermanent, err)
			}
			sub := &store.Submission{UserID: item.UserID, QuizID: p.QuizID, Attempt: p.Attempt}
			sub.SetAnswers(p.Answers)
			res := &store.Result{Score: p.Score, Total: p.Total}
			res.SetIndexes(p.CorrectIndexes, p.IncorrectIndexes)
			if err := submissions.CreateWithResult(ctx, sub, res); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					return fmt.Errorf("%w: %v", ErrPermanent, err)
				}
				return err
			}
			return nil
		},
		DataStudySession: func(ctx context.Context, item Item) error {
			var p StudySessionPayload
			if err := json.Unmarshal(item.Payload, &p); err != nil {
				return fmt.Errorf("%w: decode study session: %v", ErrPermanent, err)
			}
			return sessions.Create(ctx, &store.StudySession{
				UserID:      item.UserID,
				CourseID:    p.CourseID,
				StartedAt:   p.StartedAt,
				EndedAt:     p.EndedAt,
				DurationSec: p.DurationSec,
			})
		},
		DataAnalytics: func(ctx context.Context, item Item) error {
			var p AnalyticsPayload
			if err := json.Unmarshal(item.Payload, &p); err != nil {
				return fmt.Errorf("%w: decode analytics event: %v", ErrPermanent, err)
			}
			return activities.Create(ctx, &store.ActivityEvent{
				UserID:  item.UserID,
				Kind:    p.Kind,
				Payload: string(p.Data),
			})
		},
		DataSocialActivity: func(ctx context.Context, item Item) error {
			var p SocialActivityPayload
			if err := json.Unmarshal(item.Payload, &p); err != nil {
				return fmt.Errorf("%w: decode social activity: %v", ErrPermanent, err)
			}
			return social.Create(ctx, &store.SocialActivity{
				UserID:   item.UserID,
				Verb:     p.Verb,
				ObjectID: p.ObjectID,
			})
		},
	}
}
