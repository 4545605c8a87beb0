package store

import (
	"context"

	"github.com/anupamd/studiq/internal/recommend"
)

// catalog adapts QuizRepo to the recommendation engine's metadata lookup.
type catalog struct {
	quizzes QuizRepo
}

// Catalog returns a recommend.Catalog backed by this store.
func (s *Store) Catalog() recommend.Catalog {
	return &catalog{quizzes: s.Quizzes()}
}

func (c *catalog) QuizMeta(ctx context.Context, quizID string) (*recommend.QuizMeta, error) {
	q, err := c.quizzes.Find(ctx, quizID)
	if err != nil {
		return nil, err
	}

	meta := &recommend.QuizMeta{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Tags:        q.Tags(),
		CourseID:    q.CourseID,
	}
	if q.Course != nil {
		meta.CourseTitle = q.Course.Title
		meta.ProgramID = q.Course.ProgramID
	}
	return meta, nil
}
