package store

import (
	"context"
	"fmt"
)

// CourseStats summarizes a user's performance in one course.
type CourseStats struct {
	CourseID    string
	CourseTitle string
	Attempts    int
	AvgPercent  float64
	BestPercent float64
}

// StatsForUser aggregates per-course accuracy from stored results. Courses
// without any graded submission are omitted.
func (s *Store) StatsForUser(ctx context.Context, userID string) ([]CourseStats, error) {
	var rows []CourseStats
	err := s.db.WithContext(ctx).
		Table("submissions").
		Select(`courses.id AS course_id,
			courses.title AS course_title,
			COUNT(*) AS attempts,
			AVG(results.score * 100.0 / results.total) AS avg_percent,
			MAX(results.score * 100.0 / results.total) AS best_percent`).
		Joins("JOIN results ON results.submission_id = submissions.id").
		Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
		Joins("JOIN courses ON courses.id = quizzes.course_id").
		Where("submissions.user_id = ? AND results.total > 0", userID).
		Group("courses.id, courses.title").
		Order("courses.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", translate(err))
	}
	return rows, nil
}
