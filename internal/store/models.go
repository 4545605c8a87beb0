package store

import (
	"encoding/json"
	"time"
)

// User is a student account. Identity is resolved elsewhere; the store only
// needs the id for ownership.
type User struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	ProgramID string
	CreatedAt time.Time
}

// Course groups quizzes under a program/year/semester.
type Course struct {
	ID         string `gorm:"primaryKey"`
	Title      string
	ProgramID  string `gorm:"index"`
	YearID     string
	SemesterID string
	CreatedAt  time.Time
}

// Quiz holds the metadata and answer key for one quiz. Tags and the answer
// key are stored as JSON text; SQLite has no array type.
type Quiz struct {
	ID          string `gorm:"primaryKey"`
	CourseID    string `gorm:"index"`
	Course      *Course
	Title       string
	Description string
	TagsJSON    string `gorm:"column:tags"`
	KeyJSON     string `gorm:"column:answer_key"`
	CreatedAt   time.Time
}

// Tags decodes the stored tag list.
func (q *Quiz) Tags() []string { return decodeStrings(q.TagsJSON) }

// SetTags encodes the tag list for storage.
func (q *Quiz) SetTags(tags []string) { q.TagsJSON = encodeStrings(tags) }

// AnswerKey decodes the stored answer key.
func (q *Quiz) AnswerKey() []string { return decodeStrings(q.KeyJSON) }

// SetAnswerKey encodes the answer key for storage.
func (q *Quiz) SetAnswerKey(key []string) { q.KeyJSON = encodeStrings(key) }

// Submission is one quiz attempt. The (user, quiz, attempt) triple is
// unique; a replayed sync of the same attempt hits the constraint instead of
// double-writing.
type Submission struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"uniqueIndex:idx_user_quiz_attempt"`
	QuizID      string `gorm:"uniqueIndex:idx_user_quiz_attempt"`
	Attempt     int    `gorm:"uniqueIndex:idx_user_quiz_attempt"`
	AnswersJSON string `gorm:"column:answers"`
	CreatedAt   time.Time

	Result *Result
}

// Answers decodes the submitted answers.
func (s *Submission) Answers() []string { return decodeStrings(s.AnswersJSON) }

// SetAnswers encodes the submitted answers for storage.
func (s *Submission) SetAnswers(answers []string) { s.AnswersJSON = encodeStrings(answers) }

// Result is the graded outcome of a submission, one-to-one.
type Result struct {
	ID            string `gorm:"primaryKey"`
	SubmissionID  string `gorm:"uniqueIndex"`
	Score         int
	Total         int
	CorrectJSON   string `gorm:"column:correct_indexes"`
	IncorrectJSON string `gorm:"column:incorrect_indexes"`
	CreatedAt     time.Time
}

// CorrectIndexes decodes the correctly answered question indexes.
func (r *Result) CorrectIndexes() []int { return decodeInts(r.CorrectJSON) }

// IncorrectIndexes decodes the incorrectly answered question indexes.
func (r *Result) IncorrectIndexes() []int { return decodeInts(r.IncorrectJSON) }

// SetIndexes encodes both index sets for storage.
func (r *Result) SetIndexes(correct, incorrect []int) {
	r.CorrectJSON = encodeInts(correct)
	r.IncorrectJSON = encodeInts(incorrect)
}

// StudySession records one timed study period.
type StudySession struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	CourseID    string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationSec int
	CreatedAt   time.Time
}

// ActivityEvent is a generic analytics event.
type ActivityEvent struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Kind      string
	Payload   string
	CreatedAt time.Time
}

// SocialActivity records a social interaction (share, comment, reaction).
type SocialActivity struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Verb      string
	ObjectID  string
	CreatedAt time.Time
}

// SyncItem is one queued offline write awaiting reconciliation.
type SyncItem struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	DataType  string
	Payload   []byte
	Status    string `gorm:"index;default:pending"`
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
	SyncedAt  *time.Time
}

func encodeStrings(v []string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeStrings(s string) []string {
	if s == "" {
		return nil
	}
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	return v
}

func encodeInts(v []int) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeInts(s string) []int {
	if s == "" {
		return nil
	}
	var v []int
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	return v
}
