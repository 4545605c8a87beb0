package recommend

import (
	"context"

	"github.com/anupamd/studiq/internal/tier"
)

// Platform identifies which provider produced an item.
type Platform string

const (
	PlatformRule    Platform = "rule"
	PlatformAI      Platform = "ai"
	PlatformYouTube Platform = "youtube"
)

// ResourceType classifies a recommended resource.
type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
	ResourceExercise ResourceType = "exercise"
	ResourceCourse   ResourceType = "course"
)

// Item is one recommended learning resource. IDs are namespaced per provider
// so they stay unique within a single aggregated response; neither IDs nor
// priorities survive past the response they belong to.
type Item struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Type         ResourceType `json:"resourceType"`
	Tags         []string     `json:"tags"`
	Tier         tier.Tier    `json:"difficultyTier"`
	Platform     Platform     `json:"platform"`
	Priority     int          `json:"priority"`
	SourceReason string       `json:"sourceReason,omitempty"`
}

// Signal is the performance context one aggregation runs on. It is derived
// per invocation and never persisted.
type Signal struct {
	QuizID     string
	CourseID   string
	ProgramID  string
	YearID     string
	SemesterID string

	// Quiz metadata, resolved by the aggregator from the catalog.
	QuizTitle       string
	QuizDescription string
	QuizTags        []string
	CourseTitle     string

	Score int
	Total int
}

// Percent returns the score percentage, 0 when Total is unset.
func (s Signal) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total) * 100
}

// Provider generates recommendation items for a performance signal. The
// aggregator composes providers in a fixed order and decides per provider
// whether a failure is fatal or absorbed.
type Provider interface {
	Name() string
	Generate(ctx context.Context, sig Signal) ([]Item, error)
}

// QuizMeta is the catalog's view of a quiz: just enough to build prompts and
// search queries.
type QuizMeta struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	CourseID    string
	CourseTitle string
	ProgramID   string
}

// Catalog resolves quiz metadata. Implementations are expected to return
// store.ErrNotFound for unknown ids.
type Catalog interface {
	QuizMeta(ctx context.Context, quizID string) (*QuizMeta, error)
}
