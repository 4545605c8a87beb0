package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/tier"
)

// AIProvider generates recommendations through the configured generative
// backend. Every call can fail; the aggregator decides what that means.
type AIProvider struct {
	provider llm.Provider
	cfg      AIConfig
}

// AIConfig bounds AI recommendation generation.
type AIConfig struct {
	MaxTokens   int
	Temperature float64
	MaxItems    int
}

// DefaultAIConfig returns generation bounds suitable for short lists.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		MaxTokens:   1500,
		Temperature: 0.3,
		MaxItems:    5,
	}
}

// NewAIProvider creates an AI recommendation provider on top of an llm
// Provider.
func NewAIProvider(provider llm.Provider, cfg AIConfig) *AIProvider {
	return &AIProvider{provider: provider, cfg: cfg}
}

func (p *AIProvider) Name() string { return string(PlatformAI) }

type aiItemOutput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	ResourceType string   `json:"resource_type"`
	Tags         []string `json:"tags"`
	Priority     int      `json:"priority"`
	Reason       string   `json:"reason"`
}

type aiListOutput struct {
	Items []aiItemOutput `json:"items"`
}

// Generate asks the model for resources targeted at the signal's weak spots.
// Errors keep their llm typing (auth, quota, unavailable, invalid reply) so
// the aggregator can phrase user-facing notices precisely.
func (p *AIProvider) Generate(ctx context.Context, sig Signal) ([]Item, error) {
	t, err := tier.Classify(sig.Score, sig.Total)
	if err != nil {
		t = tier.Beginner
	}

	reply, err := p.provider.Complete(ctx, llm.Request{
		System:      recommendationSystemPrompt,
		Prompt:      buildRecommendationPrompt(sig, t),
		Schema:      recommendationSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("ai recommendations: %w", err)
	}

	var out aiListOutput
	if err := json.Unmarshal(reply.Content, &out); err != nil {
		return nil, &llm.ErrInvalidReply{Content: reply.Content, Err: err}
	}

	items := make([]Item, 0, len(out.Items))
	for _, o := range out.Items {
		if len(items) >= p.cfg.MaxItems {
			break
		}
		items = append(items, Item{
			// Namespaced per response; AI output carries no stable identity.
			ID:           "ai-" + uuid.NewString()[:8],
			Title:        o.Title,
			Description:  o.Description,
			URL:          o.URL,
			Type:         parseResourceType(o.ResourceType),
			Tags:         o.Tags,
			Tier:         t,
			Platform:     PlatformAI,
			Priority:     clampPriority(o.Priority),
			SourceReason: o.Reason,
		})
	}

	return items, nil
}

func parseResourceType(s string) ResourceType {
	switch ResourceType(strings.ToLower(s)) {
	case ResourceVideo, ResourceArticle, ResourceExercise, ResourceCourse:
		return ResourceType(strings.ToLower(s))
	default:
		return ResourceArticle
	}
}

func clampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 100 {
		return 100
	}
	return p
}

const recommendationSystemPrompt = `You are an academic advisor for university students. Given a student's quiz performance, recommend specific, real learning resources that address their weak areas. Prefer free, reputable sources. Never invent URLs — omit the url field if you are not certain the resource exists.`

func buildRecommendationPrompt(sig Signal, t tier.Tier) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quiz: %s\n", sig.QuizTitle)
	if sig.CourseTitle != "" {
		fmt.Fprintf(&b, "Course: %s\n", sig.CourseTitle)
	}
	if len(sig.QuizTags) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(sig.QuizTags, ", "))
	}
	fmt.Fprintf(&b, "Score: %d/%d (%.0f%%)\n", sig.Score, sig.Total, sig.Percent())
	fmt.Fprintf(&b, "Difficulty level: %s\n", t)

	b.WriteString(`
Instructions:
Recommend 3-5 learning resources for this student:
1. Match the student's difficulty level — no graduate material for a beginner.
2. Each resource needs a priority from 1 (optional) to 100 (essential).
3. The reason field must reference the student's actual performance.
4. Use resource_type "video", "article", "exercise", or "course".`)

	return b.String()
}

// recommendationSchema constrains the model's reply shape.
var recommendationSchema = &llm.Schema{
	Name:        "recommendation-list",
	Description: "Ranked learning resource recommendations for a student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"url":         map[string]any{"type": "string"},
						"resource_type": map[string]any{
							"type": "string",
							"enum": []any{"video", "article", "exercise", "course"},
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"priority": map[string]any{
							"type":        "integer",
							"description": "1 (optional) to 100 (essential)",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "Why this resource, tied to the student's performance",
						},
					},
					"required":             []any{"title", "description", "resource_type", "priority", "reason"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}
