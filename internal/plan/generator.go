package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/recommend"
	"github.com/anupamd/studiq/internal/tier"
)

// Plan is a structured study plan for one course. The shape is identical
// whether the plan came from the model or from the rule tables; GeneratedBy
// and Enhanced tell them apart.
type Plan struct {
	CourseID    string           `json:"courseId,omitempty"`
	CourseTitle string           `json:"courseTitle"`
	Tier        tier.Tier        `json:"difficultyTier"`
	TargetScore int              `json:"targetScore"`
	Focus       string           `json:"focus,omitempty"`
	Steps       []string         `json:"steps"`
	Resources   []recommend.Item `json:"resources"`
	GeneratedBy string           `json:"generatedBy"` // "ai" or "rule"
	Enhanced    bool             `json:"enhanced"`
}

// ProgramPlan groups per-course plans for a whole program.
type ProgramPlan struct {
	ProgramID string `json:"programId"`
	Courses   []Plan `json:"courses"`
}

// Config bounds AI plan generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns generation bounds suitable for a single plan.
func DefaultConfig() Config {
	return Config{MaxTokens: 1200, Temperature: 0.4}
}

// Generator produces study plans. When an llm provider is present it is
// tried first; any failure falls back to the deterministic rule-based plan,
// so Generate never fails on provider problems alone.
type Generator struct {
	ai   llm.Provider // nil disables AI generation
	rule recommend.Provider
	cfg  Config
	log  *zap.Logger
}

// NewGenerator wires a plan generator. ai may be nil; rule may not.
func NewGenerator(ai llm.Provider, rule recommend.Provider, cfg Config, log *zap.Logger) *Generator {
	return &Generator{ai: ai, rule: rule, cfg: cfg, log: log}
}

// Generate builds a plan for one course from the performance signal.
func (g *Generator) Generate(ctx context.Context, sig recommend.Signal) (*Plan, error) {
	t, err := tier.Classify(sig.Score, sig.Total)
	if err != nil {
		t = tier.Beginner
	}

	if g.ai != nil {
		p, err := g.aiPlan(ctx, sig, t)
		if err == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.log.Warn("ai plan failed, using rule-based plan",
			zap.String("quiz_id", sig.QuizID), zap.Error(err))
	}

	return g.rulePlan(ctx, sig, t)
}

// GenerateMulti builds one plan per signal. Each course falls back
// independently; a failure in one course's rule plan aborts the batch since
// the rule path has nothing left to fall back to.
func (g *Generator) GenerateMulti(ctx context.Context, sigs []recommend.Signal) ([]Plan, error) {
	plans := make([]Plan, 0, len(sigs))
	for _, sig := range sigs {
		p, err := g.Generate(ctx, sig)
		if err != nil {
			return nil, fmt.Errorf("plan for quiz %s: %w", sig.QuizID, err)
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

// GenerateProgram builds plans for every signal sharing a program.
func (g *Generator) GenerateProgram(ctx context.Context, programID string, sigs []recommend.Signal) (*ProgramPlan, error) {
	plans, err := g.GenerateMulti(ctx, sigs)
	if err != nil {
		return nil, err
	}
	return &ProgramPlan{ProgramID: programID, Courses: plans}, nil
}

// rulePlan assembles the deterministic plan from the static tables plus the
// rule-based recommendation provider.
func (g *Generator) rulePlan(ctx context.Context, sig recommend.Signal, t tier.Tier) (*Plan, error) {
	resources, err := g.rule.Generate(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("rule-based resources: %w", err)
	}

	return &Plan{
		CourseID:    sig.CourseID,
		CourseTitle: courseTitle(sig),
		Tier:        t,
		TargetScore: tierTargetScore[t],
		Steps:       tierSteps[t],
		Resources:   resources,
		GeneratedBy: "rule",
	}, nil
}

type aiPlanOutput struct {
	Focus string   `json:"focus"`
	Steps []string `json:"steps"`
}

// aiPlan asks the model for ordered steps and a focus summary. Target score
// and resources stay rule-derived so the plan shape is uniform.
func (g *Generator) aiPlan(ctx context.Context, sig recommend.Signal, t tier.Tier) (*Plan, error) {
	reply, err := g.ai.Complete(ctx, llm.Request{
		System:      planSystemPrompt,
		Prompt:      buildPlanPrompt(sig, t),
		Schema:      planSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var out aiPlanOutput
	if err := json.Unmarshal(reply.Content, &out); err != nil {
		return nil, &llm.ErrInvalidReply{Content: reply.Content, Err: err}
	}
	if len(out.Steps) == 0 {
		return nil, &llm.ErrInvalidReply{Content: reply.Content}
	}

	resources, err := g.rule.Generate(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("rule-based resources: %w", err)
	}

	return &Plan{
		CourseID:    sig.CourseID,
		CourseTitle: courseTitle(sig),
		Tier:        t,
		TargetScore: tierTargetScore[t],
		Focus:       out.Focus,
		Steps:       out.Steps,
		Resources:   resources,
		GeneratedBy: "ai",
		Enhanced:    true,
	}, nil
}

func courseTitle(sig recommend.Signal) string {
	if sig.CourseTitle != "" {
		return sig.CourseTitle
	}
	return sig.QuizTitle
}

const planSystemPrompt = `You are an academic advisor. Build a short, concrete study plan from a student's quiz performance. Steps must be actionable this week and ordered. Do not recommend paid material.`

func buildPlanPrompt(sig recommend.Signal, t tier.Tier) string {
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
	fmt.Fprintf(&b, "Next target score: %d%%\n", tierTargetScore[t])

	b.WriteString(`
Instructions:
Produce a focus sentence and 3-6 ordered study steps that move this student
toward the target score. Reference the actual topics and performance.`)

	return b.String()
}

var planSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "Ordered study plan for one course",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"focus": map[string]any{
				"type":        "string",
				"description": "One sentence naming what to concentrate on",
			},
			"steps": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 3,
				"maxItems": 6,
			},
		},
		"required":             []any{"focus", "steps"},
		"additionalProperties": false,
	},
}
