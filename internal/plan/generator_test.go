package plan

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/recommend"
	"github.com/anupamd/studiq/internal/tier"
)

func testSignal() recommend.Signal {
	return recommend.Signal{
		QuizID:      "q1",
		CourseID:    "c1",
		CourseTitle: "Data Structures",
		QuizTitle:   "Midterm",
		QuizTags:    []string{"data-structures"},
		Score:       2, Total: 5,
	}
}

func newTestGenerator(ai llm.Provider) *Generator {
	return NewGenerator(ai, recommend.NewRuleBasedProvider(), DefaultConfig(), zap.NewNop())
}

func TestGenerate_RuleOnly(t *testing.T) {
	g := newTestGenerator(nil)

	p, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if p.GeneratedBy != "rule" || p.Enhanced {
		t.Errorf("markers = %q/%v, want rule/false", p.GeneratedBy, p.Enhanced)
	}
	if p.Tier != tier.Beginner {
		t.Errorf("tier = %q, want beginner for 2/5", p.Tier)
	}
	if p.TargetScore != 60 {
		t.Errorf("target = %d, want 60 for beginner", p.TargetScore)
	}
	if len(p.Steps) == 0 {
		t.Error("rule plan has no steps")
	}
	if len(p.Resources) == 0 {
		t.Error("rule plan has no resources")
	}
	if p.CourseTitle != "Data Structures" {
		t.Errorf("course title = %q", p.CourseTitle)
	}
}

func TestGenerate_AIEnhanced(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: json.RawMessage(`{
		"focus": "Rebuild linked list and tree fundamentals.",
		"steps": ["Review list operations", "Drill tree traversals", "Re-attempt the quiz"]
	}`)})
	g := newTestGenerator(mock)

	p, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if p.GeneratedBy != "ai" || !p.Enhanced {
		t.Errorf("markers = %q/%v, want ai/true", p.GeneratedBy, p.Enhanced)
	}
	if len(p.Steps) != 3 {
		t.Errorf("steps = %d, want the model's 3", len(p.Steps))
	}
	if p.Focus == "" {
		t.Error("focus sentence missing")
	}
	// Target and resources stay rule-derived regardless of origin.
	if p.TargetScore != 60 {
		t.Errorf("target = %d, want 60", p.TargetScore)
	}
	if len(p.Resources) == 0 {
		t.Error("resources missing from AI-enhanced plan")
	}
}

func TestGenerate_FallsBackOnAIError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Err: &llm.ErrQuota{Err: errors.New("429")}})
	g := newTestGenerator(mock)

	p, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate must fall back, got: %v", err)
	}
	if p.GeneratedBy != "rule" || p.Enhanced {
		t.Errorf("markers = %q/%v, want rule/false after fallback", p.GeneratedBy, p.Enhanced)
	}
}

func TestGenerate_FallsBackOnEmptySteps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: json.RawMessage(`{"focus": "x", "steps": []}`)})
	g := newTestGenerator(mock)

	p, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if p.GeneratedBy != "rule" {
		t.Errorf("generatedBy = %q, want rule when the model returns no steps", p.GeneratedBy)
	}
}

func TestGenerate_RulePlanDeterministic(t *testing.T) {
	g := newTestGenerator(nil)

	first, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	again, err := g.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Error("rule plan varies between identical calls")
	}
}

func TestGenerate_TargetScorePerTier(t *testing.T) {
	g := newTestGenerator(nil)

	cases := []struct {
		score, total, want int
	}{
		{1, 5, 60},
		{3, 5, 80},
		{5, 5, 95},
	}
	for _, tc := range cases {
		sig := testSignal()
		sig.Score, sig.Total = tc.score, tc.total
		p, err := g.Generate(t.Context(), sig)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if p.TargetScore != tc.want {
			t.Errorf("score %d/%d: target = %d, want %d", tc.score, tc.total, p.TargetScore, tc.want)
		}
	}
}

func TestGenerateProgram(t *testing.T) {
	g := newTestGenerator(nil)

	sigs := []recommend.Signal{testSignal(), {
		QuizID: "q2", CourseID: "c2", CourseTitle: "Calculus I",
		QuizTitle: "Limits Quiz", QuizTags: []string{"calculus"},
		Score: 4, Total: 5,
	}}

	pp, err := g.GenerateProgram(t.Context(), "cs", sigs)
	if err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}
	if pp.ProgramID != "cs" || len(pp.Courses) != 2 {
		t.Fatalf("program = %q with %d courses, want cs with 2", pp.ProgramID, len(pp.Courses))
	}
	if pp.Courses[0].CourseID != "c1" || pp.Courses[1].CourseID != "c2" {
		t.Error("course order not preserved")
	}
	if pp.Courses[1].Tier != tier.Advanced {
		t.Errorf("second course tier = %q, want advanced for 4/5", pp.Courses[1].Tier)
	}
}
