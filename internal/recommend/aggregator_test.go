package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/llm"
)

// stubProvider returns fixed items or a fixed error.
type stubProvider struct {
	name  string
	items []Item
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(_ context.Context, _ Signal) ([]Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type stubCatalog struct{ meta *QuizMeta }

func (s *stubCatalog) QuizMeta(_ context.Context, quizID string) (*QuizMeta, error) {
	if s.meta == nil {
		return nil, errors.New("quiz not found")
	}
	return s.meta, nil
}

func testCatalog() *stubCatalog {
	return &stubCatalog{meta: &QuizMeta{
		ID:    "q1",
		Title: "Data Structures Midterm",
		Tags:  []string{"data-structures"},
	}}
}

func ruleItems() []Item {
	return []Item{
		{ID: "rule-1", Title: "Curated A", Platform: PlatformRule, Priority: 70},
		{ID: "rule-2", Title: "Curated B", Platform: PlatformRule, Priority: 50},
	}
}

func TestAggregator_RuleOnlyWhenOptionalTiersOff(t *testing.T) {
	rule := &stubProvider{name: "rule", items: ruleItems()}
	agg := NewAggregator(rule, nil, nil, testCatalog(), zap.NewNop())

	resp, err := agg.Recommend(t.Context(), Request{QuizID: "q1", Score: 3, Total: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !reflect.DeepEqual(resp.Items, ruleItems()) {
		t.Errorf("items = %+v, want rule items unchanged", resp.Items)
	}
}

func TestAggregator_AIQuotaFailureAbsorbed(t *testing.T) {
	rule := &stubProvider{name: "rule", items: ruleItems()}
	ai := &stubProvider{name: "ai", err: &llm.ErrQuota{Err: errors.New("429")}}
	agg := NewAggregator(rule, ai, nil, testCatalog(), zap.NewNop())

	resp, err := agg.Recommend(t.Context(), Request{
		QuizID: "q1", Score: 3, Total: 5, IncludeAI: true,
	})
	if err != nil {
		t.Fatalf("Recommend should absorb AI failure, got: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Errorf("items = %d, want exactly the 2 rule-based items", len(resp.Items))
	}
	if resp.AINotice == "" {
		t.Error("expected a specific AI notice for quota exhaustion")
	}
	if ai.calls != 1 {
		t.Errorf("ai calls = %d, want exactly 1 (no request-scoped retry)", ai.calls)
	}
}

func TestAggregator_AdditiveMerge(t *testing.T) {
	rule := &stubProvider{name: "rule", items: ruleItems()}
	ai := &stubProvider{name: "ai", items: []Item{
		{ID: "ai-1", Title: "AI pick", Platform: PlatformAI, Priority: 60},
	}}
	video := &stubProvider{name: "youtube", items: []Item{
		{ID: "yt-1", Title: "Video", Platform: PlatformYouTube, Priority: 30},
	}}
	agg := NewAggregator(rule, ai, video, testCatalog(), zap.NewNop())

	// Rule only.
	base, err := agg.Recommend(t.Context(), Request{QuizID: "q1", Score: 3, Total: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// All providers on: the list may only grow.
	full, err := agg.Recommend(t.Context(), Request{
		QuizID: "q1", Score: 3, Total: 5, IncludeAI: true, IncludeVideo: true,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(full.Items) < len(base.Items) {
		t.Errorf("item count decreased: %d -> %d", len(base.Items), len(full.Items))
	}
	if len(full.Items) != 4 {
		t.Errorf("items = %d, want 4", len(full.Items))
	}

	// Ordered by priority descending.
	for i := 1; i < len(full.Items); i++ {
		if full.Items[i].Priority > full.Items[i-1].Priority {
			t.Errorf("priority order violated at %d: %d after %d",
				i, full.Items[i].Priority, full.Items[i-1].Priority)
		}
	}
}

func TestAggregator_StableTieBreakByProviderOrder(t *testing.T) {
	rule := &stubProvider{name: "rule", items: []Item{
		{ID: "rule-1", Platform: PlatformRule, Priority: 50},
	}}
	ai := &stubProvider{name: "ai", items: []Item{
		{ID: "ai-1", Platform: PlatformAI, Priority: 50},
	}}
	agg := NewAggregator(rule, ai, nil, testCatalog(), zap.NewNop())

	resp, err := agg.Recommend(t.Context(), Request{
		QuizID: "q1", Score: 3, Total: 5, IncludeAI: true,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.Items[0].ID != "rule-1" || resp.Items[1].ID != "ai-1" {
		t.Errorf("tie not broken by provider order: %v", ids(resp.Items))
	}
}

func TestAggregator_NoDuplicateIDs(t *testing.T) {
	rule := &stubProvider{name: "rule", items: []Item{
		{ID: "dup", Priority: 70}, {ID: "rule-2", Priority: 60},
	}}
	ai := &stubProvider{name: "ai", items: []Item{
		{ID: "dup", Priority: 40}, {ID: "ai-2", Priority: 30},
	}}
	agg := NewAggregator(rule, ai, nil, testCatalog(), zap.NewNop())

	resp, err := agg.Recommend(t.Context(), Request{
		QuizID: "q1", Score: 3, Total: 5, IncludeAI: true,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	seen := make(map[string]bool)
	for _, item := range resp.Items {
		if seen[item.ID] {
			t.Errorf("duplicate id %q in response", item.ID)
		}
		seen[item.ID] = true
	}
	if len(resp.Items) != 3 {
		t.Errorf("items = %d, want 3 (dup collapsed, first occurrence wins)", len(resp.Items))
	}
}

func TestAggregator_RuleFailureIsFatal(t *testing.T) {
	rule := &stubProvider{name: "rule", err: errors.New("table corrupted")}
	agg := NewAggregator(rule, nil, nil, testCatalog(), zap.NewNop())

	if _, err := agg.Recommend(t.Context(), Request{QuizID: "q1", Score: 1, Total: 5}); err == nil {
		t.Error("rule provider failure must abort the request")
	}
}

func TestAggregator_EmptyEverywhereIsNotAnError(t *testing.T) {
	rule := &stubProvider{name: "rule"}
	agg := NewAggregator(rule, nil, nil, testCatalog(), zap.NewNop())

	resp, err := agg.Recommend(t.Context(), Request{QuizID: "q1", Score: 0, Total: 1})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("items = %d, want 0", len(resp.Items))
	}
}

func TestAggregator_UnknownQuiz(t *testing.T) {
	agg := NewAggregator(&stubProvider{name: "rule"}, nil, nil, &stubCatalog{}, zap.NewNop())

	if _, err := agg.Recommend(t.Context(), Request{QuizID: "nope", Score: 1, Total: 2}); err == nil {
		t.Error("expected error for unknown quiz")
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
