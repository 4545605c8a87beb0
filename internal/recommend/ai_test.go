package recommend

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/tier"
)

func testSignal() Signal {
	return Signal{
		QuizID:    "q1",
		QuizTitle: "Data Structures Midterm",
		QuizTags:  []string{"data-structures"},
		Score:     2, Total: 5,
	}
}

func TestAIProvider_ParsesReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddReply(llm.MockReply{Content: json.RawMessage(`{
		"items": [
			{"title": "Linked Lists Deep Dive", "description": "d", "url": "https://example.com",
			 "resource_type": "video", "tags": ["data-structures"], "priority": 80, "reason": "missed list questions"},
			{"title": "Tree Traversal Drills", "description": "d", "resource_type": "exercise",
			 "priority": 150, "reason": "weak on trees"}
		]
	}`)})

	p := NewAIProvider(mock, DefaultAIConfig())
	items, err := p.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	first := items[0]
	if first.Platform != PlatformAI {
		t.Errorf("platform = %q, want %q", first.Platform, PlatformAI)
	}
	if first.Type != ResourceVideo {
		t.Errorf("type = %q, want video", first.Type)
	}
	if first.Tier != tier.Beginner {
		t.Errorf("tier = %q, want beginner for 2/5", first.Tier)
	}
	if first.ID == "" || first.ID == items[1].ID {
		t.Errorf("ids must be set and unique: %q, %q", first.ID, items[1].ID)
	}
	if items[1].Priority != 100 {
		t.Errorf("priority = %d, want clamped to 100", items[1].Priority)
	}
}

func TestAIProvider_MaxItemsCap(t *testing.T) {
	out := aiListOutput{}
	for range 8 {
		out.Items = append(out.Items, aiItemOutput{
			Title: "x", Description: "d", ResourceType: "article", Priority: 50, Reason: "r",
		})
	}
	raw, _ := json.Marshal(out)

	mock := llm.NewMockProvider()
	mock.AddReply(llm.MockReply{Content: raw})

	cfg := DefaultAIConfig()
	cfg.MaxItems = 3
	items, err := NewAIProvider(mock, cfg).Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("items = %d, want capped at 3", len(items))
	}
}

func TestAIProvider_PreservesErrorTyping(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddReply(llm.MockReply{Err: &llm.ErrQuota{Err: errors.New("429")}})

	_, err := NewAIProvider(mock, DefaultAIConfig()).Generate(t.Context(), testSignal())
	if err == nil {
		t.Fatal("expected error")
	}
	var quota *llm.ErrQuota
	if !errors.As(err, &quota) {
		t.Errorf("quota typing lost through wrapping: %v", err)
	}
}

func TestAIProvider_MalformedReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddReply(llm.MockReply{Content: json.RawMessage(`["not", "an", "object"]`)})

	_, err := NewAIProvider(mock, DefaultAIConfig()).Generate(t.Context(), testSignal())
	if err == nil {
		t.Fatal("expected error for shape mismatch")
	}
	var invalid *llm.ErrInvalidReply
	if !errors.As(err, &invalid) {
		t.Errorf("want ErrInvalidReply, got %v", err)
	}
}

func TestParseResourceType(t *testing.T) {
	cases := map[string]ResourceType{
		"video":    ResourceVideo,
		"VIDEO":    ResourceVideo,
		"exercise": ResourceExercise,
		"podcast":  ResourceArticle, // unknown defaults to article
		"":         ResourceArticle,
	}
	for in, want := range cases {
		if got := parseResourceType(in); got != want {
			t.Errorf("parseResourceType(%q) = %q, want %q", in, got, want)
		}
	}
}
