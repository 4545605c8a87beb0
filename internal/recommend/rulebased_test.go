package recommend

import (
	"reflect"
	"testing"

	"github.com/anupamd/studiq/internal/tier"
)

func TestRuleBasedProvider_NeverFails(t *testing.T) {
	p := NewRuleBasedProvider()

	signals := []Signal{
		{},                               // zero value
		{Score: -1, Total: 0},            // unclassifiable
		{QuizTags: []string{"no-match"}}, // unknown tag
		{Score: 5, Total: 5, QuizTags: []string{"algorithms"}, ProgramID: "cs"},
	}
	for _, sig := range signals {
		if _, err := p.Generate(t.Context(), sig); err != nil {
			t.Errorf("Generate(%+v) returned error: %v", sig, err)
		}
	}
}

func TestRuleBasedProvider_Deterministic(t *testing.T) {
	p := NewRuleBasedProvider()
	sig := Signal{
		QuizTags:  []string{"databases", "algorithms"},
		ProgramID: "cs",
		Score:     3, Total: 5,
	}

	first, err := p.Generate(t.Context(), sig)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for range 5 {
		again, err := p.Generate(t.Context(), sig)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("output varies between calls:\n%+v\n%+v", first, again)
		}
	}
}

func TestRuleBasedProvider_TierFilter(t *testing.T) {
	p := NewRuleBasedProvider()

	// Beginner learner on the databases tag: the advanced isolation-levels
	// article must be filtered out, the beginner SQL workbench kept.
	items, err := p.Generate(t.Context(), Signal{
		QuizTags: []string{"databases"},
		Score:    1, Total: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got := make(map[string]bool)
	for _, item := range items {
		got[item.ID] = true
	}
	if !got["rule-db-1"] {
		t.Error("beginner resource rule-db-1 missing for beginner learner")
	}
	if got["rule-db-2"] {
		t.Error("advanced resource rule-db-2 served to beginner learner")
	}
}

func TestRuleBasedProvider_TierGuidanceAlwaysPresent(t *testing.T) {
	p := NewRuleBasedProvider()

	cases := []struct {
		score, total int
		wantID       string
	}{
		{1, 5, "rule-tier-b1"},
		{3, 5, "rule-tier-i1"},
		{5, 5, "rule-tier-a1"},
	}
	for _, tc := range cases {
		items, err := p.Generate(t.Context(), Signal{Score: tc.score, Total: tc.total})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		found := false
		for _, item := range items {
			if item.ID == tc.wantID {
				found = true
			}
			if item.Platform != PlatformRule {
				t.Errorf("item %s has platform %q, want %q", item.ID, item.Platform, PlatformRule)
			}
		}
		if !found {
			t.Errorf("score %d/%d: tier guidance %s missing", tc.score, tc.total, tc.wantID)
		}
	}
}

func TestRuleBasedProvider_TagOrderNormalized(t *testing.T) {
	p := NewRuleBasedProvider()

	a, err := p.Generate(t.Context(), Signal{
		QuizTags: []string{"databases", "algorithms"}, Score: 3, Total: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := p.Generate(t.Context(), Signal{
		QuizTags: []string{"algorithms", "databases"}, Score: 3, Total: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("tag order in the signal changed the output")
	}
}

func TestRuleBasedProvider_CurriculumPosition(t *testing.T) {
	p := NewRuleBasedProvider()

	// Exact (program, year, semester) match serves the position-specific
	// entry on top of the program-wide one.
	items, err := p.Generate(t.Context(), Signal{
		ProgramID: "cs", YearID: "1", SemesterID: "1",
		Score: 3, Total: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got := make(map[string]bool)
	for _, item := range items {
		got[item.ID] = true
	}
	if !got["rule-sem-cs11"] {
		t.Error("semester-specific resource missing for cs year 1 semester 1")
	}
	if !got["rule-prog-cs1"] {
		t.Error("program-wide resource missing")
	}

	// Without a curriculum position only the program-wide entry applies.
	items, err = p.Generate(t.Context(), Signal{ProgramID: "cs", Score: 3, Total: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, item := range items {
		if item.ID == "rule-sem-cs11" {
			t.Error("semester-specific resource served without year/semester")
		}
	}
}

func TestTierSuitable(t *testing.T) {
	cases := []struct {
		item, learner tier.Tier
		want          bool
	}{
		{tier.Beginner, tier.Beginner, true},
		{tier.Advanced, tier.Beginner, false},
		{tier.Beginner, tier.Advanced, false},
		{tier.Intermediate, tier.Beginner, true},
		{tier.Intermediate, tier.Advanced, true},
		{tier.Advanced, tier.Advanced, true},
	}
	for _, tc := range cases {
		if got := tierSuitable(tc.item, tc.learner); got != tc.want {
			t.Errorf("tierSuitable(%s, %s) = %v, want %v", tc.item, tc.learner, got, tc.want)
		}
	}
}
