package recommend

import (
	"context"
	"sort"

	"github.com/anupamd/studiq/internal/tier"
)

// RuleBasedProvider serves curated recommendations from static lookup
// tables. It performs no I/O and never fails — it is the availability floor
// the aggregator builds on.
type RuleBasedProvider struct{}

// NewRuleBasedProvider creates the rule-based provider.
func NewRuleBasedProvider() *RuleBasedProvider {
	return &RuleBasedProvider{}
}

func (p *RuleBasedProvider) Name() string { return string(PlatformRule) }

// Generate looks up resources by quiz tag, difficulty tier, and curriculum
// position (program, year, semester), in that order. Output is deterministic
// for a given signal.
func (p *RuleBasedProvider) Generate(_ context.Context, sig Signal) ([]Item, error) {
	t, err := tier.Classify(sig.Score, sig.Total)
	if err != nil {
		// No classifiable performance: fall back to beginner-level picks.
		t = tier.Beginner
	}

	var items []Item

	// Tag matches first — most specific. Sorted for deterministic order.
	tags := append([]string(nil), sig.QuizTags...)
	sort.Strings(tags)
	for _, tag := range tags {
		for _, item := range tagResources[tag] {
			if tierSuitable(item.Tier, t) {
				items = append(items, stamp(item))
			}
		}
	}

	// Tier-generic guidance.
	for _, item := range tierResources[t] {
		items = append(items, stamp(item))
	}

	// Curriculum-position suggestions, then program-wide as the least
	// specific layer.
	if sig.ProgramID != "" {
		key := programKey{Program: sig.ProgramID, Year: sig.YearID, Semester: sig.SemesterID}
		for _, item := range semesterResources[key] {
			items = append(items, stamp(item))
		}
		for _, item := range programResources[sig.ProgramID] {
			items = append(items, stamp(item))
		}
	}

	return items, nil
}

// tierSuitable reports whether a resource at itemTier fits a learner at
// learnerTier. Resources two tiers away in either direction are excluded:
// a struggling student gets no advanced material and vice versa.
func tierSuitable(itemTier, learnerTier tier.Tier) bool {
	if learnerTier == tier.Beginner && itemTier == tier.Advanced {
		return false
	}
	if learnerTier == tier.Advanced && itemTier == tier.Beginner {
		return false
	}
	return true
}

// stamp fills provider-owned fields on a table entry copy.
func stamp(item Item) Item {
	item.Platform = PlatformRule
	return item
}
