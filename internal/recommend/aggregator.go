package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/llm"
)

// Request is one aggregation invocation.
type Request struct {
	QuizID     string
	Score      int
	Total      int
	CourseID   string
	ProgramID  string
	YearID     string
	SemesterID string

	// IncludeAI and IncludeVideo request the optional tiers. They are
	// honored only when the matching backend is configured.
	IncludeAI    bool
	IncludeVideo bool
}

// Response is the merged, ordered recommendation list. An empty Items slice
// is a valid outcome, not an error.
type Response struct {
	Items []Item

	// AINotice carries a specific user-facing message when the AI tier was
	// requested but could not contribute. Never a hard error.
	AINotice string
}

// Aggregator composes the providers under the fixed fallback policy:
// rule-based always runs and its failure aborts the request; AI and video
// are attempted at most once each and their failures are absorbed.
type Aggregator struct {
	rule  Provider
	ai    Provider // nil when no AI backend is configured
	video Provider // nil when no video key is configured

	catalog Catalog
	log     *zap.Logger
}

// NewAggregator wires the pipeline. ai and video may be nil; the rule
// provider and catalog may not.
func NewAggregator(rule Provider, ai Provider, video Provider, catalog Catalog, log *zap.Logger) *Aggregator {
	return &Aggregator{rule: rule, ai: ai, video: video, catalog: catalog, log: log}
}

// Recommend runs one aggregation. Provider calls run sequentially in the
// fixed order rule → AI → video; the merge in the final step is what makes
// result order deterministic, so callers observe the same ranking whether or
// not the optional tiers contributed.
func (a *Aggregator) Recommend(ctx context.Context, req Request) (*Response, error) {
	meta, err := a.catalog.QuizMeta(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	sig := Signal{
		QuizID:          req.QuizID,
		CourseID:        firstNonEmpty(req.CourseID, meta.CourseID),
		ProgramID:       firstNonEmpty(req.ProgramID, meta.ProgramID),
		YearID:          req.YearID,
		SemesterID:      req.SemesterID,
		QuizTitle:       meta.Title,
		QuizDescription: meta.Description,
		QuizTags:        meta.Tags,
		CourseTitle:     meta.CourseTitle,
		Score:           req.Score,
		Total:           req.Total,
	}

	// Step 1: the availability floor. A failure here is an internal error —
	// there is nothing to fall back to.
	items, err := a.rule.Generate(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("rule-based provider: %w", err)
	}

	resp := &Response{}

	// Step 2: one AI attempt, failure absorbed.
	if req.IncludeAI && a.ai != nil {
		aiItems, err := a.ai.Generate(ctx, sig)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.log.Warn("ai recommendations skipped",
				zap.String("quiz_id", req.QuizID), zap.Error(err))
			resp.AINotice = aiNotice(err)
		} else {
			items = append(items, aiItems...)
		}
	}

	// Step 3: video enrichment, silently additive.
	if req.IncludeVideo && a.video != nil {
		videoItems, err := a.video.Generate(ctx, sig)
		if err == nil {
			items = append(items, videoItems...)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	resp.Items = merge(items)
	return resp, nil
}

// merge deduplicates by id and orders by priority descending. The sort must
// be stable: ties keep concatenation order, which is provider order
// (rule, AI, video) with each provider's internal order preserved.
func merge(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// aiNotice phrases a provider failure for the end user. Quota and auth
// problems get specific wording so they are actionable.
func aiNotice(err error) string {
	var quota *llm.ErrQuota
	if errors.As(err, &quota) {
		return "AI suggestions are temporarily unavailable (quota exhausted); showing curated recommendations."
	}
	var auth *llm.ErrAuth
	if errors.As(err, &auth) {
		return "AI suggestions are unavailable (invalid API credentials); showing curated recommendations."
	}
	return "AI suggestions are temporarily unavailable; showing curated recommendations."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
