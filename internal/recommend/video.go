package recommend

import (
	"context"

	"github.com/anupamd/studiq/internal/tier"
	"github.com/anupamd/studiq/internal/videosearch"
)

// videoPriority ranks video results below curated and AI items: they are
// additive enrichment, not primary guidance.
const videoPriority = 30

// VideoSearcher is the slice of the video client the provider needs.
type VideoSearcher interface {
	Search(ctx context.Context, query string, t tier.Tier, limit int) []videosearch.Video
}

// VideoProvider adapts the video search client to the Provider interface.
// Its contract is absorb-all: an unreachable backend or zero hits both yield
// an empty list, never an error.
type VideoProvider struct {
	searcher VideoSearcher
	limit    int
}

// NewVideoProvider creates a video recommendation provider. limit caps
// results per request.
func NewVideoProvider(searcher VideoSearcher, limit int) *VideoProvider {
	return &VideoProvider{searcher: searcher, limit: limit}
}

func (p *VideoProvider) Name() string { return string(PlatformYouTube) }

func (p *VideoProvider) Generate(ctx context.Context, sig Signal) ([]Item, error) {
	t, err := tier.Classify(sig.Score, sig.Total)
	if err != nil {
		t = tier.Beginner
	}

	query := videosearch.BuildQuery(sig.QuizTitle, sig.QuizTags, sig.QuizDescription)
	videos := p.searcher.Search(ctx, query, t, p.limit)

	items := make([]Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, Item{
			ID:          "yt-" + v.ID,
			Title:       v.Title,
			Description: v.Description,
			URL:         v.URL,
			Type:        ResourceVideo,
			Tags:        sig.QuizTags,
			Tier:        t,
			Platform:    PlatformYouTube,
			Priority:    videoPriority,
		})
	}
	return items, nil
}
