package recommend

import (
	"context"
	"testing"

	"github.com/anupamd/studiq/internal/tier"
	"github.com/anupamd/studiq/internal/videosearch"
)

type stubSearcher struct {
	videos []videosearch.Video
	query  string
}

func (s *stubSearcher) Search(_ context.Context, query string, _ tier.Tier, _ int) []videosearch.Video {
	s.query = query
	return s.videos
}

func TestVideoProvider_MapsResults(t *testing.T) {
	searcher := &stubSearcher{videos: []videosearch.Video{
		{ID: "abc123", Title: "Linked Lists in 10 Minutes", URL: "https://www.youtube.com/watch?v=abc123"},
	}}
	p := NewVideoProvider(searcher, 3)

	items, err := p.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	item := items[0]
	if item.ID != "yt-abc123" {
		t.Errorf("id = %q, want namespaced yt-abc123", item.ID)
	}
	if item.Platform != PlatformYouTube || item.Type != ResourceVideo {
		t.Errorf("platform/type = %q/%q", item.Platform, item.Type)
	}
	if item.Priority != videoPriority {
		t.Errorf("priority = %d, want %d", item.Priority, videoPriority)
	}
	if searcher.query == "" {
		t.Error("provider did not build a search query from the signal")
	}
}

func TestVideoProvider_EmptyResultsNoError(t *testing.T) {
	p := NewVideoProvider(&stubSearcher{}, 3)

	items, err := p.Generate(t.Context(), testSignal())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}
