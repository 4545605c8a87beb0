package videosearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/tier"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Video is a composed search result: identity from the search phase,
// duration and view count from the detail phase.
type Video struct {
	ID          string
	Title       string
	Description string
	Channel     string
	URL         string
	Duration    string
	ViewCount   uint64
}

// Client wraps the YouTube Data API v3. Lookups are strictly additive for
// callers: every failure path yields an empty slice, never an error, because
// video recommendations must never block a response.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a video search client. A bounded timeout is applied to
// every request.
func NewClient(apiKey string, log *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Search runs the two-phase lookup: search by relevance, then batch-fetch
// duration/view-count detail for the returned ids. Results are capped at
// limit. The difficulty tier biases the query wording.
func (c *Client) Search(ctx context.Context, query string, t tier.Tier, limit int) []Video {
	if c.apiKey == "" || limit <= 0 {
		return nil
	}

	stubs, err := c.search(ctx, tieredQuery(query, t), limit)
	if err != nil {
		c.log.Debug("video search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	if len(stubs) == 0 {
		return nil
	}

	ids := make([]string, len(stubs))
	for i, s := range stubs {
		ids[i] = s.ID
	}

	details, err := c.details(ctx, ids)
	if err != nil {
		c.log.Debug("video detail fetch failed", zap.Error(err))
		// Detail is enrichment; serve the stubs as-is.
		return stubs
	}

	for i := range stubs {
		if d, ok := details[stubs[i].ID]; ok {
			stubs[i].Duration = d.Duration
			stubs[i].ViewCount = d.ViewCount
		}
	}
	return stubs
}

// tieredQuery prefixes the query with a wording hint for the tier.
func tieredQuery(query string, t tier.Tier) string {
	switch t {
	case tier.Beginner:
		return query + " tutorial for beginners"
	case tier.Advanced:
		return query + " advanced"
	default:
		return query
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]Video, error) {
	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"order":      {"relevance"},
		"maxResults": {fmt.Sprint(limit)},
		"key":        {c.apiKey},
	}

	var out searchResponse
	if err := c.get(ctx, "/search", params, &out); err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(out.Items))
	for _, item := range out.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Channel:     item.Snippet.ChannelTitle,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}
	return videos, nil
}

type detailResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type videoDetail struct {
	Duration  string
	ViewCount uint64
}

func (c *Client) details(ctx context.Context, ids []string) (map[string]videoDetail, error) {
	params := url.Values{
		"part": {"contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.apiKey},
	}

	var out detailResponse
	if err := c.get(ctx, "/videos", params, &out); err != nil {
		return nil, err
	}

	details := make(map[string]videoDetail, len(out.Items))
	for _, item := range out.Items {
		var views uint64
		fmt.Sscan(item.Statistics.ViewCount, &views)
		details[item.ID] = videoDetail{
			Duration:  item.ContentDetails.Duration,
			ViewCount: views,
		}
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
