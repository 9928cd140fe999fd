package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"knews/internal/collect"
)

// GoogleNewsFetcher searches Google News through its Korean RSS endpoint.
// Priority tier 1: aggregated coverage with reliable pubDates.
type GoogleNewsFetcher struct {
	parser *gofeed.Parser
}

func NewGoogleNewsFetcher() *GoogleNewsFetcher {
	p := gofeed.NewParser()
	p.UserAgent = "Mozilla/5.0 (compatible; knews/1.0)"
	return &GoogleNewsFetcher{parser: p}
}

func (f *GoogleNewsFetcher) Name() string  { return "google_news" }
func (f *GoogleNewsFetcher) Priority() int { return 1 }

func (f *GoogleNewsFetcher) Fetch(ctx context.Context, keyword string, limit int) ([]collect.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}

	feedURL := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=ko&gl=KR&ceid=KR:ko",
		url.QueryEscape(keyword),
	)

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news fetch failed: %w", err)
	}

	candidates := make([]collect.Candidate, 0, limit)
	for _, item := range feed.Items {
		if len(candidates) >= limit {
			break
		}
		title, press := splitGoogleTitle(item.Title)
		candidates = append(candidates, collect.Candidate{
			Title:   title,
			Link:    item.Link,
			RawDate: item.Published,
			Press:   press,
		})
	}
	return candidates, nil
}

// splitGoogleTitle separates the " - 언론사" suffix Google News appends to
// every headline.
func splitGoogleTitle(title string) (string, string) {
	if i := strings.LastIndex(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
	}
	return strings.TrimSpace(title), ""
}
