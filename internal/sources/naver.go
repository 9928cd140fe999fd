// Package sources implements the news fetchers: Google News RSS search,
// the Naver Open API, and the search pages of the major Korean newspapers.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"knews/internal/collect"
	"knews/internal/retry"
)

const naverEndpoint = "https://openapi.naver.com/v1/search/news.json"

// NaverFetcher queries the Naver Open API news search. Priority tier 2.
type NaverFetcher struct {
	ClientID     string
	ClientSecret string
	client       *http.Client
}

func NewNaverFetcher(clientID, clientSecret string) *NaverFetcher {
	return &NaverFetcher{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *NaverFetcher) Name() string  { return "naver_api" }
func (f *NaverFetcher) Priority() int { return 2 }

type naverResponse struct {
	Items []struct {
		Title        string `json:"title"`
		Link         string `json:"link"`
		OriginalLink string `json:"originallink"`
		PubDate      string `json:"pubDate"`
	} `json:"items"`
}

func (f *NaverFetcher) Fetch(ctx context.Context, keyword string, limit int) ([]collect.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("display", fmt.Sprintf("%d", limit))
	q.Set("sort", "date")

	var body naverResponse
	err := retry.WithRetry(ctx, retry.RetryConfig{
		MaxAttempts: 2,
		Delay:       time.Second,
	}, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, naverEndpoint+"?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Naver-Client-Id", f.ClientID)
		req.Header.Set("X-Naver-Client-Secret", f.ClientSecret)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("naver request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("naver API status %d", resp.StatusCode)
		}

		body = naverResponse{}
		return json.NewDecoder(resp.Body).Decode(&body)
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]collect.Candidate, 0, len(body.Items))
	for _, item := range body.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}
		candidates = append(candidates, collect.Candidate{
			Title:   stripMarkup(item.Title),
			Link:    link,
			RawDate: item.PubDate,
			Press:   PressFromURL(link),
		})
	}
	return candidates, nil
}

// stripMarkup removes the <b> highlighting and entities the Naver API wraps
// around matched terms.
func stripMarkup(s string) string {
	r := strings.NewReplacer(
		"<b>", "", "</b>", "",
		"&quot;", `"`, "&amp;", "&",
		"&lt;", "<", "&gt;", ">",
		"&apos;", "'", "&#39;", "'",
	)
	return strings.TrimSpace(r.Replace(s))
}
