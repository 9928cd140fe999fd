package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"knews/internal/collect"
	"knews/internal/logger"
)

// newsSite is one newspaper's search page and the selector that finds
// article links in its result markup.
type newsSite struct {
	name         string
	searchURL    string // %s = escaped keyword
	linkSelector string
}

var defaultSites = []newsSite{
	{
		name:         "연합뉴스",
		searchURL:    "https://www.yna.co.kr/search/index?query=%s",
		linkSelector: ".cts_atclst a, .news-con a",
	},
	{
		name:         "경향신문",
		searchURL:    "https://search.khan.co.kr/search.html?stb=khan&q=%s",
		linkSelector: ".phArtc a, dl.phArtc dt a",
	},
	{
		name:         "한겨레",
		searchURL:    "https://search.hani.co.kr/search?searchword=%s",
		linkSelector: ".search-result-list a, .article-title a",
	},
	{
		name:         "조선일보",
		searchURL:    "https://www.chosun.com/nsearch/?query=%s",
		linkSelector: ".story-card a, .search-feed a",
	},
	{
		name:         "중앙일보",
		searchURL:    "https://www.joongang.co.kr/search/unifiedSearch/%s",
		linkSelector: ".card_title a, h2.headline a",
	},
}

// SiteFetcher crawls the search pages of the major Korean newspapers.
// Priority tier 3: slowest and noisiest, used to backfill the feeds.
type SiteFetcher struct {
	sites  []newsSite
	client *http.Client
}

func NewSiteFetcher() *SiteFetcher {
	return &SiteFetcher{
		sites:  defaultSites,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *SiteFetcher) Name() string  { return "general_sites" }
func (f *SiteFetcher) Priority() int { return 3 }

// Fetch crawls every site's search page and keeps links whose text is
// actually about the keyword. A site that fails or changes markup only
// costs its own results.
func (f *SiteFetcher) Fetch(ctx context.Context, keyword string, limit int) ([]collect.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	perSite := limit/len(f.sites) + 1

	var candidates []collect.Candidate
	for _, site := range f.sites {
		if ctx.Err() != nil {
			return candidates, ctx.Err()
		}
		found, err := f.searchSite(ctx, site, keyword, perSite)
		if err != nil {
			logger.Warn("site search failed", "site", site.name, "error", err)
			continue
		}
		candidates = append(candidates, found...)
		if len(candidates) >= limit {
			candidates = candidates[:limit]
			break
		}
	}

	// Search result pages rarely expose dates; read each article's
	// published-time metadata so the records survive date validation.
	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		candidates[i].RawDate = f.publishedDate(ctx, candidates[i].Link)
	}

	return candidates, nil
}

var dateSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="article:published_time"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`time[datetime]`, "datetime"},
}

// publishedDate fetches one article page and extracts its publication
// timestamp from standard metadata. Empty on any failure; the record is
// then dropped downstream with a log line.
func (f *SiteFetcher) publishedDate(ctx context.Context, link string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; knews/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Debug("article page fetch failed", "link", link, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	for _, ds := range dateSelectors {
		if val, ok := doc.Find(ds.selector).First().Attr(ds.attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

func (f *SiteFetcher) searchSite(ctx context.Context, site newsSite, keyword string, limit int) ([]collect.Candidate, error) {
	searchURL := fmt.Sprintf(site.searchURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; knews/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var found []collect.Candidate
	seen := make(map[string]bool)
	doc.Find(site.linkSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		title := strings.TrimSpace(s.Text())
		if !ok || title == "" || seen[href] {
			return true
		}
		if !relevantTitle(title, keyword) {
			return true
		}
		seen[href] = true
		found = append(found, collect.Candidate{
			Title: title,
			Link:  absoluteURL(searchURL, href),
			Press: site.name,
		})
		return len(found) < limit
	})
	return found, nil
}

// relevantTitle requires the keyword to appear in the link text. Multi-word
// keywords match word by word, so a search hit for "야놀자" that only says
// "야, 놀자" does not slip through as brand coverage.
func relevantTitle(title, keyword string) bool {
	t := strings.ToLower(title)
	for _, part := range strings.Fields(strings.ToLower(keyword)) {
		if !strings.Contains(t, part) {
			return false
		}
	}
	return true
}

func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
