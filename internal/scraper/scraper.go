package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"knews/internal/logger"
)

// ArticleContent is full article content
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

var client = &http.Client{Timeout: 15 * time.Second}

// ExtractFullArticle gets full text of article by URL
func ExtractFullArticle(ctx context.Context, url string) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; knews/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	content := extractContentBySource(doc, url)
	title := extractTitle(doc)

	if content == "" {
		return nil, fmt.Errorf("can't get content")
	}

	return &ArticleContent{
		Title:   title,
		Content: content,
		URL:     url,
	}, nil
}

// extractContentBySource gets content by news site
func extractContentBySource(doc *goquery.Document, url string) string {
	var content string

	switch {
	case strings.Contains(url, "naver.com"):
		content = extractBySelectors(doc, []string{
			"#dic_area",
			"#articleBodyContents",
			"#newsct_article",
			"#articeBody",
		})
	case strings.Contains(url, "yna.co.kr"):
		content = extractBySelectors(doc, []string{
			".story-news.article p",
			"#articleWrap p",
			".article p",
		})
	case strings.Contains(url, "hani.co.kr"):
		content = extractBySelectors(doc, []string{
			".article-text p",
			".text p",
		})
	case strings.Contains(url, "khan.co.kr"):
		content = extractBySelectors(doc, []string{
			".art_body p",
			"#articleBody p",
		})
	case strings.Contains(url, "chosun.com"):
		content = extractBySelectors(doc, []string{
			".article-body p",
			"#news_body_id p",
		})
	case strings.Contains(url, "joongang.co.kr"):
		content = extractBySelectors(doc, []string{
			"#article_body p",
			".article_body p",
		})
	default:
		content = extractGenericContent(doc)
	}

	return cleanContent(content)
}

// extractBySelectors tries selectors in order and keeps the first that
// yields text.
func extractBySelectors(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 10 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

// extractGenericContent is universal parser for any site
func extractGenericContent(doc *goquery.Document) string {
	var paragraphs []string

	selectors := []string{
		"article p",
		".article p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"#content p",
		"p",
	}

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

// extractTitle gets article title
func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"#title_area",
		".media_end_head_headline",
		".article-title",
		"title",
	}

	for _, selector := range selectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}

	return ""
}

var (
	reporterLine  = regexp.MustCompile(`[가-힣]{2,4}\s?(기자|특파원|위원)(\s?=)?`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	copyrightLine = regexp.MustCompile(`(?m)^.*(무단\s?전재|재배포\s?금지|저작권자|ⓒ|©).*$`)
)

// cleanContent removes reporter bylines, e-mail addresses and copyright
// boilerplate, then normalizes whitespace.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	content = copyrightLine.ReplaceAllString(content, "")
	content = reporterLine.ReplaceAllString(content, "")
	content = emailPattern.ReplaceAllString(content, "")

	junkPhrases := []string{
		"관련 기사", "많이 본 뉴스", "구독하기", "네이버에서 보기",
		"기사제보", "클릭하세요", "바로가기",
	}
	for _, phrase := range junkPhrases {
		content = strings.ReplaceAll(content, phrase, "")
	}

	lines := strings.Split(content, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}
		cleanLines = append(cleanLines, line)
	}
	content = strings.Join(cleanLines, "\n\n")

	for strings.Contains(content, "  ") {
		content = strings.ReplaceAll(content, "  ", " ")
	}
	for strings.Contains(content, "\n\n\n") {
		content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	}

	content = strings.TrimSpace(content)

	// Cap what goes into summary prompts, keeping whole paragraphs.
	if len(content) > 1800 {
		paragraphs := strings.Split(content, "\n\n")
		var kept []string
		total := 0
		for _, p := range paragraphs {
			if total+len(p) >= 1600 {
				break
			}
			kept = append(kept, p)
			total += len(p) + 2
		}
		if len(kept) > 0 {
			content = strings.Join(kept, "\n\n")
		}
	}

	return content
}

// ExtractArticles gets full content for up to five articles, pausing
// between requests so the sites are not hammered.
func ExtractArticles(ctx context.Context, urls []string) map[string]*ArticleContent {
	result := make(map[string]*ArticleContent)

	for i, url := range urls {
		if i >= 5 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		article, err := ExtractFullArticle(ctx, url)
		if err != nil {
			logger.Warn("can't get article content", "url", url, "error", err)
			continue
		}

		if len(article.Content) > 100 {
			result[url] = article
		} else {
			logger.Debug("content too short", "url", url)
		}

		time.Sleep(500 * time.Millisecond)
	}

	return result
}
