// Package summary produces short Korean summaries of collected articles
// with Gemini.
package summary

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize returns a summary of an article in at most three Korean
// sentences. content may be empty; the headline alone still gets a one-line
// summary.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	model := c.client.GenerativeModel("gemini-1.5-flash")

	content = sanitize(content)

	prompt := fmt.Sprintf(`다음 뉴스 기사를 한국어로 요약해 주세요.

제목: %s
본문: %s

요구사항:
- 최대 3문장
- 핵심 사실만, 의견이나 배경 설명 없이
- "이 기사는"과 같은 도입부 없이 바로 내용으로 시작

요약:`, title, content)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return text, nil
}

// sanitize collapses whitespace and caps the prompt size.
func sanitize(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")

	maxChars := 4000
	if utf8.RuneCountInString(content) > maxChars {
		runes := []rune(content)
		trimmed := string(runes[:maxChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1000 {
			trimmed = trimmed[:idx+1]
		}
		content = trimmed
	}
	return content
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
