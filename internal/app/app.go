// Package app wires configuration, sources, collection and storage into
// one collection run.
package app

import (
	"context"
	"fmt"
	"time"

	"knews/internal/collect"
	"knews/internal/config"
	"knews/internal/dedup"
	"knews/internal/logger"
	"knews/internal/metrics"
	"knews/internal/pacing"
	"knews/internal/scraper"
	"knews/internal/sources"
	"knews/internal/storage"
	"knews/internal/summary"
	"knews/internal/topics"
)

// Run executes one full collection: every topic's keywords through the
// runner, summaries for the top articles, then the daily archive and the
// optional database sink.
func Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	topicsFile, err := topics.Load(cfg.TopicsConfigPath)
	if err != nil {
		return err
	}

	orchestrator := buildOrchestrator(cfg)
	gate := pacing.NewMinIntervalGate(cfg.PacingInterval)
	runner := collect.NewRunner(orchestrator, cfg.Workers, cfg.KeywordTimeout, gate)

	var summarizer *summary.Client
	if cfg.GeminiAPIKey != "" {
		summarizer, err = summary.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("summaries disabled", "error", err)
		} else {
			defer summarizer.Close()
		}
	}

	var sink *storage.PostgresSink
	if cfg.DatabaseURL != "" {
		sink, err = storage.NewPostgresSink(cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database sink disabled", "error", err)
		} else {
			defer sink.Close()
		}
	}

	var archive []storage.TopicArticles
	for _, topic := range topicsFile.Weighted() {
		articles := collectTopic(ctx, runner, topic, cfg.TopicTimeout)
		if len(articles) > topicsFile.MaxArticlesPerTopic {
			articles = articles[:topicsFile.MaxArticlesPerTopic]
		}

		if summarizer != nil {
			addSummaries(ctx, summarizer, articles)
		}

		logger.Info("topic collected", "topic", topic.Name, "articles", len(articles))
		archive = append(archive, storage.TopicArticles{Topic: topic.Name, Articles: articles})

		if sink != nil {
			if err := sink.SaveArticles(topic.Name, articles); err != nil {
				logger.Warn("database save failed", "topic", topic.Name, "error", err)
			}
		}
	}

	date := cfg.TargetDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	path, err := storage.NewArchiver(cfg.ArchiveDir).SaveDaily(date, archive)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("archive failed: %w", err)
	}

	metrics.Global.SetLastRun()
	logger.Info("collection finished", "archive", path, "elapsed", time.Since(start))
	return nil
}

func buildOrchestrator(cfg *config.Config) *collect.Orchestrator {
	fetchers := []collect.Fetcher{
		sources.NewGoogleNewsFetcher(),
		sources.NewSiteFetcher(),
	}
	if cfg.NaverClientID != "" {
		fetchers = append(fetchers, sources.NewNaverFetcher(cfg.NaverClientID, cfg.NaverClientSecret))
	}

	o := collect.NewOrchestrator(fetchers, dedup.NewResolver(dedup.NewMatcher()))
	o.MaxPerSource = cfg.MaxPerSource
	o.TargetDate = cfg.TargetDate
	return o
}

// collectTopic runs one topic's keywords under the topic deadline, merges
// the per-keyword results and collapses cross-keyword duplicates: first by
// link identity, then by title similarity over the merged set, so the same
// story found through two of the topic's keywords appears once.
func collectTopic(ctx context.Context, runner *collect.Runner, topic topics.Topic, timeout time.Duration) []collect.Article {
	topicCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := runner.CollectAll(topicCtx, topic.Keywords)
	if err != nil {
		logger.Warn("topic produced nothing", "topic", topic.Name, "error", err)
		return nil
	}

	var articles []collect.Article
	seen := make(map[string]bool)
	for _, res := range results {
		if res.State != collect.TaskSucceeded {
			continue
		}
		for _, a := range res.Articles {
			if seen[a.Link] {
				continue
			}
			seen[a.Link] = true
			articles = append(articles, a)
		}
	}

	if len(articles) < 2 {
		return articles
	}

	items := make([]dedup.Item, len(articles))
	for i, a := range articles {
		items[i] = dedup.Item{Title: a.Title, Date: a.Date, Priority: a.Priority}
	}
	kept := runner.Orchestrator.Resolver.Resolve(items, topic.Name)

	out := make([]collect.Article, 0, len(kept))
	for _, idx := range kept {
		out = append(out, articles[idx])
	}
	return out
}

// addSummaries pulls full article bodies for the topic's top links and
// asks Gemini for a three-sentence summary of each, headline-only when the
// body cannot be fetched.
func addSummaries(ctx context.Context, summarizer *summary.Client, articles []collect.Article) {
	links := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.Link != "" {
			links = append(links, a.Link)
		}
	}
	contents := scraper.ExtractArticles(ctx, links)

	for i := range articles {
		body := ""
		if c, ok := contents[articles[i].Link]; ok {
			body = c.Content
		}
		s, err := summarizer.Summarize(ctx, articles[i].Title, body)
		if err != nil {
			logger.Debug("summary failed", "title", articles[i].Title, "error", err)
			continue
		}
		articles[i].Summary = s
	}
}
