package collect

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"knews/internal/dates"
	"knews/internal/dedup"
	"knews/internal/logger"
	"knews/internal/metrics"
)

// exclusionPhrases drops articles that technically match a keyword but
// cover a story the newsletter never wants. Checked against normalized
// titles.
var exclusionPhrases = map[string][]string{
	"하나투어": {"송미선 대표", "송미선 연임"},
}

// Orchestrator runs one keyword through every source, normalizes and
// validates dates, applies exclusion rules and collapses duplicates.
type Orchestrator struct {
	Fetchers     []Fetcher
	Resolver     *dedup.Resolver
	MaxPerSource int
	TargetDate   string // empty = plausibility window only
	Exclusions   map[string][]string

	// Now is the clock for date validation; nil means time.Now.
	Now func() time.Time
}

func NewOrchestrator(fetchers []Fetcher, resolver *dedup.Resolver) *Orchestrator {
	sorted := make([]Fetcher, len(fetchers))
	copy(sorted, fetchers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Orchestrator{
		Fetchers:     sorted,
		Resolver:     resolver,
		MaxPerSource: 10,
		Exclusions:   exclusionPhrases,
	}
}

// Collect gathers, filters and deduplicates one keyword's articles. A
// failing source is logged and skipped; the keyword fails only when the
// context dies.
func (o *Orchestrator) Collect(ctx context.Context, keyword string) ([]Article, error) {
	var pool []Article

	for _, f := range o.Fetchers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := f.Fetch(ctx, keyword, o.MaxPerSource)
		if err != nil {
			// A dead context is the task's problem, not the source's.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.Global.IncrementSourceFailures()
			logger.Warn("source failed, continuing",
				"source", f.Name(), "keyword", keyword, "error", err)
			continue
		}

		pool = append(pool, o.filter(candidates, f, keyword)...)
	}

	metrics.Global.IncrementArticlesProcessed(len(pool))

	kept := o.deduplicate(pool, keyword)
	o.sortArticles(kept)
	return kept, nil
}

// filter normalizes dates and applies validation and exclusion rules to one
// source's candidates.
func (o *Orchestrator) filter(candidates []Candidate, f Fetcher, keyword string) []Article {
	now := time.Now()
	if o.Now != nil {
		now = o.Now()
	}

	var out []Article
	for _, c := range candidates {
		// Every surviving record needs a real link; it is the article's
		// external identity downstream.
		if !validLink(c.Link) {
			logger.Debug("dropping record with invalid link",
				"title", truncate(c.Title), "link", c.Link)
			continue
		}

		// Records that arrive without a usable date never get a default
		// substituted; they are dropped here, before dedup.
		date, err := dates.Normalize(c.RawDate)
		if err != nil {
			metrics.Global.IncrementDateRejects()
			logger.Debug("dropping record without a usable date",
				"title", truncate(c.Title), "raw_date", c.RawDate)
			continue
		}

		if ok, reason := dates.Validate(date, o.TargetDate, now); !ok {
			metrics.Global.IncrementDateRejects()
			logger.Debug("dropping record on date validation",
				"title", truncate(c.Title), "reason", reason)
			continue
		}

		if o.excluded(c.Title, keyword) {
			metrics.Global.IncrementExclusionsApplied()
			logger.Debug("dropping excluded story", "title", truncate(c.Title))
			continue
		}

		out = append(out, Article{
			Title:    c.Title,
			Link:     c.Link,
			Date:     date,
			Press:    c.Press,
			Source:   f.Name(),
			Priority: f.Priority(),
			Keyword:  keyword,
		})
	}
	return out
}

func (o *Orchestrator) excluded(title, keyword string) bool {
	phrases, ok := o.Exclusions[keyword]
	if !ok {
		return false
	}
	normalized := dedup.NormalizeTitle(title)
	for _, phrase := range phrases {
		if strings.Contains(normalized, dedup.NormalizeTitle(phrase)) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) deduplicate(pool []Article, keyword string) []Article {
	if len(pool) == 0 {
		return nil
	}

	items := make([]dedup.Item, len(pool))
	for i, a := range pool {
		items[i] = dedup.Item{Title: a.Title, Date: a.Date, Priority: a.Priority}
	}

	kept := o.Resolver.Resolve(items, keyword)
	metrics.Global.IncrementDuplicatesFiltered(len(pool) - len(kept))

	out := make([]Article, 0, len(kept))
	for _, idx := range kept {
		out = append(out, pool[idx])
	}
	return out
}

// sortArticles orders the final list by priority tier, then date in the
// resolver's tie-break direction (earliest first by default), then title
// for determinism.
func (o *Orchestrator) sortArticles(articles []Article) {
	latest := o.Resolver.TieBreak == dedup.TieBreakLatest
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Date != b.Date {
			if latest {
				return a.Date > b.Date
			}
			return a.Date < b.Date
		}
		return a.Title < b.Title
	})
}

func validLink(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= 30 {
		return s
	}
	return string(runes[:30]) + "..."
}
