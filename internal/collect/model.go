// Package collect orchestrates keyword news collection: it fans a keyword
// out across prioritized sources, filters and deduplicates what comes back,
// and runs many keywords concurrently behind one shared pacing gate.
package collect

import "context"

// Candidate is one raw search hit as a source returned it. Dates are
// unparsed; normalization happens in the orchestrator so every source can
// stay dumb about formats.
type Candidate struct {
	Title   string
	Link    string
	RawDate string
	Press   string
}

// Article is a candidate that survived date filtering, exclusion rules and
// deduplication.
type Article struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Date     string `json:"date"`
	Press    string `json:"press,omitempty"`
	Source   string `json:"source"`
	Priority int    `json:"priority"`
	Keyword  string `json:"keyword"`
	Summary  string `json:"summary,omitempty"`
}

// Fetcher is one news source. Priority tiers are fixed: 1 for Google News,
// 2 for the Naver API, 3 for general newspaper sites. Lower wins when a
// duplicate group spans tiers.
type Fetcher interface {
	Name() string
	Priority() int
	Fetch(ctx context.Context, keyword string, limit int) ([]Candidate, error)
}
