package dedup

import "sort"

// Item is the slice of an article the resolver needs: the raw title, the
// normalized date (may be empty) and the source priority tier.
type Item struct {
	Title    string
	Date     string
	Priority int
}

// TieBreak picks which report of a duplicate group represents it when
// priorities are equal.
type TieBreak int

const (
	// TieBreakEarliest keeps the earliest-dated report of a group.
	TieBreakEarliest TieBreak = iota
	// TieBreakLatest keeps the latest-dated report instead.
	TieBreakLatest
)

// Clustering groups item indices into duplicate clusters. The similar
// function is symmetric for any fixed keyword.
type Clustering interface {
	Cluster(items []Item, similar func(a, b Item) bool) [][]int
}

// SeedOnly is the single-pass greedy clustering: the first unclaimed item
// seeds a group and claims every later item similar to the seed itself.
// Two items can land in one group without being mutually similar only
// through the seed, which keeps the pass O(n·groups) and the grouping
// dependent solely on input order.
type SeedOnly struct{}

func (SeedOnly) Cluster(items []Item, similar func(a, b Item) bool) [][]int {
	claimed := make([]bool, len(items))
	var groups [][]int
	for i := range items {
		if claimed[i] {
			continue
		}
		group := []int{i}
		claimed[i] = true
		for j := i + 1; j < len(items); j++ {
			if claimed[j] {
				continue
			}
			if similar(items[i], items[j]) {
				group = append(group, j)
				claimed[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Transitive clusters by the full similarity graph with union-find: if A
// matches B and B matches C, all three collapse together even when A and C
// do not match directly.
type Transitive struct{}

func (Transitive) Cluster(items []Item, similar func(a, b Item) bool) [][]int {
	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if find(i) != find(j) && similar(items[i], items[j]) {
				parent[find(j)] = find(i)
			}
		}
	}

	byRoot := make(map[int][]int)
	order := make([]int, 0, len(items))
	for i := range items {
		r := find(i)
		if _, seen := byRoot[r]; !seen {
			order = append(order, r)
		}
		byRoot[r] = append(byRoot[r], i)
	}
	groups := make([][]int, 0, len(order))
	for _, r := range order {
		groups = append(groups, byRoot[r])
	}
	return groups
}

// Resolver collapses a keyword's articles into one representative per
// duplicate group.
type Resolver struct {
	Matcher    *Matcher
	Clustering Clustering
	TieBreak   TieBreak
}

// NewResolver returns a resolver with the default greedy clustering and
// earliest-report tie-break.
func NewResolver(m *Matcher) *Resolver {
	return &Resolver{
		Matcher:    m,
		Clustering: SeedOnly{},
		TieBreak:   TieBreakEarliest,
	}
}

// Resolve returns the indices of the representatives, one per duplicate
// group, ordered by each group's first occurrence in the input. Identical
// input always yields identical output.
func (r *Resolver) Resolve(items []Item, keyword string) []int {
	if len(items) == 0 {
		return nil
	}

	similar := func(a, b Item) bool {
		return r.Matcher.Similar(a.Title, b.Title, keyword)
	}
	groups := r.Clustering.Cluster(items, similar)

	kept := make([]int, 0, len(groups))
	for _, group := range groups {
		kept = append(kept, r.representative(items, group))
	}
	return kept
}

// representative orders a group by priority tier, then date in the
// configured direction, then title, and keeps the first. Empty dates sort
// after any real date so an undated wire copy never outranks a dated one.
func (r *Resolver) representative(items []Item, group []int) int {
	best := make([]int, len(group))
	copy(best, group)
	sort.SliceStable(best, func(x, y int) bool {
		a, b := items[best[x]], items[best[y]]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Date != b.Date {
			if a.Date == "" {
				return false
			}
			if b.Date == "" {
				return true
			}
			if r.TieBreak == TieBreakLatest {
				return a.Date > b.Date
			}
			return a.Date < b.Date
		}
		return a.Title < b.Title
	})
	return best[0]
}
