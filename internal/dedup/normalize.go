// Package dedup detects and collapses duplicate news articles by comparing
// normalized titles with Jaccard word-set similarity, with per-keyword
// override policies for brands and promotions that need tighter or looser
// matching than the general rule.
package dedup

import (
	"regexp"
	"strings"
	"unicode"
)

var bracketed = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|【[^】]*】|<[^>]*>`)
var numericToken = regexp.MustCompile(`\d+`)

// NormalizeTitle prepares a title for comparison: bracketed annotations and
// press tags go away, everything is lowercased, and every run of punctuation
// or whitespace collapses to a single space. The result of normalizing a
// normalized title is the title itself.
func NormalizeTitle(title string) string {
	s := bracketed.ReplaceAllString(title, " ")
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}

// StripKeyword removes the search keyword itself from a normalized title so
// similarity is judged on what the articles say beyond the term they were
// all found by.
func StripKeyword(title, keyword string) string {
	if keyword == "" {
		return title
	}
	k := NormalizeTitle(keyword)
	if k == "" {
		return title
	}
	s := strings.ReplaceAll(title, k, " ")
	return strings.Join(strings.Fields(s), " ")
}

// wordSet splits a normalized title into its unique words.
func wordSet(title string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(title) {
		set[w] = true
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|. Two empty sets count as identical.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func numericTokens(title string) map[string]bool {
	set := make(map[string]bool)
	for _, n := range numericToken.FindAllString(title, -1) {
		set[n] = true
	}
	return set
}

// withoutNumbers returns the word set minus any word containing a digit.
func withoutNumbers(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for w := range set {
		if !strings.ContainsAny(w, "0123456789") {
			out[w] = true
		}
	}
	return out
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for w := range a {
		if !b[w] {
			return false
		}
	}
	return true
}
