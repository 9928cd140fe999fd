package dedup

import "strings"

// Similarity thresholds. These came out of tuning against real Korean news
// titles; change them here, never inline in matching code.
const (
	// DefaultThreshold is the general Jaccard cut-off for two titles found
	// by the same keyword to count as the same story.
	DefaultThreshold = 0.4

	// BrandThreshold is the stricter cut-off used for brand keywords whose
	// coverage mixes many distinct stories sharing the brand name.
	BrandThreshold = 0.7

	// PromoThreshold is the looser cut-off for promotion keywords, where
	// outlets rewrite the same discount announcement heavily.
	PromoThreshold = 0.3

	// SynonymRemainderThreshold applies after a known verb-synonym pair is
	// removed from both titles.
	SynonymRemainderThreshold = 0.5

	// NumericRemainderThreshold applies to the non-numeric words of two
	// titles that share a numeric token (episode, round, percentage).
	NumericRemainderThreshold = 0.6

	// BrandNumericRemainderThreshold applies under brand policy when both
	// titles carry the same numeric token: the rest must be near-identical,
	// otherwise the shared number marks two reports on the same program,
	// not the same article.
	BrandNumericRemainderThreshold = 0.95
)

// synonymPairs are verb pairs Korean outlets use interchangeably in
// headlines. Either order matches.
var synonymPairs = [][2]string{
	{"진행", "실시"},
	{"완료", "종료"},
	{"시작", "개시"},
	{"발표", "공개"},
	{"확정", "결정"},
	{"추진", "진행"},
	{"개최", "진행"},
	{"출시", "공개"},
}

// actionVerbs distinguish stage-of-progress headlines under brand policy: a
// title saying a program 시작 and another saying it 운영 are different news.
var actionVerbs = []string{"진행", "시작", "실시", "개시", "운영"}

// programTerms mark brand education/recruiting program coverage, where each
// cohort or course is its own story.
var programTerms = []string{"인턴", "교육", "입문", "기수", "프로그램", "과정"}

// productTerms are the payment/benefit and provider words used under promo
// policy: two discount headlines sharing any of these are the same
// campaign. Latin names match lowercase because titles are normalized
// before comparison.
var productTerms = []string{
	"카드", "신용카드", "체크카드", "포인트", "마일리지",
	"적립", "리워드", "혜택", "서비스", "앱", "온라인", "오프라인",
	"은행", "카카오", "네이버", "쿠팡", "배달", "통신", "skt", "kt", "lg유플러스",
}

var promoMarkers = []string{"할인", "캐쉬백", "캐시백"}

// Policy decides whether two keyword-stripped, normalized titles report the
// same story.
type Policy interface {
	Similar(a, b string) bool
}

// DefaultPolicy is the general matching rule: synonym-pair rewrite check,
// shared-numeric-token check, then plain Jaccard.
type DefaultPolicy struct {
	Threshold float64
}

func (p DefaultPolicy) Similar(a, b string) bool {
	wa, wb := wordSet(a), wordSet(b)

	// A known synonym pair split across the titles means the outlets
	// rewrote the same verb; judge the remainder on its own.
	for _, pair := range synonymPairs {
		if hasPair(wa, wb, pair) {
			ra := without(wa, pair[0], pair[1])
			rb := without(wb, pair[0], pair[1])
			if jaccard(ra, rb) >= SynonymRemainderThreshold {
				return true
			}
		}
	}

	// Titles sharing a numeric token (46기, 50%, 3분기) are the same story
	// if the surrounding words mostly agree.
	na, nb := numericTokens(a), numericTokens(b)
	if shares(na, nb) {
		if jaccard(withoutNumbers(wa), withoutNumbers(wb)) >= NumericRemainderThreshold {
			return true
		}
	}

	return jaccard(wa, wb) >= p.Threshold
}

// BrandPolicy is the strict rule for brand keywords. Distinct numeric
// tokens, differing action verbs, or program coverage on only one side all
// force the titles apart before the (raised) Jaccard threshold applies.
type BrandPolicy struct {
	Threshold float64
}

func (p BrandPolicy) Similar(a, b string) bool {
	wa, wb := wordSet(a), wordSet(b)
	na, nb := numericTokens(a), numericTokens(b)

	if len(na) > 0 && len(nb) > 0 {
		if !sameSet(na, nb) {
			// 46기 vs 47기: definitively different cohorts.
			return false
		}
		// Same number on both sides proves nothing for a brand; demand
		// the rest of the titles be near-identical.
		return jaccard(withoutNumbers(wa), withoutNumbers(wb)) >= BrandNumericRemainderThreshold
	}

	va, vb := "", ""
	for _, v := range actionVerbs {
		if wa[v] {
			va = v
		}
		if wb[v] {
			vb = v
		}
	}
	if va != "" && vb != "" && va != vb {
		return false
	}

	if hasProgramTerm(wa) != hasProgramTerm(wb) {
		return false
	}

	return jaccard(wa, wb) >= p.Threshold
}

// PromoPolicy is the loose rule for discount/cashback keywords: one shared
// product term is enough, otherwise a low Jaccard bar applies.
type PromoPolicy struct {
	Threshold float64
}

func (p PromoPolicy) Similar(a, b string) bool {
	wa, wb := wordSet(a), wordSet(b)

	for _, term := range productTerms {
		if wa[term] && wb[term] {
			return true
		}
	}

	return jaccard(wa, wb) >= p.Threshold
}

// Matcher routes title pairs to the right policy for their keyword.
type Matcher struct {
	overrides map[string]Policy
	fallback  Policy
}

// NewMatcher builds a matcher with the built-in keyword routing: 하나투어
// gets brand policy, discount/cashback keywords get promo policy, everything
// else the default rule.
func NewMatcher() *Matcher {
	return &Matcher{
		overrides: map[string]Policy{
			"하나투어": BrandPolicy{Threshold: BrandThreshold},
		},
		fallback: DefaultPolicy{Threshold: DefaultThreshold},
	}
}

// SetPolicy overrides the policy for one keyword.
func (m *Matcher) SetPolicy(keyword string, p Policy) {
	m.overrides[keyword] = p
}

// PolicyFor returns the policy the matcher will apply for a keyword.
func (m *Matcher) PolicyFor(keyword string) Policy {
	if p, ok := m.overrides[keyword]; ok {
		return p
	}
	for _, marker := range promoMarkers {
		if strings.Contains(keyword, marker) {
			return PromoPolicy{Threshold: PromoThreshold}
		}
	}
	return m.fallback
}

// Similar reports whether two raw titles found by the same keyword are the
// same story. Normalization and keyword stripping happen here, so callers
// pass titles as fetched.
func (m *Matcher) Similar(titleA, titleB, keyword string) bool {
	a := StripKeyword(NormalizeTitle(titleA), keyword)
	b := StripKeyword(NormalizeTitle(titleB), keyword)
	if a == b {
		return true
	}
	return m.PolicyFor(keyword).Similar(a, b)
}

func hasPair(a, b map[string]bool, pair [2]string) bool {
	return (a[pair[0]] && b[pair[1]]) || (a[pair[1]] && b[pair[0]])
}

func without(set map[string]bool, words ...string) map[string]bool {
	out := make(map[string]bool, len(set))
	for w := range set {
		out[w] = true
	}
	for _, w := range words {
		delete(out, w)
	}
	return out
}

func shares(a, b map[string]bool) bool {
	for w := range a {
		if b[w] {
			return true
		}
	}
	return false
}

func hasProgramTerm(set map[string]bool) bool {
	for _, t := range programTerms {
		if set[t] {
			return true
		}
	}
	return false
}
