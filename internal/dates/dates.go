// Package dates normalizes the date strings found on Korean news pages and
// feeds into canonical YYYY-MM-DD form and checks them against the batch's
// target date policy.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical is the layout every normalized date uses.
const Canonical = "2006-01-02"

// ErrNoDate is returned when a raw date string cannot be parsed. Callers
// must drop the record instead of substituting a default.
var ErrNoDate = errors.New("no parseable date")

// Layouts tried in order for datetime-style inputs. RFC 1123 variants cover
// the pubDate strings the Naver API and RSS feeds return.
var datetimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var koreanDate = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
var dottedDate = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})\.?$`)

// Normalize parses a raw date string into YYYY-MM-DD. It accepts RFC-822
// style datetimes, ISO dates and datetimes, dotted dates (2025.8.12),
// Korean worded dates (2025년 8월 12일) and bare YYYYMMDD.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrNoDate
	}

	// ISO timestamps with a trailing Z need no special casing; RFC3339 in
	// the layout list handles them. Try the cheap exact forms first.
	if t, err := time.Parse(Canonical, s); err == nil {
		return t.Format(Canonical), nil
	}
	if t, err := time.Parse("20060102", s); err == nil {
		return t.Format(Canonical), nil
	}

	if m := dottedDate.FindStringSubmatch(s); m != nil {
		return rebuild(m[1], m[2], m[3])
	}
	if m := koreanDate.FindStringSubmatch(s); m != nil {
		return rebuild(m[1], m[2], m[3])
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Canonical), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrNoDate, raw)
}

func rebuild(year, month, day string) (string, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (month 13, day 32); a changed field
	// means the components never formed a real date.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", fmt.Errorf("%w: %s-%s-%s", ErrNoDate, year, month, day)
	}
	return t.Format(Canonical), nil
}

// Validate checks a normalized date against the plausibility window and the
// optional target date. It never returns an error: the boolean says whether
// the record survives and the reason string feeds the drop log.
//
// Policy, in order: missing date is advisory-accepted when no target is
// required; malformed dates are rejected; dates more than one day in the
// future or five or more years in the past are rejected; when a target date
// is supplied the date must match it exactly.
func Validate(date, target string, now time.Time) (bool, string) {
	if date == "" {
		if target == "" {
			return true, "no date - validation skipped"
		}
		return false, "no date but target date required"
	}

	d, err := time.Parse(Canonical, date)
	if err != nil {
		return false, fmt.Sprintf("malformed date: %s", date)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if d.After(today.AddDate(0, 0, 1)) {
		return false, fmt.Sprintf("implausible future date: %s", date)
	}
	if !d.After(today.AddDate(-5, 0, 0)) {
		return false, fmt.Sprintf("implausibly stale date: %s", date)
	}

	if target != "" && date != target {
		return false, fmt.Sprintf("target date mismatch: got %s, want %s", date, target)
	}

	return true, "ok"
}
