package dates

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Tue, 12 Aug 2025 09:30:00 +0900", "2025-08-12"},
		{"Tue, 12 Aug 2025 09:30:00 GMT", "2025-08-12"},
		{"2025-08-12", "2025-08-12"},
		{"2025.08.12", "2025-08-12"},
		{"2025.8.3", "2025-08-03"},
		{"2025.08.12.", "2025-08-12"},
		{"2025년 8월 12일", "2025-08-12"},
		{"20250812", "2025-08-12"},
		{"2025-08-12T09:30:00Z", "2025-08-12"},
		{"2025-08-12 09:30:00", "2025-08-12"},
		{"  2025-08-12  ", "2025-08-12"},
	}
	for _, c := range cases {
		got, err := Normalize(c.raw)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once, err := Normalize("2025년 8월 12일")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once != twice {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "no date here", "13/45/2025", "2025-13-40"} {
		if _, err := Normalize(raw); !errors.Is(err, ErrNoDate) {
			t.Errorf("Normalize(%q) err = %v, want ErrNoDate", raw, err)
		}
	}
}

func TestValidateFutureBoundary(t *testing.T) {
	now := time.Date(2025, 8, 12, 15, 0, 0, 0, time.UTC)

	if ok, reason := Validate("2025-08-13", "", now); !ok {
		t.Errorf("tomorrow rejected: %s", reason)
	}
	if ok, _ := Validate("2025-08-14", "", now); ok {
		t.Error("day after tomorrow accepted")
	}
}

func TestValidateStaleBoundary(t *testing.T) {
	now := time.Date(2025, 8, 12, 15, 0, 0, 0, time.UTC)

	// Exactly five years back is out; one day inside the window is in.
	if ok, _ := Validate("2020-08-12", "", now); ok {
		t.Error("date exactly five years old accepted")
	}
	if ok, reason := Validate("2020-08-13", "", now); !ok {
		t.Errorf("date one day inside the window rejected: %s", reason)
	}
}

func TestValidateTargetDate(t *testing.T) {
	now := time.Date(2025, 8, 12, 15, 0, 0, 0, time.UTC)

	if ok, _ := Validate("2025-08-12", "2025-08-12", now); !ok {
		t.Error("exact target match rejected")
	}
	if ok, _ := Validate("2025-08-11", "2025-08-12", now); ok {
		t.Error("target mismatch accepted")
	}
}

func TestValidateMissingDate(t *testing.T) {
	now := time.Date(2025, 8, 12, 15, 0, 0, 0, time.UTC)

	if ok, _ := Validate("", "", now); !ok {
		t.Error("missing date without target should pass with a warning")
	}
	if ok, _ := Validate("", "2025-08-12", now); ok {
		t.Error("missing date with target should be rejected")
	}
}

func TestValidateMalformed(t *testing.T) {
	now := time.Date(2025, 8, 12, 15, 0, 0, 0, time.UTC)
	if ok, _ := Validate("12.08.2025", "", now); ok {
		t.Error("malformed date accepted")
	}
}
