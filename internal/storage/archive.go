// Package storage persists collection results: a daily JSON archive on
// disk and an optional Postgres sink.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"knews/internal/collect"
)

// TopicArticles is one topic's slice of a daily archive.
type TopicArticles struct {
	Topic    string            `json:"topic"`
	Articles []collect.Article `json:"articles"`
}

// DailyArchive is the on-disk document for one collection day.
type DailyArchive struct {
	Date       string          `json:"date"`
	ArchivedAt time.Time       `json:"archived_at"`
	Topics     []TopicArticles `json:"topics"`
}

// Archiver writes daily archives under baseDir/daily/YYYY/MM/.
type Archiver struct {
	baseDir string
}

func NewArchiver(baseDir string) *Archiver {
	return &Archiver{baseDir: baseDir}
}

// SaveDaily writes the day's results. date is YYYY-MM-DD; an existing
// archive for the same day is overwritten.
func (a *Archiver) SaveDaily(date string, topics []TopicArticles) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid archive date %q: %w", date, err)
	}

	dir := filepath.Join(a.baseDir, "daily", t.Format("2006"), t.Format("01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive dir: %w", err)
	}

	doc := DailyArchive{
		Date:       date,
		ArchivedAt: time.Now(),
		Topics:     topics,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal archive: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("daily_news_%s.json", strings.ReplaceAll(date, "-", "")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	return path, nil
}

// LoadDaily reads one day's archive back, if present.
func (a *Archiver) LoadDaily(date string) (*DailyArchive, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid archive date %q: %w", date, err)
	}

	path := filepath.Join(a.baseDir, "daily", t.Format("2006"), t.Format("01"),
		fmt.Sprintf("daily_news_%s.json", strings.ReplaceAll(date, "-", "")))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc DailyArchive
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archive: %w", err)
	}
	return &doc, nil
}
