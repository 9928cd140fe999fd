package storage

import (
	"os"
	"path/filepath"
	"testing"

	"knews/internal/collect"
)

func TestSaveAndLoadDaily(t *testing.T) {
	a := NewArchiver(t.TempDir())

	topics := []TopicArticles{
		{
			Topic: "여행",
			Articles: []collect.Article{
				{Title: "하나투어 46기 인턴 모집", Link: "https://example.com/1", Date: "2025-08-12", Priority: 1},
			},
		},
	}

	path, err := a.SaveDaily("2025-08-12", topics)
	if err != nil {
		t.Fatal(err)
	}

	// Layout: daily/YYYY/MM/daily_news_YYYYMMDD.json
	want := filepath.Join("daily", "2025", "08", "daily_news_20250812.json")
	if !filepath.IsAbs(path) || !hasSuffixPath(path, want) {
		t.Errorf("archive path = %q, want suffix %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("archive file missing: %v", err)
	}

	doc, err := a.LoadDaily("2025-08-12")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Date != "2025-08-12" || len(doc.Topics) != 1 {
		t.Errorf("round trip lost data: %+v", doc)
	}
	if doc.Topics[0].Articles[0].Title != "하나투어 46기 인턴 모집" {
		t.Errorf("article lost: %+v", doc.Topics[0])
	}
}

func TestSaveDailyRejectsBadDate(t *testing.T) {
	a := NewArchiver(t.TempDir())
	if _, err := a.SaveDaily("12-08-2025", nil); err == nil {
		t.Error("bad date accepted")
	}
}

func TestSaveDailyOverwrites(t *testing.T) {
	a := NewArchiver(t.TempDir())

	if _, err := a.SaveDaily("2025-08-12", []TopicArticles{{Topic: "a"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SaveDaily("2025-08-12", []TopicArticles{{Topic: "b"}}); err != nil {
		t.Fatal(err)
	}

	doc, err := a.LoadDaily("2025-08-12")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Topics) != 1 || doc.Topics[0].Topic != "b" {
		t.Errorf("second save did not overwrite: %+v", doc.Topics)
	}
}

func hasSuffixPath(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}
