package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"knews/internal/collect"
	"knews/internal/logger"
)

// PostgresSink stores collected articles in PostgreSQL for querying across
// days. It records results only; deduplication never reads it.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(connectionString string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sink := &PostgresSink{db: db}
	if err := sink.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("postgres sink connected")
	return sink, nil
}

func (s *PostgresSink) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id SERIAL PRIMARY KEY,
		link TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		date VARCHAR(10),
		press VARCHAR(100),
		source VARCHAR(50),
		priority INTEGER,
		keyword TEXT,
		topic TEXT,
		summary TEXT,
		collected_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date);
	CREATE INDEX IF NOT EXISTS idx_articles_keyword ON articles(keyword);
	CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveArticles upserts one topic's articles. Re-running a day updates the
// existing rows instead of duplicating them.
func (s *PostgresSink) SaveArticles(topic string, articles []collect.Article) error {
	query := `
		INSERT INTO articles (link, title, date, press, source, priority, keyword, topic, summary, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (link) DO UPDATE SET
			title = EXCLUDED.title,
			date = EXCLUDED.date,
			summary = EXCLUDED.summary,
			collected_at = NOW()
	`

	for _, a := range articles {
		if _, err := s.db.Exec(query,
			a.Link, a.Title, a.Date, a.Press, a.Source, a.Priority, a.Keyword, topic, a.Summary); err != nil {
			return fmt.Errorf("failed to save article %q: %w", a.Link, err)
		}
	}
	return nil
}

// CountByDate returns how many articles were stored for one date.
func (s *PostgresSink) CountByDate(date string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE date = $1`, date).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostgresSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
