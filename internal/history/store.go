// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists learn reports in a local SQLite database and
// answers queries over past lookups.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wikilearn/pkg/types"
)

const dbFile = "history.db"

// Store manages the lookup history SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the history database at dataDir/history.db,
// creating the schema when absent.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dataDir: cfg.DataDir, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT,
			summary TEXT,
			places TEXT,
			similar_words TEXT,
			retrieved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_topic ON lookups(topic)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='lookups_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE lookups_fts USING fts5(topic, title, summary, content=lookups, content_rowid=rowid)`,
			`CREATE TRIGGER lookups_ai AFTER INSERT ON lookups BEGIN
				INSERT INTO lookups_fts(rowid, topic, title, summary) VALUES (new.rowid, new.topic, new.title, new.summary);
			END`,
			`CREATE TRIGGER lookups_ad AFTER DELETE ON lookups BEGIN
				INSERT INTO lookups_fts(lookups_fts, rowid, topic, title, summary) VALUES('delete', old.rowid, old.topic, old.title, old.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Save appends a report to the history.
func (s *Store) Save(ctx context.Context, r types.Report) error {
	placesJSON, _ := json.Marshal(r.Places)
	wordsJSON, _ := json.Marshal(r.SimilarWords)

	retrievedAt := r.RetrievedAt
	if retrievedAt.IsZero() {
		retrievedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (topic, title, url, summary, places, similar_words, retrieved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Topic, r.Title, r.URL, r.Summary,
		string(placesJSON), string(wordsJSON),
		retrievedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lookup: %w", err)
	}
	return nil
}

// Entry is a stored report with its history row ID.
type Entry struct {
	ID int64 `json:"id" yaml:"id"`
	types.Report
}

// List returns the most recent lookups, newest first. A non-positive max
// uses the store default.
func (s *Store) List(ctx context.Context, max int) ([]Entry, error) {
	if max <= 0 {
		max = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT rowid, topic, title, url, summary, places, similar_words, retrieved_at
		 FROM lookups ORDER BY rowid DESC LIMIT ?`, max)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search runs an FTS5 full-text query over topic, title, and summary,
// ranked by relevance.
func (s *Store) Search(ctx context.Context, query string, max int) ([]Entry, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if max <= 0 {
		max = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.rowid, l.topic, l.title, l.url, l.summary, l.places, l.similar_words, l.retrieved_at
		 FROM lookups_fts
		 JOIN lookups l ON l.rowid = lookups_fts.rowid
		 WHERE lookups_fts MATCH ?
		 ORDER BY lookups_fts.rank LIMIT ?`, query, max)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			url         sql.NullString
			summary     sql.NullString
			placesJSON  sql.NullString
			wordsJSON   sql.NullString
			retrievedAt string
		)
		if err := rows.Scan(&e.ID, &e.Topic, &e.Title, &url, &summary,
			&placesJSON, &wordsJSON, &retrievedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.URL = url.String
		e.Summary = summary.String
		if placesJSON.Valid {
			json.Unmarshal([]byte(placesJSON.String), &e.Places)
		}
		if wordsJSON.Valid {
			json.Unmarshal([]byte(wordsJSON.String), &e.SimilarWords)
		}
		if t, err := time.Parse(time.RFC3339, retrievedAt); err == nil {
			e.RetrievedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
