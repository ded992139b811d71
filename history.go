package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver with CGO
)

// HistoryStore persists analyzed submissions to a local SQLite
// database so past reviews can be recalled across sessions.
type HistoryStore struct {
	db *sql.DB
}

// Submission is one analyzed piece of code with its review results.
type Submission struct {
	ID          int64
	Code        string
	Language    string
	Errors      string
	Suggestions string
	TestCases   string
	Explanation string
	Overall     int
	CreatedAt   time.Time
}

// OpenHistory creates or opens the history database at the given path.
func OpenHistory(dbPath string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, ErrHistoryStore(fmt.Errorf("failed to create history directory: %w", err))
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, ErrHistoryStore(fmt.Errorf("failed to open database: %w", err))
	}

	if err := initHistorySchema(db); err != nil {
		_ = db.Close()
		return nil, ErrHistoryStore(fmt.Errorf("failed to initialize schema: %w", err))
	}

	return &HistoryStore{db: db}, nil
}

func initHistorySchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL,
		language TEXT NOT NULL,
		errors TEXT,
		suggestions TEXT,
		test_cases TEXT,
		explanation TEXT,
		overall_score INTEGER NOT NULL DEFAULT 100,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_language ON submissions(language);
	CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the history database.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// Save records a submission and returns its assigned ID.
func (h *HistoryStore) Save(ctx context.Context, sub *Submission) (int64, error) {
	result, err := h.db.ExecContext(ctx,
		`INSERT INTO submissions (code, language, errors, suggestions, test_cases, explanation, overall_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.Code, sub.Language, sub.Errors, sub.Suggestions, sub.TestCases,
		sub.Explanation, sub.Overall, time.Now().Unix())
	if err != nil {
		return 0, ErrHistoryStore(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, ErrHistoryStore(err)
	}
	sub.ID = id
	return id, nil
}

// Recent returns the most recent submissions, newest first.
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, code, language, errors, suggestions, test_cases, explanation, overall_score, created_at
		 FROM submissions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, ErrHistoryStore(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubmissions(rows)
}

// ByLanguage returns recent submissions for one language.
func (h *HistoryStore) ByLanguage(ctx context.Context, language string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, code, language, errors, suggestions, test_cases, explanation, overall_score, created_at
		 FROM submissions WHERE language = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		NormalizeLanguage(language), limit)
	if err != nil {
		return nil, ErrHistoryStore(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubmissions(rows)
}

// Get loads a single submission by ID.
func (h *HistoryStore) Get(ctx context.Context, id int64) (*Submission, error) {
	row := h.db.QueryRowContext(ctx,
		`SELECT id, code, language, errors, suggestions, test_cases, explanation, overall_score, created_at
		 FROM submissions WHERE id = ?`, id)

	var sub Submission
	var created int64
	err := row.Scan(&sub.ID, &sub.Code, &sub.Language, &sub.Errors, &sub.Suggestions,
		&sub.TestCases, &sub.Explanation, &sub.Overall, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, ErrHistoryStore(err)
	}
	sub.CreatedAt = time.Unix(created, 0)
	return &sub, nil
}

// Delete removes a submission. Deleting a missing ID is a no-op.
func (h *HistoryStore) Delete(ctx context.Context, id int64) error {
	_, err := h.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return ErrHistoryStore(err)
	}
	return nil
}

// Stats reports total submissions and per-language counts.
func (h *HistoryStore) Stats(ctx context.Context) (total int, byLanguage map[string]int, err error) {
	if err = h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&total); err != nil {
		return 0, nil, ErrHistoryStore(err)
	}

	rows, qerr := h.db.QueryContext(ctx, `SELECT language, COUNT(*) FROM submissions GROUP BY language`)
	if qerr != nil {
		return 0, nil, ErrHistoryStore(qerr)
	}
	defer func() { _ = rows.Close() }()

	byLanguage = make(map[string]int)
	for rows.Next() {
		var lang string
		var count int
		if scanErr := rows.Scan(&lang, &count); scanErr != nil {
			continue
		}
		byLanguage[lang] = count
	}
	return total, byLanguage, nil
}

func scanSubmissions(rows *sql.Rows) ([]Submission, error) {
	var subs []Submission
	for rows.Next() {
		var sub Submission
		var created int64
		err := rows.Scan(&sub.ID, &sub.Code, &sub.Language, &sub.Errors, &sub.Suggestions,
			&sub.TestCases, &sub.Explanation, &sub.Overall, &created)
		if err != nil {
			continue
		}
		sub.CreatedAt = time.Unix(created, 0)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrHistoryStore(err)
	}
	return subs, nil
}
