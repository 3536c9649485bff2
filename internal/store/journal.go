package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"datescore-cli/internal/model"

	_ "modernc.org/sqlite"
)

const journalFileName = "journal.sqlite"

type JournalKind string

const (
	JournalSubmission JournalKind = "submission"
	JournalSuggestion JournalKind = "suggestion"
)

// JournalEntry is one locally recorded result.
type JournalEntry struct {
	ID        int64           `json:"id"`
	Kind      JournalKind     `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	Score     *int            `json:"score,omitempty"`
	Title     string          `json:"title"`
	Payload   json.RawMessage `json:"payload"`
}

type submissionPayload struct {
	Submission model.Submission  `json:"submission"`
	Result     model.ScoreResult `json:"result"`
}

type suggestionPayload struct {
	Input      string           `json:"input"`
	Suggestion model.Suggestion `json:"suggestion"`
}

// Journal is the opt-in local history of scored submissions and AI suggestions.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

func (s Store) journalPath() string {
	return filepath.Join(s.Dir, journalFileName)
}

func (s Store) OpenJournal(ctx context.Context) (*Journal, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.journalPath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the CLI and the TUI may append at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, now: time.Now}, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			score INTEGER,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) RecordSubmission(ctx context.Context, sub model.Submission, res model.ScoreResult) error {
	title := strings.TrimSpace(sub.Location)
	if title == "" {
		title = "(no location)"
	}
	score := res.Score
	return j.insert(ctx, JournalSubmission, &score, title, submissionPayload{Submission: sub, Result: res})
}

func (j *Journal) RecordSuggestion(ctx context.Context, input string, sg model.Suggestion) error {
	title := strings.TrimSpace(sg.Title)
	if title == "" {
		title = "(untitled plan)"
	}
	return j.insert(ctx, JournalSuggestion, nil, title, suggestionPayload{Input: input, Suggestion: sg})
}

func (j *Journal) insert(ctx context.Context, kind JournalKind, score *int, title string, payload any) error {
	if j == nil || j.db == nil {
		return errors.New("journal is not open")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var scoreArg any
	if score != nil {
		scoreArg = *score
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO entries(kind, score, title, json, created_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		string(kind), scoreArg, title, string(b), j.now().UnixMilli(),
	)
	return err
}

// List returns the newest entries first. limit <= 0 means all.
func (j *Journal) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if j == nil || j.db == nil {
		return nil, errors.New("journal is not open")
	}
	q := `SELECT id, kind, score, title, json, created_at_unixms FROM entries ORDER BY created_at_unixms DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JournalEntry{}
	for rows.Next() {
		var (
			e     JournalEntry
			kind  string
			score sql.NullInt64
			raw   string
			ms    int64
		)
		if err := rows.Scan(&e.ID, &kind, &score, &e.Title, &raw, &ms); err != nil {
			return nil, err
		}
		e.Kind = JournalKind(kind)
		if score.Valid {
			v := int(score.Int64)
			e.Score = &v
		}
		e.Payload = json.RawMessage(raw)
		e.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
