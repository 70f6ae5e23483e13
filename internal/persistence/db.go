// Package persistence provides SQLite-based analysis history storage.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/quantum-gematria/internal/engine"
)

// SchemaVersion is stored under the schema_version meta key on open.
const SchemaVersion = "1"

// ErrMetaNotFound is returned by GetMeta for a missing key.
var ErrMetaNotFound = errors.New("meta key not found")

// DB wraps a SQLite connection for history persistence.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// AnalysisEntry is one stored single-text analysis.
type AnalysisEntry struct {
	ID        string           `json:"id"`
	Session   string           `json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	Text      string           `json:"text"`
	Scheme    string           `json:"scheme"`
	Result    *engine.Analysis `json:"result"`
}

// ComparisonEntry is one stored phrase comparison.
type ComparisonEntry struct {
	ID        string             `json:"id"`
	Session   string             `json:"-"`
	CreatedAt time.Time          `json:"created_at"`
	Phrase1   string             `json:"phrase1"`
	Phrase2   string             `json:"phrase2"`
	Result    *engine.Comparison `json:"result"`
}

type analysisRow struct {
	ID         string `db:"id"`
	Session    string `db:"session_id"`
	CreatedAt  int64  `db:"created_at"`
	Text       string `db:"text"`
	Scheme     string `db:"scheme"`
	ResultJSON string `db:"result_json"`
}

type comparisonRow struct {
	ID         string `db:"id"`
	Session    string `db:"session_id"`
	CreatedAt  int64  `db:"created_at"`
	Phrase1    string `db:"phrase1"`
	Phrase2    string `db:"phrase2"`
	ResultJSON string `db:"result_json"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite serializes writers anyway.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := db.SetMeta(context.Background(), "schema_version", SchemaVersion); err != nil {
		conn.Close()
		return nil, fmt.Errorf("save schema version: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		text TEXT NOT NULL,
		scheme TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS comparisons (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		phrase1 TEXT NOT NULL,
		phrase2 TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_session ON analyses(session_id, seq);
	CREATE INDEX IF NOT EXISTS idx_comparisons_session ON comparisons(session_id, seq);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAnalysis appends an analysis to the session's history and returns the
// new entry id.
func (db *DB) SaveAnalysis(ctx context.Context, session string, a *engine.Analysis) (string, error) {
	resultJSON, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO analyses (id, session_id, created_at, text, scheme, result_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, session, db.now().UTC().UnixNano(), a.Text, a.Scheme.String(), string(resultJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// SaveComparison appends a comparison to the session's history and returns
// the new entry id.
func (db *DB) SaveComparison(ctx context.Context, session, phrase1, phrase2 string, c *engine.Comparison) (string, error) {
	resultJSON, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode comparison: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO comparisons (id, session_id, created_at, phrase1, phrase2, result_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, session, db.now().UTC().UnixNano(), phrase1, phrase2, string(resultJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert comparison: %w", err)
	}
	return id, nil
}

// RecentAnalyses returns up to limit analyses, newest first. An empty session
// reads every session.
func (db *DB) RecentAnalyses(ctx context.Context, session string, limit int) ([]AnalysisEntry, error) {
	query := "SELECT id, session_id, created_at, text, scheme, result_json FROM analyses"
	query, args := sessionFilter(query, session)
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	var rows []analysisRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select analyses: %w", err)
	}

	entries := make([]AnalysisEntry, 0, len(rows))
	for _, r := range rows {
		var a engine.Analysis
		if err := json.Unmarshal([]byte(r.ResultJSON), &a); err != nil {
			return nil, fmt.Errorf("decode analysis %s: %w", r.ID, err)
		}
		entries = append(entries, AnalysisEntry{
			ID:        r.ID,
			Session:   r.Session,
			CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
			Text:      r.Text,
			Scheme:    r.Scheme,
			Result:    &a,
		})
	}
	return entries, nil
}

// RecentComparisons returns up to limit comparisons, newest first. An empty
// session reads every session.
func (db *DB) RecentComparisons(ctx context.Context, session string, limit int) ([]ComparisonEntry, error) {
	query := "SELECT id, session_id, created_at, phrase1, phrase2, result_json FROM comparisons"
	query, args := sessionFilter(query, session)
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	var rows []comparisonRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select comparisons: %w", err)
	}

	entries := make([]ComparisonEntry, 0, len(rows))
	for _, r := range rows {
		var c engine.Comparison
		if err := json.Unmarshal([]byte(r.ResultJSON), &c); err != nil {
			return nil, fmt.Errorf("decode comparison %s: %w", r.ID, err)
		}
		entries = append(entries, ComparisonEntry{
			ID:        r.ID,
			Session:   r.Session,
			CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
			Phrase1:   r.Phrase1,
			Phrase2:   r.Phrase2,
			Result:    &c,
		})
	}
	return entries, nil
}

// Trim keeps the newest keep entries of each kind for the session and deletes
// the rest. An empty session trims across all sessions. It returns the number
// of rows removed.
func (db *DB) Trim(ctx context.Context, session string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var removed int64
	for _, table := range []string{"analyses", "comparisons"} {
		keepQuery, keepArgs := sessionFilter("SELECT seq FROM "+table, session)
		keepQuery += " ORDER BY seq DESC LIMIT ?"
		keepArgs = append(keepArgs, keep)

		del, args := sessionFilter("DELETE FROM "+table, session)
		if session == "" {
			del += " WHERE"
		} else {
			del += " AND"
		}
		del += " seq NOT IN (" + keepQuery + ")"
		args = append(args, keepArgs...)

		res, err := tx.ExecContext(ctx, del, args...)
		if err != nil {
			return 0, fmt.Errorf("trim %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Debug("history trimmed", "session", session, "keep", keep, "removed", removed)
	}
	return removed, nil
}

// Clear deletes the session's history. An empty session purges everything.
func (db *DB) Clear(ctx context.Context, session string) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"analyses", "comparisons"} {
		query, args := sessionFilter("DELETE FROM "+table, session)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("history cleared", "session", session)
	return nil
}

// SetMeta stores a key-value pair in history metadata.
func (db *DB) SetMeta(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT OR REPLACE INTO history_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := db.conn.GetContext(ctx, &value, "SELECT value FROM history_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrMetaNotFound, key)
	}
	return value, err
}

func sessionFilter(query, session string) (string, []any) {
	if session == "" {
		return query, nil
	}
	return query + " WHERE session_id = ?", []any{session}
}
