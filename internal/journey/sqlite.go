package journey

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/comigor/journey-go/internal/logger"
)

// sqliteStore keeps the journey in a private in-memory SQLite database. The
// database lives on a single pinned connection and vanishes with the process.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens an in-memory SQLite database and creates the entries table.
func NewSQLiteStore(ctx context.Context) (Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS entries (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        text TEXT NOT NULL,
        created_at INTEGER NOT NULL,
        ai_response TEXT,
        category TEXT NOT NULL
    );`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create entries table: %w", err)
	}
	logger.L.Info("sqlite journey store initialized")
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, text, created_at, ai_response, category) VALUES (?,?,?,?,?);`,
		e.ID, e.Text, e.Timestamp.UnixNano(), e.AIResponse, string(e.Category))
	if err != nil {
		return fmt.Errorf("insert entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *sqliteStore) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, created_at, ai_response, category FROM entries ORDER BY seq DESC;`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e        Entry
			nanos    int64
			response sql.NullString
			category string
		)
		if err := rows.Scan(&e.ID, &e.Text, &nanos, &response, &category); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Timestamp = time.Unix(0, nanos)
		e.AIResponse = response.String
		e.Category = Category(category)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Close releases the database, and with it every entry.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
