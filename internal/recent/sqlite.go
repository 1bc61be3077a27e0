package recent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	apperrors "clientele/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recent_values (
	namespace  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteBackend stores each namespace as one JSON array row.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// buildSQLiteDSN creates a read-write WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", buildSQLiteDSN(path))
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "ping sqlite db", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "create recent_values table", err)
	}
	return &SQLiteBackend{path: path, db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context, ns string) ([]string, error) {
	var payload string
	err := b.db.QueryRowContext(ctx,
		`SELECT payload FROM recent_values WHERE namespace = ?`, ns,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("query recent values for %s", ns), err)
	}
	return decodeValues(ns, []byte(payload))
}

func (b *SQLiteBackend) Save(ctx context.Context, ns string, values []string) error {
	payload, err := encodeValues(values)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO recent_values (namespace, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, ns, string(payload), time.Now().Unix())
	if err != nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("save recent values for %s", ns), err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, ns string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM recent_values WHERE namespace = ?`, ns); err != nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("delete recent values for %s", ns), err)
	}
	return nil
}

// Namespaces lists every stored namespace, most recently written first.
func (b *SQLiteBackend) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT namespace FROM recent_values ORDER BY updated_at DESC, namespace`)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "list recent namespaces", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
