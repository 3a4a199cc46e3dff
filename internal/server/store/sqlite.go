package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"janggi/internal/janggi"
)

// SQLite backs the store with a single-file database opened in WAL
// mode with a busy timeout, so concurrent handlers queue instead of
// failing with SQLITE_BUSY.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// migrations run in order at open. Applied names are recorded in
// _migrations, so reopening an existing file skips them.
var migrations = []struct {
	name string
	stmt string
}{
	{
		name: "001_games",
		stmt: `CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			position   TEXT NOT NULL,
			status     INTEGER NOT NULL,
			ply        INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	},
}

// OpenSQLite opens (creating if missing) the database at path and
// brings the schema up to date.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	for _, m := range migrations {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}
		if _, err := s.db.Exec(m.stmt); err != nil {
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := s.db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			return fmt.Errorf("record %s: %w", m.name, err)
		}
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, position, status, ply, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position=excluded.position,
			status=excluded.status,
			ply=excluded.ply,
			updated_at=excluded.updated_at`,
		r.ID, r.Position, int(r.Status), r.Ply, r.UpdatedAt.UnixNano(),
	)
	return err
}

func (s *SQLite) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, position, status, ply, updated_at FROM games WHERE id=?`, id)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, status, ply, updated_at FROM games ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var r Record
	var status int
	var updated int64
	if err := scan(&r.ID, &r.Position, &status, &r.Ply, &updated); err != nil {
		return Record{}, err
	}
	r.Status = janggi.GameStatus(status)
	r.UpdatedAt = time.Unix(0, updated)
	return r, nil
}
