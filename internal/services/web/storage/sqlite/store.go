package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/vpshub/site/internal/platform/storage/sqlitemigrate"
	"github.com/vpshub/site/internal/services/web/storage"
	"github.com/vpshub/site/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists visitor values in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ForVisitor returns the storage scope for visitorID.
func (s *Store) ForVisitor(visitorID string) (storage.Storage, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	visitorID, err := storage.ValidateVisitor(visitorID)
	if err != nil {
		return nil, err
	}
	return &scope{store: s, visitorID: visitorID}, nil
}

// PurgeBefore removes values not written since cutoff and reports how many
// rows were dropped.
func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM visitor_values WHERE updated_at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge visitor values: %w", err)
	}
	return res.RowsAffected()
}

type scope struct {
	store     *Store
	visitorID string
}

func (s *scope) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return "", false, err
	}
	var value string
	err = s.store.sqlDB.QueryRowContext(
		ctx,
		`SELECT value FROM visitor_values WHERE visitor_id = ? AND name = ?`,
		s.visitorID,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get visitor value: %w", err)
	}
	return value, true, nil
}

func (s *scope) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *scope) Remove(ctx context.Context, key string) error {
	return s.RemoveMany(ctx, key)
}

// GetMany reads every key in one statement so the result is a single
// snapshot.
func (s *scope) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	keys, err := storage.ValidateKeys(keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	rows, err := s.store.sqlDB.QueryContext(
		ctx,
		`SELECT name, value FROM visitor_values WHERE visitor_id = ? AND name IN (`+placeholders(len(keys))+`)`,
		scopedArgs(s.visitorID, keys)...,
	)
	if err != nil {
		return nil, fmt.Errorf("get visitor values: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan visitor value: %w", err)
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get visitor values: %w", err)
	}
	return out, nil
}

func (s *scope) SetMany(ctx context.Context, values map[string]string) error {
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key, err := storage.ValidateKey(key)
		if err != nil {
			return err
		}
		normalized[key] = value
	}
	tx, err := s.store.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin visitor write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updatedAt := s.store.now().UTC().UnixMilli()
	for key, value := range normalized {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO visitor_values (visitor_id, name, value, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(visitor_id, name) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at`,
			s.visitorID,
			key,
			value,
			updatedAt,
		); err != nil {
			return fmt.Errorf("set visitor value: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit visitor write: %w", err)
	}
	return nil
}

func (s *scope) RemoveMany(ctx context.Context, keys ...string) error {
	keys, err := storage.ValidateKeys(keys)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.store.sqlDB.ExecContext(
		ctx,
		`DELETE FROM visitor_values WHERE visitor_id = ? AND name IN (`+placeholders(len(keys))+`)`,
		scopedArgs(s.visitorID, keys)...,
	); err != nil {
		return fmt.Errorf("remove visitor value: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func scopedArgs(visitorID string, keys []string) []any {
	args := make([]any, 0, len(keys)+1)
	args = append(args, visitorID)
	for _, key := range keys {
		args = append(args, key)
	}
	return args
}
