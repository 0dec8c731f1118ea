package store

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/tahcohcat/daily-mystery/internal/database"
)

// SQLiteStore keeps the key/value records in a single table. expire_at is a
// unix-millisecond timestamp, 0 meaning no expiry.
type SQLiteStore struct {
	db  *database.DB
	now func() time.Time
}

func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

type kvRow struct {
	Value    string `db:"value"`
	ExpireAt int64  `db:"expire_at"`
}

func (s *SQLiteStore) expired(expireAt int64) bool {
	return expireAt != 0 && s.now().UnixMilli() >= expireAt
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row kvRow
	err := s.db.GetContext(ctx, &row, `SELECT value, expire_at FROM kv_entries WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	if s.expired(row.ExpireAt) {
		return "", false, nil
	}
	return row.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string, expireAt time.Time) error {
	var expire int64
	if !expireAt.IsZero() {
		expire = expireAt.UnixMilli()
	}

	query := `
		INSERT INTO kv_entries (key, value, expire_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expire_at = excluded.expire_at,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, expire, s.now()); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *SQLiteStore) Incr(ctx context.Context, key string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, unavailable("incr", key, err)
	}
	defer tx.Rollback()

	var row kvRow
	var n int64
	err = tx.GetContext(ctx, &row, `SELECT value, expire_at FROM kv_entries WHERE key = ?`, key)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return 0, unavailable("incr", key, err)
	case s.expired(row.ExpireAt):
		row.ExpireAt = 0
	default:
		if n, err = strconv.ParseInt(row.Value, 10, 64); err != nil {
			return 0, unavailable("incr", key, err)
		}
	}
	n++

	query := `
		INSERT INTO kv_entries (key, value, expire_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expire_at = excluded.expire_at,
			updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, key, strconv.FormatInt(n, 10), row.ExpireAt, s.now()); err != nil {
		return 0, unavailable("incr", key, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, unavailable("incr", key, err)
	}
	return n, nil
}

// PurgeExpired deletes rows whose expiry has passed and reports how many went.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE expire_at != 0 AND expire_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, unavailable("purge", "kv_entries", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
