package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
	"sync"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullIfZero stores optional numbers as NULL.
func NullIfZero(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		logBadConn("HasTable "+table, err)
		return false
	}
	return name.Valid && name.String != ""
}

var badConnOnce sync.Once

// logBadConn reports a dropped connection once; per-call logging would spam.
func logBadConn(tag string, err error) {
	if errors.Is(err, driver.ErrBadConn) {
		badConnOnce.Do(func() { log.Println("[DB]", tag, "driver.ErrBadConn") })
	}
}
