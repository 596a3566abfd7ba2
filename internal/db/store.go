package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/atharv3903/skyroute/internal/model"
)

var ErrBadTable = errors.New("db: invalid table name")

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Store reads flights from a MySQL table with origin, destination and duration
// columns.
type Store struct {
	DB    *sql.DB
	Table string
}

// OpenMySQL opens and pings dsn.
func OpenMySQL(dsn, table string) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTable, table)
	}

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return &Store{DB: conn, Table: table}, nil
}

func (s Store) Name() string { return "mysql:" + s.Table }

// Load returns every flight row. NULL cells become nil so the row is dropped
// as malformed during aggregation.
func (s Store) Load(ctx context.Context) ([]model.Row, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`
        SELECT origin, destination, duration
        FROM %s
    `, s.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Row, 0, 256)

	for rows.Next() {
		var origin, dest sql.NullString
		var dur sql.NullFloat64

		if err := rows.Scan(&origin, &dest, &dur); err != nil {
			return nil, err
		}

		out = append(out, nullRow(origin, dest, dur))
	}

	return out, rows.Err()
}

func (s Store) Close() error { return s.DB.Close() }

func nullRow(origin, dest sql.NullString, dur sql.NullFloat64) model.Row {
	row := make(model.Row, 3)
	if origin.Valid {
		row[0] = origin.String
	}
	if dest.Valid {
		row[1] = dest.String
	}
	if dur.Valid {
		row[2] = dur.Float64
	}
	return row
}
