package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharv3903/skyroute/internal/model"
)

// PGStore reads flights from a PostgreSQL table.
type PGStore struct {
	pool  *pgxpool.Pool
	table string
}

func OpenPostgres(ctx context.Context, dsn, table string) (*PGStore, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTable, table)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &PGStore{pool: pool, table: table}, nil
}

func (s *PGStore) Name() string { return "postgres:" + s.table }

func (s *PGStore) Load(ctx context.Context) ([]model.Row, error) {
	query := fmt.Sprintf(`
        SELECT origin, destination, duration::double precision
        FROM %s
    `, s.table)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Row, 0, 256)
	for rows.Next() {
		var origin, dest *string
		var dur *float64
		if err := rows.Scan(&origin, &dest, &dur); err != nil {
			return nil, err
		}

		row := make(model.Row, 3)
		if origin != nil {
			row[0] = *origin
		}
		if dest != nil {
			row[1] = *dest
		}
		if dur != nil {
			row[2] = *dur
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
