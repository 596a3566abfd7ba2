// Package dataset loads flight rows from files, object storage, Kafka and SQL
// databases. Loaders hand rows over untouched; filtering malformed rows is the
// aggregator's job.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atharv3903/skyroute/internal/config"
	"github.com/atharv3903/skyroute/internal/db"
	"github.com/atharv3903/skyroute/internal/logging"
	"github.com/atharv3903/skyroute/internal/model"
)

var (
	ErrUnknownSource = errors.New("dataset: unknown source kind")
	ErrMissingColumn = errors.New("dataset: missing column")
)

// Source produces a finite, in-memory set of positional rows.
type Source interface {
	Load(ctx context.Context) ([]model.Row, error)
	Name() string
}

// Open builds the Source described by cfg.Source. Sources backed by a network
// service are retried according to cfg.Retry. progress, when non-nil, receives
// a progress bar for long loads.
func Open(ctx context.Context, cfg *config.Config, log *logging.Logger, progress io.Writer) (Source, error) {
	sc := cfg.Source
	cols := ColumnsFrom(sc.Columns)

	var (
		src Source
		err error
	)
	switch sc.Kind {
	case "csv":
		return NewCSVSource(sc.Path, cols), nil
	case "parquet":
		return NewParquetSource(sc.Path), nil
	case "s3":
		src, err = NewS3Source(ctx, sc.Region, sc.Bucket, sc.Key, cols)
	case "kafka":
		src = NewKafkaSource(sc.BrokerList(), sc.Topic, progress)
	case "mysql":
		src, err = db.OpenMySQL(sc.DSN, sc.Table)
	case "postgres":
		src, err = db.OpenPostgres(ctx, sc.DSN, sc.Table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sc.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", sc.Kind, err)
	}

	return WithRetry(src, cfg.Retry.Max, cfg.Retry.Backoff, log), nil
}

// Close releases src if it holds resources.
func Close(src Source) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
