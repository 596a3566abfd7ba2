package dataset_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/config"
	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/logging"
	"github.com/atharv3903/skyroute/internal/model"
)

func TestOpen(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{Kind: "csv", Path: "f.csv"}}
	src, err := dataset.Open(context.Background(), cfg, logging.Discard(), nil)
	require.NoError(t, err)
	assert.Equal(t, "csv:f.csv", src.Name())
	assert.NoError(t, dataset.Close(src))

	cfg.Source = config.SourceConfig{Kind: "parquet", Path: "f.parquet"}
	src, err = dataset.Open(context.Background(), cfg, logging.Discard(), nil)
	require.NoError(t, err)
	assert.Equal(t, "parquet:f.parquet", src.Name())

	cfg.Source = config.SourceConfig{Kind: "kafka", Brokers: "a:9092, b:9092", Topic: "flights"}
	src, err = dataset.Open(context.Background(), cfg, logging.Discard(), nil)
	require.NoError(t, err)
	assert.Equal(t, "kafka:flights", src.Name())

	cfg.Source = config.SourceConfig{Kind: "mysql", DSN: "u:p@tcp(127.0.0.1:1)/db", Table: "flights; drop"}
	_, err = dataset.Open(context.Background(), cfg, logging.Discard(), nil)
	assert.Error(t, err)

	cfg.Source = config.SourceConfig{Kind: "ftp"}
	_, err = dataset.Open(context.Background(), cfg, logging.Discard(), nil)
	assert.ErrorIs(t, err, dataset.ErrUnknownSource)
}

type flakySource struct {
	failures int
	calls    int
}

func (f *flakySource) Name() string { return "flaky" }
func (f *flakySource) Load(context.Context) ([]model.Row, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("unavailable")
	}
	return []model.Row{{"A", "B", 1.0}}, nil
}

func TestWithRetry(t *testing.T) {
	f := &flakySource{failures: 2}
	src := dataset.WithRetry(f, 3, time.Millisecond, logging.Discard())

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, "flaky", src.Name())
}

func TestWithRetry_GivesUp(t *testing.T) {
	f := &flakySource{failures: 10}
	_, err := dataset.WithRetry(f, 2, time.Millisecond, logging.Discard()).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 attempts failed")
	assert.Equal(t, 2, f.calls)
}

func TestRetryWithBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := dataset.RetryWithBackoff(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("down")
	}, logging.Discard())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
