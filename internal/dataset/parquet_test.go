package dataset_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/model"
)

func TestParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.parquet")
	recs := dataset.Generate(50, 7, nil)
	require.NoError(t, dataset.WriteParquet(path, recs))

	src := dataset.NewParquetSource(path)
	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, len(recs))

	for i, row := range rows {
		got, ok := row.Record()
		require.True(t, ok)
		assert.Equal(t, recs[i], got)
	}
}

func TestParquet_MissingFile(t *testing.T) {
	_, err := dataset.NewParquetSource(filepath.Join(t.TempDir(), "nope.parquet")).Load(context.Background())
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	a := dataset.Generate(200, 1, nil)
	b := dataset.Generate(200, 1, nil)
	assert.Equal(t, a, b, "same seed, same data")

	for _, r := range a {
		assert.NotEqual(t, r.Origin, r.Destination)
		assert.Contains(t, dataset.DefaultAirports, r.Origin)
		assert.GreaterOrEqual(t, r.Duration, 30.0)
		assert.LessOrEqual(t, r.Duration, 435.0)
	}

	custom := dataset.Generate(20, 1, []string{"XXX", "YYY"})
	for _, r := range custom {
		assert.ElementsMatch(t, []string{"XXX", "YYY"}, []string{r.Origin, r.Destination})
	}
}

func TestGenerate_FeedsAggregation(t *testing.T) {
	recs := dataset.Generate(500, 3, []string{"A", "B", "C"})
	rows := make([]model.Row, len(recs))
	for i, r := range recs {
		rows[i] = r.Row()
	}
	for _, row := range rows {
		_, ok := row.Record()
		require.True(t, ok)
	}
}
