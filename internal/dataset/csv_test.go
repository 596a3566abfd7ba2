package dataset_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/config"
	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/model"
)

func TestReadCSV(t *testing.T) {
	in := "origin,destination,duration\n" +
		"JFK,LAX,330.5\n" +
		"JFK,BOS,75\n" +
		"LAX,SFO,abc\n"

	rows, err := dataset.ReadCSV(strings.NewReader(in), dataset.DefaultColumns())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, model.Row{"JFK", "LAX", 330.5}, rows[0])
	assert.Equal(t, model.Row{"JFK", "BOS", 75.0}, rows[1])
	assert.Equal(t, model.Row{"LAX", "SFO", nil}, rows[2], "unparseable duration is missing")

	_, ok := rows[2].Record()
	assert.False(t, ok)
}

func TestReadCSV_CustomColumns(t *testing.T) {
	in := "carrier,from,to,minutes\n" +
		"AA,ORD,DEN,160\n"
	cols := dataset.ColumnsFrom(config.Columns{Origin: "from", Destination: "to", Duration: "minutes"})

	rows, err := dataset.ReadCSV(strings.NewReader(in), cols)
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{"ORD", "DEN", 160.0}}, rows)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	in := "origin,destination,minutes\nJFK,LAX,1\n"

	_, err := dataset.ReadCSV(strings.NewReader(in), dataset.DefaultColumns())
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"duration"`)
}

func TestColumnsFrom(t *testing.T) {
	cols := dataset.ColumnsFrom(config.Columns{Duration: "air_time"})
	assert.Equal(t, dataset.Columns{Origin: "origin", Destination: "destination", Duration: "air_time"}, cols)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	recs := []model.Record{
		{Origin: "JFK", Destination: "LAX", Duration: 330.5},
		{Origin: "LAX", Destination: "SFO", Duration: 85},
	}

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, recs))

	rows, err := dataset.ReadCSV(&buf, dataset.DefaultColumns())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for i, row := range rows {
		got, ok := row.Record()
		require.True(t, ok)
		assert.Equal(t, recs[i], got)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, nil))
	assert.Equal(t, "origin,destination,duration\n", buf.String())
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.csv")
	require.NoError(t, os.WriteFile(path, []byte("origin,destination,duration\nA,B,1\n"), 0o644))

	src := dataset.NewCSVSource(path, dataset.DefaultColumns())
	assert.Equal(t, "csv:"+path, src.Name())

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{"A", "B", 1.0}}, rows)

	_, err = dataset.NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), dataset.DefaultColumns()).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
