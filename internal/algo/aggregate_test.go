package algo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/model"
)

func TestBuildGraph_Single(t *testing.T) {
	g, rep := algo.BuildGraph([]model.Row{{"A", "B", 3.5}})

	st, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, []float64{3.5}, st.Observations())
	assert.Equal(t, 3.5, st.Average())
	assert.Zero(t, st.StdDev())
	assert.Equal(t, algo.Report{Rows: 1, Accepted: 1}, rep)
}

func TestBuildGraph_Aggregates(t *testing.T) {
	rows := []model.Row{
		{"JFK", "LAX", 5.5},
		{"JFK", "BOS", 1.5},
		{"JFK", "BOS", 2.0},
		{"LAX", "SFO", 1.2},
		{"JFK", "BOS", 1.7},
	}
	g, rep := algo.BuildGraph(rows)

	assert.Equal(t, 5, rep.Accepted)
	assert.Empty(t, rep.Skipped)
	assert.Equal(t, 3, g.EdgeCount())

	st, ok := g.Edge("JFK", "BOS")
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 2.0, 1.7}, st.Observations(), "input order")
	assert.InDelta(t, 1.7333, st.Average(), 1e-4)
	assert.InDelta(t, 0.2055, st.StdDev(), 1e-4)

	// direction matters
	_, ok = g.Edge("BOS", "JFK")
	assert.False(t, ok)
}

func TestBuildGraph_Empty(t *testing.T) {
	g, rep := algo.BuildGraph(nil)
	require.NotNil(t, g)
	assert.Empty(t, g.Airports())
	assert.Zero(t, rep.Rows)
}

func TestBuildGraph_SkipsMalformed(t *testing.T) {
	rows := []model.Row{
		{"A", "B", 1.0},
		{"A", nil, 2.0},
		{"A", "B", nil},
		{"A", "B"},
		{"A", "B", -4.0},
		{"A", "B", 3.0},
	}
	g, rep := algo.BuildGraph(rows)

	assert.Equal(t, 6, rep.Rows)
	assert.Equal(t, 2, rep.Accepted)
	assert.Equal(t, []int{1, 2, 3, 4}, rep.Skipped)

	st, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 2.0, st.Average())
}

func TestBuildGraphFromRecords(t *testing.T) {
	g := algo.BuildGraphFromRecords([]model.Record{
		{Origin: "A", Destination: "B", Duration: 10},
		{Origin: "A", Destination: "B", Duration: 20},
	})
	st, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, 15.0, st.Average())
	assert.Equal(t, 5.0, st.StdDev())
}
