package algo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/model"
)

func graph(recs ...model.Record) *model.Graph {
	return algo.BuildGraphFromRecords(recs)
}

func rec(from, to string, d float64) model.Record {
	return model.Record{Origin: from, Destination: to, Duration: d}
}

func TestShortestPath_SameAirport(t *testing.T) {
	g := graph(rec("A", "B", 1))

	r, ok := algo.ShortestPath(g, "A", "A")
	require.True(t, ok)
	assert.Zero(t, r.Cost)
	assert.Equal(t, []string{"A"}, r.Path)

	// destination-only airports are still airports
	r, ok = algo.ShortestPath(g, "B", "B")
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, r.Path)

	_, ok = algo.ShortestPath(g, "Z", "Z")
	assert.False(t, ok)
}

func TestShortestPath_Absent(t *testing.T) {
	g := graph(rec("A", "B", 1), rec("C", "D", 1))

	cases := []struct{ from, to string }{
		{"X", "B"}, // unknown start
		{"B", "A"}, // start has no outgoing edges
		{"A", "D"}, // disconnected
		{"A", "X"}, // unknown goal
	}
	for _, c := range cases {
		_, ok := algo.ShortestPath(g, c.from, c.to)
		assert.False(t, ok, "%s->%s", c.from, c.to)
	}

	_, ok := algo.ShortestPath(nil, "A", "B")
	assert.False(t, ok)
}

func TestShortestPath_PrefersCheaperMultiHop(t *testing.T) {
	// A→B(1), B→C(2), A→C(5)
	g := graph(rec("A", "B", 1), rec("B", "C", 2), rec("A", "C", 5))

	r, ok := algo.ShortestPath(g, "A", "C")
	require.True(t, ok)
	assert.Equal(t, 3.0, r.Cost)
	assert.Equal(t, []string{"A", "B", "C"}, r.Path)
	assert.Equal(t, 2, r.Hops())
}

func TestShortestPath_TwoHopBeatsDirect(t *testing.T) {
	// A→B(1), B→C(1), A→C(5)
	g := graph(rec("A", "B", 1), rec("B", "C", 1), rec("A", "C", 5))

	r, ok := algo.ShortestPath(g, "A", "C")
	require.True(t, ok)
	assert.Equal(t, 2.0, r.Cost)
	assert.Equal(t, []string{"A", "B", "C"}, r.Path)
}

func TestShortestPath_PrefersCheaperDirect(t *testing.T) {
	g := graph(rec("A", "B", 4), rec("B", "C", 4), rec("A", "C", 5))

	r, ok := algo.ShortestPath(g, "A", "C")
	require.True(t, ok)
	assert.Equal(t, 5.0, r.Cost)
	assert.Equal(t, []string{"A", "C"}, r.Path)
}

func TestShortestPath_UsesAverages(t *testing.T) {
	g := graph(
		rec("JFK", "LAX", 5.5),
		rec("JFK", "BOS", 1.5),
		rec("JFK", "BOS", 2.0),
		rec("LAX", "SFO", 1.2),
		rec("JFK", "BOS", 1.7),
	)

	r, ok := algo.ShortestPath(g, "JFK", "BOS")
	require.True(t, ok)
	assert.Equal(t, []string{"JFK", "BOS"}, r.Path)
	assert.InDelta(t, 1.7333, r.Cost, 1e-4)

	r, ok = algo.ShortestPath(g, "JFK", "SFO")
	require.True(t, ok)
	assert.Equal(t, []string{"JFK", "LAX", "SFO"}, r.Path)
	assert.InDelta(t, 6.7, r.Cost, 1e-9)
}

func TestShortestPath_Cycle(t *testing.T) {
	g := graph(rec("A", "B", 1), rec("B", "A", 1), rec("B", "C", 1), rec("C", "A", 1))

	r, ok := algo.ShortestPath(g, "C", "B")
	require.True(t, ok)
	assert.Equal(t, []string{"C", "A", "B"}, r.Path)
	assert.Equal(t, 2.0, r.Cost)
}

func TestShortestPath_ZeroWeight(t *testing.T) {
	g := graph(rec("A", "B", 0), rec("B", "C", 0), rec("A", "C", 1))

	r, ok := algo.ShortestPath(g, "A", "C")
	require.True(t, ok)
	assert.Zero(t, r.Cost)
	assert.Equal(t, []string{"A", "B", "C"}, r.Path)
}

func TestExplain(t *testing.T) {
	g := graph(rec("A", "B", 1), rec("C", "D", 1))

	assert.ErrorIs(t, algo.Explain(nil, "A", "B"), algo.ErrNoGraph)
	assert.ErrorIs(t, algo.Explain(g, "A", "D"), algo.ErrNoRoute)

	err := algo.Explain(g, "A", "ZZZ")
	require.True(t, errors.Is(err, algo.ErrUnknownAirport))
	assert.Contains(t, err.Error(), `"ZZZ"`)
}

func ExampleShortestPath() {
	g := algo.BuildGraphFromRecords([]model.Record{
		{Origin: "JFK", Destination: "ORD", Duration: 150},
		{Origin: "ORD", Destination: "DEN", Duration: 160},
		{Origin: "JFK", Destination: "DEN", Duration: 330},
	})

	r, ok := algo.ShortestPath(g, "JFK", "DEN")
	fmt.Println(ok, r.Path, r.Cost)
	// Output: true [JFK ORD DEN] 310
}
