package algo

import "github.com/atharv3903/skyroute/internal/model"

// Report describes one aggregation pass.
type Report struct {
	Rows     int   `json:"rows"`
	Accepted int   `json:"accepted"`
	Skipped  []int `json:"skipped,omitempty"` // indices of malformed rows
}

// BuildGraph aggregates rows into a graph of per-route statistics.
//
// Malformed rows (see model.Row.Record) are skipped and listed in the report;
// they never abort the build. Observations keep input order. An empty input
// yields an empty graph.
func BuildGraph(rows []model.Row) (*model.Graph, Report) {
	rep := Report{Rows: len(rows)}
	obs := make(map[string]map[string][]float64)

	for i, row := range rows {
		rec, ok := row.Record()
		if !ok {
			rep.Skipped = append(rep.Skipped, i)
			continue
		}
		observe(obs, rec)
		rep.Accepted++
	}

	return finish(obs), rep
}

// BuildGraphFromRecords is BuildGraph for already typed records.
func BuildGraphFromRecords(recs []model.Record) *model.Graph {
	rows := make([]model.Row, len(recs))
	for i, rec := range recs {
		rows[i] = rec.Row()
	}
	g, _ := BuildGraph(rows)
	return g
}

func observe(obs map[string]map[string][]float64, rec model.Record) {
	dests, ok := obs[rec.Origin]
	if !ok {
		dests = make(map[string][]float64)
		obs[rec.Origin] = dests
	}
	dests[rec.Destination] = append(dests[rec.Destination], rec.Duration)
}

// finish derives the statistics once every observation is in.
func finish(obs map[string]map[string][]float64) *model.Graph {
	adj := make(map[string]map[string]model.EdgeStats, len(obs))
	for from, dests := range obs {
		edges := make(map[string]model.EdgeStats, len(dests))
		for to, times := range dests {
			edges[to] = model.NewEdgeStats(times...)
		}
		adj[from] = edges
	}
	return model.NewGraph(adj)
}
