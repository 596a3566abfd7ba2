package model

import "sort"

// Graph is a directed adjacency map origin → destination → EdgeStats.
// It is never modified after NewGraph returns, so concurrent readers need no locking.
type Graph struct {
	adj      map[string]map[string]EdgeStats
	airports []string
	edges    int
	obs      int
}

// NewGraph takes ownership of adj. A nil map yields an empty graph.
func NewGraph(adj map[string]map[string]EdgeStats) *Graph {
	if adj == nil {
		adj = make(map[string]map[string]EdgeStats)
	}
	g := &Graph{adj: adj}

	seen := make(map[string]struct{}, len(adj))
	for from, dests := range adj {
		seen[from] = struct{}{}
		for to, st := range dests {
			seen[to] = struct{}{}
			g.edges++
			g.obs += st.Count()
		}
	}
	g.airports = make([]string, 0, len(seen))
	for a := range seen {
		g.airports = append(g.airports, a)
	}
	sort.Strings(g.airports)

	return g
}

// Edge returns the statistics for from→to.
func (g *Graph) Edge(from, to string) (EdgeStats, bool) {
	st, ok := g.adj[from][to]
	return st, ok
}

// Neighbors returns the outgoing edges of from. The map must not be modified.
func (g *Graph) Neighbors(from string) map[string]EdgeStats {
	return g.adj[from]
}

// HasOrigin reports whether from has at least one outgoing edge.
func (g *Graph) HasOrigin(from string) bool {
	_, ok := g.adj[from]
	return ok
}

// HasAirport reports whether code appears as an origin or a destination.
func (g *Graph) HasAirport(code string) bool {
	i := sort.SearchStrings(g.airports, code)
	return i < len(g.airports) && g.airports[i] == code
}

// Origins returns the sorted origin codes.
func (g *Graph) Origins() []string {
	out := make([]string, 0, len(g.adj))
	for from := range g.adj {
		out = append(out, from)
	}
	sort.Strings(out)
	return out
}

// Airports returns every origin and destination code, sorted.
func (g *Graph) Airports() []string {
	return append([]string(nil), g.airports...)
}

func (g *Graph) EdgeCount() int        { return g.edges }
func (g *Graph) ObservationCount() int { return g.obs }
