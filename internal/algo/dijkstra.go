package algo

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/atharv3903/skyroute/internal/model"
)

var (
	ErrNoGraph        = errors.New("algo: no graph loaded")
	ErrUnknownAirport = errors.New("algo: unknown airport")
	ErrNoRoute        = errors.New("algo: no route")
)

type pqItem struct {
	node string
	dist float64
}

type pq []pqItem

func (p pq) Len() int           { return len(p) }
func (p pq) Less(i, j int) bool { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *pq) Push(x any) {
	*p = append(*p, x.(pqItem))
}

func (p *pq) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// ShortestPath finds the least-cost route from start to goal, weighting each edge
// by its average duration. The second result is false when start is not in the
// graph or goal cannot be reached; the two cases are not distinguished here, see
// Explain.
//
// Edge averages must be non-negative (aggregation guarantees it); with negative
// or NaN weights the result is meaningless. The heap is not stable, so which of
// several equal-cost routes is returned is unspecified.
func ShortestPath(g *model.Graph, start, goal string) (model.Route, bool) {
	if g == nil {
		return model.Route{}, false
	}
	if start == goal {
		if !g.HasAirport(start) {
			return model.Route{}, false
		}
		return model.Route{Cost: 0, Path: []string{start}}, true
	}
	if !g.HasOrigin(start) {
		return model.Route{}, false
	}

	dist := map[string]float64{start: 0}
	prev := map[string]string{}
	pq := &pq{}
	heap.Push(pq, pqItem{node: start, dist: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		u := cur.node

		// stale entry, a cheaper one was pushed after it
		if cur.dist > dist[u] {
			continue
		}

		if u == goal {
			return model.Route{Cost: cur.dist, Path: reconstruct(prev, start, goal)}, true
		}

		for v, st := range g.Neighbors(u) {
			nd := cur.dist + st.Average()

			old, found := dist[v]
			if !found || nd < old {
				dist[v] = nd
				prev[v] = u
				heap.Push(pq, pqItem{node: v, dist: nd})
			}
		}
	}

	return model.Route{}, false
}

func reconstruct(prev map[string]string, start, goal string) []string {
	path := []string{}
	cur := goal

	for cur != start {
		path = append(path, cur)
		cur = prev[cur]
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// Explain classifies a ShortestPath miss: ErrNoGraph, ErrUnknownAirport (wrapped
// with the code) or ErrNoRoute. It does not search, so call it only after a miss.
func Explain(g *model.Graph, start, goal string) error {
	if g == nil {
		return ErrNoGraph
	}
	for _, code := range []string{start, goal} {
		if !g.HasAirport(code) {
			return fmt.Errorf("%w: %q", ErrUnknownAirport, code)
		}
	}
	return ErrNoRoute
}
