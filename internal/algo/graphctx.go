package algo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atharv3903/skyroute/internal/model"
)

// RowLoader is anything that can hand over a finite set of flight rows.
type RowLoader interface {
	Load(ctx context.Context) ([]model.Row, error)
	Name() string
}

// Snapshot is one immutable graph together with how it was built.
type Snapshot struct {
	Graph    *model.Graph
	Report   Report
	Source   string
	Epoch    uint64
	LoadedAt time.Time
}

// GraphCtx holds the graph currently being served. Readers get a consistent
// snapshot without locking; loads are serialised and swap the snapshot only on
// success.
type GraphCtx struct {
	mu  sync.Mutex
	cur atomic.Pointer[Snapshot]
}

func NewGraphCtx() *GraphCtx {
	return &GraphCtx{}
}

// Load reads all rows from src, aggregates them and publishes the new graph
// under the next epoch. Loads are serialised, so epochs follow completion and
// start order alike. On error the previous snapshot stays in place.
func (c *GraphCtx) Load(ctx context.Context, src RowLoader) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := src.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	g, rep := BuildGraph(rows)
	return c.set(g, rep, src.Name()), nil
}

// Set publishes g directly.
func (c *GraphCtx) Set(g *model.Graph, rep Report, source string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(g, rep, source)
}

// set requires c.mu.
func (c *GraphCtx) set(g *model.Graph, rep Report, source string) Snapshot {
	next := &Snapshot{
		Graph:    g,
		Report:   rep,
		Source:   source,
		Epoch:    c.Epoch() + 1,
		LoadedAt: time.Now(),
	}
	c.cur.Store(next)
	return *next
}

// Snapshot returns the current snapshot; ok is false before the first load.
func (c *GraphCtx) Snapshot() (Snapshot, bool) {
	s := c.cur.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

func (c *GraphCtx) Graph() *model.Graph {
	if s := c.cur.Load(); s != nil {
		return s.Graph
	}
	return nil
}

// Epoch is 0 until something is loaded.
func (c *GraphCtx) Epoch() uint64 {
	if s := c.cur.Load(); s != nil {
		return s.Epoch
	}
	return 0
}

// Route runs ShortestPath against the current snapshot and reports which epoch
// answered.
func (c *GraphCtx) Route(start, goal string) (model.Route, bool, uint64) {
	s, ok := c.Snapshot()
	if !ok {
		return model.Route{}, false, 0
	}
	r, found := ShortestPath(s.Graph, start, goal)
	return r, found, s.Epoch
}

// Stats summarises the current snapshot.
func (s Snapshot) Stats() model.GraphStats {
	st := model.GraphStats{
		Source:   s.Source,
		Rows:     s.Report.Rows,
		Skipped:  len(s.Report.Skipped),
		Epoch:    s.Epoch,
		LoadedAt: s.LoadedAt,
	}
	if s.Graph != nil {
		st.Airports = len(s.Graph.Airports())
		st.Origins = len(s.Graph.Origins())
		st.Edges = s.Graph.EdgeCount()
		st.Observations = s.Graph.ObservationCount()
	}
	return st
}
