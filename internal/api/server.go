package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lucsky/cuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/cache"
	"github.com/atharv3903/skyroute/internal/logging"
	"github.com/atharv3903/skyroute/internal/metrics"
	"github.com/atharv3903/skyroute/internal/model"
)

type Server struct {
	Mux    *http.ServeMux
	GCtx   *algo.GraphCtx
	RC     *cache.RouteCache
	Source algo.RowLoader // nil disables /reload
	Log    *logging.Logger
}

func New(gctx *algo.GraphCtx, src algo.RowLoader, rc *cache.RouteCache, log *logging.Logger) *Server {
	s := &Server{
		Mux:    http.NewServeMux(),
		GCtx:   gctx,
		RC:     rc,
		Source: src,
		Log:    log,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	s.Mux.HandleFunc("/route", s.handleRoute)
	s.Mux.HandleFunc("/edge", s.handleEdge)
	s.Mux.HandleFunc("/airports", s.handleAirports)
	s.Mux.HandleFunc("/stats", s.handleStats)
	s.Mux.HandleFunc("/reload", s.handleReload)
	s.Mux.Handle("/metrics", promhttp.Handler())

	s.Mux.HandleFunc("/debug/clear_cache", func(w http.ResponseWriter, r *http.Request) {
		s.RC.Clear()
		w.Write([]byte("cleared"))
	})

	s.Mux.HandleFunc("/debug/cache_stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.RC.Stats())
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	reqID := cuid.New()
	w.Header().Set("X-Request-Id", reqID)

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	snap, ok := s.GCtx.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, algo.ErrNoGraph.Error())
		return
	}

	started := time.Now()
	key := cache.RouteKey{Start: from, Goal: to, Epoch: snap.Epoch}

	entry, hit := s.RC.Get(key)
	if hit {
		metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.RouteCacheLookups.WithLabelValues("miss").Inc()
		entry.Route, entry.Found = algo.ShortestPath(snap.Graph, from, to)
		s.RC.Put(key, entry)
	}
	metrics.RouteDuration.Observe(time.Since(started).Seconds())

	resp := model.RouteResponse{
		From:      from,
		To:        to,
		Found:     entry.Found,
		Epoch:     snap.Epoch,
		CacheHit:  hit,
		RequestID: reqID,
	}

	status := http.StatusOK
	result := "found"
	if entry.Found {
		resp.Path = entry.Route.Path
		resp.Minutes = entry.Route.Cost
		resp.Hours = entry.Route.Hours()
	} else {
		status = http.StatusNotFound
		result = "no_route"
		if errors.Is(algo.Explain(snap.Graph, from, to), algo.ErrUnknownAirport) {
			result = "unknown_airport"
		}
		resp.Reason = result
	}
	metrics.RouteQueries.WithLabelValues(result).Inc()

	s.Log.Debug("route %s %s->%s found=%t cache_hit=%t epoch=%d", reqID, from, to, entry.Found, hit, snap.Epoch)
	writeJSON(w, status, resp)
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	g := s.GCtx.Graph()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, algo.ErrNoGraph.Error())
		return
	}

	st, ok := g.Edge(from, to)
	if !ok {
		writeError(w, http.StatusNotFound, "no flights from "+from+" to "+to)
		return
	}
	writeJSON(w, http.StatusOK, model.NewEdgeResponse(from, to, st))
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	g := s.GCtx.Graph()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, algo.ErrNoGraph.Error())
		return
	}
	writeJSON(w, http.StatusOK, g.Airports())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.GCtx.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, algo.ErrNoGraph.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap.Stats())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if s.Source == nil {
		writeError(w, http.StatusServiceUnavailable, "no source configured")
		return
	}

	snap, err := s.GCtx.Load(r.Context(), s.Source)
	if err != nil {
		metrics.GraphLoads.WithLabelValues("failed").Inc()
		s.Log.Error("reload failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	st := snap.Stats()
	metrics.GraphLoads.WithLabelValues("ok").Inc()
	metrics.ObserveGraph(st)
	s.Log.Info("reloaded %s: %d airports, %d routes, %d rows skipped, epoch %d",
		st.Source, st.Airports, st.Edges, st.Skipped, st.Epoch)

	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
