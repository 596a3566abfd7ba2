package model

import "time"

// Route is a least-cost path. Path[0] is the start, Path[len-1] the goal, and Cost
// is the sum of the average durations along it.
type Route struct {
	Cost float64
	Path []string
}

// Hours converts a cost expressed in minutes.
func (r Route) Hours() float64 { return r.Cost / 60 }

// Hops is the number of flights in the route.
func (r Route) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

type RouteResponse struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Found     bool     `json:"found"`
	Reason    string   `json:"reason,omitempty"`
	Path      []string `json:"path,omitempty"`
	Minutes   float64  `json:"minutes"`
	Hours     float64  `json:"hours"`
	Epoch     uint64   `json:"epoch"`
	CacheHit  bool     `json:"cache_hit"`
	RequestID string   `json:"request_id"`
}

type EdgeResponse struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	Count        int       `json:"count"`
	Average      float64   `json:"average"`
	StdDev       float64   `json:"std_dev"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Observations []float64 `json:"observations"`
}

// NewEdgeResponse flattens st for JSON output.
func NewEdgeResponse(from, to string, st EdgeStats) EdgeResponse {
	return EdgeResponse{
		From:         from,
		To:           to,
		Count:        st.Count(),
		Average:      st.Average(),
		StdDev:       st.StdDev(),
		Min:          st.Min(),
		Max:          st.Max(),
		Observations: st.Observations(),
	}
}

type GraphStats struct {
	Source       string    `json:"source"`
	Airports     int       `json:"airports"`
	Origins      int       `json:"origins"`
	Edges        int       `json:"edges"`
	Observations int       `json:"observations"`
	Rows         int       `json:"rows"`
	Skipped      int       `json:"skipped"`
	Epoch        uint64    `json:"epoch"`
	LoadedAt     time.Time `json:"loaded_at"`
}
