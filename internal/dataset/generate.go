package dataset

import (
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/atharv3903/skyroute/internal/model"
)

var DefaultAirports = []string{
	"ATL", "BOS", "DEN", "DFW", "JFK", "LAX", "LGA", "MIA", "ORD", "SEA", "SFO",
}

type routeKey struct{ from, to string }

// Generator produces synthetic flights. Each airport pair gets a base block time
// and every flight on it jitters around that base by up to a quarter hour.
type Generator struct {
	fake     faker.Faker
	airports []string
	base     map[routeKey]float64
}

// NewGenerator needs at least two airports; DefaultAirports is used otherwise.
func NewGenerator(seed int64, airports []string) *Generator {
	if len(airports) < 2 {
		airports = DefaultAirports
	}
	return &Generator{
		fake:     faker.NewWithSeed(rand.NewSource(seed)),
		airports: airports,
		base:     make(map[routeKey]float64),
	}
}

func (g *Generator) Next() model.Record {
	from := g.pick()
	to := g.pick()
	for to == from {
		to = g.pick()
	}

	k := routeKey{from, to}
	base, ok := g.base[k]
	if !ok {
		base = float64(g.fake.IntBetween(45, 420))
		g.base[k] = base
	}

	// jitter in tenths of a minute, ±15 min
	jitter := float64(g.fake.IntBetween(0, 300)-150) / 10

	return model.Record{
		Origin:      from,
		Destination: to,
		Duration:    base + jitter,
	}
}

func (g *Generator) pick() string {
	return g.airports[g.fake.IntBetween(0, len(g.airports)-1)]
}

// Generate returns n synthetic records.
func Generate(n int, seed int64, airports []string) []model.Record {
	g := NewGenerator(seed, airports)
	out := make([]model.Record, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
