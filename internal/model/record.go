package model

import "math"

// Record is one observed flight.
type Record struct {
	Origin      string
	Destination string
	Duration    float64
}

// Row is a positional tabular row as produced by a dataset loader.
// Fields 0, 1 and 2 are expected to hold origin, destination and duration.
type Row []any

// Record converts r into a Record. The second result is false for malformed rows:
// fewer than three fields, an empty or non-string airport code, or a duration that
// is not a finite, non-negative number.
func (r Row) Record() (Record, bool) {
	if len(r) < 3 {
		return Record{}, false
	}

	origin, ok := r[0].(string)
	if !ok || origin == "" {
		return Record{}, false
	}
	dest, ok := r[1].(string)
	if !ok || dest == "" {
		return Record{}, false
	}

	d, ok := toFloat(r[2])
	if !ok || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return Record{}, false
	}

	return Record{Origin: origin, Destination: dest, Duration: d}, true
}

// Row returns the positional form of rec.
func (rec Record) Row() Row {
	return Row{rec.Origin, rec.Destination, rec.Duration}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
