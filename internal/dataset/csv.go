package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/atharv3903/skyroute/internal/config"
	"github.com/atharv3903/skyroute/internal/model"
)

// Columns names the origin, destination and duration columns of a table.
type Columns struct {
	Origin      string
	Destination string
	Duration    string
}

func DefaultColumns() Columns {
	return Columns{Origin: "origin", Destination: "destination", Duration: "duration"}
}

// ColumnsFrom fills blanks in c with the defaults.
func ColumnsFrom(c config.Columns) Columns {
	cols := DefaultColumns()
	if c.Origin != "" {
		cols.Origin = c.Origin
	}
	if c.Destination != "" {
		cols.Destination = c.Destination
	}
	if c.Duration != "" {
		cols.Duration = c.Duration
	}
	return cols
}

type CSVSource struct {
	path string
	cols Columns
}

func NewCSVSource(path string, cols Columns) *CSVSource {
	return &CSVSource{path: path, cols: cols}
}

func (s *CSVSource) Name() string { return "csv:" + s.path }

func (s *CSVSource) Load(ctx context.Context) ([]model.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, s.cols)
}

// ReadCSV parses a headed CSV table. Airport columns are read as strings and the
// duration column as float; cells gota cannot convert come back as missing
// values and are passed on as nil so the aggregator drops the row.
func ReadCSV(r io.Reader, cols Columns) ([]model.Row, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(map[string]series.Type{
			cols.Origin:      series.String,
			cols.Destination: series.String,
			cols.Duration:    series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, c := range []string{cols.Origin, cols.Destination, cols.Duration} {
		if !names[c] {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	origin := column(df.Col(cols.Origin))
	dest := column(df.Col(cols.Destination))
	durCol := df.Col(cols.Duration)
	dur, durNaN := durCol.Float(), durCol.IsNaN()

	rows := make([]model.Row, df.Nrow())
	for i := range rows {
		var d any
		if !durNaN[i] {
			d = dur[i]
		}
		rows[i] = model.Row{origin[i], dest[i], d}
	}
	return rows, nil
}

// column returns the string cells of s with missing values as nil.
func column(s series.Series) []any {
	recs, nan := s.Records(), s.IsNaN()
	out := make([]any, len(recs))
	for i, v := range recs {
		if !nan[i] {
			out[i] = v
		}
	}
	return out
}

type csvRecord struct {
	Origin      string  `dataframe:"origin"`
	Destination string  `dataframe:"destination"`
	Duration    float64 `dataframe:"duration"`
}

// WriteCSV writes recs as a headed table readable by ReadCSV with DefaultColumns.
func WriteCSV(w io.Writer, recs []model.Record) error {
	// gota refuses to build a frame from an empty slice
	if len(recs) == 0 {
		_, err := io.WriteString(w, "origin,destination,duration\n")
		return err
	}

	out := make([]csvRecord, len(recs))
	for i, r := range recs {
		out[i] = csvRecord{Origin: r.Origin, Destination: r.Destination, Duration: r.Duration}
	}

	df := dataframe.LoadStructs(out)
	if df.Err != nil {
		return fmt.Errorf("build dataframe: %w", df.Err)
	}
	return df.WriteCSV(w)
}
