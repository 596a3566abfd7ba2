package dataset

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/atharv3903/skyroute/internal/model"
)

// FlightRow is the parquet schema for flight tables.
type FlightRow struct {
	Origin      string  `parquet:"name=origin,type=BYTE_ARRAY,convertedtype=UTF8"`
	Destination string  `parquet:"name=destination,type=BYTE_ARRAY,convertedtype=UTF8"`
	Duration    float64 `parquet:"name=duration,type=DOUBLE"`
}

type ParquetSource struct {
	path string
}

func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

func (s *ParquetSource) Name() string { return "parquet:" + s.path }

func (s *ParquetSource) Load(ctx context.Context) ([]model.Row, error) {
	return readParquetFile(s.path)
}

func readParquetFile(path string) ([]model.Row, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(FlightRow), 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pr.ReadStop()

	flights := make([]FlightRow, int(pr.GetNumRows()))
	if err := pr.Read(&flights); err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	rows := make([]model.Row, len(flights))
	for i, f := range flights {
		rows[i] = model.Row{f.Origin, f.Destination, f.Duration}
	}
	return rows, nil
}

// WriteParquet stores recs at path using the FlightRow schema.
func WriteParquet(path string, recs []model.Record) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(FlightRow), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for _, r := range recs {
		row := FlightRow{Origin: r.Origin, Destination: r.Destination, Duration: r.Duration}
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return fw.Close()
}
