package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/model"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		rows     int
		seed     int64
		out      string
		airports []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic flight dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("rows must be non-negative, got %d", rows)
			}

			gen := dataset.NewGenerator(seed, airports)
			bar := progressbar.NewOptions(rows,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("generating"),
			)

			recs := make([]model.Record, rows)
			for i := range recs {
				recs[i] = gen.Next()
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			if strings.EqualFold(filepath.Ext(out), ".parquet") {
				if err := dataset.WriteParquet(out, recs); err != nil {
					return err
				}
			} else {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create CSV file: %w", err)
				}
				if err := dataset.WriteCSV(f, recs); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}

			a.log.Info("wrote %d flights to %s", rows, out)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 1000, "number of flights")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&out, "out", "flights.csv", "output file (.csv or .parquet)")
	cmd.Flags().StringSliceVar(&airports, "airports", nil, "airport codes to use (default: a built-in list)")
	return cmd
}
