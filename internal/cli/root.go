// Package cli wires the skyroute commands together.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/config"
	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/logging"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *logging.Logger
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "skyroute",
		Short: "Aggregates flight records and finds the fastest airport routes",
		Long: `skyroute builds a directed graph of airport connections from flight records,
keeping per-route duration statistics, and answers least-time route queries over it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.NewTo(cmd.ErrOrStderr(), cmd.ErrOrStderr(), cfg.Log.Debug)
			if used := a.v.ConfigFileUsed(); used != "" {
				a.log.Debug("using config file: %s", used)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./.skyroute.yaml or $HOME/.skyroute.yaml)")
	pf.String("source", "csv", "dataset source: csv, parquet, s3, kafka, mysql, postgres")
	pf.String("path", "flights.csv", "dataset file for csv and parquet sources")
	pf.Bool("debug", false, "enable debug logging")
	a.v.BindPFlag("source.kind", pf.Lookup("source"))
	a.v.BindPFlag("source.path", pf.Lookup("path"))
	a.v.BindPFlag("log.debug", pf.Lookup("debug"))

	root.AddCommand(
		a.serveCmd(),
		a.routeCmd(),
		a.queryCmd(),
		a.edgesCmd(),
		a.generateCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadGraph opens the configured source and aggregates it once.
func (a *app) loadGraph(ctx context.Context, cmd *cobra.Command) (*algo.GraphCtx, error) {
	src, err := dataset.Open(ctx, a.cfg, a.log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer dataset.Close(src)

	gctx := algo.NewGraphCtx()
	snap, err := gctx.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	a.logSnapshot(snap)
	return gctx, nil
}

func (a *app) logSnapshot(snap algo.Snapshot) {
	st := snap.Stats()
	a.log.Info("loaded %s: %d rows, %d airports, %d routes", st.Source, st.Rows, st.Airports, st.Edges)
	if st.Skipped > 0 {
		a.log.Warn("skipped %d malformed rows (first at row %d)", st.Skipped, snap.Report.Skipped[0])
	}
}
