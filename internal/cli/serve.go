package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/api"
	"github.com/atharv3903/skyroute/internal/cache"
	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/metrics"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route queries over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			src, err := dataset.Open(ctx, a.cfg, a.log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer dataset.Close(src)

			gctx := algo.NewGraphCtx()
			snap, err := gctx.Load(ctx, src)
			if err != nil {
				metrics.GraphLoads.WithLabelValues("failed").Inc()
				return err
			}
			metrics.GraphLoads.WithLabelValues("ok").Inc()
			metrics.ObserveGraph(snap.Stats())
			a.logSnapshot(snap)

			srv := api.New(gctx, src, cache.NewRouteCache(a.cfg.Cache.Capacity), a.log)
			httpSrv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           srv.Mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("SKYROUTE listening on %s", a.cfg.Addr)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", ":8080", "HTTP bind address")
	a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
