package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atharv3903/skyroute/internal/algo"
	"github.com/atharv3903/skyroute/internal/model"
)

func (a *app) routeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the fastest route between two airports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gctx, err := a.loadGraph(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			from, to := args[0], args[1]
			r, ok, _ := gctx.Route(from, to)
			if !ok {
				return algo.Explain(gctx.Graph(), from, to)
			}
			printRoute(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func (a *app) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Answer route queries interactively",
		Long:  `Reads "FROM TO" pairs from standard input until EOF or "quit".`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gctx, err := a.loadGraph(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return prompt(cmd.InOrStdin(), cmd.OutOrStdout(), gctx)
		},
	}
}

// prompt runs the query loop. Codes are upper-cased; each query is independent.
func prompt(in io.Reader, out io.Writer, gctx *algo.GraphCtx) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "from to> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		fields := strings.Fields(strings.ToUpper(sc.Text()))
		switch {
		case len(fields) == 0:
			continue
		case len(fields) == 1 && (fields[0] == "QUIT" || fields[0] == "EXIT"):
			return nil
		case len(fields) != 2:
			fmt.Fprintln(out, "enter two airport codes, e.g. JFK LAX")
			continue
		}

		r, ok, _ := gctx.Route(fields[0], fields[1])
		if !ok {
			fmt.Fprintln(out, algo.Explain(gctx.Graph(), fields[0], fields[1]))
			continue
		}
		printRoute(out, r)
	}
}

func printRoute(w io.Writer, r model.Route) {
	fmt.Fprintf(w, "%s  %.1f min (%.2f h, %d flights)\n",
		strings.Join(r.Path, " -> "), r.Cost, r.Hours(), r.Hops())
}
