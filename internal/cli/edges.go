package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) edgesCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List per-route duration statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gctx, err := a.loadGraph(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			g := gctx.Graph()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORIGIN\tDEST\tCOUNT\tAVG\tSTDDEV\tMIN\tMAX")

			origins := g.Origins()
			if from != "" {
				origins = []string{from}
			}
			for _, o := range origins {
				dests := g.Neighbors(o)
				names := make([]string, 0, len(dests))
				for d := range dests {
					names = append(names, d)
				}
				sort.Strings(names)

				for _, d := range names {
					st := dests[d]
					fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.2f\t%.1f\t%.1f\n",
						o, d, st.Count(), st.Average(), st.StdDev(), st.Min(), st.Max())
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "only list routes leaving this airport")
	return cmd
}
