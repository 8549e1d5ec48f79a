// ABOUTME: Counts CLI command
// ABOUTME: Prints per-category thread counts for a cached locale

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/render"
)

var countsCmd = &cobra.Command{
	Use:   "counts <locale>",
	Short: "Show per-category thread counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runCounts,
}

func init() {
	rootCmd.AddCommand(countsCmd)
}

func runCounts(cmd *cobra.Command, args []string) error {
	s, _, err := newSession()
	if err != nil {
		return err
	}

	s.AdoptLocale(args[0])
	res, err := s.RebuildFromCache(render.ModeSummary)
	if err != nil {
		return fmt.Errorf("no cached feed for %s, run load first: %w", args[0], err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILTER\tTHREADS")
	for _, c := range filter.Criteria() {
		fmt.Fprintf(w, "%s\t%d\n", c, res.Counts[string(c)])
	}
	return w.Flush()
}
