// ABOUTME: TUI CLI command
// ABOUTME: Launches the interactive three-pane forum browser

package main

import (
	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <locale>",
	Short: "Browse a locale's threads interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, _, err := newSession()
	if err != nil {
		return err
	}

	crit, ok := s.ActiveFilter().(*filter.CriterionFilter)
	if !ok {
		crit = filter.NewCriterionFilter(filter.CriterionAll, 0)
	}
	return tui.Run(s, crit, args[0])
}
