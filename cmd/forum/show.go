// ABOUTME: Show CLI command
// ABOUTME: Prints one thread's posts as an indented tree from the cached feed

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show <thread-id>",
	Short: "Show a thread's posts as an indented tree",
	Long:  "Shows a thread from the cached feed. Thread ids look like fr|1234; run load first.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	tid := models.ThreadID(args[0])
	locale, _, err := tid.Parts()
	if err != nil {
		return err
	}

	s, _, err := newSession()
	if err != nil {
		return err
	}

	s.AdoptLocale(locale)
	res, err := s.RebuildFromCache(render.ModeFull)
	if err != nil {
		return fmt.Errorf("no cached feed for %s, run load first: %w", locale, err)
	}

	f := res.Forests[tid]
	if f == nil {
		return fmt.Errorf("thread not found: %s", tid)
	}

	fmt.Print(render.NewTextRenderer().RenderThread(f, render.ModeFull))
	return nil
}
