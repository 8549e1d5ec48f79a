// ABOUTME: Load CLI command
// ABOUTME: Fetches a locale's feed and lists its reconstructed threads

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/session"
)

var loadCmd = &cobra.Command{
	Use:   "load <locale>",
	Short: "Fetch a locale's feed and list its threads",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSession()
	if err != nil {
		return err
	}

	res, err := s.LoadAndRender(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cfg.AutoFlush {
		if sent, err := s.FlushOutbox(cmd.Context()); err != nil {
			color.Yellow("Outbox flush stopped: %v", err)
		} else if sent > 0 {
			color.Green("Sent %d queued post(s)", sent)
		}
	}

	return printThreadList(res)
}

func printThreadList(res *session.Result) error {
	if res.ThreadCount == 0 {
		fmt.Println("No threads found.")
		return nil
	}

	color.Cyan("%d thread(s) in %s", res.ThreadCount, res.Locale)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THREAD\tSUBJECT\tSTATUS\tPOSTS\tLAST ACTIVITY")
	for _, tid := range res.Ordered {
		f := res.Forests[tid]
		if f == nil || f.Root == nil {
			continue
		}
		root := f.Root.Post
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			tid,
			render.Normalize(root.Subject),
			root.ForumStatus,
			f.PostCount(),
			root.Time().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
