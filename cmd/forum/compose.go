// ABOUTME: Compose CLI commands
// ABOUTME: Implements new-thread, reply, and outbox flush

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/session"
)

var newCmd = &cobra.Command{
	Use:   "new <locale> <subject> <text>",
	Short: "Open a new thread in a locale",
	Args:  cobra.ExactArgs(3),
	RunE:  runNew,
}

var replyCmd = &cobra.Command{
	Use:   "reply <locale> <post-id> <text>",
	Short: "Reply to a post",
	Long: `Replies to a post in the cached feed. The reply is attached under the
given post but inherits the thread root's locale and item path, so run
load for the locale first.`,
	Args: cobra.ExactArgs(3),
	RunE: runReply,
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Send queued posts from the outbox",
	Args:  cobra.NoArgs,
	RunE:  runFlush,
}

var (
	statusFlag  string
	xpathFlag   string
	subjectFlag string
)

func init() {
	rootCmd.AddCommand(newCmd, replyCmd, flushCmd)

	newCmd.Flags().StringVar(&statusFlag, "status", "Request", "forum status label")
	newCmd.Flags().StringVar(&xpathFlag, "xpath", "", "review item path the thread is about")
	replyCmd.Flags().StringVar(&statusFlag, "status", "Information", "forum status label")
	replyCmd.Flags().StringVar(&subjectFlag, "subject", "", "subject override, defaults to Re: <root subject>")
}

func runNew(cmd *cobra.Command, args []string) error {
	s, _, err := newSession()
	if err != nil {
		return err
	}

	posted, err := s.Compose(cmd.Context(), &client.Draft{
		Locale:  args[0],
		Xpath:   xpathFlag,
		Subject: args[1],
		Text:    args[2],
		Status:  models.ForumStatus(statusFlag),
	}, nil)
	if err != nil {
		if errors.Is(err, session.ErrQueued) {
			color.Yellow("%v", err)
			return nil
		}
		return err
	}

	color.Green("Opened thread: %s", posted.Subject)
	fmt.Printf("Thread: %s\n", models.ThreadIDFor(posted))
	return nil
}

func runReply(cmd *cobra.Command, args []string) error {
	postID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad post id %q: %w", args[1], err)
	}

	s, _, err := newSession()
	if err != nil {
		return err
	}

	s.AdoptLocale(args[0])
	if _, err := s.RebuildFromCache(render.ModeSummary); err != nil {
		return fmt.Errorf("no cached feed for %s, run load first: %w", args[0], err)
	}

	replyTo, ok := s.Post(postID)
	if !ok {
		return fmt.Errorf("post not found: %d", postID)
	}

	subject := subjectFlag
	if subject == "" {
		root, err := s.ThreadRootFor(replyTo)
		if err != nil {
			return err
		}
		subject = "Re: " + render.Normalize(root.Subject)
	}

	posted, err := s.Compose(cmd.Context(), &client.Draft{
		Subject: subject,
		Text:    args[2],
		Status:  models.ForumStatus(statusFlag),
	}, replyTo)
	if err != nil {
		if errors.Is(err, session.ErrQueued) {
			color.Yellow("%v", err)
			return nil
		}
		return err
	}

	color.Green("Posted reply %d", posted.ID)
	return nil
}

func runFlush(cmd *cobra.Command, args []string) error {
	s, _, err := newSession()
	if err != nil {
		return err
	}

	sent, err := s.FlushOutbox(cmd.Context())
	if err != nil {
		return fmt.Errorf("sent %d before failing: %w", sent, err)
	}
	if sent == 0 {
		fmt.Println("Outbox empty.")
		return nil
	}
	color.Green("Sent %d queued post(s)", sent)
	return nil
}
