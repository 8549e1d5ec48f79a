// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure and shared session wiring

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/config"
	"github.com/perlover/cldrforum/internal/db"
	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/identity"
	"github.com/perlover/cldrforum/internal/policy"
	"github.com/perlover/cldrforum/internal/session"
)

var (
	serverFlag   string
	dbPath       string
	identityFlag string
	filterFlag   string

	cacheConn *sql.DB
)

var rootCmd = &cobra.Command{
	Use:   "forum",
	Short: "Thread reconstruction for locale-review discussions",
	Long: `
███████╗ ██████╗ ██████╗ ██╗   ██╗███╗   ███╗
██╔════╝██╔═══██╗██╔══██╗██║   ██║████╗ ████║
█████╗  ██║   ██║██████╔╝██║   ██║██╔████╔██║
██╔══╝  ██║   ██║██╔══██╗██║   ██║██║╚██╔╝██║
██║     ╚██████╔╝██║  ██║╚██████╔╝██║ ╚═╝ ██║
╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝

Rebuilds a locale's discussion threads from the review
server's flat post feed: derives thread ids, reattaches
orphans, filters, and orders by newest activity.`,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cacheConn != nil {
			return cacheConn.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "review-server base URL")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "feed cache file path")
	rootCmd.PersistentFlags().StringVar(&identityFlag, "as", "", "identity override (username)")
	rootCmd.PersistentFlags().StringVar(&filterFlag, "filter", "all", "thread filter (all, open, mine, item)")
}

// newSession wires a session from config, flags, and the feed cache. The
// cache connection is stored globally so PersistentPostRunE can close it.
func newSession() (*session.Session, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	server := serverFlag
	if server == "" {
		server = cfg.GetServer()
	}

	path := dbPath
	if path == "" {
		path = db.GetDefaultDBPath()
	}
	cacheConn, err = db.InitDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open feed cache: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	userID := identity.UserID("")
	if userID == 0 {
		userID = cfg.UserID
	}
	userName, _ := identity.ParseIdentity(identity.GetIdentity(identityFlag, "cli"))

	s := session.New(session.Options{
		Fetcher: client.New(server, nil, logger),
		Filter:  filter.NewCriterionFilter(filter.Criterion(filterFlag), userID),
		User:    policy.User{ID: userID, Name: userName},
		Cache:   cacheConn,
		Logger:  logger,
	})
	return s, cfg, nil
}
