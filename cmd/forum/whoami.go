// ABOUTME: Whoami command
// ABOUTME: Shows current identity and review server

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/config"
	"github.com/perlover/cldrforum/internal/identity"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current identity",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	id := identity.GetIdentity(identityFlag, "cli")
	fmt.Printf("Identity: %s\n", id)

	if userID := identity.UserID(""); userID != 0 {
		fmt.Printf("Reviewer ID: %d\n", userID)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Printf("Server: %s\n", cfg.GetServer())
	return nil
}
