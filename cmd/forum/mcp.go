// ABOUTME: MCP server command implementation
// ABOUTME: Starts the forum MCP server in stdio mode

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perlover/cldrforum/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, letting agents load locales,
browse reconstructed threads, and post replies through a standardized
protocol.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, _, err := newSession()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(s)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
