// ABOUTME: MCP server setup over a forum session
// ABOUTME: Registers tools, resources, and prompts; serves stdio

package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perlover/cldrforum/internal/session"
)

// Server exposes the reconstructed forum to AI agents via MCP.
type Server struct {
	mcp     *mcp.Server
	session *session.Session
}

// NewServer creates an MCP server bound to a forum session.
func NewServer(s *session.Session) (*Server, error) {
	if s == nil {
		return nil, errors.New("mcp server requires a session")
	}

	srv := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "cldrforum",
			Version: "1.0.0",
		}, nil),
		session: s,
	}

	srv.registerTools()
	srv.registerResources()
	srv.registerPrompts()

	return srv, nil
}

// Serve runs the server on stdio until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
