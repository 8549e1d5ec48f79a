// ABOUTME: MCP resource implementations
// ABOUTME: Read-only forum views exposed via MCP resources

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         "forum://threads",
		Name:        "Assembled Threads",
		Description: "Loaded locale's threads, newest activity first",
		MIMEType:    "text/markdown",
	}, s.handleThreadsResource)

	s.mcp.AddResource(&mcp.Resource{
		URI:         "forum://counts",
		Name:        "Summary Counts",
		Description: "Per-category thread counts",
		MIMEType:    "application/json",
	}, s.handleCountsResource)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "forum://threads/{thread}",
		Name:        "Thread",
		Description: "One thread's posts as an indented tree",
		MIMEType:    "text/markdown",
	}, s.handleThreadResource)
}

func (s *Server) handleThreadsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	res, err := s.session.RebuildFromCache(render.ModeSummary)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Threads in %s (%d)\n\n", res.Locale, res.ThreadCount))
	for _, tid := range res.Ordered {
		f := res.Forests[tid]
		if f == nil || f.Root == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("- **%s** (`%s`, %d posts)\n",
			render.Normalize(f.Root.Post.Subject), tid, f.PostCount()))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "forum://threads",
			MIMEType: "text/markdown",
			Text:     sb.String(),
		}},
	}, nil
}

func (s *Server) handleCountsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, _ := json.MarshalIndent(s.session.SummaryCounts(), "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "forum://counts",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleThreadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	tid := models.ThreadID(strings.TrimPrefix(uri, "forum://threads/"))

	res, err := s.session.RebuildFromCache(render.ModeFull)
	if err != nil {
		return nil, err
	}

	f := res.Forests[tid]
	if f == nil {
		return nil, fmt.Errorf("thread not found: %s", tid)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     render.NewTextRenderer().RenderThread(f, render.ModeFull),
		}},
	}, nil
}
