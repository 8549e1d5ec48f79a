// ABOUTME: MCP prompt templates
// ABOUTME: Guided workflows for reviewing forum discussions

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "triage-locale",
		Description: "Review a locale's open discussions",
		Arguments: []*mcp.PromptArgument{
			{Name: "locale", Description: "Locale code to review", Required: true},
		},
	}, s.handleTriagePrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "summarize-thread",
		Description: "Summarize a thread discussion",
		Arguments: []*mcp.PromptArgument{
			{Name: "thread", Description: "Thread id to summarize", Required: true},
		},
	}, s.handleSummarizePrompt)
}

func (s *Server) handleTriagePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	locale := req.Params.Arguments["locale"]

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Triage open discussions in %s", locale),
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf(`Review the open forum discussions for locale %s.

First use the load_locale tool, then list_threads and summary_counts.
For each open thread, note whether it is waiting on the opener or on
other reviewers, and flag any Disputed thread for attention.`, locale),
				},
			},
		},
	}, nil
}

func (s *Server) handleSummarizePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	threadID := req.Params.Arguments["thread"]

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summarize thread %s", threadID),
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: fmt.Sprintf(`Please summarize the discussion in thread %s.

First, use the show_thread tool to read the thread, then provide a concise summary of:
1. The main question or request
2. Key points discussed
3. The current status and any remaining disagreement`, threadID),
				},
			},
		},
	}, nil
}
