// ABOUTME: MCP tool implementations
// ABOUTME: Forum load, browse, and compose operations exposed as MCP tools

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "load_locale",
		Description: "Fetch the forum feed for a locale and reconstruct its threads",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"locale":{"type":"string","description":"Locale code, e.g. fr or fr_CA"}},"required":["locale"]}`),
	}, s.handleLoadLocale)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_threads",
		Description: "List the loaded locale's threads, newest activity first",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleListThreads)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "show_thread",
		Description: "Show one thread's posts as an indented tree",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"thread":{"type":"string","description":"Thread id, e.g. fr|1234"}},"required":["thread"]}`),
	}, s.handleShowThread)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "thread_root",
		Description: "Return the first post of the thread containing a post id",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"post_id":{"type":"integer"}},"required":["post_id"]}`),
	}, s.handleThreadRoot)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "summary_counts",
		Description: "Per-category thread counts for the loaded locale",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleSummaryCounts)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "post_reply",
		Description: "Reply to a post; locale and item path follow the thread root",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"reply_to":{"type":"integer"},"subject":{"type":"string"},"text":{"type":"string"},"status":{"type":"string"}},"required":["reply_to","text"]}`),
	}, s.handlePostReply)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "compose_check",
		Description: "Status labels permitted for a new thread or a reply to a post",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"reply_to":{"type":"integer","description":"Post id being replied to; omit for a new thread"}}}`),
	}, s.handleComposeCheck)
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (s *Server) handleLoadLocale(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Locale string `json:"locale"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	res, err := s.session.LoadAndRender(ctx, args.Locale)
	if err != nil {
		return toolError(err), nil
	}

	return toolText(fmt.Sprintf("Loaded %s: %d threads", res.Locale, res.ThreadCount)), nil
}

func (s *Server) handleListThreads(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.session.RebuildFromCache(render.ModeSummary)
	if err != nil {
		return toolError(err), nil
	}

	type threadLine struct {
		ID      models.ThreadID `json:"id"`
		Subject string          `json:"subject"`
		Posts   int             `json:"posts"`
	}
	lines := make([]threadLine, 0, len(res.Ordered))
	for _, tid := range res.Ordered {
		line := threadLine{ID: tid}
		if f := res.Forests[tid]; f != nil && f.Root != nil {
			line.Subject = render.Normalize(f.Root.Post.Subject)
			line.Posts = f.PostCount()
		}
		lines = append(lines, line)
	}

	result, _ := json.Marshal(lines)
	return toolText(string(result)), nil
}

func (s *Server) handleShowThread(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Thread string `json:"thread"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	res, err := s.session.RebuildFromCache(render.ModeFull)
	if err != nil {
		return toolError(err), nil
	}

	f := res.Forests[models.ThreadID(args.Thread)]
	if f == nil {
		return toolError(fmt.Errorf("thread not found: %s", args.Thread)), nil
	}

	return toolText(render.NewTextRenderer().RenderThread(f, render.ModeFull)), nil
}

func (s *Server) handleThreadRoot(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		PostID int64 `json:"post_id"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	p, ok := s.session.Post(args.PostID)
	if !ok {
		return toolError(fmt.Errorf("post not found: %d", args.PostID)), nil
	}

	root, err := s.session.ThreadRootFor(p)
	if err != nil {
		return toolError(err), nil
	}

	result, _ := json.Marshal(root)
	return toolText(string(result)), nil
}

func (s *Server) handleSummaryCounts(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, _ := json.Marshal(s.session.SummaryCounts())
	return toolText(string(result)), nil
}

func (s *Server) handleComposeCheck(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ReplyTo int64 `json:"reply_to"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	var replyTo *models.Post
	if args.ReplyTo != 0 {
		p, ok := s.session.Post(args.ReplyTo)
		if !ok {
			return toolError(fmt.Errorf("post not found: %d", args.ReplyTo)), nil
		}
		replyTo = p
	}

	opts, err := s.session.ComposeOptions(replyTo)
	if err != nil {
		return toolError(err), nil
	}

	result, _ := json.Marshal(opts)
	return toolText(string(result)), nil
}

func (s *Server) handlePostReply(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		ReplyTo int64  `json:"reply_to"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
		Status  string `json:"status"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	replyTo, ok := s.session.Post(args.ReplyTo)
	if !ok {
		return toolError(fmt.Errorf("post not found: %d", args.ReplyTo)), nil
	}

	posted, err := s.session.Compose(ctx, &client.Draft{
		Subject: args.Subject,
		Text:    args.Text,
		Status:  models.ForumStatus(args.Status),
	}, replyTo)
	if err != nil {
		return toolError(err), nil
	}

	return toolText(fmt.Sprintf("Posted reply %d in thread %s", posted.ID, posted.Locale)), nil
}
