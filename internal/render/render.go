// ABOUTME: Render collaborator turning thread forests into display nodes
// ABOUTME: Text implementation with lipgloss styling and indent per depth

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/thread"
)

// Renderer is the "build node for post" capability the assembly pipeline
// hands each selected thread to. The returned value is opaque to the core.
type Renderer interface {
	// RenderThread renders one thread's forest in the given mode.
	RenderThread(f *thread.Forest, mode Mode) string
	// RenderPlaceholder renders the stand-in shown when a thread has no
	// displayable posts.
	RenderPlaceholder(id models.ThreadID) string
}

// Mode selects how much of each thread a renderer shows.
type Mode string

const (
	// ModeFull shows every post in the forest.
	ModeFull Mode = "full"
	// ModeSummary shows only each thread's root line.
	ModeSummary Mode = "summary"
	// ModePreview shows the root plus a one-line body excerpt, used by
	// the new-post preview context.
	ModePreview Mode = "preview"
)

// TextRenderer renders threads for terminal display.
type TextRenderer struct {
	subject lipgloss.Style
	meta    lipgloss.Style
	status  lipgloss.Style
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		subject: lipgloss.NewStyle().Bold(true),
		meta:    lipgloss.NewStyle().Faint(true),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	}
}

// RenderThread implements Renderer.
func (r *TextRenderer) RenderThread(f *thread.Forest, mode Mode) string {
	if f == nil || f.Root == nil {
		return ""
	}

	var b strings.Builder
	r.renderNode(&b, f.Root, 0, mode)
	return b.String()
}

// RenderPlaceholder implements Renderer.
func (r *TextRenderer) RenderPlaceholder(id models.ThreadID) string {
	return r.meta.Render(fmt.Sprintf("(no posts for thread %s)", id))
}

func (r *TextRenderer) renderNode(b *strings.Builder, n *thread.Node, depth int, mode Mode) {
	indent := strings.Repeat("  ", depth)
	p := n.Post

	b.WriteString(indent)
	b.WriteString(r.subject.Render(Normalize(p.Subject)))
	if p.ForumStatus != "" {
		b.WriteString(" " + r.status.Render("["+string(p.ForumStatus)+"]"))
	}
	b.WriteByte('\n')

	b.WriteString(indent)
	b.WriteString(r.meta.Render(fmt.Sprintf("%s · %s · %s",
		p.PosterName(), p.Locale, p.Time().Format("2006-01-02 15:04"))))
	b.WriteByte('\n')

	if mode == ModeSummary {
		return
	}

	body := Normalize(p.Text)
	if mode == ModePreview {
		body = firstLine(body)
	}
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			b.WriteString(indent + line + "\n")
		}
	}

	for _, child := range n.Children {
		b.WriteString(indent + "\n")
		r.renderNode(b, child, depth+1, mode)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
