// ABOUTME: Tests for display normalization and the text renderer
// ABOUTME: Verifies whitelist handling and per-mode thread output

package render

import (
	"strings"
	"testing"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/thread"
)

func TestNormalizePlainTextUntouched(t *testing.T) {
	if got := Normalize("just words"); got != "just words" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestNormalizeEntities(t *testing.T) {
	if got := Normalize("a &amp; b &lt;c&gt;"); got != "a & b <c>" {
		t.Errorf("expected entities resolved, got %q", got)
	}
}

func TestNormalizeWhitelistedTags(t *testing.T) {
	if got := Normalize("<b>bold</b> and <em>emphasis</em>"); got != "bold and emphasis" {
		t.Errorf("expected tags reduced to content, got %q", got)
	}
	if got := Normalize("line one<br>line two"); got != "line one\nline two" {
		t.Errorf("expected br as newline, got %q", got)
	}
}

func TestNormalizeLinks(t *testing.T) {
	got := Normalize(`see <a href="https://example.com/x">the ticket</a>`)
	if got != "see the ticket (https://example.com/x)" {
		t.Errorf("expected flattened link, got %q", got)
	}
}

func TestNormalizeDropsUnknownTags(t *testing.T) {
	got := Normalize(`<script>alert(1)</script>hello <blink>there</blink>`)
	if strings.Contains(got, "script") || strings.Contains(got, "blink") {
		t.Errorf("expected unknown tags dropped, got %q", got)
	}
	if !strings.Contains(got, "hello") {
		t.Errorf("expected text kept, got %q", got)
	}
}

func forestFixture() *thread.Forest {
	root := &thread.Node{Post: &models.Post{
		ID: 1, Parent: models.NoParent, Locale: "fr",
		Subject: "Plural rules", Text: "First line\nSecond line",
		ForumStatus: models.StatusQuestion,
		PosterInfo:  &models.PosterInfo{ID: 9, Name: "marie"},
	}}
	child := &thread.Node{Post: &models.Post{
		ID: 2, Parent: 1, Locale: "fr_CA",
		Subject: "Re: Plural rules", Text: "A reply",
	}}
	root.Children = append(root.Children, child)
	return &thread.Forest{ID: "fr|1", Root: root}
}

func TestRenderThreadFull(t *testing.T) {
	out := NewTextRenderer().RenderThread(forestFixture(), ModeFull)
	for _, want := range []string{"Plural rules", "marie", "Second line", "A reply"} {
		if !strings.Contains(out, want) {
			t.Errorf("full render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderThreadSummary(t *testing.T) {
	out := NewTextRenderer().RenderThread(forestFixture(), ModeSummary)
	if !strings.Contains(out, "Plural rules") {
		t.Errorf("summary missing root subject:\n%s", out)
	}
	if strings.Contains(out, "A reply") || strings.Contains(out, "Second line") {
		t.Errorf("summary should hide bodies and replies:\n%s", out)
	}
}

func TestRenderThreadPreview(t *testing.T) {
	out := NewTextRenderer().RenderThread(forestFixture(), ModePreview)
	if !strings.Contains(out, "First line …") {
		t.Errorf("preview should truncate body to first line:\n%s", out)
	}
	if strings.Contains(out, "Second line") {
		t.Errorf("preview leaked full body:\n%s", out)
	}
}

func TestRenderPlaceholder(t *testing.T) {
	out := NewTextRenderer().RenderPlaceholder("fr|9")
	if !strings.Contains(out, "fr|9") {
		t.Errorf("placeholder should name the thread, got %q", out)
	}
}
