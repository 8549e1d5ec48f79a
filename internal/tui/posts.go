// ABOUTME: Posts pane component
// ABOUTME: Displays one thread's forest with indentation per depth

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/thread"
)

type PostsModel struct {
	forest   *thread.Forest
	renderer *render.TextRenderer
	scroll   int
}

func NewPostsModel() PostsModel {
	return PostsModel{renderer: render.NewTextRenderer()}
}

func (m *PostsModel) SetThread(f *thread.Forest) {
	m.forest = f
	m.scroll = 0
}

func (m *PostsModel) MoveUp() {
	if m.scroll > 0 {
		m.scroll--
	}
}

func (m *PostsModel) MoveDown() {
	m.scroll++
}

// Root returns the displayed thread's first post, for the reply flow.
func (m *PostsModel) Root() *models.Post {
	if m.forest == nil || m.forest.Root == nil {
		return nil
	}
	return m.forest.Root.Post
}

func (m PostsModel) View() string {
	if m.forest == nil {
		return lipgloss.NewStyle().Faint(true).Render("No posts\n\nSelect a thread")
	}

	body := m.renderer.RenderThread(m.forest, render.ModeFull)
	lines := strings.Split(body, "\n")
	if m.scroll >= len(lines) {
		return ""
	}
	return strings.Join(lines[m.scroll:], "\n")
}
