// ABOUTME: Threads pane component
// ABOUTME: Lists assembled threads newest activity first

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/session"
)

type ThreadsModel struct {
	result *session.Result
	cursor int
}

func NewThreadsModel() ThreadsModel {
	return ThreadsModel{cursor: 0}
}

func (m *ThreadsModel) SetResult(res *session.Result) {
	m.result = res
	if m.cursor >= len(res.Ordered) {
		m.cursor = len(res.Ordered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ThreadsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *ThreadsModel) MoveDown() {
	if m.result != nil && m.cursor < len(m.result.Ordered)-1 {
		m.cursor++
	}
}

func (m *ThreadsModel) Selected() models.ThreadID {
	if m.result != nil && m.cursor >= 0 && m.cursor < len(m.result.Ordered) {
		return m.result.Ordered[m.cursor]
	}
	return ""
}

func (m ThreadsModel) View() string {
	if m.result == nil || len(m.result.Ordered) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No threads\n\nLoad a locale")
	}

	var s string
	s += lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Threads (%d)", m.result.ThreadCount)) + "\n\n"

	for i, tid := range m.result.Ordered {
		cursor := "  "
		style := lipgloss.NewStyle()

		if i == m.cursor {
			cursor = "> "
			style = style.Foreground(lipgloss.Color("86"))
		}

		f := m.result.Forests[tid]
		subject := string(tid)
		posts := 0
		if f != nil && f.Root != nil {
			subject = render.Normalize(f.Root.Post.Subject)
			posts = f.PostCount()
		}

		s += fmt.Sprintf("%s%s\n", cursor, style.Render(subject))
		s += lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("   %s · %d posts\n", tid, posts))
	}

	return s
}
