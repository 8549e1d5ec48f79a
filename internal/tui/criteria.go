// ABOUTME: Criteria pane component
// ABOUTME: Lists and navigates the thread filter criteria

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/perlover/cldrforum/internal/filter"
)

type CriteriaModel struct {
	criteria []filter.Criterion
	counts   map[string]int
	cursor   int
}

func NewCriteriaModel() CriteriaModel {
	return CriteriaModel{criteria: filter.Criteria(), cursor: 0}
}

func (m *CriteriaModel) SetCounts(counts map[string]int) {
	m.counts = counts
}

func (m *CriteriaModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *CriteriaModel) MoveDown() {
	if m.cursor < len(m.criteria)-1 {
		m.cursor++
	}
}

func (m *CriteriaModel) Selected() filter.Criterion {
	if m.cursor >= 0 && m.cursor < len(m.criteria) {
		return m.criteria[m.cursor]
	}
	return filter.CriterionAll
}

func (m CriteriaModel) View() string {
	var s string
	s += lipgloss.NewStyle().Bold(true).Render("Filter") + "\n\n"

	for i, c := range m.criteria {
		cursor := "  "
		style := lipgloss.NewStyle()

		if i == m.cursor {
			cursor = "> "
			style = style.Foreground(lipgloss.Color("86"))
		}

		count := ""
		if m.counts != nil {
			count = fmt.Sprintf(" (%d)", m.counts[string(c)])
		}

		s += fmt.Sprintf("%s%s%s\n", cursor, style.Render(string(c)), count)
	}

	return s
}
