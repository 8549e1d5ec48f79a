// ABOUTME: Main Bubble Tea application model
// ABOUTME: Coordinates three-pane layout and navigation

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/session"
)

// Pane represents which pane is focused
type Pane int

const (
	CriteriaPane Pane = iota
	ThreadsPane
	PostsPane
)

type ResultMsg struct {
	Result *session.Result
}

// Model is the main application state
type Model struct {
	session    *session.Session
	crit       *filter.CriterionFilter
	locale     string
	activePane Pane
	width      int
	height     int
	criteria   CriteriaModel
	threads    ThreadsModel
	posts      PostsModel
	err        error
}

// NewModel creates a new TUI model
func NewModel(s *session.Session, crit *filter.CriterionFilter, locale string) Model {
	return Model{
		session:    s,
		crit:       crit,
		locale:     locale,
		activePane: CriteriaPane,
		criteria:   NewCriteriaModel(),
		threads:    NewThreadsModel(),
		posts:      NewPostsModel(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.LoadAndRender(context.Background(), m.locale)
		if err != nil {
			return err
		}
		return ResultMsg{Result: res}
	}
}

func (m Model) rebuild() tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.RebuildFromCache(render.ModeFull)
		if err != nil {
			return err
		}
		return ResultMsg{Result: res}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateNavigation(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ResultMsg:
		m.threads.SetResult(msg.Result)
		m.criteria.SetCounts(msg.Result.Counts)
		m.posts.SetThread(nil)
		return m, nil

	case error:
		m.err = msg
		return m, nil
	}

	return m, nil
}

func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.activePane = (m.activePane + 1) % 3
		return m, nil

	case "shift+tab":
		m.activePane = (m.activePane + 2) % 3
		return m, nil

	case "j", "down":
		switch m.activePane {
		case CriteriaPane:
			m.criteria.MoveDown()
		case ThreadsPane:
			m.threads.MoveDown()
		case PostsPane:
			m.posts.MoveDown()
		}
		return m, nil

	case "k", "up":
		switch m.activePane {
		case CriteriaPane:
			m.criteria.MoveUp()
		case ThreadsPane:
			m.threads.MoveUp()
		case PostsPane:
			m.posts.MoveUp()
		}
		return m, nil

	case "enter":
		switch m.activePane {
		case CriteriaPane:
			m.crit.Active = m.criteria.Selected()
			return m, m.rebuild()
		case ThreadsPane:
			if tid := m.threads.Selected(); tid != "" && m.threads.result != nil {
				m.activePane = PostsPane
				m.posts.SetThread(m.threads.result.Forests[tid])
			}
		}
		return m, nil

	case "r":
		return m, m.load()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	criteriaWidth := m.width / 5
	threadsWidth := (m.width * 2) / 5
	postsWidth := m.width - criteriaWidth - threadsWidth

	activeStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86"))

	inactiveStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	criteriaStyle := inactiveStyle
	threadsStyle := inactiveStyle
	postsStyle := inactiveStyle

	switch m.activePane {
	case CriteriaPane:
		criteriaStyle = activeStyle
	case ThreadsPane:
		threadsStyle = activeStyle
	case PostsPane:
		postsStyle = activeStyle
	}

	criteriaView := criteriaStyle.Width(criteriaWidth - 2).Height(m.height - 4).Render(m.criteria.View())
	threadsView := threadsStyle.Width(threadsWidth - 2).Height(m.height - 4).Render(m.threads.View())
	postsView := postsStyle.Width(postsWidth - 2).Height(m.height - 4).Render(m.posts.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top, criteriaView, threadsView, postsView)

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[tab] switch pane  [j/k] navigate  [enter] select  [r] refresh  [q] quit")

	if m.err != nil {
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render("error: " + m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, status)
}

// Run starts the TUI
func Run(s *session.Session, crit *filter.CriterionFilter, locale string) error {
	p := tea.NewProgram(NewModel(s, crit, locale), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
