// Package tui is the terminal host of the dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakhrymubarak/weather-dashboard/internal/render"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

// changedMsg signals that the dashboard state moved on.
type changedMsg struct{}

// closedMsg signals that the dashboard stopped publishing.
type closedMsg struct{}

// Model represents the terminal UI state. The dashboard owns everything else;
// the model only keeps the latest frame and the text input widget.
type Model struct {
	dashboard   service.DashboardInterface
	changes     <-chan struct{}
	unsubscribe func()

	view   render.View
	input  textinput.Model
	width  int
	height int
}

// NewModel subscribes to d and takes its current frame.
func NewModel(d service.DashboardInterface) Model {
	ti := textinput.New()
	ti.Placeholder = "Введите название города"
	ti.CharLimit = 100
	ti.Width = 44

	changes, unsubscribe := d.Subscribe()
	m := Model{
		dashboard:   d,
		changes:     changes,
		unsubscribe: unsubscribe,
		input:       ti,
	}
	m.sync()
	return m
}

// Close drops the dashboard subscription.
func (m Model) Close() {
	m.unsubscribe()
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

// Init starts listening for dashboard changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), textinput.Blink)
}

// sync pulls a fresh frame and lines the text input up with the dialog.
func (m *Model) sync() tea.Cmd {
	m.view = m.dashboard.View()

	state := m.view.ModalState
	if !state.Open {
		m.input.Blur()
		m.input.SetValue("")
		return nil
	}
	if m.input.Value() != state.Input {
		m.input.SetValue(state.Input)
		m.input.CursorEnd()
	}
	if !m.input.Focused() {
		return m.input.Focus()
	}
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case closedMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.view.ModalState.Open {
			return m.handleModalKeys(msg)
		}
		return m.handleDashboardKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, active := m.dashboard.Cities()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.dashboard.SelectCity(active - 1)
	case "down", "j":
		m.dashboard.SelectCity(active + 1)
	case "a":
		m.dashboard.OpenModal()
	case "x":
		m.dashboard.RemoveCity(active)
	case "r":
		m.dashboard.Refresh()
	case "esc":
		m.dashboard.DismissNotification()
	default:
		return m, nil
	}
	cmd := m.sync()
	return m, cmd
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dashboard.CancelModal()
		cmd := m.sync()
		return m, cmd
	case tea.KeyEnter:
		m.dashboard.ConfirmModal()
		cmd := m.sync()
		return m, cmd
	case tea.KeyTab:
		if s := m.view.ModalState.Suggestions; m.view.ModalState.ShowSuggestions && len(s) > 0 {
			m.dashboard.PickSuggestion(s[0])
		}
		cmd := m.sync()
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.dashboard.InputChanged(after)
		m.view = m.dashboard.View()
	}
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	sidebar := sidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Погода"),
		"",
		drawCities(m.view.Cities),
	))

	panel := panelStyle
	if m.width > 0 {
		panel = panel.Width(max(m.width-lipgloss.Width(sidebar)-4, 40))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, panel.Render(drawPanel(m.view.Panel)))

	sections := []string{body}
	if banner := drawNotification(m.view.Notification); banner != "" {
		sections = append(sections, banner)
	}
	if m.view.ModalState.Open {
		sections = append(sections, drawModal(m.view.Modal, m.view.ModalState, m.input.View()))
	} else {
		sections = append(sections,
			helpStyle.Render("↑/↓: город • a: добавить • x: удалить • r: обновить • Esc: скрыть • q: выход"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
