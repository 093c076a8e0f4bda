package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateDashboard state = iota
	stateQueue
	stateForm
)

// refresh cadence for the dashboard and queue views
const refreshEvery = 5 * time.Second

type refreshTickMsg struct{}

type RootModel struct {
	State     state
	API       *APIClient
	Dashboard DashboardModel
	Queue     QueueModel
	Form      CommandFormModel
	height    int
}

func NewRootModel(api *APIClient) RootModel {
	return RootModel{
		State:     stateDashboard,
		API:       api,
		Dashboard: NewDashboardModel(api, 24),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.Dashboard.Refresh(), scheduleRefresh())
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.Dashboard.Table.SetHeight(max(msg.Height-10, 5))
		if m.State == stateQueue {
			m.Queue.Table.SetHeight(max(msg.Height-10, 5))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case refreshTickMsg:
		switch m.State {
		case stateDashboard:
			return m, tea.Batch(m.Dashboard.Refresh(), scheduleRefresh())
		case stateQueue:
			return m, tea.Batch(m.Queue.Refresh(), scheduleRefresh())
		default:
			return m, scheduleRefresh()
		}

	case ClientSelectedMsg:
		m.State = stateQueue
		m.Queue = NewQueueModel(m.API, msg.ClientID, m.heightOr(24))
		return m, m.Queue.Refresh()

	case NewCommandMsg:
		m.State = stateForm
		m.Form = NewCommandFormModel(m.API, msg.ClientID)
		return m, nil

	case BackToDashboardMsg:
		m.State = stateDashboard
		return m, m.Dashboard.Refresh()
	}

	var cmd tea.Cmd
	switch m.State {
	case stateDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
	case stateQueue:
		m.Queue, cmd = m.Queue.Update(msg)
	case stateForm:
		m.Form, cmd = m.Form.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	switch m.State {
	case stateQueue:
		return m.Queue.View()
	case stateForm:
		return m.Form.View()
	default:
		return m.Dashboard.View()
	}
}

func (m RootModel) heightOr(fallback int) int {
	if m.height > 0 {
		return m.height
	}
	return fallback
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
