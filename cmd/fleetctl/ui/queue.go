package ui

import (
	"strconv"
	"strings"
	"time"

	"labfleet/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type QueueModel struct {
	API      *APIClient
	ClientID string
	Table    table.Model
	Err      error
}

type queueMsg struct {
	entries []dto.QueueEntry
	err     error
}

type BackToDashboardMsg struct{}

func NewQueueModel(api *APIClient, clientID string, height int) QueueModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Command", Width: 14},
		{Title: "Args", Width: 16},
		{Title: "Status", Width: 8},
		{Title: "Result", Width: 30},
		{Title: "Updated", Width: 19},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return QueueModel{API: api, ClientID: clientID, Table: t}
}

func (m QueueModel) Refresh() tea.Cmd {
	api, id := m.API, m.ClientID
	return func() tea.Msg {
		entries, err := api.Queue(id)
		return queueMsg{entries: entries, err: err}
	}
}

func (m QueueModel) Update(msg tea.Msg) (QueueModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.Refresh()
		case "n":
			id := m.ClientID
			return m, func() tea.Msg { return NewCommandMsg{ClientID: id} }
		case "esc":
			return m, func() tea.Msg { return BackToDashboardMsg{} }
		case "q":
			return m, tea.Quit
		}

	case queueMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		rows := make([]table.Row, 0, len(msg.entries))
		for _, e := range msg.entries {
			rows = append(rows, table.Row{
				strconv.FormatUint(uint64(e.ID), 10),
				e.Command,
				e.Args,
				e.Status,
				e.Result,
				time.Unix(e.UpdatedAt, 0).Format("2006-01-02 15:04:05"),
			})
		}
		m.Table.SetRows(rows)
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m QueueModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Command Queue - "+m.ClientID) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("n: new command | r: refresh | esc: back | q: quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
