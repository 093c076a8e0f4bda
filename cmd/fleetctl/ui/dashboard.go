package ui

import (
	"fmt"
	"strings"
	"time"

	"labfleet/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DashboardModel struct {
	API     *APIClient
	Table   table.Model
	Clients []dto.ClientInfo
	Err     error
}

type clientsMsg struct {
	resp *dto.ClientListResponse
	err  error
}

type ClientSelectedMsg struct {
	ClientID string
}

type NewCommandMsg struct {
	ClientID string
}

func NewDashboardModel(api *APIClient, height int) DashboardModel {
	columns := []table.Column{
		{Title: "Client ID", Width: 32},
		{Title: "Status", Width: 10},
		{Title: "Last Seen", Width: 14},
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

	return DashboardModel{API: api, Table: t}
}

func (m DashboardModel) Refresh() tea.Cmd {
	api := m.API
	return func() tea.Msg {
		resp, err := api.ListClients()
		return clientsMsg{resp: resp, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.Refresh()
		case "enter":
			if row := m.Table.SelectedRow(); len(row) > 0 {
				return m, func() tea.Msg { return ClientSelectedMsg{ClientID: row[0]} }
			}
		case "n":
			id := ""
			if row := m.Table.SelectedRow(); len(row) > 0 {
				id = row[0]
			}
			return m, func() tea.Msg { return NewCommandMsg{ClientID: id} }
		case "q":
			return m, tea.Quit
		}

	case clientsMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Clients = msg.resp.Clients
		rows := make([]table.Row, 0, len(m.Clients))
		for _, c := range m.Clients {
			rows = append(rows, table.Row{c.ClientID, c.Status, formatAge(c.LastSeenMS)})
		}
		m.Table.SetRows(rows)
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("labfleet - Clients") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("enter: queue | n: new command | r: refresh | q: quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}

func formatAge(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%s ago", (time.Duration(ms) * time.Millisecond).Round(time.Second))
}
