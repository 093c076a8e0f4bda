package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandFormModel enqueues one command for one client. Fields: client id,
// command name, optional args.
type CommandFormModel struct {
	API     *APIClient
	inputs  []textinput.Model
	focus   int
	Err     error
	Notice  string
}

type enqueuedMsg struct {
	id  uint
	err error
}

const (
	fieldClientID = iota
	fieldCommand
	fieldArgs
)

func NewCommandFormModel(api *APIClient, clientID string) CommandFormModel {
	m := CommandFormModel{API: api, inputs: make([]textinput.Model, 3)}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		switch i {
		case fieldClientID:
			t.Placeholder = "client id"
			t.SetValue(clientID)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case fieldCommand:
			t.Placeholder = "command (screenshot, restart, shutdown)"
		case fieldArgs:
			t.Placeholder = "args (optional)"
		}
		m.inputs[i] = t
	}
	return m
}

func (m CommandFormModel) Update(msg tea.Msg) (CommandFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToDashboardMsg{} }

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focus--
			} else {
				m.focus++
			}
			if m.focus >= len(m.inputs) {
				m.focus = 0
			}
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focus {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
				} else {
					m.inputs[i].Blur()
					m.inputs[i].PromptStyle = noStyle
					m.inputs[i].TextStyle = noStyle
				}
			}
			return m, tea.Batch(cmds...)

		case "enter":
			clientID := strings.TrimSpace(m.inputs[fieldClientID].Value())
			command := strings.TrimSpace(m.inputs[fieldCommand].Value())
			args := m.inputs[fieldArgs].Value()
			if clientID == "" || command == "" {
				m.Err = fmt.Errorf("client id and command are required")
				return m, nil
			}
			api := m.API
			return m, func() tea.Msg {
				id, err := api.Enqueue(clientID, command, args)
				return enqueuedMsg{id: id, err: err}
			}
		}

	case enqueuedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Notice = fmt.Sprintf("enqueued command #%d", msg.id)
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m CommandFormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Enqueue Command") + "\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("enter: submit | tab: next field | esc: back"))
	if m.Notice != "" {
		b.WriteString("\n" + statusMessageStyle(m.Notice))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
