package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pellucid-io/scopes/cli/reader"
)

// maxEventRows caps the event list so the view fits a terminal without
// scrolling support.
const maxEventRows = 20

// InspectModel is a Bubble Tea model for inspect views.
type InspectModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(viewType string, data any) InspectModel {
	return InspectModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case "inspect_stream":
		content = m.renderInspectStream()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m InspectModel) renderInspectStream() string {
	c, ok := m.data.(*reader.Capture)
	if !ok {
		return "Invalid data type for inspect_stream"
	}
	s := c.Summary()

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Reply Stream"))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Channel ID", s.ChannelID},
		{"Kind", s.Kind},
		{"State", s.State},
		{"Events", fmt.Sprintf("%d", s.EventCount)},
	}
	if s.Kind == "preview" {
		rows = append(rows,
			[]string{"Widgets", fmt.Sprintf("%d", s.Widgets)},
			[]string{"Attributes", fmt.Sprintf("%d", s.Attributes)})
	} else {
		rows = append(rows,
			[]string{"Results", fmt.Sprintf("%d", s.Results)},
			[]string{"Categories", fmt.Sprintf("%d", s.Categories)})
	}
	if s.ErrorMessage != "" {
		rows = append(rows, []string{"Error", s.ErrorMessage})
	}
	if s.DecodeError != "" {
		rows = append(rows, []string{"Decode Error", s.DecodeError})
	}

	for _, row := range rows {
		label := LabelStyle.Render(row[0] + ":")
		value := row[1]
		switch row[0] {
		case "State":
			value = StateStyle(s.State).Render(value)
		case "Error", "Decode Error":
			value = ErrorStyle.Render(value)
		default:
			value = ValueStyle.Render(value)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}

	if len(c.Events) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Events"))
		b.WriteString("\n")
		events := c.Events
		if len(events) > maxEventRows {
			events = events[len(events)-maxEventRows:]
			b.WriteString(HelpStyle.Render(fmt.Sprintf("(showing last %d of %d)", maxEventRows, len(c.Events))))
			b.WriteString("\n")
		}
		for _, ev := range events {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				EventStyle.Render(fmt.Sprintf("#%d", ev.Seq)),
				ValueStyle.Render(string(ev.Type))))
		}
	}

	return BoxStyle.Render(b.String())
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(viewType string, data any) error {
	model := NewInspectModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders inspect data without full TUI (for fallback).
func RenderInspectStatic(viewType string, data any) string {
	model := NewInspectModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
