package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stepview/internal/aws"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Padding(0, 1)
	baseStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is the dashboard state: a static result table plus viewport size.
type Model struct {
	title string
	table table.Model
	width int
	ready bool
}

// New creates the dashboard model from the aggregated rows.
func New(title string, rows []aws.Row) Model {
	headers := aws.Columns()
	widths := []int{36, 12, 14, 12, 8, 11, 8, 33}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row(r.Values()))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return Model{title: title, table: t}
}

// Rows exposes the table contents, mainly for tests.
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Leave room for title, borders, and the help line
		height := msg.Height - 6
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		m.ready = true
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	return titleStyle.Render(m.title) + "\n" +
		baseStyle.Render(m.table.View()) + "\n" +
		helpStyle.Render("q/esc:quit  j/k:scroll")
}

// Show runs the dashboard until the user quits.
func Show(title string, rows []aws.Row) error {
	p := tea.NewProgram(New(title, rows), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
