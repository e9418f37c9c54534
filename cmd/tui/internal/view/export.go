package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/apiclient"
	"github.com/financeflow-app/financeflow/internal/report"
)

type exportState int

const (
	exportStateMonth exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	client *apiclient.Client

	state       exportState
	monthPicker MonthPicker

	year  int
	month time.Month
	start string
	end   string

	form    *huh.Form
	path    string
	spinner spinner.Model

	err      error
	filePath string
	count    int
}

func NewExportModel(client *apiclient.Client) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		client:      client,
		state:       exportStateMonth,
		monthPicker: NewMonthPicker(),
		path:        "./reports",
		spinner:     s,
	}
}

func (m ExportModel) Title() string { return "Export Report" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.year, m.month = msg.Year, msg.Month
		m.start, m.end = msg.Start, msg.End
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()

	case exportResultMsg:
		if cmd := sessionCmd(msg.err); cmd != nil {
			return m, cmd
		}

		m.state = exportStateResult
		m.err = msg.err
		m.filePath = msg.path
		m.count = msg.count

		return m, nil
	}

	switch m.state {
	case exportStateMonth:
		return m.updateMonth(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.monthPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.monthPicker, cmd = m.monthPicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateMonth
			m.monthPicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./reports").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateMonth:
		return lipgloss.NewStyle().Padding(1).Render(m.monthPicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting %s %d report...", m.spinner.View(), m.month, m.year),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Transactions: %d", m.count),
			fmt.Sprintf("Written to:   %s", m.filePath),
		),
	)
}

type exportResultMsg struct {
	path  string
	count int
	err   error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	client := m.client
	year, month := m.year, m.month
	start, end := m.start, m.end

	// Read through the form: the Value binding only seeds the input.
	dir := m.form.GetString("path")
	if dir == "" {
		dir = m.path
	}

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		txs, err := client.Transactions(ctx, start, end)
		if err != nil {
			return exportResultMsg{err: err}
		}

		categories, err := client.Categories(ctx)
		if err != nil {
			return exportResultMsg{err: err}
		}

		r, err := report.Build(txs, categories, year, month)
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := r.WriteFile(dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path, count: len(txs)}
	}
}
