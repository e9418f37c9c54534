package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/apiclient"
)

type dashboardState int

const (
	dashboardStateMonth dashboardState = iota
	dashboardStateLoading
	dashboardStateView
)

type DashboardModel struct {
	CommonModel
	client *apiclient.Client

	state       dashboardState
	monthPicker MonthPicker

	year  int
	month time.Month
	start string
	end   string

	stats  aggregate.StatsSnapshot
	series []aggregate.SeriesPoint
	err    error
}

func NewDashboardModel(client *apiclient.Client) DashboardModel {
	return DashboardModel{
		client:      client,
		state:       dashboardStateMonth,
		monthPicker: NewMonthPicker(),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateView {
		return "Esc: back | m: change month | r: refresh"
	}

	return "Esc: back | Enter: select"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.year, m.month = msg.Year, msg.Month
		m.start, m.end = msg.Start, msg.End
		m.state = dashboardStateLoading

		return m, m.loadCmd()

	case dashboardLoadedMsg:
		if cmd := sessionCmd(msg.err); cmd != nil {
			return m, cmd
		}

		m.state = dashboardStateView
		m.err = msg.err
		m.stats = msg.stats
		m.series = msg.series

		return m, nil
	}

	switch m.state {
	case dashboardStateMonth:
		return m.updateMonth(msg)
	case dashboardStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m DashboardModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.monthPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.monthPicker, cmd = m.monthPicker.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "m":
			m.state = dashboardStateMonth
			m.monthPicker.Reset()

			return m, nil
		case "r":
			m.state = dashboardStateLoading
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	switch m.state {
	case dashboardStateMonth:
		return lipgloss.NewStyle().Padding(1).Render(m.monthPicker.View())

	case dashboardStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")

	case dashboardStateView:
		return m.viewDashboard()
	}

	return ""
}

func (m DashboardModel) viewDashboard() string {
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Dashboard - %s %d", m.month, m.year))

	errLine := ""
	if m.err != nil {
		errLine = lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("stats endpoint unavailable, showing local totals (%v)", m.err),
		) + "\n"
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Balance", FormatAmount(m.stats.Balance), "63"),
		statCard("Income", FormatAmount(m.stats.Income), "46"),
		statCard("Expense", FormatAmount(m.stats.Expense), "196"),
	)

	chart := m.viewChart()

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", errLine+cards, "", chart),
	)
}

func statCard(label, value, color string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 2).
		MarginRight(2).
		Render(fmt.Sprintf("%s\n%s", lipgloss.NewStyle().Faint(true).Render(label), value))
}

const chartBarWidth = 30

func (m DashboardModel) viewChart() string {
	if len(m.series) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No transactions this month.")
	}

	var max float64
	for _, p := range m.series {
		if p.Income > max {
			max = p.Income
		}
		if p.Expense > max {
			max = p.Expense
		}
	}

	incomeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	var b strings.Builder
	b.WriteString("Daily Activity\n\n")

	for _, p := range m.series {
		b.WriteString(fmt.Sprintf("%-7s %s %s\n", p.Label,
			incomeStyle.Render(bar(p.Income, max)),
			expenseStyle.Render(bar(p.Expense, max)),
		))
	}

	b.WriteString("\n")
	b.WriteString(incomeStyle.Render("█ income"))
	b.WriteString("  ")
	b.WriteString(expenseStyle.Render("█ expense"))

	return b.String()
}

func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return ""
	}

	n := int(v / max * chartBarWidth)
	if n < 1 {
		n = 1
	}

	return strings.Repeat("█", n)
}

type dashboardLoadedMsg struct {
	stats  aggregate.StatsSnapshot
	series []aggregate.SeriesPoint
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	client, start, end := m.client, m.start, m.end

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		txs, err := client.Transactions(ctx, start, end)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		msg := dashboardLoadedMsg{series: aggregate.DailySeries(txs)}

		// The stats endpoint is preferred but not required; totals can
		// always be recomputed from the fetched list.
		stats, err := client.Stats(ctx, "", start)
		if err != nil {
			msg.err = err
			msg.stats = aggregate.Summarize(txs)
		} else {
			msg.stats = stats
		}

		return msg
	}
}
