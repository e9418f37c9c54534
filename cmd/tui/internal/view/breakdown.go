package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/apiclient"
)

type breakdownState int

const (
	breakdownStateMonth breakdownState = iota
	breakdownStateLoading
	breakdownStateView
)

// Bar colors cycle; they carry no category identity.
var breakdownPalette = []string{"63", "205", "46", "214", "51", "196", "129", "226"}

type BreakdownModel struct {
	CommonModel
	client *apiclient.Client

	state       breakdownState
	monthPicker MonthPicker

	year  int
	month time.Month
	start string
	end   string

	entries []aggregate.BreakdownEntry
	err     error
}

func NewBreakdownModel(client *apiclient.Client) BreakdownModel {
	return BreakdownModel{
		client:      client,
		state:       breakdownStateMonth,
		monthPicker: NewMonthPicker(),
	}
}

func (m BreakdownModel) Title() string { return "Category Breakdown" }

func (m BreakdownModel) ShortHelp() string {
	if m.state == breakdownStateView {
		return "Esc: back | m: change month | r: refresh"
	}

	return "Esc: back | Enter: select"
}

func (m BreakdownModel) Init() tea.Cmd {
	return nil
}

func (m BreakdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.year, m.month = msg.Year, msg.Month
		m.start, m.end = msg.Start, msg.End
		m.state = breakdownStateLoading

		return m, m.loadCmd()

	case breakdownLoadedMsg:
		if cmd := sessionCmd(msg.err); cmd != nil {
			return m, cmd
		}

		m.state = breakdownStateView
		m.err = msg.err
		m.entries = msg.entries

		return m, nil
	}

	switch m.state {
	case breakdownStateMonth:
		return m.updateMonth(msg)
	case breakdownStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m BreakdownModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.monthPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.monthPicker, cmd = m.monthPicker.Update(msg)

	return m, cmd
}

func (m BreakdownModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "m":
			m.state = breakdownStateMonth
			m.monthPicker.Reset()

			return m, nil
		case "r":
			m.state = breakdownStateLoading
			return m, m.loadCmd()
		}
	}

	return m, nil
}

const breakdownBarWidth = 24

func (m BreakdownModel) View() string {
	switch m.state {
	case breakdownStateMonth:
		return lipgloss.NewStyle().Padding(1).Render(m.monthPicker.View())

	case breakdownStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading breakdown...")
	}

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Expenses by Category - %s %d", m.month, m.year))

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	if len(m.entries) == 0 {
		return lipgloss.NewStyle().Padding(1).Render(
			header + "\n\n" + lipgloss.NewStyle().Faint(true).Render("No expenses this month."),
		)
	}

	labelWidth := 0
	for _, e := range m.entries {
		if len(e.Category) > labelWidth {
			labelWidth = len(e.Category)
		}
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, e := range m.entries {
		color := breakdownPalette[i%len(breakdownPalette)]

		n := int(e.Percent / 100 * breakdownBarWidth)
		if n < 1 {
			n = 1
		}

		b.WriteString(fmt.Sprintf("%-*s %s %5.1f%%  %s\n",
			labelWidth, e.Category,
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", n)),
			e.Percent,
			FormatAmount(e.Amount),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type breakdownLoadedMsg struct {
	entries []aggregate.BreakdownEntry
	err     error
}

func (m BreakdownModel) loadCmd() tea.Cmd {
	client, start, end := m.client, m.start, m.end

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		entries, err := client.CategoryStats(ctx, start, end)
		if err == nil {
			return breakdownLoadedMsg{entries: entries}
		}

		if errors.Is(err, apiclient.ErrSessionExpired) {
			return breakdownLoadedMsg{err: err}
		}

		// The aggregation endpoint may be unconfigured; the same
		// breakdown can be derived from the raw list.
		txs, txErr := client.Transactions(ctx, start, end)
		if txErr != nil {
			return breakdownLoadedMsg{err: txErr}
		}

		return breakdownLoadedMsg{entries: aggregate.BreakdownFromTransactions(txs, nil)}
	}
}
