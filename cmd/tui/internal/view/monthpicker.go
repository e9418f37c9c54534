package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/aggregate"
)

// MonthSelectedMsg is emitted when the user has picked a month. Start
// and End are the inclusive date bounds sent to the gateway.
type MonthSelectedMsg struct {
	Year  int
	Month time.Month
	Start string
	End   string
}

type monthChoice int

const (
	monthThis monthChoice = iota
	monthLast
	monthCustom
)

func (c monthChoice) label(now time.Time) string {
	switch c {
	case monthThis:
		return fmt.Sprintf("This Month (%s %d)", now.Month(), now.Year())
	case monthLast:
		last := now.AddDate(0, -1, 0)
		return fmt.Sprintf("Last Month (%s %d)", last.Month(), last.Year())
	case monthCustom:
		return "Other Month"
	}

	return "Unknown"
}

type monthPickerState int

const (
	monthStateSelect monthPickerState = iota
	monthStateCustom
)

// MonthPicker is a reusable component for selecting a reporting month.
type MonthPicker struct {
	state    monthPickerState
	selected monthChoice
	now      time.Time

	input textinput.Model
	err   error
}

func NewMonthPicker() MonthPicker {
	in := textinput.New()
	in.Placeholder = "YYYY-MM"
	in.CharLimit = 7
	in.Width = 9
	in.Prompt = "Month: "

	return MonthPicker{
		state: monthStateSelect,
		now:   time.Now(),
		input: in,
	}
}

func (m MonthPicker) Init() tea.Cmd {
	return nil
}

func (m MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case monthStateSelect:
			return m.updateSelect(keyMsg)
		case monthStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == monthStateCustom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m MonthPicker) updateSelect(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > monthThis {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < monthCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == monthCustom {
			m.state = monthStateCustom
			m.input.Focus()
			return m, textinput.Blink
		}

		target := m.now
		if m.selected == monthLast {
			target = m.now.AddDate(0, -1, 0)
		}

		return m, selectMonthCmd(target.Year(), target.Month(), m.now)
	}

	return m, nil
}

func (m MonthPicker) updateCustom(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.String() {
	case "enter":
		year, month, err := aggregate.ParseMonth(m.input.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid month (YYYY-MM)")
			return m, nil
		}

		m.err = nil

		return m, selectMonthCmd(year, month, m.now)

	case "esc":
		m.state = monthStateSelect
		m.err = nil

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func selectMonthCmd(year int, month time.Month, now time.Time) tea.Cmd {
	// Date strings are derived in the local offset so the window's edge
	// days land in the right month regardless of timezone.
	_, offset := now.Zone()
	start, end := aggregate.MonthWindow(year, month, -offset/60)

	return func() tea.Msg {
		return MonthSelectedMsg{Year: year, Month: month, Start: start, End: end}
	}
}

func (m MonthPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == monthStateCustom {
		return fmt.Sprintf(
			"Enter Month:\n\n%s\n\n(Enter to confirm, Esc to back)%s",
			m.input.View(),
			errStr,
		)
	}

	s := "Select Month:\n\n"
	for c := monthThis; c <= monthCustom; c++ {
		cursor := " "
		if m.selected == c {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, c.label(m.now))
	}
	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting reports whether the picker is on the choice list rather
// than the custom month input.
func (m MonthPicker) IsSelecting() bool {
	return m.state == monthStateSelect
}

func (m *MonthPicker) Reset() {
	m.state = monthStateSelect
	m.selected = monthThis
	m.err = nil
	m.input.SetValue("")
}
