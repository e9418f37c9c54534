package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/apiclient"
)

// LoggedInMsg carries the authenticated user up to the root model.
type LoggedInMsg struct {
	Result *apiclient.LoginResult
}

type loginState int

const (
	loginStateForm loginState = iota
	loginStateAuthenticating
)

type LoginModel struct {
	CommonModel
	auth    *apiclient.AuthClient
	session *apiclient.Session

	state   loginState
	form    *huh.Form
	spinner spinner.Model
	err     error

	email    string
	password string
}

func NewLoginModel(auth *apiclient.AuthClient, session *apiclient.Session) LoginModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := LoginModel{
		auth:    auth,
		session: session,
		spinner: s,
	}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string {
	if m.state == loginStateAuthenticating {
		return "Signing in..."
	}

	return "Enter: submit | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = loginStateForm
			m.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Result: msg.result} }

	case spinner.TickMsg:
		if m.state == loginStateAuthenticating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

		return m, nil
	}

	if m.state == loginStateAuthenticating {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = loginStateAuthenticating
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.loginCmd())
}

func (m LoginModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("FinanceFlow")

	if m.state == loginStateAuthenticating {
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s\n\n%s Signing in...", title, m.spinner.View()),
		)
	}

	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("%s\n\n%s%s", title, errStr, m.form.View()),
	)
}

type loginResultMsg struct {
	result *apiclient.LoginResult
	err    error
}

func (m LoginModel) loginCmd() tea.Cmd {
	// Read through the form: the Value bindings only seed the inputs.
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		result, err := m.auth.LoginWithPassword(ctx, m.session, email, password)

		return loginResultMsg{result: result, err: err}
	}
}
