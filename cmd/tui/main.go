package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/financeflow-app/financeflow/cmd/tui/internal/view"
	"github.com/financeflow-app/financeflow/internal/apiclient"
	"github.com/financeflow-app/financeflow/internal/config"
)

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewExpenses  View = 3
	ViewBreakdown View = 4
	ViewExport    View = 5
)

type model struct {
	client  *apiclient.Client
	auth    *apiclient.AuthClient
	session *apiclient.Session

	currentView View
	userName    string

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	expensesView  view.ExpensesModel
	breakdownView view.BreakdownModel
	exportView    view.ExportModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	session := apiclient.NewSession("")
	client := apiclient.New(cfg.Client.GatewayURL, session, cfg.Server.Timeout)
	auth := apiclient.NewAuthClient(cfg.Identity.URL, cfg.Identity.AnonKey, cfg.Server.Timeout)

	return model{
		client:      client,
		auth:        auth,
		session:     session,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(auth, session),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.client)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.client)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewBreakdown
				m.breakdownView = view.NewBreakdownModel(m.client)

				return m, m.breakdownView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.client)

				return m, m.exportView.Init()
			}
		}

	case view.LoggedInMsg:
		m.currentView = ViewMenu
		m.userName = msg.Result.DisplayName
		if m.userName == "" {
			m.userName = msg.Result.Email
		}

		return m, nil

	case view.SessionExpiredMsg:
		// Multiple in-flight fetches may observe the same expiry; the
		// second message finds the login screen already up.
		if m.currentView != ViewLogin {
			m.currentView = ViewLogin
			m.loginView = view.NewLoginModel(m.auth, m.session)

			return m, m.loginView.Init()
		}

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewBreakdown:
		var newModel tea.Model
		newModel, cmd = m.breakdownView.Update(msg)
		m.breakdownView = newModel.(view.BreakdownModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		greeting := "FinanceFlow"
		if m.userName != "" {
			greeting = fmt.Sprintf("FinanceFlow - %s", m.userName)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			greeting + "\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Category Breakdown\n" +
				"4. Export Report\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewBreakdown:
		return m.breakdownView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
