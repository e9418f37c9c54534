package view

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/financeflow-app/financeflow/internal/apiclient"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SessionExpiredMsg tells the root model to drop back to the login
// screen. Emitted at most once per expiry by whichever fetch observed
// the 401 first.
type SessionExpiredMsg struct{}

// sessionCmd converts a session expiry error into the root-level
// message; other errors stay with the emitting view.
func sessionCmd(err error) tea.Cmd {
	if !errors.Is(err, apiclient.ErrSessionExpired) {
		return nil
	}

	return func() tea.Msg { return SessionExpiredMsg{} }
}

const fetchTimeout = 15 * time.Second

// reqCtx returns a context with the standard timeout for gateway calls.
func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), fetchTimeout)
}
