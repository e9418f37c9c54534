// Package action maps client intents onto the automation engine's wire
// protocol: an action tag, a destination webhook and a JSON payload.
package action

import (
	"errors"

	"github.com/financeflow-app/financeflow/internal/config"
)

// Action is the tag the automation engine dispatches on.
type Action string

const (
	ListTransactions  Action = "get_recent_transactions"
	AddTransaction    Action = "add_transaction"
	UpdateTransaction Action = "update_transaction"
	DeleteTransaction Action = "delete_transaction"
	DashboardStats    Action = "get_dashboard_stats"
	ProfileStats      Action = "get_profile_stats"
	GetCategories     Action = "get_categories"
	GetCategoryStats  Action = "get_category_stats"
)

var (
	// ErrNotConfigured means the destination for an action is absent
	// from the environment. Reported as a service failure, never
	// silently skipped.
	ErrNotConfigured = errors.New("webhook destination not configured")

	// ErrMissingFields is a client error; the request never reaches
	// the automation engine.
	ErrMissingFields = errors.New("missing required fields")
)

// Resolver looks up the destination webhook for each action.
type Resolver struct {
	destinations map[Action]string
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		destinations: map[Action]string{
			ListTransactions:  cfg.Webhooks.GetTransactions,
			AddTransaction:    cfg.Webhooks.AddTransaction,
			UpdateTransaction: cfg.Webhooks.UpdateTransaction,
			DeleteTransaction: cfg.Webhooks.DeleteTransaction,
			DashboardStats:    cfg.Webhooks.GetStats,
			ProfileStats:      cfg.Webhooks.GetStats,
			GetCategories:     cfg.Webhooks.GetCategories,
			GetCategoryStats:  cfg.Webhooks.GetCategoryStats,
		},
	}
}

func (r *Resolver) Resolve(a Action) (string, error) {
	url, ok := r.destinations[a]
	if !ok || url == "" {
		return "", ErrNotConfigured
	}

	return url, nil
}

// StatsAction selects the stats variant from the query-supplied mode.
// Anything other than "profile" is the dashboard.
func StatsAction(mode string) Action {
	if mode == "profile" {
		return ProfileStats
	}

	return DashboardStats
}

// TransactionInput is the client-supplied body for add and update.
type TransactionInput struct {
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	CategoryName string  `json:"category_name,omitempty"`
	Note         string  `json:"note,omitempty"`
	Type         string  `json:"type"`
}

// Validate enforces the required fields. A zero amount is treated as
// absent, matching the upstream contract.
func (in TransactionInput) Validate() error {
	if in.Amount == 0 || in.Date == "" || in.Type == "" {
		return ErrMissingFields
	}

	return nil
}

type ListPayload struct {
	Action    Action `json:"action"`
	UserID    string `json:"userId"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

func NewList(userID, start, end string) ListPayload {
	return ListPayload{Action: ListTransactions, UserID: userID, StartDate: start, EndDate: end}
}

type MutatePayload struct {
	Action        Action           `json:"action"`
	UserID        string           `json:"userId"`
	TransactionID string           `json:"transactionId,omitempty"`
	Payload       TransactionInput `json:"payload"`
}

func NewAdd(userID string, in TransactionInput) MutatePayload {
	return MutatePayload{Action: AddTransaction, UserID: userID, Payload: in}
}

func NewUpdate(userID, transactionID string, in TransactionInput) MutatePayload {
	return MutatePayload{Action: UpdateTransaction, UserID: userID, TransactionID: transactionID, Payload: in}
}

type DeletePayload struct {
	Action        Action `json:"action"`
	UserID        string `json:"userId"`
	TransactionID string `json:"transactionId"`
}

func NewDelete(userID, transactionID string) DeletePayload {
	return DeletePayload{Action: DeleteTransaction, UserID: userID, TransactionID: transactionID}
}

type StatsPayload struct {
	Action    Action `json:"action"`
	UserID    string `json:"userId"`
	StartDate string `json:"startDate,omitempty"`
}

func NewStats(userID, mode, startDate string) StatsPayload {
	return StatsPayload{Action: StatsAction(mode), UserID: userID, StartDate: startDate}
}

type CategoriesPayload struct {
	Action Action `json:"action"`
	UserID string `json:"userId"`
}

func NewCategories(userID string) CategoriesPayload {
	return CategoriesPayload{Action: GetCategories, UserID: userID}
}

type CategoryStatsPayload struct {
	Action    Action `json:"action"`
	UserID    string `json:"userId"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

func NewCategoryStats(userID, start, end string) CategoryStatsPayload {
	return CategoryStatsPayload{Action: GetCategoryStats, UserID: userID, StartDate: start, EndDate: end}
}
