package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/apiclient"
)

type expensesState int

const (
	expensesStateMonth expensesState = iota
	expensesStateLoading
	expensesStateBrowse
	expensesStateSearch
	expensesStateForm
	expensesStateConfirmDelete
)

type ExpensesModel struct {
	CommonModel
	client *apiclient.Client

	state       expensesState
	monthPicker MonthPicker
	table       table.Model
	search      textinput.Model
	form        *huh.Form

	year  int
	month time.Month
	start string
	end   string

	all        []aggregate.Transaction
	expenses   []aggregate.Transaction
	visible    []aggregate.Transaction
	page       []aggregate.Transaction
	categories []aggregate.Category
	paginator  aggregate.Paginator

	editing *aggregate.Transaction
	status  string

	// Form bindings
	formAmount   string
	formDate     string
	formCategory string
	formNote     string
	formType     string
}

func NewExpensesModel(client *apiclient.Client) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Note", Width: 30},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(aggregate.DefaultPageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "search note or category"
	search.Prompt = "/ "
	search.Width = 30

	return ExpensesModel{
		client:      client,
		state:       expensesStateMonth,
		monthPicker: NewMonthPicker(),
		table:       t,
		search:      search,
		paginator:   aggregate.NewPaginator(aggregate.DefaultPageSize),
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateBrowse:
		return "Esc: back | /: search | ←/→: page | a: add | e: edit | d: delete | m: month | r: refresh"
	case expensesStateSearch:
		return "Enter: apply | Esc: clear"
	case expensesStateForm:
		return "Navigate form | Esc: cancel"
	case expensesStateConfirmDelete:
		return "y: delete | n: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ExpensesModel) Init() tea.Cmd {
	return nil
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.year, m.month = msg.Year, msg.Month
		m.start, m.end = msg.Start, msg.End
		m.state = expensesStateLoading

		return m, m.loadCmd()

	case expensesLoadedMsg:
		if cmd := sessionCmd(msg.err); cmd != nil {
			return m, cmd
		}

		m.state = expensesStateBrowse
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.all = msg.txs
		if msg.categories != nil {
			m.categories = msg.categories
		}
		m.status = ""
		m.applyPipeline(true)

		return m, nil

	case mutationDoneMsg:
		if cmd := sessionCmd(msg.err); cmd != nil {
			return m, cmd
		}

		m.form = nil
		m.editing = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = expensesStateBrowse

			return m, nil
		}

		m.status = msg.status
		m.state = expensesStateLoading

		return m, m.loadCmd()
	}

	switch m.state {
	case expensesStateMonth:
		return m.updateMonth(msg)
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateSearch:
		return m.updateSearch(msg)
	case expensesStateForm:
		return m.updateForm(msg)
	case expensesStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.monthPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.monthPicker, cmd = m.monthPicker.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.applyPipeline(true)

				return m, nil
			}

			return m, Back
		case "/":
			m.state = expensesStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "left", "p":
			m.paginator.Prev()
			m.refreshPage()

			return m, nil
		case "right", "n":
			m.paginator.Next()
			m.refreshPage()

			return m, nil
		case "a":
			return m.startForm(nil)
		case "e":
			if tx := m.selectedTx(); tx != nil {
				return m.startForm(tx)
			}

			return m, nil
		case "d":
			if tx := m.selectedTx(); tx != nil {
				m.editing = tx
				m.state = expensesStateConfirmDelete
			}

			return m, nil
		case "m":
			m.state = expensesStateMonth
			m.monthPicker.Reset()

			return m, nil
		case "r":
			m.state = expensesStateLoading
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.state = expensesStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.applyPipeline(true)

			return m, nil
		case tea.KeyEsc:
			m.state = expensesStateBrowse
			m.search.SetValue("")
			m.search.Blur()
			m.table.Focus()
			m.applyPipeline(true)

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m ExpensesModel) selectedTx() *aggregate.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page) {
		return nil
	}

	tx := m.page[idx]

	return &tx
}

func (m ExpensesModel) startForm(tx *aggregate.Transaction) (tea.Model, tea.Cmd) {
	m.editing = tx

	if tx != nil {
		m.formAmount = strconv.FormatFloat(tx.DisplayAmount(), 'f', -1, 64)
		m.formDate = tx.Date
		m.formCategory = aggregate.DisplayCategory(*tx, m.categories)
		m.formNote = tx.Note
		m.formType = string(tx.ResolvedType())
	} else {
		m.formAmount = ""
		m.formDate = time.Now().Format(time.DateOnly)
		m.formCategory = ""
		m.formNote = ""
		m.formType = string(aggregate.TypeExpense)
	}

	m.form = m.buildForm()
	m.state = expensesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m *ExpensesModel) buildForm() *huh.Form {
	typeOptions := []huh.Option[string]{
		huh.NewOption("Expense", string(aggregate.TypeExpense)),
		huh.NewOption("Income", string(aggregate.TypeIncome)),
	}

	var categoryOptions []huh.Option[string]
	for _, c := range aggregate.CategoriesFor(m.categories, aggregate.Type(m.formType)) {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.Name))
	}
	if len(categoryOptions) == 0 {
		categoryOptions = append(categoryOptions, huh.NewOption(aggregate.UncategorizedLabel, ""))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(typeOptions...).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("50000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("amount must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()

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

	m.state = expensesStateLoading

	return m, m.saveCmd()
}

func (m ExpensesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			m.state = expensesStateLoading
			return m, m.deleteCmd()
		case "n", "esc":
			m.editing = nil
			m.state = expensesStateBrowse

			return m, nil
		}
	}

	return m, nil
}

// applyPipeline recomputes expenses -> search -> pagination from the
// raw fetch. resetPage returns to page 1, used when the inputs changed
// rather than just the page.
func (m *ExpensesModel) applyPipeline(resetPage bool) {
	m.expenses = aggregate.FilterExpenses(m.all)
	m.visible = aggregate.Search(m.expenses, m.search.Value())

	if resetPage {
		m.paginator.Reset()
	}
	m.paginator.SetTotal(len(m.visible))

	m.refreshPage()
}

func (m *ExpensesModel) refreshPage() {
	m.page = aggregate.Slice(m.paginator, m.visible)

	rows := make([]table.Row, 0, len(m.page))
	for _, tx := range m.page {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Note,
			aggregate.DisplayCategory(tx, m.categories),
			FormatSignedAmount(tx),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m ExpensesModel) View() string {
	switch m.state {
	case expensesStateMonth:
		return lipgloss.NewStyle().Padding(1).Render(m.monthPicker.View())

	case expensesStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")

	case expensesStateForm:
		title := "Add Transaction"
		if m.editing != nil {
			title = "Edit Transaction"
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + m.form.View(),
		)

	case expensesStateConfirmDelete:
		if m.editing == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(fmt.Sprintf(
			"Delete this transaction?\n\n%s  %s  %s\n\n(y/n)",
			FormatDate(m.editing.Date),
			aggregate.DisplayCategory(*m.editing, m.categories),
			FormatSignedAmount(*m.editing),
		))
	}

	return m.viewBrowse()
}

func (m ExpensesModel) viewBrowse() string {
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Expenses - %s %d", m.month, m.year))

	searchLine := m.search.View()
	if m.state != expensesStateSearch && m.search.Value() == "" {
		searchLine = lipgloss.NewStyle().Faint(true).Render("/ to search")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	pageLine := fmt.Sprintf("Page %d of %d (%d items)", m.paginator.Page(), m.paginator.PageCount(), len(m.visible))
	if len(m.visible) == 0 {
		pageLine = "No expenses found."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		searchLine,
		tableView,
		lipgloss.NewStyle().Faint(true).Render(pageLine),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type expensesLoadedMsg struct {
	txs        []aggregate.Transaction
	categories []aggregate.Category
	err        error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	client, start, end := m.client, m.start, m.end
	haveCategories := m.categories != nil

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		txs, err := client.Transactions(ctx, start, end)
		if err != nil {
			return expensesLoadedMsg{err: err}
		}

		msg := expensesLoadedMsg{txs: txs}

		// Categories rarely change; one fetch per screen visit is enough.
		if !haveCategories {
			categories, err := client.Categories(ctx)
			if err != nil {
				return expensesLoadedMsg{err: err}
			}

			msg.categories = categories
		}

		return msg
	}
}

type mutationDoneMsg struct {
	status string
	err    error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	client := m.client
	editing := m.editing

	// Read through the form: the Value bindings only seed the inputs.
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	typ := m.form.GetString("type")

	in := action.TransactionInput{
		Amount:       aggregate.SignedAmount(aggregate.Type(typ), amount),
		Date:         m.form.GetString("date"),
		CategoryName: m.form.GetString("category"),
		Note:         m.form.GetString("note"),
		Type:         typ,
	}

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		if editing != nil {
			if err := client.UpdateTransaction(ctx, editing.ID.String(), in); err != nil {
				return mutationDoneMsg{err: err}
			}

			return mutationDoneMsg{status: "Saved."}
		}

		if err := client.AddTransaction(ctx, in); err != nil {
			return mutationDoneMsg{err: err}
		}

		return mutationDoneMsg{status: "Added."}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	client := m.client
	id := m.editing.ID.String()

	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()

		if err := client.DeleteTransaction(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}

		return mutationDoneMsg{status: "Deleted."}
	}
}
