package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/appstate"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
	ledgerStateEdit
)

type LedgerModel struct {
	CommonModel
	controller *appstate.Controller

	state ledgerState
	table table.Model
	txs   []*ledger.Transaction
	form  *huh.Form

	methodFilterIdx int

	loading bool
	err     error
	status  string

	// Form bindings
	formDate     string
	formMerchant string
	formCategory string
	formAmount   string
	formType     ledger.Type
	formMethod   ledger.PaymentMethod
	editID       uuid.UUID
}

func NewLedgerModel(controller *appstate.Controller) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Merchant", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Type", Width: 6},
		{Title: "Method", Width: 7},
		{Title: "Review", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return LedgerModel{
		controller: controller,
		table:      t,
		loading:    true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }
func (m LedgerModel) ShortHelp() string {
	if m.state != ledgerStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | f: method filter | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerRefreshMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.refreshTable()

		return m, nil

	case ledgerSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.refreshCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.refreshCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "f":
			m.methodFilterIdx = (m.methodFilterIdx + 1) % 4
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formDate = FormatDate(time.Now())
	m.formMerchant = ""
	m.formCategory = ""
	m.formAmount = ""
	m.formType = ledger.TypeSpend
	m.formMethod = ledger.PaymentNone
	m.editID = uuid.Nil

	m.form = m.transactionForm()
	m.state = ledgerStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.formDate = FormatDate(tx.Date)
	m.formMerchant = tx.Merchant
	m.formCategory = tx.Category
	m.formAmount = tx.Amount.String()
	m.formType = tx.Type
	m.formMethod = tx.PaymentMethod
	m.editID = tx.ID

	m.form = m.transactionForm()
	m.state = ledgerStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m *LedgerModel) transactionForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),

			huh.NewInput().
				Key("merchant").
				Title("Merchant").
				Value(&m.formMerchant).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("merchant cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := decimal.NewFromString(s)
					return err
				}),

			huh.NewSelect[ledger.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Spend", ledger.TypeSpend),
					huh.NewOption("Earn", ledger.TypeEarn),
				).
				Value(&m.formType),

			huh.NewSelect[ledger.PaymentMethod]().
				Key("payment_method").
				Title("Payment Method").
				Options(
					huh.NewOption("None", ledger.PaymentNone),
					huh.NewOption("Cash", ledger.PaymentCash),
					huh.NewOption("Flex", ledger.PaymentFlex),
					huh.NewOption("Swipe", ledger.PaymentSwipe),
				).
				Value(&m.formMethod),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
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

	return m, m.saveCmd()
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	methodLabels := []string{"All", "Cash", "Flex", "Swipe"}

	header := fmt.Sprintf("Filter: [f] Method: %s", activeStyle(methodLabels[m.methodFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != ledgerStateBrowse && m.form != nil {
		title := "Add Transaction"
		if m.state == ledgerStateEdit {
			title = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) refreshTable() {
	snap := m.controller.Snapshot()

	m.txs = snap.Transactions

	switch m.methodFilterIdx {
	case 1:
		m.txs = insights.FilterByPaymentMethod(snap.Transactions, ledger.PaymentCash)
	case 2:
		m.txs = insights.FilterByPaymentMethod(snap.Transactions, ledger.PaymentFlex)
	case 3:
		m.txs = insights.FilterByPaymentMethod(snap.Transactions, ledger.PaymentSwipe)
	}

	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		review := ""
		if tx.NeedsReview {
			review = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Merchant,
			tx.Category,
			FormatAmount(tx.Amount),
			string(tx.Type),
			string(tx.PaymentMethod),
			review,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type ledgerRefreshMsg struct {
	err error
}

func (m LedgerModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return ledgerRefreshMsg{err: m.controller.Refresh(ctx)}
	}
}

type ledgerSaveMsg struct {
	err error
}

func (m LedgerModel) saveCmd() tea.Cmd {
	date, _ := time.Parse(time.DateOnly, m.formDate)
	amount, _ := decimal.NewFromString(m.formAmount)

	merchant := m.formMerchant
	category := m.formCategory
	txType := m.formType
	method := m.formMethod
	editID := m.editID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editID != uuid.Nil {
			_, err := m.controller.UpdateTransaction(ctx, editID, ledger.UpdateParams{
				Merchant:      &merchant,
				Category:      &category,
				Amount:        &amount,
				PaymentMethod: &method,
				Date:          &date,
			})

			return ledgerSaveMsg{err: err}
		}

		_, err := m.controller.AddTransaction(ctx, ledger.CreateParams{
			Date:          date,
			Merchant:      merchant,
			Category:      category,
			Amount:        amount,
			Type:          txType,
			PaymentMethod: method,
		})

		return ledgerSaveMsg{err: err}
	}
}

func (m LedgerModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return ledgerSaveMsg{err: m.controller.DeleteTransaction(ctx, id)}
	}
}
