package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlowther/centsy/internal/appstate"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
)

// ReviewModel walks the needs-review queue one transaction at a time.
// Imported transactions land here until they are confirmed.
type ReviewModel struct {
	CommonModel
	controller *appstate.Controller

	queue   []*ledger.Transaction
	loading bool
	err     error
	status  string
	done    int
}

func NewReviewModel(controller *appstate.Controller) ReviewModel {
	return ReviewModel{controller: controller, loading: true}
}

func (m ReviewModel) Title() string { return "Review Queue" }
func (m ReviewModel) ShortHelp() string {
	return "Esc: back | enter: approve | s: skip | x: delete"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewRefreshMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.queue = insights.FilterNeedsReview(m.controller.Snapshot().Transactions)

		return m, nil

	case reviewActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.done++

		return m, m.refreshCmd()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			return m, m.approveCmd()
		case "s":
			if len(m.queue) > 1 {
				m.queue = append(m.queue[1:], m.queue[0])
			}

			return m, nil
		case "x":
			return m, m.deleteCmd()
		}
	}

	return m, nil
}

func (m ReviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading review queue...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.queue) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Nothing left to review. Approved %d this session.\n\nEsc: back", m.done))
	}

	tx := m.queue[0]

	var b strings.Builder

	fmt.Fprintf(&b, "%d transaction(s) awaiting review\n\n", len(m.queue))
	fmt.Fprintf(&b, "Date:     %s (%s)\n", FormatDate(tx.Date), insights.RelativeDateLabel(tx.Date, time.Now()))
	fmt.Fprintf(&b, "Merchant: %s\n", tx.Merchant)
	fmt.Fprintf(&b, "Category: %s\n", tx.Category)
	fmt.Fprintf(&b, "Amount:   %s\n", FormatAmount(tx.Amount))
	fmt.Fprintf(&b, "Type:     %s\n", tx.Type)

	if tx.PaymentMethod != ledger.PaymentNone {
		fmt.Fprintf(&b, "Method:   %s\n", tx.PaymentMethod)
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(b.String())

	if m.status != "" {
		panel = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + panel
	}

	return lipgloss.NewStyle().Padding(1).Render(panel)
}

// Messages

type reviewRefreshMsg struct {
	err error
}

func (m ReviewModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return reviewRefreshMsg{err: m.controller.Refresh(ctx)}
	}
}

type reviewActionMsg struct {
	err error
}

func (m ReviewModel) approveCmd() tea.Cmd {
	if len(m.queue) == 0 {
		return nil
	}

	id := m.queue[0].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return reviewActionMsg{err: m.controller.MarkReviewed(ctx, id)}
	}
}

func (m ReviewModel) deleteCmd() tea.Cmd {
	if len(m.queue) == 0 {
		return nil
	}

	id := m.queue[0].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return reviewActionMsg{err: m.controller.DeleteTransaction(ctx, id)}
	}
}
