package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlowther/centsy/internal/appstate"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
)

var horizons = []insights.Horizon{insights.Horizon4W, insights.Horizon3M, insights.Horizon1Y}

type DashboardModel struct {
	CommonModel
	controller *appstate.Controller

	horizonIdx int
	loading    bool
	err        error
}

func NewDashboardModel(controller *appstate.Controller) DashboardModel {
	return DashboardModel{controller: controller, loading: true}
}

func (m DashboardModel) Title() string { return "Dashboard" }
func (m DashboardModel) ShortHelp() string {
	return "Esc: back | p: cycle period | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardRefreshMsg:
		m.loading = false
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			m.horizonIdx = (m.horizonIdx + 1) % len(horizons)
			return m, nil
		case "r":
			m.loading = true
			return m, m.refreshCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	snap := m.controller.Snapshot()
	horizon := horizons[m.horizonIdx]
	now := time.Now()

	var b strings.Builder

	fmt.Fprintf(&b, "Period: %s\n\n", activeStyle(string(horizon)))
	fmt.Fprintf(&b, "Spending: %s\n", FormatAmount(insights.PeriodSpending(snap.Transactions, horizon, now)))
	fmt.Fprintf(&b, "Income:   %s\n\n", FormatAmount(insights.PeriodIncome(snap.Transactions, horizon, now)))

	fmt.Fprintf(&b, "Net income (%s):\n", insights.PeriodLabel(horizon, insights.KindIncome))

	for _, bar := range insights.NetIncomeBars(snap.Transactions, horizon, now) {
		fmt.Fprintf(&b, "  %-16s %s\n", bar.Period, FormatAmount(bar.NetIncome))
	}

	if len(snap.Budgets) > 0 {
		b.WriteString("\nBudgets:\n")

		for _, budget := range snap.Budgets {
			fmt.Fprintf(&b, "  %-16s %s / %s (%s%%) %s\n",
				budget.Category,
				FormatAmount(budget.SpentToDate),
				FormatAmount(budget.Monthly),
				insights.PercentUsed(budget).StringFixed(0),
				statusBadge(insights.StatusOf(budget)),
			)
		}
	}

	fmt.Fprintf(&b, "\nCash flow this ledger: income %s, spending %s, net %s\n",
		FormatAmount(snap.CashFlow.MonthIncome),
		FormatAmount(snap.CashFlow.MonthSpending),
		FormatAmount(snap.CashFlow.Net),
	)

	if len(snap.Subscriptions) > 0 {
		b.WriteString("\nSubscriptions:\n")

		for _, sub := range snap.Subscriptions {
			fmt.Fprintf(&b, "  %-16s %s/mo, renews %s\n",
				sub.Name, FormatAmount(sub.MonthlyCost), FormatDate(sub.RenewalDate))
		}
	}

	if recent := recentTransactions(snap.Transactions, 6); len(recent) > 0 {
		b.WriteString("\nRecent activity:\n")

		grouped := insights.GroupByRelativeDate(recent, now)

		printed := make(map[string]bool)

		for _, tx := range recent {
			label := insights.RelativeDateLabel(tx.Date, now)
			if printed[label] {
				continue
			}

			printed[label] = true

			fmt.Fprintf(&b, "  %s\n", label)

			for _, t := range grouped[label] {
				fmt.Fprintf(&b, "    %-16s %s\n", t.Merchant, FormatAmount(t.Amount))
			}
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func recentTransactions(txs []*ledger.Transaction, limit int) []*ledger.Transaction {
	recent := make([]*ledger.Transaction, len(txs))
	copy(recent, txs)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}

	return recent
}

func statusBadge(s insights.BudgetStatus) string {
	switch s {
	case insights.BudgetOver:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("OVER")
	case insights.BudgetWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("WARN")
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("76")).Render("OK")
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

type dashboardRefreshMsg struct {
	err error
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return dashboardRefreshMsg{err: m.controller.Refresh(ctx)}
	}
}
