package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mlowther/centsy/cmd/tui/internal/view"
	"github.com/mlowther/centsy/internal/appstate"
	"github.com/mlowther/centsy/internal/budget"
	budgetStore "github.com/mlowther/centsy/internal/budget/store"
	"github.com/mlowther/centsy/internal/config"
	"github.com/mlowther/centsy/internal/database"
	"github.com/mlowther/centsy/internal/income"
	incomeStore "github.com/mlowther/centsy/internal/income/store"
	"github.com/mlowther/centsy/internal/ledger"
	ledgerStore "github.com/mlowther/centsy/internal/ledger/store"
	"github.com/mlowther/centsy/internal/school"
	schoolStore "github.com/mlowther/centsy/internal/school/store"
)

type model struct {
	controller *appstate.Controller

	currentView View

	dashboardView view.DashboardModel
	ledgerView    view.LedgerModel
	reviewView    view.ReviewModel
	schoolView    view.SchoolModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewLedger    View = 2
	ViewReview    View = 3
	ViewSchool    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ownerID, err := uuid.Parse(cfg.App.OwnerID)
	if err != nil {
		slog.Error("invalid owner id", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	schoolSvc := school.NewService(schoolStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db), schoolSvc)
	budgetSvc := budget.NewService(budgetStore.New(db))
	incomeSvc := income.NewService(incomeStore.New(db))

	controller := appstate.New(ownerID, ledgerSvc, budgetSvc, incomeSvc, schoolSvc)

	return model{
		controller:    controller,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(controller),
		ledgerView:    view.NewLedgerModel(controller),
		reviewView:    view.NewReviewModel(controller),
		schoolView:    view.NewSchoolModel(controller),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.controller)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.controller)

				return m, m.ledgerView.Init()
			case "3":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.controller)

				return m, m.reviewView.Init()
			case "4":
				m.currentView = ViewSchool
				m.schoolView = view.NewSchoolModel(m.controller)

				return m, m.schoolView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewSchool:
		var newModel tea.Model
		newModel, cmd = m.schoolView.Update(msg)
		m.schoolView = newModel.(view.SchoolModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Centsy TUI\n\n" +
				"1. Dashboard\n" +
				"2. Ledger\n" +
				"3. Review Queue\n" +
				"4. School Plan\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewReview:
		return m.reviewView.View()
	case ViewSchool:
		return m.schoolView.View()
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
