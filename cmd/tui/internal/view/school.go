package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/appstate"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

type schoolState int

const (
	schoolStateShow schoolState = iota
	schoolStateEdit
)

type SchoolModel struct {
	CommonModel
	controller *appstate.Controller

	state   schoolState
	form    *huh.Form
	loading bool
	err     error
	status  string

	// Form bindings
	formBalance   string
	formSwipes    string
	formTermStart string
	formTermEnd   string
}

func NewSchoolModel(controller *appstate.Controller) SchoolModel {
	return SchoolModel{controller: controller, loading: true}
}

func (m SchoolModel) Title() string { return "School Plan" }
func (m SchoolModel) ShortHelp() string {
	if m.state == schoolStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit plan | r: refresh"
}

func (m SchoolModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m SchoolModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schoolRefreshMsg:
		m.loading = false
		m.err = msg.err

		return m, nil

	case schoolSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}

		m.state = schoolStateShow
		m.form = nil

		return m, m.refreshCmd()

	case tea.KeyMsg:
		if m.state == schoolStateEdit {
			return m.updateEdit(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.refreshCmd()
		case "e":
			return m.enterEditMode()
		}
	}

	if m.state == schoolStateEdit && m.form != nil {
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m SchoolModel) enterEditMode() (tea.Model, tea.Cmd) {
	plan := m.controller.Snapshot().Plan

	m.formBalance = plan.FlexDollarsBalance.String()
	m.formSwipes = strconv.Itoa(plan.MealSwipesRemaining)
	m.formTermStart = ""
	m.formTermEnd = ""

	if !plan.TermStart.IsZero() {
		m.formTermStart = FormatDate(plan.TermStart)
	}

	if !plan.TermEnd.IsZero() {
		m.formTermEnd = FormatDate(plan.TermEnd)
	}

	dateValidator := func(s string) error {
		_, err := time.Parse(time.DateOnly, s)
		return err
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("balance").
				Title("Flex Dollars Balance").
				Value(&m.formBalance).
				Validate(func(s string) error {
					_, err := decimal.NewFromString(s)
					return err
				}),

			huh.NewInput().
				Key("swipes").
				Title("Meal Swipes Remaining").
				Value(&m.formSwipes).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),

			huh.NewInput().
				Key("term_start").
				Title("Term Start").
				Placeholder("YYYY-MM-DD").
				Value(&m.formTermStart).
				Validate(dateValidator),

			huh.NewInput().
				Key("term_end").
				Title("Term End").
				Placeholder("YYYY-MM-DD").
				Value(&m.formTermEnd).
				Validate(dateValidator),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = schoolStateEdit

	return m, m.form.Init()
}

func (m SchoolModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = schoolStateShow
			m.form = nil

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

func (m SchoolModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading school plan...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	snap := m.controller.Snapshot()
	plan := snap.Plan
	now := time.Now()

	var b strings.Builder

	if plan.TermEnd.IsZero() {
		b.WriteString("No school plan set up yet.\n")
	} else {
		fmt.Fprintf(&b, "Flex Dollars:  %s\n", FormatAmount(plan.FlexDollarsBalance))
		fmt.Fprintf(&b, "Meal Swipes:   %d\n", plan.MealSwipesRemaining)
		fmt.Fprintf(&b, "Term:          %s to %s\n", FormatDate(plan.TermStart), FormatDate(plan.TermEnd))

		burn := plan.AvgDailyBurn
		if burn.IsZero() {
			burn = insights.BurnRate(plan.FlexDollarsBalance, plan.TermStart, plan.TermEnd, now)
		}

		fmt.Fprintf(&b, "Daily Burn:    %s/day\n", FormatAmount(burn))

		if trend := insights.FlexTrendLine(plan.FlexDollarsBalance, now, burn); len(trend) > 0 {
			fmt.Fprintf(&b, "Runs out:      %s\n", FormatDate(trend[len(trend)-1].Date))
		}

		flexTxs := insights.FilterByPaymentMethod(snap.Transactions, ledger.PaymentFlex)
		history := insights.FlexBalanceHistory(plan.FlexDollarsBalance, plan.TermStart, flexTxs, now)

		if len(history) > 0 {
			b.WriteString("\nBalance history:\n")

			start := 0
			if len(history) > 8 {
				start = len(history) - 8
			}

			for _, p := range history[start:] {
				fmt.Fprintf(&b, "  %s  %s\n", FormatDate(p.Date), FormatAmount(p.Balance))
			}
		}
	}

	content := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(b.String())

	if m.state == schoolStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit School Plan\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type schoolRefreshMsg struct {
	err error
}

func (m SchoolModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return schoolRefreshMsg{err: m.controller.Refresh(ctx)}
	}
}

type schoolSaveMsg struct {
	err error
}

func (m SchoolModel) saveCmd() tea.Cmd {
	balance, _ := decimal.NewFromString(m.formBalance)
	swipes, _ := strconv.Atoi(m.formSwipes)
	termStart, _ := time.Parse(time.DateOnly, m.formTermStart)
	termEnd, _ := time.Parse(time.DateOnly, m.formTermEnd)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.controller.SetPlan(ctx, school.Plan{
			FlexDollarsBalance:  balance,
			MealSwipesRemaining: swipes,
			TermStart:           termStart,
			TermEnd:             termEnd,
			AvgDailyBurn:        insights.BurnRate(balance, termStart, termEnd, time.Now()),
		})

		return schoolSaveMsg{err: err}
	}
}
