package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mlowther/centsy/internal/budget"
	budgetStore "github.com/mlowther/centsy/internal/budget/store"
	"github.com/mlowther/centsy/internal/coach"
	coachStore "github.com/mlowther/centsy/internal/coach/store"
	"github.com/mlowther/centsy/internal/config"
	"github.com/mlowther/centsy/internal/database"
	centsyHttp "github.com/mlowther/centsy/internal/http"
	budgetHandler "github.com/mlowther/centsy/internal/http/budget"
	coachHandler "github.com/mlowther/centsy/internal/http/coach"
	importHandler "github.com/mlowther/centsy/internal/http/importcsv"
	incomeHandler "github.com/mlowther/centsy/internal/http/income"
	insightsHandler "github.com/mlowther/centsy/internal/http/insights"
	schoolHandler "github.com/mlowther/centsy/internal/http/school"
	txHandler "github.com/mlowther/centsy/internal/http/transaction"
	"github.com/mlowther/centsy/internal/importer"
	"github.com/mlowther/centsy/internal/income"
	incomeStore "github.com/mlowther/centsy/internal/income/store"
	"github.com/mlowther/centsy/internal/ledger"
	ledgerStore "github.com/mlowther/centsy/internal/ledger/store"
	"github.com/mlowther/centsy/internal/school"
	schoolStore "github.com/mlowther/centsy/internal/school/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		schoolService = school.NewService(schoolStore.New(db))
		ledgerService = ledger.NewService(ledgerStore.New(db), schoolService)
		budgetService = budget.NewService(budgetStore.New(db))
		incomeService = income.NewService(incomeStore.New(db))
		csvParser     = importer.New()
	)

	gemini, err := coach.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	coachService := coach.NewService(coachStore.New(db), gemini, coachData{
		ledger: ledgerService,
		income: incomeService,
		school: schoolService,
	})

	var (
		transactionH = txHandler.NewHandler(ledgerService)
		insightsH    = insightsHandler.NewHandler(ledgerService, schoolService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		incomeH      = incomeHandler.NewHandler(incomeService)
		schoolH      = schoolHandler.NewHandler(schoolService)
		coachH       = coachHandler.NewHandler(coachService)
		importH      = importHandler.NewHandler(csvParser, ledgerService)
	)

	router := centsyHttp.New(cfg.Auth.JWTSecret,
		transactionH, insightsH, budgetH, incomeH, schoolH, coachH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
