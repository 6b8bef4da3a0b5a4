package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dualbank/backoffice/internal/analytics"
	"github.com/dualbank/backoffice/internal/cohort"
	cohortStore "github.com/dualbank/backoffice/internal/cohort/store"
	"github.com/dualbank/backoffice/internal/config"
	"github.com/dualbank/backoffice/internal/export"
	backofficeHttp "github.com/dualbank/backoffice/internal/http"
	"github.com/dualbank/backoffice/internal/http/auth"
	clientHandler "github.com/dualbank/backoffice/internal/http/client"
	cohortHandler "github.com/dualbank/backoffice/internal/http/cohort"
	exportHandler "github.com/dualbank/backoffice/internal/http/export"
	importHandler "github.com/dualbank/backoffice/internal/http/importcsv"
	loanHandler "github.com/dualbank/backoffice/internal/http/loan"
	txHandler "github.com/dualbank/backoffice/internal/http/transaction"
	"github.com/dualbank/backoffice/internal/importer"
	"github.com/dualbank/backoffice/internal/loan"
	loanStore "github.com/dualbank/backoffice/internal/loan/store"
	"github.com/dualbank/backoffice/internal/registry"
	registryStore "github.com/dualbank/backoffice/internal/registry/store"
	"github.com/dualbank/backoffice/internal/txlog"
	txStore "github.com/dualbank/backoffice/internal/txlog/store"
	"github.com/dualbank/backoffice/internal/workbook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.ValidateAuth(); err != nil {
		slog.Error("invalid auth config", "error", err)
		os.Exit(1)
	}

	wb, err := workbook.Open(cfg.WorkbookPath())
	if err != nil {
		slog.Error("failed to open workbook", "path", cfg.WorkbookPath(), "error", err)
		os.Exit(1)
	}

	var (
		registryService  = registry.NewService(registryStore.New(wb))
		txService        = txlog.NewService(txStore.New(wb))
		loanService      = loan.NewService(loanStore.New(wb))
		cohortService    = cohort.NewService(cohortStore.New(wb), registryService)
		analyticsService = analytics.NewService(workbook.NewCache(wb))
		importService    = importer.NewService()
		exportService    = export.NewService(wb)
		authService      = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.Username, cfg.Auth.Password)
	)

	var (
		authH   = auth.NewHandler(authService)
		clientH = clientHandler.NewHandler(registryService, analyticsService)
		txH     = txHandler.NewHandler(txService, analyticsService)
		loanH   = loanHandler.NewHandler(loanService)
		cohortH = cohortHandler.NewHandler(cohortService)
		importH = importHandler.NewHandler(importService, txService)
		exportH = exportHandler.NewHandler(exportService)
	)

	router := backofficeHttp.New(authService, authH, clientH, txH, loanH, cohortH, importH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "workbook", cfg.WorkbookPath())

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
