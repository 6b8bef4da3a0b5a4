package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dualbank/backoffice/cmd/tui/internal/view"
	"github.com/dualbank/backoffice/internal/config"
	"github.com/dualbank/backoffice/internal/importer"
	"github.com/dualbank/backoffice/internal/loan"
	loanStore "github.com/dualbank/backoffice/internal/loan/store"
	"github.com/dualbank/backoffice/internal/txlog"
	txStore "github.com/dualbank/backoffice/internal/txlog/store"
	"github.com/dualbank/backoffice/internal/workbook"
)

type model struct {
	loanService   *loan.Service
	txService     *txlog.Service
	importService *importer.Service

	currentView View

	ledgerView  view.LedgerModel
	summaryView view.SummaryModel
	importView  view.ImportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewLedger  View = 1
	ViewSummary View = 2
	ViewImport  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	wb, err := workbook.Open(cfg.WorkbookPath())
	if err != nil {
		slog.Error("failed to open workbook", "path", cfg.WorkbookPath(), "error", err)
		os.Exit(1)
	}

	loanSvc := loan.NewService(loanStore.New(wb))
	txSvc := txlog.NewService(txStore.New(wb))
	impSvc := importer.NewService()

	return model{
		loanService:   loanSvc,
		txService:     txSvc,
		importService: impSvc,
		currentView:   ViewMenu,
		ledgerView:    view.NewLedgerModel(loanSvc),
		summaryView:   view.NewSummaryModel(loanSvc),
		importView:    view.NewImportModel(txSvc, impSvc),
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
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.loanService)

				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.loanService)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Backoffice TUI\n\n" +
				"1. Loan Ledger\n" +
				"2. Loan Summary\n" +
				"3. Import Settlements\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return m.ledgerView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewImport:
		return m.importView.View()
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
