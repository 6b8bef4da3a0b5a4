package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dualbank/backoffice/internal/loan"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
)

type LedgerModel struct {
	CommonModel
	loanService *loan.Service

	state ledgerState
	table table.Model
	loans []*loan.Loan
	form  *huh.Form

	// Rows marked with space for the next delete.
	selected map[int]bool

	loading bool
	err     error
	status  string

	// Form bindings. huh works on strings; numbers are parsed on save.
	formDate        string
	formAgent       string
	formBeneficiary string
	formPixKey      string
	formTransacted  string
	formReleased    string
	formInstall     string
	formAgentPct    string
	formInterest    string
	formExtra       string
}

func NewLedgerModel(loanSvc *loan.Service) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Beneficiary", Width: 24},
		{Title: "Agent", Width: 14},
		{Title: "Transacted", Width: 12},
		{Title: "Released", Width: 12},
		{Title: "Commission", Width: 12},
		{Title: "Net", Width: 12},
		{Title: "Sel", Width: 4},
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
		loanService: loanSvc,
		table:       t,
		selected:    make(map[int]bool),
	}
}

func (m LedgerModel) Title() string { return "Loan Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | space: mark | x: delete marked | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadLoansCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.loans = msg.loans
		m.selected = make(map[int]bool)
		m.refreshTable()

		return m, nil

	case ledgerSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Row appended."
		}

		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadLoansCmd()

	case ledgerDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Deleted %d rows.", msg.deleted)

		return m, m.loadLoansCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadLoansCmd()
		case "a":
			return m.enterAddMode()
		case " ":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.loans) {
				m.selected[idx] = !m.selected[idx]
				m.refreshTable()
			}

			return m, nil
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formDate = time.Now().Format("2006-01-02")
	m.formAgent = ""
	m.formBeneficiary = ""
	m.formPixKey = ""
	m.formTransacted = ""
	m.formReleased = ""
	m.formInstall = "1"
	m.formAgentPct = "0"
	m.formInterest = "0"
	m.formExtra = "0"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("beneficiary").
				Title("Beneficiary").
				Value(&m.formBeneficiary).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("beneficiary cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("agent").
				Title("Agent").
				Value(&m.formAgent),

			huh.NewInput().
				Key("pix_key").
				Title("Pix Key").
				Value(&m.formPixKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("transacted").
				Title("Transacted Amount").
				Value(&m.formTransacted).
				Validate(validateAmount),

			huh.NewInput().
				Key("released").
				Title("Released Amount").
				Value(&m.formReleased).
				Validate(validateAmount),

			huh.NewInput().
				Key("installments").
				Title("Installments").
				Value(&m.formInstall),

			huh.NewInput().
				Key("agent_percent").
				Title("Agent %").
				Value(&m.formAgentPct),

			huh.NewInput().
				Key("interest").
				Title("Interest Fee").
				Value(&m.formInterest),

			huh.NewInput().
				Key("extra").
				Title("Agent Extra").
				Value(&m.formExtra),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}

	if v < 0 {
		return fmt.Errorf("must not be negative")
	}

	return nil
}

func (m LedgerModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == ledgerStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Ledger Row\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.loans))

	for i, l := range m.loans {
		mark := ""
		if m.selected[i] {
			mark = "x"
		}

		rows = append(rows, table.Row{
			FormatDate(l.Date),
			l.Beneficiary,
			l.Agent,
			FormatAmount(l.TransactedAmount),
			FormatAmount(l.ReleasedAmount),
			FormatAmount(l.Commission),
			FormatAmount(l.NetAmount),
			mark,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type ledgerLoadMsg struct {
	loans []*loan.Loan
	err   error
}

func (m LedgerModel) loadLoansCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		loans, err := m.loanService.List(ctx, loan.ListFilter{})

		return ledgerLoadMsg{loans: loans, err: err}
	}
}

type ledgerSaveMsg struct {
	err error
}

func (m LedgerModel) saveCmd() tea.Cmd {
	date, _ := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	transacted, _ := strconv.ParseFloat(strings.TrimSpace(m.formTransacted), 64)
	released, _ := strconv.ParseFloat(strings.TrimSpace(m.formReleased), 64)
	installments, _ := strconv.Atoi(strings.TrimSpace(m.formInstall))
	agentPct, _ := strconv.ParseFloat(strings.TrimSpace(m.formAgentPct), 64)
	interest, _ := strconv.ParseFloat(strings.TrimSpace(m.formInterest), 64)
	extra, _ := strconv.ParseFloat(strings.TrimSpace(m.formExtra), 64)

	params := loan.CreateParams{
		Date:             date,
		Agent:            m.formAgent,
		Beneficiary:      m.formBeneficiary,
		PixKey:           m.formPixKey,
		TransactedAmount: transacted,
		ReleasedAmount:   released,
		Installments:     installments,
		AgentPercent:     agentPct,
		InterestFee:      interest,
		AgentExtra:       extra,
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.loanService.Append(ctx, params)

		return ledgerSaveMsg{err: err}
	}
}

type ledgerDeleteMsg struct {
	deleted int
	err     error
}

// deleteCmd removes the marked rows. With nothing marked the service reports
// the empty selection and the table is left untouched.
func (m LedgerModel) deleteCmd() tea.Cmd {
	var rowIDs []string

	for i, l := range m.loans {
		if m.selected[i] {
			rowIDs = append(rowIDs, l.RowID)
		}
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		deleted, err := m.loanService.Delete(ctx, rowIDs)

		return ledgerDeleteMsg{deleted: deleted, err: err}
	}
}
