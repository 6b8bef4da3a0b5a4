package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dualbank/backoffice/internal/loan"
)

// SummaryModel shows the period rollup of the loan ledger: the totals panel
// and the per-agent breakdown. The timeframe cycles whole-period, this month,
// last month.
type SummaryModel struct {
	CommonModel
	loanService *loan.Service

	timeframeIdx int
	summary      *loan.Summary
	agents       []*loan.AgentTotals

	loading bool
	err     error
}

func NewSummaryModel(loanSvc *loan.Service) SummaryModel {
	return SummaryModel{loanService: loanSvc}
}

func (m SummaryModel) Title() string     { return "Loan Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | t: timeframe | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.summary = msg.summary
		m.agents = msg.agents

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			m.timeframeIdx = (m.timeframeIdx + 1) % 3
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("No data.")
	}

	timeframes := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf("Timeframe: [t] %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(timeframes[m.timeframeIdx]))

	panelStyle := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	totals := panelStyle.Render(strings.Join([]string{
		"Totals",
		"",
		fmt.Sprintf("Rows:             %d", m.summary.Count),
		fmt.Sprintf("Transacted:       %s", FormatAmount(m.summary.Transacted)),
		fmt.Sprintf("Released:         %s", FormatAmount(m.summary.Released)),
		fmt.Sprintf("Interest:         %s", FormatAmount(m.summary.Interest)),
		fmt.Sprintf("Commission:       %s", FormatAmount(m.summary.Commission)),
		fmt.Sprintf("Agent Extra:      %s", FormatAmount(m.summary.AgentExtra)),
		fmt.Sprintf("Net:              %s", FormatAmount(m.summary.Net)),
		fmt.Sprintf("Invoice Estimate: %s", FormatAmount(m.summary.InvoiceEstimate)),
	}, "\n"))

	agentLines := []string{"By Agent", ""}
	for _, a := range m.agents {
		agentLines = append(agentLines, fmt.Sprintf("%-16s %3d rows  commission %s  extra %s",
			a.Agent, a.Count, FormatAmount(a.Commission), FormatAmount(a.AgentExtra)))
	}

	if len(m.agents) == 0 {
		agentLines = append(agentLines, "No ledger rows in this period.")
	}

	agents := panelStyle.Render(strings.Join(agentLines, "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, totals, " ", agents),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m SummaryModel) filter() loan.ListFilter {
	var filter loan.ListFilter

	now := time.Now()

	switch m.timeframeIdx {
	case 1:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.StartDate = &s
		filter.EndDate = &e
	case 2:
		s := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.StartDate = &s
		filter.EndDate = &e
	}

	return filter
}

// Messages

type summaryLoadMsg struct {
	summary *loan.Summary
	agents  []*loan.AgentTotals
	err     error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		summary, err := m.loanService.Summarize(ctx, filter)
		if err != nil {
			return summaryLoadMsg{err: err}
		}

		agents, err := m.loanService.ByAgent(ctx, filter)
		if err != nil {
			return summaryLoadMsg{err: err}
		}

		return summaryLoadMsg{summary: summary, agents: agents}
	}
}
