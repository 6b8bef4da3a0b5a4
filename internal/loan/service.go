package loan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
	CreateLoan(ctx context.Context, l *Loan) error
	DeleteLoans(ctx context.Context, rowIDs []string) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Agent     string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateParams struct {
	Date             time.Time
	Agent            string
	Beneficiary      string
	PixKey           string
	TransactedAmount float64
	ReleasedAmount   float64
	Installments     int
	AgentPercent     float64
	InterestFee      float64
	AgentExtra       float64
}

// Append derives the financial fields server-side from the base inputs and
// persists exactly one ledger row. Derived values supplied by a caller are
// never trusted; they are not even accepted.
func (s *Service) Append(ctx context.Context, params CreateParams) (*Loan, error) {
	if strings.TrimSpace(params.Beneficiary) == "" {
		return nil, fmt.Errorf("beneficiary is required")
	}

	if params.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	if params.TransactedAmount < 0 || params.ReleasedAmount < 0 {
		return nil, fmt.Errorf("amounts must not be negative")
	}

	l := &Loan{
		Date:             params.Date,
		Agent:            strings.TrimSpace(params.Agent),
		Beneficiary:      strings.TrimSpace(params.Beneficiary),
		PixKey:           strings.TrimSpace(params.PixKey),
		TransactedAmount: params.TransactedAmount,
		ReleasedAmount:   params.ReleasedAmount,
		Installments:     params.Installments,
		AgentPercent:     params.AgentPercent,
		InterestFee:      params.InterestFee,
		AgentExtra:       params.AgentExtra,
	}
	l.Recompute()

	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Delete removes the rows with the given stable identifiers. The caller must
// resolve visible table indices to row IDs before calling; an empty
// selection is a reported no-op, not a success.
func (s *Service) Delete(ctx context.Context, rowIDs []string) (int, error) {
	ids := rowIDs[:0:0]

	for _, id := range rowIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return 0, ErrNoSelection
	}

	return s.repo.DeleteLoans(ctx, ids)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	return s.repo.ListLoans(ctx, filter)
}

// Summary is the period report shown under the ledger table.
type Summary struct {
	Transacted      float64 `json:"transacted"`
	Released        float64 `json:"released"`
	Interest        float64 `json:"interest"`
	Commission      float64 `json:"commission"`
	AgentExtra      float64 `json:"agent_extra"`
	Net             float64 `json:"net"`
	InvoiceEstimate float64 `json:"invoice_estimate"`
	Count           int     `json:"count"`
}

func (s *Service) Summarize(ctx context.Context, filter ListFilter) (*Summary, error) {
	loans, err := s.repo.ListLoans(ctx, filter)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Count: len(loans)}

	for _, l := range loans {
		sum.Transacted += l.TransactedAmount
		sum.Released += l.ReleasedAmount
		sum.Interest += l.InterestFee
		sum.Commission += l.Commission
		sum.AgentExtra += l.AgentExtra
		sum.Net += l.NetAmount
		sum.InvoiceEstimate += l.InvoiceEstimate
	}

	return sum, nil
}

// AgentTotals is the per-agent rollup of the ledger.
type AgentTotals struct {
	Agent      string  `json:"agent"`
	Transacted float64 `json:"transacted"`
	Released   float64 `json:"released"`
	Commission float64 `json:"commission"`
	AgentExtra float64 `json:"agent_extra"`
	Count      int     `json:"count"`
}

// unassignedAgent labels ledger rows whose agent cell was left blank.
const unassignedAgent = "unassigned"

func (s *Service) ByAgent(ctx context.Context, filter ListFilter) ([]*AgentTotals, error) {
	loans, err := s.repo.ListLoans(ctx, filter)
	if err != nil {
		return nil, err
	}

	byAgent := make(map[string]*AgentTotals)

	for _, l := range loans {
		agent := l.Agent
		if agent == "" {
			agent = unassignedAgent
		}

		t, ok := byAgent[agent]
		if !ok {
			t = &AgentTotals{Agent: agent}
			byAgent[agent] = t
		}

		t.Transacted += l.TransactedAmount
		t.Released += l.ReleasedAmount
		t.Commission += l.Commission
		t.AgentExtra += l.AgentExtra
		t.Count++
	}

	totals := make([]*AgentTotals, 0, len(byAgent))
	for _, t := range byAgent {
		totals = append(totals, t)
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].Agent < totals[j].Agent })

	return totals, nil
}
