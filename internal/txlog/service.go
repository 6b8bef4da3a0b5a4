package txlog

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=txlog
type Repository interface {
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	ListWeekly(ctx context.Context) ([]*WeeklyEntry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	TaxID     string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateParams struct {
	TaxID  string
	Date   time.Time
	Amount float64
	Status string
}

func (p CreateParams) validate() error {
	if p.TaxID == "" {
		return fmt.Errorf("tax id is required")
	}

	if p.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	return nil
}

// Append validates and persists exactly one transaction row.
func (s *Service) Append(ctx context.Context, params CreateParams) (*Transaction, error) {
	txs, err := s.AppendBatch(ctx, []CreateParams{params})
	if err != nil {
		return nil, err
	}

	return txs[0], nil
}

// AppendBatch validates every row before any write, so a bad record in a
// statement import never leaves a partial batch behind.
func (s *Service) AppendBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}

		status := p.Status
		if status == "" {
			status = StatusProcessed
		}

		txs[i] = &Transaction{
			TaxID:  p.TaxID,
			Date:   p.Date,
			Amount: p.Amount,
			Status: status,
		}
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) ListWeekly(ctx context.Context) ([]*WeeklyEntry, error) {
	return s.repo.ListWeekly(ctx)
}
