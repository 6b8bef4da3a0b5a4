package cohort

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
)

//go:generate mockgen -source=service.go -destination=mocks_test.go -package=cohort_test
type Repository interface {
	ListRecords(ctx context.Context) ([]*Record, error)
	GetRecord(ctx context.Context, taxID string) (*Record, error)
	CreateRecord(ctx context.Context, rec *Record) error
	// SaveObservation persists the cohort record and the matching transaction
	// log row in a single workbook write.
	SaveObservation(ctx context.Context, rec *Record, tx *txlog.Transaction) error
	DeleteRecord(ctx context.Context, taxID string) error
}

// ClientDirectory is the slice of the registry the tracker needs: enrollment
// requires the client to already exist there.
type ClientDirectory interface {
	Get(ctx context.Context, taxID string) (*registry.Client, error)
}

type Service struct {
	repo    Repository
	clients ClientDirectory
	now     func() time.Time
}

func NewService(repo Repository, clients ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients, now: time.Now}
}

// Enroll starts tracking a registered client. The enrollment date is taken
// from the master registry, not from the caller.
func (s *Service) Enroll(ctx context.Context, taxID string) (*Record, error) {
	taxID = registry.NormalizeTaxID(taxID)

	client, err := s.clients.Get(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("looking up client: %w", err)
	}

	if _, err := s.repo.GetRecord(ctx, taxID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyEnrolled, taxID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rec := &Record{
		TaxID:        taxID,
		EnrolledAt:   client.RegisteredAt,
		Observations: map[string]float64{},
		Frequency:    FrequencyDaily,
	}

	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

type TransactionParams struct {
	TaxID     string
	Amount    float64
	Frequency string
}

// RecordTransaction logs today's transaction for an enrolled client:
// the observation map gains today's amount, the running average is
// recomputed, and a processed row lands in the transactions log — all in one
// workbook write. A client transacting before explicit enrollment is
// enrolled implicitly, as the original intake flow allowed.
func (s *Service) RecordTransaction(ctx context.Context, params TransactionParams) (*Record, error) {
	taxID := registry.NormalizeTaxID(params.TaxID)

	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	client, err := s.clients.Get(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("looking up client: %w", err)
	}

	rec, err := s.repo.GetRecord(ctx, taxID)

	switch {
	case errors.Is(err, ErrNotFound):
		rec = &Record{
			TaxID:        taxID,
			EnrolledAt:   client.RegisteredAt,
			Observations: map[string]float64{},
			Frequency:    FrequencyDaily,
		}
	case err != nil:
		return nil, err
	}

	if params.Frequency != "" {
		rec.Frequency = params.Frequency
	}

	today := s.now()
	rec.Observe(today, params.Amount)

	tx := &txlog.Transaction{
		TaxID:  taxID,
		Date:   today,
		Amount: params.Amount,
		Status: txlog.StatusProcessed,
	}

	if err := s.repo.SaveObservation(ctx, rec, tx); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.ListRecords(ctx)
}

func (s *Service) Get(ctx context.Context, taxID string) (*Record, error) {
	return s.repo.GetRecord(ctx, registry.NormalizeTaxID(taxID))
}

// Remove stops tracking a client. Removal is always explicit; no transition
// of RecordTransaction ever deletes a record.
func (s *Service) Remove(ctx context.Context, taxID string) error {
	return s.repo.DeleteRecord(ctx, registry.NormalizeTaxID(taxID))
}
