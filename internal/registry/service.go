package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=registry
type Repository interface {
	ListClients(ctx context.Context) ([]*Client, error)
	GetClient(ctx context.Context, taxID string) (*Client, error)
	CreateClient(ctx context.Context, c *Client) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Name           string
	TaxID          string
	RegisteredAt   time.Time
	ApprovedAt     time.Time
	ContactName    string
	ContactPhone   string
	ContactTaxID   string
	Representative string
	PortalStatus   string
	AcquirerStatus string
	SubStatus      string
	AcquirerEmail  string
	Plan           string
}

// Register validates and appends a new client. The tax ID is stored
// digits-only; a second registration under the same tax ID is rejected.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Client, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("establishment name is required")
	}

	taxID := NormalizeTaxID(params.TaxID)
	if taxID == "" {
		return nil, fmt.Errorf("tax id is required")
	}

	if _, err := s.repo.GetClient(ctx, taxID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, taxID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	registeredAt := params.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now()
	}

	client := &Client{
		RegisteredAt:   registeredAt,
		ApprovedAt:     params.ApprovedAt,
		Name:           name,
		TaxID:          taxID,
		ContactName:    strings.TrimSpace(params.ContactName),
		ContactPhone:   strings.TrimSpace(params.ContactPhone),
		ContactTaxID:   NormalizeTaxID(params.ContactTaxID),
		Representative: strings.TrimSpace(params.Representative),
		PortalStatus:   params.PortalStatus,
		AcquirerStatus: params.AcquirerStatus,
		SubStatus:      params.SubStatus,
		AcquirerEmail:  strings.TrimSpace(params.AcquirerEmail),
		Plan:           params.Plan,
		Status:         "ACTIVE",
		Revenue:        map[string]float64{},
	}

	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// List returns every client, optionally filtered by a case-insensitive name
// substring.
func (s *Service) List(ctx context.Context, nameFilter string) ([]*Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	if nameFilter == "" {
		return clients, nil
	}

	needle := strings.ToLower(nameFilter)

	var filtered []*Client

	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

// Get looks a client up by tax ID, normalizing the input first.
func (s *Service) Get(ctx context.Context, taxID string) (*Client, error) {
	return s.repo.GetClient(ctx, NormalizeTaxID(taxID))
}
