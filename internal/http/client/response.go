package client

import (
	"time"

	"github.com/dualbank/backoffice/internal/registry"
)

type clientResponse struct {
	RowID          string             `json:"row_id"`
	Name           string             `json:"name"`
	TaxID          string             `json:"tax_id"`
	RegisteredAt   time.Time          `json:"registered_at"`
	ApprovedAt     *time.Time         `json:"approved_at,omitempty"`
	ContactName    string             `json:"contact_name,omitempty"`
	ContactPhone   string             `json:"contact_phone,omitempty"`
	ContactTaxID   string             `json:"contact_tax_id,omitempty"`
	Representative string             `json:"representative,omitempty"`
	PortalStatus   string             `json:"portal_status,omitempty"`
	AcquirerStatus string             `json:"acquirer_status,omitempty"`
	SubStatus      string             `json:"sub_status,omitempty"`
	AcquirerEmail  string             `json:"acquirer_email,omitempty"`
	Plan           string             `json:"plan,omitempty"`
	Status         string             `json:"status"`
	Revenue        map[string]float64 `json:"revenue"`
}

func toResponse(c *registry.Client) clientResponse {
	resp := clientResponse{
		RowID:          c.RowID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		RegisteredAt:   c.RegisteredAt,
		ContactName:    c.ContactName,
		ContactPhone:   c.ContactPhone,
		ContactTaxID:   c.ContactTaxID,
		Representative: c.Representative,
		PortalStatus:   c.PortalStatus,
		AcquirerStatus: c.AcquirerStatus,
		SubStatus:      c.SubStatus,
		AcquirerEmail:  c.AcquirerEmail,
		Plan:           c.Plan,
		Status:         c.Status,
		Revenue:        c.Revenue,
	}

	if !c.ApprovedAt.IsZero() {
		approved := c.ApprovedAt
		resp.ApprovedAt = &approved
	}

	return resp
}

func toResponseList(clients []*registry.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
