// Package registry manages the master client/establishment sheet.
package registry

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("client not found")
	ErrDuplicate = errors.New("client already registered")
)

// Client is one establishment in the master registry. Monthly revenue is
// kept wide, one figure per revenue column, exactly as the sheet stores it.
type Client struct {
	RowID          string
	RegisteredAt   time.Time
	ApprovedAt     time.Time
	Name           string
	TaxID          string
	ContactName    string
	ContactPhone   string
	ContactTaxID   string
	Representative string
	PortalStatus   string
	AcquirerStatus string
	SubStatus      string
	AcquirerEmail  string
	Plan           string
	Status         string
	Revenue        map[string]float64
}

// NormalizeTaxID strips everything but digits so "12.345.678/0001-90" and a
// hand-typed digit string compare equal. A float artifact suffix like
// "12345678900.0" is also cut off.
func NormalizeTaxID(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".0")

	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
