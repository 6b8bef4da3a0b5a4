package settlement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseBrazilianAmount parses a Brazilian-formatted amount string.
// Format examples: "R$ 1.234,56" -> 1234.56, "-588,74" -> -588.74.
func parseBrazilianAmount(s string) (float64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(2).InexactFloat64(), nil
}
