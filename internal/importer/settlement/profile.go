package settlement

// amountMode determines how the settled amount is extracted from a row.
type amountMode int

const (
	// amountNet means one column already carrying the settled value.
	amountNet amountMode = iota
	// amountGrossFee means gross and fee columns; the settled value is gross
	// minus fee.
	amountGrossFee
)

// Profile describes the column layout of one acquirer export format.
// Supporting a new acquirer is just adding a Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	TaxIDCol   string
	StatusCol  string // optional; empty means every row imports as processed
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountNet
	GrossCol   string // used when AmountMode == amountGrossFee
	FeeCol     string // used when AmountMode == amountGrossFee
}

// requiredCols returns the column names that must be present for this profile
// to match. The status column is advisory and never required.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.TaxIDCol}

	switch p.AmountMode {
	case amountNet:
		cols = append(cols, p.AmountCol)
	case amountGrossFee:
		cols = append(cols, p.GrossCol, p.FeeCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "vendas",
		DateCol:    "Data da venda",
		TaxIDCol:   "CPF/CNPJ",
		StatusCol:  "Status",
		AmountMode: amountGrossFee,
		GrossCol:   "Valor bruto",
		FeeCol:     "Taxa",
	},
	{
		Name:       "liquidação",
		DateCol:    "Data de pagamento",
		TaxIDCol:   "CPF/CNPJ",
		StatusCol:  "Status",
		AmountMode: amountNet,
		AmountCol:  "Valor líquido",
	},
	{
		Name:       "portal",
		DateCol:    "Data",
		TaxIDCol:   "CNPJ",
		AmountMode: amountNet,
		AmountCol:  "Valor",
	},
}
