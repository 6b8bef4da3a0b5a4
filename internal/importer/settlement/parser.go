package settlement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/dualbank/backoffice/internal/encoding"
	"github.com/dualbank/backoffice/internal/registry"
	"github.com/dualbank/backoffice/internal/txlog"
)

// Parser reads acquirer settlement CSV exports and produces transaction
// params. It auto-detects which export format (vendas, liquidação, portal)
// is being used by matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]txlog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching settlement format found: expected columns for vendas, liquidação, or portal")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts transactions from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]txlog.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	taxIDIdx := cols[p.TaxIDCol]

	statusIdx := -1
	if p.StatusCol != "" {
		if i, ok := cols[p.StatusCol]; ok {
			statusIdx = i
		}
	}

	var txs []txlog.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		taxID := registry.NormalizeTaxID(cellValue(row, taxIDIdx))
		if taxID == "" {
			return nil, fmt.Errorf("row %d: missing tax id", rowNum)
		}

		amount, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		txs = append(txs, txlog.CreateParams{
			TaxID:  taxID,
			Date:   date,
			Amount: amount,
			Status: parseStatus(row, statusIdx),
		})
	}

	return txs, nil
}

// parseDate tries to parse a date from the given cell index. Returns false
// for empty cells or unparseable values (footer rows, totals).
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02/01/2006", "02-01-2006", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount extracts the settled amount from a row based on the profile's
// amount mode. Zero and negative settlements are skipped.
func parseAmount(p *Profile, cols colIndex, row []string) (float64, bool) {
	switch p.AmountMode {
	case amountNet:
		v, err := parseBrazilianAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil || v <= 0 {
			return 0, false
		}

		return v, true
	case amountGrossFee:
		gross, err := parseBrazilianAmount(cellValue(row, cols[p.GrossCol]))
		if err != nil {
			return 0, false
		}

		fee, err := parseBrazilianAmount(cellValue(row, cols[p.FeeCol]))
		if err != nil {
			return 0, false
		}

		net := gross - fee
		if net <= 0 {
			return 0, false
		}

		return net, true
	}

	return 0, false
}

// parseStatus maps the acquirer's status vocabulary onto ours. Unknown or
// absent statuses import as processed.
func parseStatus(row []string, idx int) string {
	if idx < 0 {
		return txlog.StatusProcessed
	}

	switch strings.ToLower(cellValue(row, idx)) {
	case "pendente", "agendada":
		return txlog.StatusPending
	case "estornada", "cancelada":
		return txlog.StatusReversed
	default:
		return txlog.StatusProcessed
	}
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
