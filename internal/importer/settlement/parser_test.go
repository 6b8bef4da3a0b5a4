package settlement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/dualbank/backoffice/internal/importer/settlement"
	"github.com/dualbank/backoffice/internal/txlog"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Liquidacao(t *testing.T) {
	csv := `Relatório de liquidação - 28/02/2026
Adquirente;PagQueSim

Data de pagamento;CPF/CNPJ;Valor líquido;Status
02/02/2026;12.345.678/0001-90;1.234,56;Aprovada
03/02/2026;98.765.432/0001-10;588,74;Pendente
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2026, 2, 2), txs[0].Date)
	assert.Equal(t, "12345678000190", txs[0].TaxID)
	assert.Equal(t, 1234.56, txs[0].Amount)
	assert.Equal(t, txlog.StatusProcessed, txs[0].Status)

	assert.Equal(t, date(2026, 2, 3), txs[1].Date)
	assert.Equal(t, "98765432000110", txs[1].TaxID)
	assert.Equal(t, 588.74, txs[1].Amount)
	assert.Equal(t, txlog.StatusPending, txs[1].Status)
}

func TestParser_VendasGrossMinusFee(t *testing.T) {
	csv := `Data da venda;CPF/CNPJ;Valor bruto;Taxa;Status
05/02/2026;12345678000190;1.000,00;35,00;Aprovada
06/02/2026;12345678000190;200,00;7,00;Estornada
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, 965.0, txs[0].Amount)
	assert.Equal(t, txlog.StatusProcessed, txs[0].Status)

	assert.Equal(t, 193.0, txs[1].Amount)
	assert.Equal(t, txlog.StatusReversed, txs[1].Status)
}

func TestParser_Portal(t *testing.T) {
	csv := `Data;CNPJ;Valor
10/02/2026;12345678000190;R$ 150,00
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, 150.0, txs[0].Amount)
	// The portal export has no status column; everything imports processed.
	assert.Equal(t, txlog.StatusProcessed, txs[0].Status)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data de pagamento;CPF/CNPJ;Valor líquido;Status\n02/02/2026;12345678000190;10,00;Aprovada\n"

	encoder := charmap.ISO8859_1.NewEncoder()
	latin1Bytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := settlement.NewParser()
	txs, err := p.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, 10.0, txs[0].Amount)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Valor;Data;CNPJ;Ignored
10,00;10/02/2026;12345678000190;XXX
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "12345678000190", txs[0].TaxID)
	assert.Equal(t, 10.0, txs[0].Amount)
}

func TestParser_EmptyFile(t *testing.T) {
	p := settlement.NewParser()
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching settlement format")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Data;CNPJ;Valor`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParser_MissingTaxID(t *testing.T) {
	csv := `Data;CNPJ;Valor
10/02/2026;;10,00
`

	p := settlement.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tax id")
}

func TestParser_SkipsZeroAndFooterRows(t *testing.T) {
	csv := `Data;CNPJ;Valor
10/02/2026;12345678000190;10,00
10/02/2026;12345678000190;0,00
Totais;;;
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestParser_LargeAmounts(t *testing.T) {
	csv := `Data;CNPJ;Valor
10/02/2026;12345678000190;1.234.567,89
`

	p := settlement.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, 1234567.89, txs[0].Amount)
}
