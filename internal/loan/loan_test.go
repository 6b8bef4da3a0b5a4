package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dualbank/backoffice/internal/loan"
)

func TestLoan_Recompute(t *testing.T) {
	type testCase struct {
		name string
		loan loan.Loan
		want loan.Loan
	}

	tests := []testCase{
		{
			name: "TypicalRow",
			loan: loan.Loan{
				TransactedAmount: 10000,
				ReleasedAmount:   8000,
				AgentPercent:     2.5,
				InterestFee:      300,
				AgentExtra:       50,
			},
			want: loan.Loan{
				Commission:      200,   // 8000 * 2.5%
				NetAmount:       1450,  // 10000 - 8000 - 300 - 200 - 50
				InvoiceEstimate: 320,   // 10000 * 3.2%
				PctOfTransacted: 14.5,  // 1450 / 10000
				PctOfReleased:   18.13, // 1450 / 8000, rounded
			},
		},
		{
			name: "ZeroDenominatorsYieldZeroPercentages",
			loan: loan.Loan{InterestFee: 100},
			want: loan.Loan{
				NetAmount:       -100,
				PctOfTransacted: 0,
				PctOfReleased:   0,
			},
		},
		{
			name: "RoundsToCents",
			loan: loan.Loan{
				ReleasedAmount: 1000,
				AgentPercent:   3.333,
			},
			want: loan.Loan{
				Commission:      33.33,
				NetAmount:       -1033.33,
				PctOfReleased:   -103.33,
				PctOfTransacted: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.loan
			l.Recompute()

			assert.Equal(t, tt.want.Commission, l.Commission)
			assert.Equal(t, tt.want.NetAmount, l.NetAmount)
			assert.Equal(t, tt.want.InvoiceEstimate, l.InvoiceEstimate)
			assert.Equal(t, tt.want.PctOfTransacted, l.PctOfTransacted)
			assert.Equal(t, tt.want.PctOfReleased, l.PctOfReleased)
		})
	}
}

func TestLoan_RecomputeOverwritesStaleDerivedValues(t *testing.T) {
	l := loan.Loan{
		TransactedAmount: 1000,
		ReleasedAmount:   500,
		AgentPercent:     10,

		// Stale figures as left behind by a hand edit.
		Commission: 999,
		NetAmount:  999,
	}
	l.Recompute()

	assert.Equal(t, 50.0, l.Commission)
	assert.Equal(t, 450.0, l.NetAmount)
}
