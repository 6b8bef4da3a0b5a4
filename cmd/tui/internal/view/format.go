package view

import (
	"context"
	"fmt"
	"time"
)

const workbookTimeout = 15 * time.Second

// FormatAmount renders a monetary value with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// OpCtx returns a context with a standard timeout for workbook operations.
// Whole-file rewrites on a large workbook are slower than a database call,
// hence the generous bound.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), workbookTimeout)
}
