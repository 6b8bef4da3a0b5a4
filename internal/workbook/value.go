package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats found in hand-edited sheets plus what
// excelize renders for date cells.
var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	time.RFC3339,
}

// ParseDate parses a cell into a date, trying the known layouts. Empty cells
// parse to the zero time with no error.
func ParseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", cell)
}

// ParseNumber parses a cell into a float, accepting both "1234.56" and the
// European "1.234,56". Empty cells and missing-value placeholders parse to 0.
func ParseNumber(cell string) (float64, error) {
	clean := strings.TrimSpace(cell)

	switch strings.ToLower(clean) {
	case "", "nan", "none", "null":
		return 0, nil
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable number %q", cell)
	}

	return v, nil
}

// FormatNumber renders an amount the way the workbook stores it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders a date cell; zero times come out empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}
