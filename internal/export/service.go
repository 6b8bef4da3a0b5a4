// Package export produces downloadable copies of the workbook. Regenerating
// through the store rather than streaming the file off disk means the
// download always carries sanitized headers and backfilled row identifiers,
// even when the file on disk predates them.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dualbank/backoffice/internal/workbook"
)

type Service struct {
	wb  *workbook.Store
	now func() time.Time
}

func NewService(wb *workbook.Store) *Service {
	return &Service{wb: wb, now: time.Now}
}

// Download is a rendered workbook ready to ship to the browser.
type Download struct {
	Filename string
	Content  []byte
}

// Workbook renders the full current workbook.
func (s *Service) Workbook(ctx context.Context) (*Download, error) {
	snap, err := s.wb.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.wb.Render(snap)
	if err != nil {
		return nil, err
	}

	return &Download{
		Filename: fmt.Sprintf("backoffice_%s.xlsx", s.now().Format("20060102")),
		Content:  content,
	}, nil
}

// Sheet renders a single sheet into its own workbook, keeping the other
// sheets out of a share meant for one audience.
func (s *Service) Sheet(ctx context.Context, name string) (*Download, error) {
	table, err := s.wb.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	content, err := workbook.RenderTables([]*workbook.Table{table})
	if err != nil {
		return nil, err
	}

	return &Download{
		Filename: fmt.Sprintf("%s_%s.xlsx", name, s.now().Format("20060102")),
		Content:  content,
	}, nil
}
