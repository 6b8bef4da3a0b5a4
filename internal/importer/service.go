package importer

import (
	"fmt"
	"io"

	"github.com/dualbank/backoffice/internal/importer/settlement"
	"github.com/dualbank/backoffice/internal/txlog"
)

type Service struct {
	settlementImporter Importer
}

func NewService() *Service {
	return &Service{
		settlementImporter: settlement.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]txlog.CreateParams, error) {
	var importer Importer

	switch source {
	case SourceSettlement:
		importer = s.settlementImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}
