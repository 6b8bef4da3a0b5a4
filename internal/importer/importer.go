package importer

import (
	"io"

	"github.com/dualbank/backoffice/internal/txlog"
)

type Source string

const (
	SourceSettlement Source = "settlement"
)

type Importer interface {
	Parse(r io.Reader) ([]txlog.CreateParams, error)
}
