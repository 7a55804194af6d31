// Package export renders analysis sessions for use outside commentwatch.
package export

import (
	"fmt"
	"io"

	"commentwatch/internal/session"
)

// Exporter writes one session to w in a particular format.
type Exporter interface {
	Export(sess session.Session, w io.Writer) error
	Extension() string
}

// New returns the exporter for the named format.
func New(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: csv, json)", format)
	}
}
