package export

import (
	"encoding/json"
	"fmt"
	"io"

	"commentwatch/internal/session"
)

// JSONExporter writes the full session as one indented JSON document.
type JSONExporter struct{}

func (e *JSONExporter) Export(sess session.Session, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sess); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return nil
}

func (e *JSONExporter) Extension() string {
	return "json"
}
