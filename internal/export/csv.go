package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"commentwatch/internal/session"
)

// CSVExporter writes one row per scored comment. Quoting is handled by
// encoding/csv, so comment text may contain commas, quotes, and newlines.
type CSVExporter struct{}

func (e *CSVExporter) Export(sess session.Session, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"comment", "probability", "status", "rule", "timestamp"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range sess.Results {
		row := []string{
			record.Comment,
			strconv.FormatFloat(record.Probability, 'f', -1, 64),
			record.Status,
			record.Rule,
			record.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func (e *CSVExporter) Extension() string {
	return "csv"
}
