package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status labels observed on stored results. The set is open: the scoring
// worker may emit labels beyond these, and they are stored verbatim.
const (
	StatusToxic = "Toxic"
	StatusClean = "Clean"
	StatusError = "Error"
)

// CommentResult is one scored comment. Probability is nominally in [0,1]
// but out-of-range worker output is stored untouched.
type CommentResult struct {
	Comment     string    `json:"comment"`
	Probability float64   `json:"probability"`
	Status      string    `json:"status"`
	Rule        string    `json:"rule"`
	Timestamp   time.Time `json:"timestamp"`
}

// Session is one batch analysis event. Results preserve input order. The ID
// is immutable once assigned.
type Session struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Results   []CommentResult `json:"results"`
}

// NewID builds a session ID from a second-resolution UTC timestamp prefix
// and a random suffix. IDs sort lexically in creation order, so default
// ordering by ID approximates chronological order; the suffix makes
// collisions within one second negligible.
func NewID(now time.Time) string {
	suffix, _, _ := strings.Cut(uuid.NewString(), "-")
	return now.UTC().Format("20060102-150405") + "-" + suffix
}
