package testsupport

import (
	"path/filepath"
	"testing"
	"time"

	"commentwatch/internal/session"
)

// NewStore opens a session store backed by a per-test temp file.
func NewStore(t testing.TB, opts ...session.Option) *session.Store {
	t.Helper()
	return session.Open(filepath.Join(t.TempDir(), "sessions.json"), nil, opts...)
}

// SampleResults returns a small mixed batch of scored comments.
func SampleResults(ts time.Time) []session.CommentResult {
	return []session.CommentResult{
		{Comment: "you are awful", Probability: 0.93, Status: session.StatusToxic, Rule: "insult", Timestamp: ts},
		{Comment: "nice weather today", Probability: 0.04, Status: session.StatusClean, Rule: "", Timestamp: ts},
		{Comment: "could not score this", Probability: 0, Status: session.StatusError, Rule: "", Timestamp: ts},
	}
}
