package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"commentwatch/internal/logging"
	"commentwatch/internal/session"
	"commentwatch/internal/worker"
)

// Scorer is the slice of the worker bridge the analyzer needs.
type Scorer interface {
	Score(ctx context.Context, comments []string) []worker.Result
}

// Analyzer turns raw comments into persisted analysis sessions.
type Analyzer struct {
	scorer Scorer
	store  *session.Store
	logger *slog.Logger
	clock  func() time.Time
}

// Option customizes the analyzer.
type Option func(*Analyzer)

// WithClock overrides the record timestamp source (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// New constructs an analyzer over the given scorer and store.
func New(scorer Scorer, store *session.Store, logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		scorer: scorer,
		store:  store,
		logger: logging.NewComponentLogger(logger, "analyzer"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores comments and saves them as a new session, which becomes the
// current session. Record timestamps are assigned here, not by the worker.
func (a *Analyzer) Analyze(ctx context.Context, comments []string) (session.Session, error) {
	if len(comments) == 0 {
		return session.Session{}, errors.New("no comments to analyze")
	}

	results := a.scorer.Score(ctx, comments)
	records := a.buildRecords(comments, results)

	id := a.store.Create(records)
	sess, ok := a.store.Get(id)
	if !ok {
		return session.Session{}, fmt.Errorf("session %s vanished after create", id)
	}

	a.logger.Info("analysis complete",
		logging.String(logging.FieldSessionID, id),
		logging.Int("comments", len(comments)),
		logging.Int("records", len(records)))
	return sess, nil
}

// Reanalyze rescores the comments of an existing session and replaces its
// results in place. The session ID and creation timestamp are unchanged.
func (a *Analyzer) Reanalyze(ctx context.Context, id string) (session.Session, error) {
	sess, ok := a.store.Get(id)
	if !ok {
		return session.Session{}, fmt.Errorf("session %s not found", id)
	}
	if len(sess.Results) == 0 {
		return sess, nil
	}

	comments := make([]string, len(sess.Results))
	for i, record := range sess.Results {
		comments[i] = record.Comment
	}

	results := a.scorer.Score(ctx, comments)
	a.store.Update(id, a.buildRecords(comments, results))

	updated, ok := a.store.Get(id)
	if !ok {
		return session.Session{}, fmt.Errorf("session %s vanished after update", id)
	}

	a.logger.Info("session rescored",
		logging.String(logging.FieldSessionID, id),
		logging.Int("comments", len(comments)))
	return updated, nil
}

// buildRecords pairs comment i with result i. A worker shortfall means only
// the first min(comments, results) pairs are materialized; that is defined
// truncation, not an error.
func (a *Analyzer) buildRecords(comments []string, results []worker.Result) []session.CommentResult {
	now := a.clock()

	n := len(comments)
	if len(results) < n {
		a.logger.Warn("worker returned fewer results than comments",
			logging.Int("comments", len(comments)),
			logging.Int("results", len(results)))
		n = len(results)
	}

	records := make([]session.CommentResult, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, session.CommentResult{
			Comment:     comments[i],
			Probability: results[i].Probability,
			Status:      mapStatus(results[i].Status),
			Rule:        results[i].Rule,
			Timestamp:   now,
		})
	}
	return records
}

// mapStatus translates the scoring script's label vocabulary into the stored
// one. Unknown labels pass through untouched; the status set is open.
func mapStatus(status string) string {
	switch status {
	case "Safe":
		return session.StatusClean
	case "Violates rule":
		return session.StatusToxic
	default:
		return status
	}
}
