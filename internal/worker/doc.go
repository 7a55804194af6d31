// Package worker drives the external comment-scoring process.
//
// The worker is a long-lived child process (typically a Python script)
// that prints one readiness line on startup and then answers one
// line-delimited JSON request with one line-delimited JSON response.
// The bridge owns the process lifecycle, serializes requests, applies
// bounded waits, and converts every transport failure into degraded
// per-comment results so callers never see an error from scoring.
package worker
