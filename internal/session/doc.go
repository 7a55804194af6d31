// Package session persists analysis sessions.
//
// A session is one batch of scored comments. Sessions live in memory as a
// map keyed by session ID and are mirrored to a single JSON document that
// is rewritten in full after every mutation. The store also tracks the
// "current" session: the one most recently created or explicitly selected,
// which commands without an explicit session argument operate on.
package session
