package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"commentwatch/internal/logging"
)

// fileState is the on-disk shape of the store: every session keyed by ID
// plus the current-session pointer, serialized as one JSON document.
type fileState struct {
	Sessions  map[string]Session `json:"sessions"`
	CurrentID string             `json:"current_session_id,omitempty"`
}

// Store provides durable CRUD over analysis sessions. All mutations are
// serialized internally and followed by a full rewrite of the backing file.
// Persistence failures are logged, never returned: the in-memory state stays
// authoritative for the rest of the run.
type Store struct {
	path   string
	logger *slog.Logger
	fl     *flock.Flock

	mu        sync.RWMutex
	sessions  map[string]Session
	currentID string

	clock func() time.Time
}

// Option customizes the store.
type Option func(*Store)

// WithClock overrides the time source (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Open loads the store backing file at path. A missing file starts the store
// empty; an unparseable file starts it empty and logs the failure. Neither
// prevents the application from running.
func Open(path string, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		path:     path,
		logger:   logging.NewComponentLogger(logger, "session"),
		fl:       flock.New(path + ".lock"),
		sessions: make(map[string]Session),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Warn("failed to create data directory",
			logging.String("path", filepath.Dir(path)),
			logging.Error(err))
	}
	if err := s.load(); err != nil {
		s.logger.Warn("failed to load session store",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "starting with an empty store; the file will be rewritten on the next save"))
	}
	return s
}

// Create builds a session from results, inserts it, makes it current, and
// persists. The new session ID is returned.
func (s *Store) Create(results []CommentResult) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	id := NewID(now)
	for {
		if _, exists := s.sessions[id]; !exists {
			break
		}
		id = NewID(now)
	}

	s.sessions[id] = Session{
		ID:        id,
		Timestamp: now,
		Results:   append([]CommentResult(nil), results...),
	}
	s.currentID = id
	s.persist()

	s.logger.Debug("session created",
		logging.String(logging.FieldSessionID, id),
		logging.Int("results", len(results)))
	return id
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(sess), true
}

// Current returns the session the current pointer designates, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return Session{}, false
	}
	sess, ok := s.sessions[s.currentID]
	if !ok {
		return Session{}, false
	}
	return cloneSession(sess), true
}

// CurrentID returns the current session ID, or empty when none is set.
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// List returns all sessions sorted by creation time descending.
func (s *Store) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, cloneSession(sess))
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Timestamp.Equal(sessions[j].Timestamp) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})
	return sessions
}

// Count returns the number of stored sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Update replaces the results of an existing session in place. An unknown ID
// is a silent no-op, not an error.
func (s *Store) Update(id string, results []CommentResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		s.logger.Debug("update skipped for unknown session", logging.String(logging.FieldSessionID, id))
		return
	}
	sess.Results = append([]CommentResult(nil), results...)
	s.sessions[id] = sess
	s.persist()
}

// SetCurrent points the current-session pointer at id. An unknown ID leaves
// the pointer unchanged.
func (s *Store) SetCurrent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		s.logger.Debug("set-current skipped for unknown session", logging.String(logging.FieldSessionID, id))
		return
	}
	s.currentID = id
	s.persist()
}

// Delete removes the session with the given ID; no-op when absent. Deleting
// the current session clears the current pointer.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	if s.currentID == id {
		s.currentID = ""
	}
	s.persist()

	s.logger.Debug("session deleted", logging.String(logging.FieldSessionID, id))
}

// Clear removes every session and clears the current pointer.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]Session)
	s.currentID = ""
	s.persist()

	s.logger.Debug("session store cleared")
}

func (s *Store) load() error {
	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("lock store file: %w", err)
	}
	defer func() {
		_ = s.fl.Unlock()
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse store file: %w", err)
	}

	s.sessions = make(map[string]Session, len(state.Sessions))
	for id, sess := range state.Sessions {
		if id == "" {
			continue
		}
		if sess.ID == "" {
			sess.ID = id
		}
		s.sessions[id] = sess
	}
	if _, ok := s.sessions[state.CurrentID]; ok {
		s.currentID = state.CurrentID
	}

	s.logger.Debug("session store loaded",
		logging.Int("sessions", len(s.sessions)),
		logging.String("path", s.path))
	return nil
}

// persist rewrites the backing file with the full in-memory state. The
// caller must hold the write lock. Failures are logged; durability for this
// write is lost until a later save succeeds.
func (s *Store) persist() {
	state := fileState{Sessions: s.sessions, CurrentID: s.currentID}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode session store", logging.Error(err))
		return
	}

	if err := s.writeFile(data); err != nil {
		s.logger.Error("failed to persist session store",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "in-memory sessions remain usable; check disk space and permissions"))
	}
}

func (s *Store) writeFile(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("lock store file: %w", err)
	}
	defer func() {
		_ = s.fl.Unlock()
	}()

	// Atomic replace via temp file so a crash mid-write cannot corrupt the
	// previous document.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func cloneSession(sess Session) Session {
	sess.Results = append([]CommentResult(nil), sess.Results...)
	return sess
}
