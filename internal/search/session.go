package search

import (
	"context"
	"log"
	"sync"
	"time"

	"bookfinder/internal/book"

	"github.com/google/uuid"
)

// State is the position of a session in the view flow.
type State string

const (
	StateIdle        State = "idle"
	StateSearching   State = "searching"
	StateListShown   State = "list"
	StateDetailShown State = "detail"
)

// Session holds one visitor's search state: the ordered result collection is
// the single source of truth, views are projections of it. The zero session
// starts Idle with no results.
type Session struct {
	mu           sync.Mutex
	id           string
	state        State
	results      []book.Record
	ebookOnly    bool
	selectedISBN string
	lastActive   time.Time
}

// ID returns the session identifier used in the cookie.
func (s *Session) ID() string {
	return s.id
}

// Snapshot is an immutable projection of a session for rendering.
type Snapshot struct {
	State        State
	Results      []book.Record
	EbookOnly    bool
	SelectedISBN string
}

// Snapshot copies the session state under the lock so views never alias the
// live collection.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]book.Record, len(s.results))
	copy(results, s.results)
	return Snapshot{
		State:        s.state,
		Results:      results,
		EbookOnly:    s.ebookOnly,
		SelectedISBN: s.selectedISBN,
	}
}

// shownState is the state a session settles into when nothing is selected:
// the list when there are results, Idle otherwise.
func (s *Session) shownState() State {
	if len(s.results) > 0 {
		return StateListShown
	}
	return StateIdle
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// Store keeps live sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a fresh Idle session.
func (st *Store) Create() *Session {
	s := &Session{
		id:         uuid.NewString(),
		state:      StateIdle,
		lastActive: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// CleanupExpired drops sessions idle for longer than the store TTL and
// returns how many were removed.
func (st *Store) CleanupExpired() int {
	cutoff := time.Now().Add(-st.ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Sweep periodically evicts expired sessions until ctx is done.
func (st *Store) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.CleanupExpired(); n > 0 {
				log.Printf("session sweep: removed %d expired sessions", n)
			}
		}
	}
}
