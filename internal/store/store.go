// Package store holds the client-side conversation log and session id.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
)

// Observer receives the post-transition state after every change.
type Observer func(chat.Snapshot)

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the generator used for message and session ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store is an observable, process-local container for the conversation.
type Store struct {
	mu        sync.Mutex
	messages  []chat.Message
	sessionID string
	last      time.Time

	obsMu     sync.Mutex
	observers map[uint64]Observer
	order     []uint64
	nextObsID uint64

	now   func() time.Time
	newID func() string
}

// New returns an empty store with no session.
func New(opts ...Option) *Store {
	s := &Store{
		messages:  make([]chat.Message, 0, 16),
		observers: make(map[uint64]Observer),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stamps the draft with a fresh id and the current instant and adds
// it to the end of the log.
func (s *Store) Append(d chat.Draft) chat.Message {
	s.mu.Lock()
	ts := s.now()
	if ts.Before(s.last) {
		ts = s.last
	}
	s.last = ts

	msg := chat.Message{
		ID:        s.newID(),
		Role:      d.Role,
		Content:   d.Content,
		Timestamp: ts,
	}
	s.messages = append(s.messages, msg)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return msg
}

// Clear empties the log. The session id is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = make([]chat.Message, 0, 16)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// InitializeSession assigns a session id if none exists and returns the
// current one. Repeated calls return the id assigned by the first call.
func (s *Store) InitializeSession() string {
	s.mu.Lock()
	if s.sessionID != "" {
		id := s.sessionID
		s.mu.Unlock()
		return id
	}
	s.sessionID = s.newID()
	id := s.sessionID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return id
}

// ResetSession replaces the session id with a fresh one. Clear does not
// call this; callers that want a new server-side conversation do.
func (s *Store) ResetSession() string {
	s.mu.Lock()
	s.sessionID = s.newID()
	id := s.sessionID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return id
}

// Subscribe registers fn to run after every state change. The returned
// function removes the observer and is safe to call more than once.
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}

	s.obsMu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers[id] = fn
	s.order = append(s.order, id)
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			defer s.obsMu.Unlock()
			delete(s.observers, id)
			for i, oid := range s.order {
				if oid == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() chat.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() chat.Snapshot {
	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return chat.Snapshot{Messages: copied, SessionID: s.sessionID}
}

// notify runs observers outside the state lock so they may call back into
// the store. Each observer gets its own copy of the log.
func (s *Store) notify(snap chat.Snapshot) {
	s.obsMu.Lock()
	fns := make([]Observer, 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.observers[id])
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		copied := make([]chat.Message, len(snap.Messages))
		copy(copied, snap.Messages)
		fn(chat.Snapshot{Messages: copied, SessionID: snap.SessionID})
	}
}
