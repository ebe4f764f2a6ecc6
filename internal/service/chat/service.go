package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyContent    = errors.New("message content is required")
)

// Session is the server's view of a client conversation. Ids are chosen by
// the client; the server only records them.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service keeps per-session transcripts in memory.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]Session
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory history service.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]Session),
		messages: make(map[string][]chat.Message),
	}
}

// EnsureSession returns the session for id, registering it on first use.
func (s *Service) EnsureSession(_ context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		return session, nil
	}

	now := time.Now().UTC()
	session := Session{ID: id, CreatedAt: now, UpdatedAt: now}
	s.sessions[id] = session
	s.messages[id] = make([]chat.Message, 0, 16)
	return session, nil
}

// SaveMessage appends a turn to the session history.
func (s *Service) SaveMessage(_ context.Context, sessionID string, draft chat.Draft) (chat.Message, error) {
	if sessionID == "" {
		return chat.Message{}, ErrSessionRequired
	}
	if draft.Content == "" {
		return chat.Message{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message := chat.Message{
		ID:        uuid.NewString(),
		Role:      draft.Role,
		Content:   draft.Content,
		Timestamp: time.Now().UTC(),
	}
	if history := s.messages[sessionID]; len(history) > 0 {
		if last := history[len(history)-1].Timestamp; message.Timestamp.Before(last) {
			message.Timestamp = last
		}
	}

	s.messages[sessionID] = append(s.messages[sessionID], message)
	session.UpdatedAt = message.Timestamp
	s.sessions[sessionID] = session
	return message, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Recent returns at most limit of the latest messages for the session.
func (s *Service) Recent(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	messages, err := s.LoadTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}
