// Package conversation implements the send pipeline: validate the
// question, record it, ask the backend, and record the answer or a
// failure notice.
package conversation

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/client"
	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// Store is the part of the message store the pipeline uses.
type Store interface {
	Append(d chat.Draft) chat.Message
	InitializeSession() string
	Snapshot() chat.Snapshot
}

// ChatClient asks the backend for an answer.
type ChatClient interface {
	Chat(ctx context.Context, query, sessionID string) (string, error)
}

// Outcome reports what a Send call did.
type Outcome int

const (
	// OutcomeIgnored: blank input or a send already in flight. Nothing changed.
	OutcomeIgnored Outcome = iota
	// OutcomeRejected: validation failed. The user was notified, nothing appended.
	OutcomeRejected
	// OutcomeAnswered: user and assistant messages were appended.
	OutcomeAnswered
	// OutcomeFailed: user message and an error reply were appended.
	OutcomeFailed
)

// Consumed reports whether the surface should clear its input buffer.
func (o Outcome) Consumed() bool {
	return o == OutcomeAnswered || o == OutcomeFailed
}

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeAnswered:
		return "answered"
	case OutcomeFailed:
		return "failed"
	default:
		return "ignored"
	}
}

// Option customizes a Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnSettled registers a hook run after every send that reached the
// backend, once in-flight has been cleared. Surfaces use it to refocus input.
func WithOnSettled(fn func()) Option {
	return func(s *Service) {
		s.onSettled = fn
	}
}

// Service drives one conversation.
type Service struct {
	store    Store
	client   ChatClient
	notifier Notifier

	timeout   time.Duration
	logger    *zap.Logger
	onSettled func()

	inFlight atomic.Bool
}

// New wires the pipeline. A nil notifier discards notices.
func New(store Store, c ChatClient, notifier Notifier, opts ...Option) *Service {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	s := &Service{
		store:    store,
		client:   c,
		notifier: notifier,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InFlight reports whether a backend call is outstanding.
func (s *Service) InFlight() bool {
	return s.inFlight.Load()
}

// Send runs the pipeline for raw. It blocks until the backend call settles
// and never returns an error: failures are recorded in the log and reported
// through the notifier.
func (s *Service) Send(ctx context.Context, raw string) Outcome {
	trimmed := chat.TrimContent(raw)
	if trimmed == "" {
		return OutcomeIgnored
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("send ignored while in flight")
		return OutcomeIgnored
	}

	if chat.TooLong(trimmed) {
		s.inFlight.Store(false)
		s.notifier.Notify(Notice{Level: LevelWarning, Title: titleTooLong, Description: TextTooLong})
		return OutcomeRejected
	}

	defer s.settle()

	s.store.Append(chat.Draft{Role: chat.RoleUser, Content: trimmed})

	sessionID := s.store.Snapshot().SessionID
	if sessionID == "" {
		sessionID = s.store.InitializeSession()
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	answer, err := s.client.Chat(callCtx, trimmed, sessionID)
	if err != nil {
		s.fail(err, sessionID, time.Since(started))
		return OutcomeFailed
	}

	s.logger.Info("answer received",
		zap.String("session_id", sessionID),
		zap.Int("answer_len", chat.ContentLength(answer)),
		zap.Duration("elapsed", time.Since(started)))
	s.store.Append(chat.Draft{Role: chat.RoleAssistant, Content: answer})
	return OutcomeAnswered
}

func (s *Service) settle() {
	s.inFlight.Store(false)
	if s.onSettled != nil {
		s.onSettled()
	}
}

func (s *Service) fail(err error, sessionID string, elapsed time.Duration) {
	kind := client.KindOf(err)
	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.Stringer("kind", kind),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	}

	var reply string
	var notice Notice
	switch kind {
	case client.KindTimeout:
		reply = TextTimeout
		notice = Notice{Level: LevelError, Title: titleTimeout, Description: TextTimeout}
		s.logger.Warn("chat request timed out", fields...)
	case client.KindNetwork:
		reply = TextNetwork
		notice = Notice{Level: LevelError, Title: titleNetwork, Description: TextNetwork}
		s.logger.Warn("chat backend unreachable", fields...)
	default:
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.Kind == client.KindStatus {
			fields = append(fields, zap.Int("status", apiErr.StatusCode))
		}
		reply = TextGeneric
		notice = Notice{Level: LevelError, Title: titleGeneric, Description: TextGeneric}
		s.logger.Error("chat request failed", fields...)
	}

	s.store.Append(chat.Draft{Role: chat.RoleAssistant, Content: reply})
	s.notifier.Notify(notice)
}
