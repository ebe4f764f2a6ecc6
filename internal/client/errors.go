package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed chat call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTimeout means the local deadline elapsed before a response arrived.
	KindTimeout
	// KindNetwork covers transport failures: DNS, refused connections, offline.
	KindNetwork
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus
	// KindMalformed means the body was not a JSON object with a non-empty answer.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyAnswer    = errors.New("answer missing or empty")
	ErrEmptySession   = errors.New("session id is required")
	ErrInvalidBaseURL = errors.New("invalid base url")
)

// Error is returned by Client.Chat for every failed call.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("chat api: %s: http %d", e.Kind, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("chat api: %s", e.Kind)
	}
	return fmt.Sprintf("chat api: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
