// Package client talks to the chat backend's /api/chat endpoint.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const chatPath = "/api/chat"

// Request is the wire body of POST /api/chat.
type Request struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type answerEnvelope struct {
	Answer json.RawMessage `json:"answer"`
}

// Client is a thin resty wrapper that classifies failures into Kinds.
type Client struct {
	http *resty.Client
}

// Option customizes the underlying resty client.
type Option func(*resty.Client)

// WithResty lets callers tune the resty client (transport, debug, ...).
func WithResty(fn func(*resty.Client)) Option {
	return Option(fn)
}

// WithLogger routes resty's own diagnostics into logger.
func WithLogger(logger *zap.Logger) Option {
	return func(rc *resty.Client) {
		if logger != nil {
			rc.SetLogger(logger.Named("resty").Sugar())
		}
	}
}

// New validates baseURL and builds a client rooted at it.
func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	rc := resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}, nil
}

// Chat posts query under sessionID and returns the backend's answer.
// The deadline of ctx is the only timeout; when it fires the error is
// KindTimeout.
func (c *Client) Chat(ctx context.Context, query, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySession
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(Request{Query: query, SessionID: sessionID}).
		Post(chatPath)
	if err != nil {
		return "", classifyTransport(ctx, err)
	}

	if !res.IsSuccess() {
		return "", &Error{Kind: KindStatus, StatusCode: res.StatusCode(), Err: errors.New(res.Status())}
	}

	answer, err := decodeAnswer(res.Body())
	if err != nil {
		return "", &Error{Kind: KindMalformed, StatusCode: res.StatusCode(), Err: err}
	}
	return answer, nil
}

func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

// decodeAnswer accepts any JSON object with a non-empty string "answer";
// other fields are ignored.
func decodeAnswer(body []byte) (string, error) {
	var env answerEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(env.Answer) == 0 {
		return "", ErrEmptyAnswer
	}

	var answer string
	if err := json.Unmarshal(env.Answer, &answer); err != nil {
		return "", fmt.Errorf("decode answer: %w", err)
	}
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
