package chat

// Snapshot is a point-in-time copy of the conversation state.
// An empty SessionID means no session has been initialized yet.
type Snapshot struct {
	Messages  []Message `json:"messages"`
	SessionID string    `json:"sessionId,omitempty"`
}

// HasSession reports whether a session identifier has been assigned.
func (s Snapshot) HasSession() bool {
	return s.SessionID != ""
}
