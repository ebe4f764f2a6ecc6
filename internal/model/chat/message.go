package chat

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MaxContentLength caps a submitted question, counted in characters (runes).
const MaxContentLength = 1000

// TrimContent strips leading and trailing white space, including the
// byte order mark that strings.TrimSpace keeps.
func TrimContent(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// ContentLength counts code points. A character outside the BMP is one,
// not two.
func ContentLength(s string) int {
	return utf8.RuneCountInString(s)
}

// TooLong reports whether trimmed content exceeds MaxContentLength.
func TooLong(s string) bool {
	return ContentLength(s) > MaxContentLength
}

// Message is one turn in the conversation log. ID and Timestamp are
// assigned by the store at append time and never change afterwards.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Draft is the caller-supplied part of a Message.
type Draft struct {
	Role    Role
	Content string
}
