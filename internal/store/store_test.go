package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/store"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAppendPreservesCallOrder(t *testing.T) {
	s := store.New()

	drafts := []chat.Draft{
		{Role: chat.RoleUser, Content: "兼六園の開園時間は？"},
		{Role: chat.RoleAssistant, Content: "7時から18時までです。"},
		{Role: chat.RoleUser, Content: "ありがとう"},
	}
	for _, d := range drafts {
		s.Append(d)
	}

	snap := s.Snapshot()
	require.Len(t, snap.Messages, len(drafts))

	got := make([]chat.Draft, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		got = append(got, chat.Draft{Role: m.Role, Content: m.Content})
	}
	if diff := cmp.Diff(drafts, got); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	s := store.New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		m := s.Append(chat.Draft{Role: chat.RoleUser, Content: "q"})
		require.NotEmpty(t, m.ID)
		require.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestAppendTimestampsNeverDecrease(t *testing.T) {
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	ticks := []time.Time{
		base,
		base.Add(2 * time.Second),
		base.Add(1 * time.Second), // clock stepped backwards
		base.Add(3 * time.Second),
	}
	i := 0
	s := store.New(store.WithClock(func() time.Time {
		ts := ticks[i]
		i++
		return ts
	}))

	for range ticks {
		s.Append(chat.Draft{Role: chat.RoleUser, Content: "q"})
	}

	msgs := s.Snapshot().Messages
	for k := 1; k < len(msgs); k++ {
		assert.False(t, msgs[k].Timestamp.Before(msgs[k-1].Timestamp),
			"message %d earlier than %d", k, k-1)
	}
	assert.Equal(t, base.Add(2*time.Second), msgs[2].Timestamp)
}

func TestInitializeSessionIsIdempotent(t *testing.T) {
	s := store.New(store.WithIDGenerator(sequentialIDs()))
	require.False(t, s.Snapshot().HasSession())

	first := s.InitializeSession()
	for k := 0; k < 5; k++ {
		assert.Equal(t, first, s.InitializeSession())
	}
	assert.Equal(t, first, s.Snapshot().SessionID)
}

func TestClearKeepsSession(t *testing.T) {
	s := store.New()
	id := s.InitializeSession()
	s.Append(chat.Draft{Role: chat.RoleUser, Content: "q"})

	s.Clear()

	snap := s.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.Equal(t, id, snap.SessionID)
}

func TestResetSessionAssignsNewID(t *testing.T) {
	s := store.New(store.WithIDGenerator(sequentialIDs()))
	first := s.InitializeSession()
	s.Append(chat.Draft{Role: chat.RoleUser, Content: "q"})

	second := s.ResetSession()

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, s.InitializeSession())
	assert.Len(t, s.Snapshot().Messages, 1)
}

func TestSubscribeSeesCompletedTransitions(t *testing.T) {
	s := store.New()
	var seen []chat.Snapshot
	unsubscribe := s.Subscribe(func(snap chat.Snapshot) {
		seen = append(seen, snap)
	})

	s.InitializeSession()
	s.InitializeSession() // no-op, no notification
	m := s.Append(chat.Draft{Role: chat.RoleUser, Content: "hello"})
	s.Clear()

	require.Len(t, seen, 3)
	assert.True(t, seen[0].HasSession())
	assert.Empty(t, seen[0].Messages)
	if diff := cmp.Diff([]chat.Message{m}, seen[1].Messages, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Fatalf("observer saw partial append (-want +got):\n%s", diff)
	}
	assert.Empty(t, seen[2].Messages)

	unsubscribe()
	unsubscribe()
	s.Append(chat.Draft{Role: chat.RoleUser, Content: "after"})
	assert.Len(t, seen, 3)
}

func TestObserverMayCallBackIntoStore(t *testing.T) {
	s := store.New()
	var lengths []int
	s.Subscribe(func(chat.Snapshot) {
		lengths = append(lengths, len(s.Snapshot().Messages))
	})

	s.Append(chat.Draft{Role: chat.RoleUser, Content: "a"})
	s.Append(chat.Draft{Role: chat.RoleAssistant, Content: "b"})

	assert.Equal(t, []int{1, 2}, lengths)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := store.New()
	s.Append(chat.Draft{Role: chat.RoleUser, Content: "original"})

	snap := s.Snapshot()
	snap.Messages[0].Content = "mutated"

	assert.Equal(t, "original", s.Snapshot().Messages[0].Content)
}
