package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/service/conversation"
)

type storeChangedMsg struct{}

type noticeMsg struct {
	notice conversation.Notice
}

// Bridge carries store notifications and pipeline notices into the
// bubbletea event loop. Both producers may run inside Update (slash
// commands) or on a command goroutine (sends), so delivery never blocks:
// store changes coalesce into one pending signal and the model re-reads
// the snapshot, notices are buffered and dropped when the buffer is full.
type Bridge struct {
	changed chan struct{}
	notices chan conversation.Notice
}

// NewBridge returns an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{
		changed: make(chan struct{}, 1),
		notices: make(chan conversation.Notice, 16),
	}
}

// Observe is a store.Observer.
func (b *Bridge) Observe(chat.Snapshot) {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Notify implements conversation.Notifier.
func (b *Bridge) Notify(n conversation.Notice) {
	select {
	case b.notices <- n:
	default:
	}
}

// wait blocks on the next event. Update re-arms it after every delivery.
func (b *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.changed:
			return storeChangedMsg{}
		case n := <-b.notices:
			return noticeMsg{notice: n}
		}
	}
}
