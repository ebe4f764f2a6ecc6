// Package tui is the terminal surface of the chat client. It renders the
// store and hands submitted questions to the send pipeline.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/service/conversation"
)

const (
	title       = "金沢市なんでもチャット💬"
	placeholder = "質問を入力してね！"
	noticeTTL   = 4 * time.Second
)

// Store is what the surface needs from the message store.
type Store interface {
	InitializeSession() string
	ResetSession() string
	Clear()
	Snapshot() chat.Snapshot
}

// Sender is the send pipeline.
type Sender interface {
	Send(ctx context.Context, raw string) conversation.Outcome
	InFlight() bool
}

type sendDoneMsg struct {
	outcome conversation.Outcome
}

type noticeExpiredMsg struct {
	seq int
}

// Model is the bubbletea model for the chat view.
type Model struct {
	ctx    context.Context
	store  Store
	sender Sender
	bridge *Bridge

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown *markdownCache
	styles   styles

	snapshot  chat.Snapshot
	sending   bool
	notice    *conversation.Notice
	noticeSeq int

	width  int
	height int
	ready  bool
}

// New builds the model. bridge must be the notifier the sender was built
// with and an observer of st, so that changes reach Update.
func New(ctx context.Context, st Store, sender Sender, bridge *Bridge) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = chat.MaxContentLength
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:      ctx,
		store:    st,
		sender:   sender,
		bridge:   bridge,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		styles:   defaultStyles(),
		snapshot: st.Snapshot(),
	}
}

// Init initializes the session once and starts listening for changes.
func (m Model) Init() tea.Cmd {
	m.store.InitializeSession()
	return tea.Batch(textinput.Blink, m.bridge.wait())
}

// Update handles input, store changes and pipeline results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case storeChangedMsg:
		m.snapshot = m.store.Snapshot()
		m.markdown.retain(m.snapshot.Messages)
		m.refresh()
		return m, m.bridge.wait()

	case noticeMsg:
		n := msg.notice
		m.notice = &n
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Batch(m.bridge.wait(), tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return noticeExpiredMsg{seq: seq}
		}))

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case sendDoneMsg:
		m.sending = false
		if msg.outcome.Consumed() {
			m.input.Reset()
		}
		m.input.Focus()
		return m, textinput.Blink

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.sending {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.sending || m.sender.InFlight() {
		return m, nil
	}

	raw := m.input.Value()
	trimmed := chat.TrimContent(raw)
	if trimmed == "" {
		return m, nil
	}

	if strings.HasPrefix(trimmed, "/") {
		if quit := m.command(trimmed); quit {
			return m, tea.Quit
		}
		m.input.Reset()
		return m, nil
	}

	m.sending = true
	m.input.Blur()
	ctx, sender := m.ctx, m.sender
	send := func() tea.Msg {
		return sendDoneMsg{outcome: sender.Send(ctx, raw)}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

// command runs a slash command and reports whether the program should exit.
// Unknown commands raise a notice and are never sent to the backend.
func (m *Model) command(line string) bool {
	switch strings.Fields(line)[0] {
	case "/quit", "/exit":
		return true
	case "/clear":
		m.store.Clear()
	case "/new":
		m.store.Clear()
		m.store.ResetSession()
	default:
		m.bridge.Notify(conversation.Notice{
			Level:       conversation.LevelWarning,
			Title:       "不明なコマンド",
			Description: "使えるコマンド: /clear /new /quit",
		})
		return false
	}
	m.snapshot = m.store.Snapshot()
	m.refresh()
	return false
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	chrome := lipgloss.Height(m.headerView()) + 1 + 3 + 1
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 8

	wrap := width - 8
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.markdown = newMarkdownCache(r.Render)
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.historyView())
	m.viewport.GotoBottom()
}
