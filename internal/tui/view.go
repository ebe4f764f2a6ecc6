package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/service/conversation"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
)

// View renders header, history, status line and input.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Input.Render(m.input.View()))
	return sb.String()
}

func (m Model) headerView() string {
	header := m.styles.Header.Render(title)
	if m.width > 0 {
		header = m.styles.Header.Width(m.width).Render(title)
	}
	return header
}

func (m Model) statusView() string {
	switch {
	case m.notice != nil:
		style := m.styles.NoticeError
		if m.notice.Level == conversation.LevelWarning {
			style = m.styles.NoticeWarn
		}
		return style.Render(m.notice.Title + ": " + m.notice.Description)
	case m.sending:
		return m.styles.Status.Render(m.spinner.View() + " 回答を考えています…")
	default:
		return m.styles.Help.Render("Enter: 送信  /clear: 履歴を消去  /new: 新しい会話  Esc: 終了")
	}
}

func (m Model) historyView() string {
	if len(m.snapshot.Messages) == 0 {
		return m.styles.Help.Render("金沢市について何でも聞いてください。")
	}

	var sb strings.Builder
	for _, msg := range m.snapshot.Messages {
		sb.WriteString(m.messageView(msg))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) messageView(msg chat.Message) string {
	stamp := m.styles.Timestamp.Render(utils.FormatTime(msg.Timestamp))

	if msg.Role == chat.RoleUser {
		label := m.styles.UserLabel.Render("あなた") + " " + stamp
		bubble := m.styles.UserBubble.Render(msg.Content)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
		}
		return block
	}

	label := m.styles.BotLabel.Render("アシスタント") + " " + stamp
	body := m.markdown.body(msg)
	return lipgloss.JoinVertical(lipgloss.Left, label, m.styles.BotBubble.Render(body))
}
