package ai

import (
	"strings"

	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
)

const commonRules = `- 日本語で、簡潔かつ丁寧に回答してください。
- 分からないことは推測せず、金沢市の公式窓口や公式サイトの確認を勧めてください。
- 必要に応じて箇条書きや見出し（Markdown）を使ってください。`

// BuildSystemPrompt composes the system prompt for a guide. A non-empty
// reference is appended as data the answer should draw on.
func BuildSystemPrompt(g guide.Guide, reference string) string {
	var b strings.Builder
	b.WriteString(g.Prompt)
	b.WriteString("\n金沢市に関する質問に答えてください。\n\n回答ルール：\n")
	b.WriteString(commonRules)
	for _, rule := range g.Rules {
		b.WriteString("\n- ")
		b.WriteString(rule)
	}
	if reference = strings.TrimSpace(reference); reference != "" {
		b.WriteString("\n\n以下の情報を参考に回答してください。\n")
		b.WriteString(reference)
	}
	return b.String()
}
