package tui

import (
	"strings"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
)

// markdownCache memoizes rendered assistant answers by message id. Ids and
// contents never change once appended, so an entry stays valid until the
// render width changes, which replaces the whole cache.
type markdownCache struct {
	render  func(string) (string, error)
	entries map[string]string
}

func newMarkdownCache(render func(string) (string, error)) *markdownCache {
	return &markdownCache{render: render, entries: make(map[string]string)}
}

func (c *markdownCache) body(msg chat.Message) string {
	if c == nil || c.render == nil {
		return msg.Content
	}
	if out, ok := c.entries[msg.ID]; ok {
		return out
	}
	out, err := c.render(msg.Content)
	if err != nil {
		return msg.Content
	}
	out = strings.Trim(out, "\n")
	c.entries[msg.ID] = out
	return out
}

// retain drops entries for messages no longer in the log.
func (c *markdownCache) retain(messages []chat.Message) {
	if c == nil || len(c.entries) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		keep[msg.ID] = struct{}{}
	}
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
		}
	}
}
