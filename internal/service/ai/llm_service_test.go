package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
)

type fakeModel struct {
	reply string
	err   error
	input []*schema.Message
}

func (f *fakeModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeModel) BindTools([]*schema.ToolInfo) error { return nil }

func tourismGuide(t *testing.T) guide.Guide {
	t.Helper()
	g, ok := guide.NewMemoryStore(guide.Seed()).FindByID("tourism")
	if !ok {
		t.Fatal("tourism guide missing")
	}
	return g
}

func TestServiceAnswerBuildsConversation(t *testing.T) {
	fm := &fakeModel{reply: "  兼六園は7時開園です。  "}
	svc, err := NewServiceWithModel(context.Background(), fm, nil)
	if err != nil {
		t.Fatalf("NewServiceWithModel err: %v", err)
	}

	history := []chat.Message{
		{Role: chat.RoleUser, Content: "こんにちは"},
		{Role: chat.RoleAssistant, Content: "こんにちは！"},
	}
	answer, err := svc.Answer(context.Background(), Request{
		Guide:     tourismGuide(t),
		Reference: "兼六園 - 日本三名園のひとつ。",
		History:   history,
		Query:     "兼六園の開園時間は？",
	})
	if err != nil {
		t.Fatalf("Answer err: %v", err)
	}
	if answer != "兼六園は7時開園です。" {
		t.Fatalf("unexpected answer %q", answer)
	}

	if len(fm.input) != 4 {
		t.Fatalf("expected system+2 history+query, got %d messages", len(fm.input))
	}
	if fm.input[0].Role != schema.System || !strings.Contains(fm.input[0].Content, "観光案内") ||
		!strings.Contains(fm.input[0].Content, "兼六園 - 日本三名園のひとつ。") {
		t.Fatalf("unexpected system message: %+v", fm.input[0])
	}
	if fm.input[2].Role != schema.Assistant {
		t.Fatalf("expected assistant history turn, got %s", fm.input[2].Role)
	}
	if fm.input[3].Role != schema.User || fm.input[3].Content != "兼六園の開園時間は？" {
		t.Fatalf("unexpected query message: %+v", fm.input[3])
	}
}

func TestServiceAnswerRejectsEmptyReply(t *testing.T) {
	svc, err := NewServiceWithModel(context.Background(), &fakeModel{reply: " \n"}, nil)
	if err != nil {
		t.Fatalf("NewServiceWithModel err: %v", err)
	}

	_, err = svc.Answer(context.Background(), Request{Guide: tourismGuide(t), Query: "q"})
	if !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
}

func TestServiceAnswerWrapsModelError(t *testing.T) {
	boom := errors.New("upstream unavailable")
	svc, err := NewServiceWithModel(context.Background(), &fakeModel{err: boom}, nil)
	if err != nil {
		t.Fatalf("NewServiceWithModel err: %v", err)
	}

	if _, err := svc.Answer(context.Background(), Request{Guide: tourismGuide(t), Query: "q"}); err == nil {
		t.Fatal("expected model error")
	}
}

func TestPlaceholderAnswer(t *testing.T) {
	answer, err := Placeholder{}.Answer(context.Background(), Request{Query: "q"})
	if err != nil || answer != PlaceholderAnswer {
		t.Fatalf("unexpected placeholder result %q, %v", answer, err)
	}
}

func TestBuildSystemPromptIncludesGuideRules(t *testing.T) {
	g := tourismGuide(t)
	p := BuildSystemPrompt(g, "")
	if !strings.HasPrefix(p, g.Prompt) {
		t.Fatalf("prompt should start with guide prompt: %q", p)
	}
	for _, rule := range g.Rules {
		if !strings.Contains(p, rule) {
			t.Fatalf("prompt missing rule %q", rule)
		}
	}
	if strings.Contains(p, "参考") {
		t.Fatalf("prompt without reference should not mention one: %q", p)
	}

	withRef := BuildSystemPrompt(g, "金沢駅(train_station)\n")
	if !strings.HasSuffix(withRef, "\n金沢駅(train_station)") {
		t.Fatalf("reference should close the prompt: %q", withRef)
	}
}
