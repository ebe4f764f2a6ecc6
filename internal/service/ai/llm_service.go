package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/config"
	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
)

// PlaceholderAnswer is returned while no language model is configured.
const PlaceholderAnswer = "ご質問ありがとうございます！\n現在、APIの実装中です。\nもうしばらくお待ちください。"

// ErrEmptyAnswer is returned when the model produced no text.
var ErrEmptyAnswer = errors.New("model returned an empty answer")

// Request is one question with everything the answer may draw on.
// Reference is tool output rendered for the system prompt.
type Request struct {
	Guide     guide.Guide
	Reference string
	History   []chat.Message
	Query     string
}

// Answerer produces an answer for a question in the context of a guide and
// the prior turns of the session.
type Answerer interface {
	Answer(ctx context.Context, req Request) (string, error)
}

// Placeholder answers every question with PlaceholderAnswer.
type Placeholder struct{}

// Answer implements Answerer.
func (Placeholder) Answer(context.Context, Request) (string, error) {
	return PlaceholderAnswer, nil
}

// Service encapsulates AI-powered chat functionality
type Service struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	logger *zap.Logger
}

// NewService creates a new AI service instance backed by ark.
func NewService(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, logger)
}

// NewServiceWithModel builds the prompt chain around an existing model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable, logger: logger.Named("ai")}, nil
}

// Answer implements Answerer.
func (s *Service) Answer(ctx context.Context, req Request) (string, error) {
	input := map[string]any{
		"system":  BuildSystemPrompt(req.Guide, req.Reference),
		"history": historyMessages(req.History),
		"query":   req.Query,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	answer := strings.TrimSpace(response.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	s.logger.Debug("generated answer",
		zap.String("guide", req.Guide.ID),
		zap.Bool("reference", req.Reference != ""),
		zap.Int("history", len(req.History)),
		zap.Int("length", len(answer)),
	)
	return answer, nil
}

func historyMessages(messages []chat.Message) []*schema.Message {
	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
