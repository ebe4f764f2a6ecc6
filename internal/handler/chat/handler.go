package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
	"github.com/kanazawa-chat/anything-chat/internal/service/ai"
	chatService "github.com/kanazawa-chat/anything-chat/internal/service/chat"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
)

// Request は POST /api/chat のリクエストボディ。
type Request struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// Response は POST /api/chat のレスポンスボディ。
type Response struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// ReferenceSource はガイドが指定するツールを実行し、プロンプト用の参考情報を返す。
type ReferenceSource interface {
	Reference(ctx context.Context, tool, query string) (string, error)
}

// Handler チャットAPIのHTTPハンドラ
type Handler struct {
	chatSvc      *chatService.Service
	guides       guide.Store
	references   ReferenceSource
	answerer     ai.Answerer
	historyLimit int
	logger       *zap.Logger
}

// New チャットハンドラを生成する。references が nil なら参考情報なしで回答する。
func New(chatSvc *chatService.Service, guides guide.Store, references ReferenceSource, answerer ai.Answerer, historyLimit int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		chatSvc:      chatSvc,
		guides:       guides,
		references:   references,
		answerer:     answerer,
		historyLimit: historyLimit,
		logger:       logger.Named("chat"),
	}
}

// RegisterRoutes チャット関連のルートを登録する
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat 質問を受け取り回答を返す
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := chat.TrimContent(payload.Query)
	if query == "" {
		utils.RespondError(h.logger, w, http.StatusBadRequest, "query is required")
		return
	}
	if chat.TooLong(query) {
		utils.RespondError(h.logger, w, http.StatusBadRequest, "query is too long")
		return
	}

	sessionID := strings.TrimSpace(payload.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := r.Context()
	if _, err := h.chatSvc.EnsureSession(ctx, sessionID); err != nil {
		utils.RespondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.chatSvc.Recent(ctx, sessionID, h.historyLimit)
	if err != nil {
		h.logger.Error("load history failed", zap.String("session", sessionID), zap.Error(err))
		utils.RespondError(h.logger, w, http.StatusInternalServerError, "failed to load history")
		return
	}

	g := h.guides.Match(query)
	reference := h.reference(ctx, g, query)
	answer, err := h.answerer.Answer(ctx, ai.Request{Guide: g, Reference: reference, History: history, Query: query})
	if err != nil {
		h.logger.Error("answer failed",
			zap.String("session", sessionID),
			zap.String("guide", g.ID),
			zap.Error(err),
		)
		utils.RespondError(h.logger, w, http.StatusInternalServerError, "failed to generate answer")
		return
	}

	for _, draft := range []chat.Draft{
		{Role: chat.RoleUser, Content: query},
		{Role: chat.RoleAssistant, Content: answer},
	} {
		if _, err := h.chatSvc.SaveMessage(ctx, sessionID, draft); err != nil {
			h.logger.Warn("save turn failed", zap.String("session", sessionID), zap.Error(err))
		}
	}

	h.logger.Info("answered",
		zap.String("session", sessionID),
		zap.String("guide", g.ID),
		zap.Int("history", len(history)),
	)
	utils.RespondJSON(h.logger, w, http.StatusOK, Response{Answer: answer, SessionID: sessionID})
}

// reference はツール結果を取得する。失敗しても回答は続ける。
func (h *Handler) reference(ctx context.Context, g guide.Guide, query string) string {
	if h.references == nil || g.Tool == "" {
		return ""
	}
	ref, err := h.references.Reference(ctx, g.Tool, query)
	if err != nil {
		h.logger.Warn("tool reference failed",
			zap.String("guide", g.ID),
			zap.String("tool", g.Tool),
			zap.Error(err),
		)
		return ""
	}
	return ref
}
