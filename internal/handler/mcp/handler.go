package mcp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/service/mcp"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
)

// ExecuteRequest は POST /mcp/execute のリクエストボディ。
type ExecuteRequest struct {
	ToolName string         `json:"tool_name"`
	Params   map[string]any `json:"params"`
}

// ExecuteResponse は POST /mcp/execute のレスポンスボディ。
type ExecuteResponse struct {
	Result any `json:"result"`
}

// Handler ツールAPIのHTTPハンドラ
type Handler struct {
	tools  *mcp.Service
	logger *zap.Logger
}

// New ツールハンドラを生成する
func New(tools *mcp.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{tools: tools, logger: logger.Named("mcp")}
}

// RegisterRoutes ツール関連のルートを登録する
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/tools", h.handleListTools)
	r.Post("/execute", h.handleExecute)
}

func (h *Handler) handleListTools(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(h.logger, w, http.StatusOK, h.tools.Tools())
}

func (h *Handler) handleExecute(w http.ResponseWriter, r *http.Request) {
	var payload ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ToolName == "" {
		utils.RespondError(h.logger, w, http.StatusBadRequest, "tool_name is required")
		return
	}

	result, err := h.tools.Execute(r.Context(), payload.ToolName, payload.Params)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, mcp.ErrUnknownTool):
			status = http.StatusNotFound
		case errors.Is(err, mcp.ErrInvalidParams):
			status = http.StatusBadRequest
		default:
			h.logger.Error("tool execution failed", zap.String("tool", payload.ToolName), zap.Error(err))
		}
		utils.RespondError(h.logger, w, status, err.Error())
		return
	}

	utils.RespondJSON(h.logger, w, http.StatusOK, ExecuteResponse{Result: result})
}
