package guide

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
)

// Handler exposes the configured guides.
type Handler struct {
	guides guide.Store
	logger *zap.Logger
}

// New creates the guide handler.
func New(guides guide.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{guides: guides, logger: logger.Named("guide")}
}

// RegisterRoutes registers guide routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/guides", h.handleListGuides)
}

func (h *Handler) handleListGuides(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(h.logger, w, http.StatusOK, h.guides.List())
}
