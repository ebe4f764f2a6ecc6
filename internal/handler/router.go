package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/config"
	"github.com/kanazawa-chat/anything-chat/internal/handler/chat"
	guideHandler "github.com/kanazawa-chat/anything-chat/internal/handler/guide"
	mcpHandler "github.com/kanazawa-chat/anything-chat/internal/handler/mcp"
	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
	aiService "github.com/kanazawa-chat/anything-chat/internal/service/ai"
	chatService "github.com/kanazawa-chat/anything-chat/internal/service/chat"
	mcpService "github.com/kanazawa-chat/anything-chat/internal/service/mcp"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
)

// Deps bundles what the router wires into handlers.
type Deps struct {
	Guides   guide.Store
	Chat     *chatService.Service
	Tools    *mcpService.Service
	Answerer aiService.Answerer
	HTTP     config.HTTPConfig
	History  config.HistoryConfig
	Logger   *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(logger, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var references chat.ReferenceSource
	if deps.Tools != nil {
		references = deps.Tools
	}
	chatHandler := chat.New(deps.Chat, deps.Guides, references, deps.Answerer, deps.History.Limit, logger)
	guides := guideHandler.New(deps.Guides, logger)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		guides.RegisterRoutes(api)
	})

	if deps.Tools != nil {
		tools := mcpHandler.New(deps.Tools, logger)
		r.Route("/mcp", tools.RegisterRoutes)
	}

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
