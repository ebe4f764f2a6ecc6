package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// RespondJSON はJSONレスポンスを書き込む。エンコード失敗は logger に記録する。
func RespondJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

// RespondError は {"error": message} を返す。
func RespondError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	RespondJSON(logger, w, status, map[string]string{"error": message})
}
