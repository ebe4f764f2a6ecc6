package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when API_BASE_URL is unset.
const DefaultAPIBaseURL = "http://localhost:8000"

// LoadDotEnv は .env ファイルを読み込む。path が空ならカレントの .env を試し、
// 存在しなくてもエラーにしない。読み込んだパスを返す。
func LoadDotEnv(path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("load env file %q: %w", path, err)
	}
	return path, nil
}

// ClientConfig はターミナルクライアントの設定。
type ClientConfig struct {
	APIBaseURL string        `env:"API_BASE_URL"`
	Timeout    time.Duration `env:"CHAT_TIMEOUT" envDefault:"30s"`
	LogFile    string        `env:"CHAT_LOG_FILE"`
	Debug      bool          `env:"CHAT_DEBUG" envDefault:"false"`
}

// LoadClient は環境変数からクライアント設定を読み込む。
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse client config: %w", err)
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if base == "" {
		base = DefaultAPIBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid API_BASE_URL value %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = base

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid CHAT_TIMEOUT value %s: must be positive", cfg.Timeout)
	}

	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "anything-chat.log")
	}

	return &cfg, nil
}

// ServerConfig は開発用バックエンドの設定。
type ServerConfig struct {
	HTTP    HTTPConfig
	AI      AIConfig
	History HistoryConfig
	MCP     MCPConfig
}

// HTTPConfig は HTTP サーバーの設定。
type HTTPConfig struct {
	Port           string   `env:"PORT" envDefault:"8000"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Addr is derived from Port.
	Addr string
}

// AIConfig は LLM 関連の設定。
type AIConfig struct {
	APIKey      string  `env:"ARK_API_KEY"`
	AccessKey   string  `env:"ARK_ACCESS_KEY"`
	SecretKey   string  `env:"ARK_SECRET_KEY"`
	Model       string  `env:"ARK_MODEL"`
	BaseURL     string  `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region      string  `env:"ARK_REGION" envDefault:"cn-beijing"`
	Temperature float64 `env:"ARK_TEMPERATURE" envDefault:"0.2"`
	MaxTokens   int     `env:"ARK_MAX_TOKENS" envDefault:"500"`
}

// HistoryConfig bounds how much of a session is replayed to the model.
type HistoryConfig struct {
	Limit int `env:"CHAT_HISTORY_LIMIT" envDefault:"10"`
}

// MCPConfig はツール層の設定。CacheTTL が 0 ならキャッシュしない。
type MCPConfig struct {
	CacheTTL time.Duration `env:"MCP_CACHE_TTL" envDefault:"1h"`
}

// LoadServer は環境変数からバックエンド設定を読み込む。
func LoadServer() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}

	addr, err := listenAddr(cfg.HTTP.Port)
	if err != nil {
		return nil, err
	}
	cfg.HTTP.Addr = addr

	trimmed := cfg.HTTP.AllowedOrigins[:0]
	for _, origin := range cfg.HTTP.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			trimmed = append(trimmed, origin)
		}
	}
	cfg.HTTP.AllowedOrigins = trimmed

	if cfg.History.Limit < 1 {
		cfg.History.Limit = 1
	}
	if cfg.MCP.CacheTTL < 0 {
		return nil, fmt.Errorf("invalid MCP_CACHE_TTL value %s", cfg.MCP.CacheTTL)
	}
	if cfg.AI.MaxTokens < 1 {
		return nil, fmt.Errorf("invalid ARK_MAX_TOKENS value %d", cfg.AI.MaxTokens)
	}

	cfg.AI.APIKey = strings.TrimSpace(cfg.AI.APIKey)
	cfg.AI.AccessKey = strings.TrimSpace(cfg.AI.AccessKey)
	cfg.AI.SecretKey = strings.TrimSpace(cfg.AI.SecretKey)
	cfg.AI.Model = strings.TrimSpace(cfg.AI.Model)

	return &cfg, nil
}

// listenAddr は待ち受けアドレスを解決する。
func listenAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	if strings.Contains(port, ":") {
		// ":8000" や "127.0.0.1:8000" もそのまま受け付ける。
		return port, nil
	}

	return ":" + port, nil
}

// Enabled は必要な認証情報が揃っているかを返す。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel は設定からチャットモデルを生成する。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_MODEL and ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	temperature := float32(c.Temperature)
	maxTokens := c.MaxTokens

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}
