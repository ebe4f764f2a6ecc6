// Package main is the development backend serving POST /api/chat.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/config"
	"github.com/kanazawa-chat/anything-chat/internal/handler"
	"github.com/kanazawa-chat/anything-chat/internal/logging"
	"github.com/kanazawa-chat/anything-chat/internal/model/guide"
	"github.com/kanazawa-chat/anything-chat/internal/service/ai"
	"github.com/kanazawa-chat/anything-chat/internal/service/chat"
	"github.com/kanazawa-chat/anything-chat/internal/service/mcp"
)

// Set by ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "金沢市なんでもチャット - development backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env")
			debug, _ := cmd.Flags().GetBool("debug")
			return serve(cmd.Context(), envFile, debug)
		},
	}
	root.PersistentFlags().String("env", "", "path to an env file (defaults to ./.env when present)")
	root.Flags().Bool("debug", false, "enable debug logging")
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the backend version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "api %s\n", version)
		},
	})
	return root
}

func serve(ctx context.Context, envFile string, debug bool) error {
	loaded, err := config.LoadDotEnv(envFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Debug: debug, Name: "api"})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer zap.ReplaceGlobals(logger)()

	if loaded != "" {
		logger.Info("loaded env file", zap.String("path", loaded))
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var answerer ai.Answerer = ai.Placeholder{}
	if cfg.AI.Enabled() {
		svc, err := ai.NewService(ctx, cfg.AI, logger)
		if err != nil {
			logger.Warn("failed to initialize AI service, answering with placeholder", zap.Error(err))
		} else {
			answerer = svc
			logger.Info("AI service initialized", zap.String("model", cfg.AI.Model))
		}
	} else {
		logger.Info("ark credentials not configured, answering with placeholder")
	}

	tools := mcp.NewService(mcp.Seed(),
		mcp.WithCacheTTL(cfg.MCP.CacheTTL),
		mcp.WithLogger(logger))

	router := handler.NewRouter(handler.Deps{
		Guides:   guide.NewMemoryStore(guide.Seed()),
		Chat:     chat.NewService(),
		Tools:    tools,
		Answerer: answerer,
		HTTP:     cfg.HTTP,
		History:  cfg.History,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("backend listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.Strings("allowed_origins", cfg.HTTP.AllowedOrigins))
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("backend stopped")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
