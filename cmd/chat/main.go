// Package main is the terminal client for the Kanazawa City chat assistant.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kanazawa-chat/anything-chat/internal/client"
	"github.com/kanazawa-chat/anything-chat/internal/config"
	"github.com/kanazawa-chat/anything-chat/internal/logging"
	"github.com/kanazawa-chat/anything-chat/internal/model/chat"
	"github.com/kanazawa-chat/anything-chat/internal/service/conversation"
	"github.com/kanazawa-chat/anything-chat/internal/store"
	"github.com/kanazawa-chat/anything-chat/internal/tui"
	"github.com/kanazawa-chat/anything-chat/pkg/utils"
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

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.ClientConfig
	logger *zap.Logger
	store  *store.Store
	client *client.Client
}

func setup(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env")
	loaded, err := config.LoadDotEnv(envFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Debug: cfg.Debug, Name: "chat"})
	if err != nil {
		return nil, err
	}
	if loaded != "" {
		logger.Info("loaded env file", zap.String("path", loaded))
	}

	c, err := client.New(cfg.APIBaseURL, client.WithLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	logger.Info("client configured",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("timeout", cfg.Timeout))

	return &app{cfg: cfg, logger: logger, store: store.New(), client: c}, nil
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chat",
		Short:         "金沢市なんでもチャット - terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()
			return runInteractive(cmd.Context(), a)
		},
	}
	root.PersistentFlags().String("env", "", "path to an env file (defaults to ./.env when present)")
	root.AddCommand(askCmd(), versionCmd())
	return root
}

func runInteractive(ctx context.Context, a *app) error {
	bridge := tui.NewBridge()
	unsubscribe := a.store.Subscribe(bridge.Observe)
	defer unsubscribe()

	sender := conversation.New(a.store, a.client, bridge,
		conversation.WithTimeout(a.cfg.Timeout),
		conversation.WithLogger(a.logger.Named("conversation")))

	return tui.Run(ctx, tui.New(ctx, a.store, sender, bridge))
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the exchange",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			question := strings.Join(args, " ")
			notifier := conversation.NotifierFunc(func(n conversation.Notice) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", n.Level, n.Title, n.Description)
			})

			a.store.InitializeSession()
			sender := conversation.New(a.store, a.client, notifier,
				conversation.WithTimeout(a.cfg.Timeout),
				conversation.WithLogger(a.logger.Named("conversation")))

			outcome := sender.Send(cmd.Context(), question)
			printLog(cmd.OutOrStdout(), a.store.Snapshot())

			switch outcome {
			case conversation.OutcomeAnswered:
				return nil
			case conversation.OutcomeIgnored:
				return fmt.Errorf("question is empty")
			default:
				return fmt.Errorf("question was not answered (%s)", outcome)
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chat %s\n", version)
		},
	}
}

func printLog(w io.Writer, snap chat.Snapshot) {
	for _, m := range snap.Messages {
		who := "あなた"
		if m.Role == chat.RoleAssistant {
			who = "アシスタント"
		}
		fmt.Fprintf(w, "[%s] %s:\n%s\n\n", utils.FormatTime(m.Timestamp), who, m.Content)
	}
}
