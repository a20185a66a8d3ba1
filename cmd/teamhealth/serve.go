package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/config"
	"github.com/jonathan/teamhealth/internal/counter"
	"github.com/jonathan/teamhealth/internal/db"
	"github.com/jonathan/teamhealth/internal/llm"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/notify"
	"github.com/jonathan/teamhealth/internal/server"
	"github.com/jonathan/teamhealth/internal/server/ratelimit"
	"github.com/jonathan/teamhealth/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the quiz catalog, scoring, quiz sessions, PDF reports, notifications, the completion counter and meeting analysis.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	quizzes, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	completions, closeCounter, err := buildCounter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCounter()

	deps := server.Dependencies{
		Logger:    logger,
		Quizzes:   quizzes,
		Counter:   completions,
		RateLimit: ratelimit.LoadConfig(),
	}

	if cfg.ResendAPIKey != "" && cfg.AdminEmail != "" {
		deps.Notifier = notify.New(notify.NewResendSender(cfg.ResendAPIKey),
			notify.Config{From: cfg.FromAddress, AdminEmail: cfg.AdminEmail},
			logger.Named("notify"))
	} else {
		logger.Warn("notifications disabled: resend_api_key and admin_email are required")
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		deps.Analyzer = analysis.NewAnalyzer(client, logger.Named("analysis"))
	} else {
		logger.Warn("meeting analysis disabled: gemini_api_key is not set")
	}

	srv := server.New(server.Config{
		Port:       cfg.Port,
		SessionTTL: cfg.SessionTTLDuration(session.DefaultTTL),
	}, deps)

	return srv.Start()
}

// loadRegistry returns the built-in quizzes plus any YAML definitions in the catalog directory
func loadRegistry(cfg config.Config) (*catalog.Registry, error) {
	registry := catalog.Default()
	if cfg.CatalogDir != "" {
		n, err := registry.LoadDir(cfg.CatalogDir)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded quiz definitions", zap.String("dir", cfg.CatalogDir), zap.Int("count", n))
	}
	warnMissingActions(registry)
	return registry, nil
}

// warnMissingActions logs categories of action-report quizzes that will fall back to the placeholder text
func warnMissingActions(registry *catalog.Registry) {
	for _, q := range registry.List() {
		if q.Report != catalog.ReportActions {
			continue
		}
		keys := make([]catalog.CategoryKey, 0, len(q.Categories))
		for _, c := range q.Categories {
			keys = append(keys, c.Key)
		}
		for key, tiers := range maturity.TeamActions.Missing(keys) {
			logger.Warn("no recommended actions for category",
				zap.String("quiz", string(q.Kind)),
				zap.String("category", string(key)),
				zap.Int("missing_tiers", len(tiers)))
		}
	}
}

// buildCounter connects the configured completion counter backend. The returned func releases it.
func buildCounter(ctx context.Context, cfg config.Config) (counter.Counter, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.CounterBackend {
	case config.CounterPostgres:
		database, err := db.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(connectCtx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info("completion counter backend", zap.String("backend", "postgres"))
		return counter.NewPostgres(database), database.Close, nil

	case config.CounterRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis_url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(connectCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		logger.Info("completion counter backend", zap.String("backend", "redis"))
		return counter.NewRedis(client, counter.DefaultRedisKey), func() { _ = client.Close() }, nil

	default:
		logger.Info("completion counter backend", zap.String("backend", "memory"))
		return counter.NewMemory(0), func() {}, nil
	}
}
