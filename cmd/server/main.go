package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"claudechat-backend/internal/api"
	"claudechat-backend/internal/config"
	"claudechat-backend/internal/gateway"
	"claudechat-backend/internal/handlers"
	"claudechat-backend/internal/services"
	"claudechat-backend/internal/store/memory"
)

func main() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Msg("starting claudechat backend")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(parseZerologLevel(cfg.LogLevel))
	if config.APIKey() == "" {
		log.Warn().Str("env", config.APIKeyEnv).Msg("model API key is not set; every turn will fall back")
	}

	// 2. Initialize Dependencies (Store, Gateway, Services, Handlers)
	sessionStore := memory.NewMemoryStore()
	gw := gateway.NewAnthropicGateway(gateway.Config{
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		BaseURL:   cfg.AnthropicBaseURL,
	}, config.APIKey)
	chatService := services.NewChatService(sessionStore, gw, cfg.JWTSecret, cfg.TokenExpiration)
	chatHandler := handlers.NewChatHandlers(chatService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := services.NewSessionSweeper(sessionStore, cfg.SessionIdleTimeout, cfg.SweepInterval)
	go sweeper.Run(ctx)

	// 3. Setup Router
	router := api.NewRouter(api.RouterDependencies{
		ChatHandler: chatHandler,
		Config:      cfg,
		Logger:      log.Logger,
	})

	// 4. Configure and Start HTTP Server
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Turns are never aborted, so the write timeout has to cover a full model reply.
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("addr", server.Addr).Msg("could not listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, initiating graceful shutdown")

	// In-flight turns get the write timeout to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server shutdown complete")
}

// parseZerologLevel converts a string level into zerolog.Level with a safe default
func parseZerologLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
