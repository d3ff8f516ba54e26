package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"lingualink/api"
	"lingualink/auth"
	"lingualink/internal"
	"lingualink/moderation"
	"lingualink/observability"
	"lingualink/repositories"
	"lingualink/runtime"
	"lingualink/runtime/workers"
	"lingualink/services"
	"lingualink/translation"
	"lingualink/ws"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	log := internal.LoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	// Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	roomRepository := repositories.NewRoomRepository(db, userRepository, messageRepository)
	searchRepository := repositories.NewSearchRepository(blugeWriter, log)

	// 3. Moderation & Translation
	var censoredWords []string
	if config.CensoredWordsPath != "" {
		censoredWords, err = moderation.LoadWords(config.CensoredWordsPath)
		if err != nil {
			return exitConfig, fmt.Errorf("loading censored words: %w", err)
		}
	}
	moderator, err := moderation.NewModerator(censoredWords, charReplacement, log)
	if err != nil {
		return exitConfig, fmt.Errorf("building moderator: %w", err)
	}

	var backend translation.Backend
	if config.TranslatorURL == "stub" {
		log.Warn("Using the stub translation backend")
		backend = translation.NewStubBackend()
	} else {
		backend = translation.NewHTTPBackend(config.TranslatorURL)
	}
	translator := translation.NewService(backend, config.TranslationTimeout, log)

	// 4. Runtime & Observability
	registry := runtime.NewRegistry()
	monitor := observability.NewMonitor(log, registry.Count)

	tokens := auth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens)
	userService := services.NewUserService(userRepository)
	chatService := services.NewChatService(roomRepository, messageRepository, searchRepository)

	sink := ws.NewDeliverySink(log)
	relay := services.NewRelayService(
		log, roomRepository, messageRepository, searchRepository,
		translator, registry, &moderator, monitor, sink,
		config.FallbackLanguage, config.MaxContentLength,
	)
	defer relay.Wait()

	router := ws.NewRouter(log, authService, chatService, relay, registry, monitor, config.ConnectionBufferSize)
	server := api.NewServer(log, authService, userService, chatService, relay, monitor, router)

	// 5. Context, Signals & Supervision
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewLivenessWorker(log, registry, monitor, config.HeartbeatInterval),
		workers.NewMetricsWorker(log, monitor, config.MetricInterval),
	)
	supervisionDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supervisionDone)
	}()

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use an error channel to capture Serve() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "err", err)
	}
	sup.Stop()
	<-supervisionDone
	log.Info("Program stopped cleanly")

	return exitOK, nil
}
