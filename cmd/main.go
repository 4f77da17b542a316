package main

import (
	"chat-relay/auth"
	"chat-relay/infrastructure/http/server"
	"chat-relay/infrastructure/websocket"
	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/search"
	"chat-relay/services"
	"chat-relay/storage"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until a signal stops the relay.
// Returning instead of exiting lets the deferred cleanups run.
func run() error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, config.OtelEndpoint, config.ServiceName)
	if err != nil {
		return fmt.Errorf("tracing setup failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// 2. Storage
	db, err := badger.Open(buildBadgerOpts(config, log, ctx))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	sequences, err := repositories.NewSequences(db)
	if err != nil {
		return fmt.Errorf("sequences: %w", err)
	}
	defer func() { _ = sequences.Release() }()

	userRepository := repositories.NewUserRepository(db, sequences)
	messageRepository := repositories.NewMessageRepository(db, sequences, log)
	chatRepository := repositories.NewChatRepository(db)
	transactor := repositories.NewTransactor(db, sequences)

	index, err := search.NewUserIndex(config.BlugeFilepath)
	if err != nil {
		return fmt.Errorf("user index: %w", err)
	}
	defer func() { _ = index.Close() }()
	users, err := userRepository.ListUsers()
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if err = index.Rebuild(users); err != nil {
		return fmt.Errorf("indexing users: %w", err)
	}
	log.Info("User index ready", "users", len(users))

	attachments, imagesDir, err := buildAttachmentStore(ctx, config, log)
	if err != nil {
		return err
	}

	// 3. Delivery core
	metrics := observability.NewMetrics()
	registry := runtime.NewRegistry()
	fanout := workers.NewEventFanout(log, registry, metrics, config.SinkTimeout)

	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	policy := auth.DefaultPolicy()

	chatService := services.NewChatService(log, messageRepository, chatRepository, transactor,
		fanout, attachments, metrics, services.FanoutScope(config.MessageFanoutScope))
	if config.CensoredWordsFile != "" {
		filter, err := buildContentFilter(config)
		if err != nil {
			return err
		}
		chatService.WithContentFilter(filter)
		log.Info("Moderation enabled", "words_file", config.CensoredWordsFile)
	}
	authService := services.NewAuthService(log, userRepository, tokens, index)
	userService := services.NewUserService(log, userRepository, index, attachments, policy)

	sessionConfig := websocket.DefaultSessionConfig()
	sessionConfig.BufferSize = config.ConnectionBufferSize
	sessionConfig.MaxMessageSize = config.MaxMessageSize
	gatekeeper := websocket.NewGatekeeper(log, tokens, registry, chatService, metrics,
		websocket.NewOriginPolicy(config.Origins(), log), sessionConfig)

	// 4. HTTP surface
	handler := server.NewHandler(log, chatService, userService, authService,
		repositories.NewInspector(db), policy, config.MaxUploadSize)
	router := server.NewRouter(log, handler, server.Routes{
		Verifier:   tokens,
		Gatekeeper: gatekeeper,
		Metrics:    metrics.Handler(),
		Stats:      registry,
		ImagesDir:  imagesDir,
	})

	// 5. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		server.NewServerWorker(log, config.Address(), router, config.ShutdownTimeout, gatekeeper.CloseAll),
		workers.NewValueLogGCWorker(log, db, config.ValueLogGCInterval, metrics),
		workers.NewHeartbeatWorker(log, config.HeartbeatInterval, registry, metrics),
	)

	log.Info("Relay started", "address", config.Address(), "fanout_scope", config.MessageFanoutScope,
		"attachments", config.AttachmentBackend)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func buildContentFilter(config internal.Config) (*moderation.Filter, error) {
	mask, err := config.CensorRune()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(config.CensoredWordsFile)
	if err != nil {
		return nil, fmt.Errorf("censored words: %w", err)
	}
	defer file.Close()
	words, err := moderation.ReadWords(file)
	if err != nil {
		return nil, fmt.Errorf("censored words: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("censored words: %s is empty", config.CensoredWordsFile)
	}
	return moderation.NewFilter(words, mask)
}

// buildAttachmentStore returns the configured backend and, for the disk
// backend, the directory served under /images/.
func buildAttachmentStore(ctx context.Context, config internal.Config, log *slog.Logger) (storage.AttachmentStore, string, error) {
	if config.AttachmentBackend == internal.AttachmentBackendMinio {
		store, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			UseSSL:    config.MinioUseSSL,
			Bucket:    config.MinioBucket,
		}, log)
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		if err = store.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("minio bucket: %w", err)
		}
		return store, "", nil
	}
	store, err := storage.NewDiskStore(config.AttachmentDir, log)
	if err != nil {
		return nil, "", fmt.Errorf("attachment dir: %w", err)
	}
	return store, store.Dir(), nil
}
