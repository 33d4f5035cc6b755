package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shui/internal/config"
	"shui/internal/db"
	apihttp "shui/internal/http"
	"shui/internal/repository"
	"shui/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run devuelve el error en vez de salir, asi los defer (cierre del store, Sync del logger) se ejecutan.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	messageRepo, closeStore, err := newMessageRepository(ctx, cfg)
	if err != nil {
		logger.Error("store init", zap.String("backend", cfg.StoreBackend), zap.Error(err))
		return fmt.Errorf("store init: %w", err)
	}
	defer closeStore()

	messageSvc := service.NewMessageService(logger, messageRepo)
	messageHandler := apihttp.NewMessageHandler(logger, messageSvc)
	router := apihttp.NewRouter(logger, messageHandler, cfg.CORSAllowOrigin)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend", cfg.StoreBackend),
		zap.String("table", cfg.TableName),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

// newMessageRepository construye el backend elegido y devuelve su funcion de cierre.
func newMessageRepository(ctx context.Context, cfg *config.Config) (repository.MessageRepository, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("db ping: %w", err)
		}
		repo := repository.NewPgMessageRepository(pool, cfg.TableName)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, pool.Close, nil

	case config.BackendDynamoDB:
		client, err := db.NewDynamoClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewDynamoMessageRepository(client, cfg.TableName), noop, nil

	case config.BackendRedis:
		client, err := db.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisMessageRepository(client, cfg.TableName), func() { _ = client.Close() }, nil

	case config.BackendBadger:
		bdb, err := db.OpenBadger(cfg)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewBadgerMessageRepository(bdb, cfg.TableName), func() { _ = bdb.Close() }, nil

	case config.BackendSQLite:
		sdb, err := db.OpenSQLite(cfg)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewSQLiteMessageRepository(sdb, cfg.TableName)
		if err := repo.EnsureSchema(ctx); err != nil {
			sdb.Close()
			return nil, noop, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, func() { _ = sdb.Close() }, nil

	case config.BackendMemory:
		return repository.NewMemoryMessageRepository(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
