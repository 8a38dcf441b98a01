// Package main реализует точку входа сервиса заметок.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
	"gonotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStorage          = "failed to open storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	showUsage := flag.Bool("usage", false, "print supported environment variables and exit")
	flag.Parse()
	if *showUsage {
		fmt.Println(config.Usage())
		return
	}

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		store, err := openStorage(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.ServiceConfig(), cfg.JWT.BCryptCost)

		log.Info(ctx, LogInitUseCases)
		noteUseCase := app.NewNoteUseCase(store.notes)
		authUseCase := app.NewAuthUseCase(
			store.users,
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
			store.revocations,
		)

		limiterCtx, stopLimiter := context.WithCancel(ctx)
		defer stopLimiter()

		var limiter *middleware.RateLimiter
		if cfg.RateLimit.Enabled {
			limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, middleware.DefaultIdleTTL)
			go limiter.Run(limiterCtx)
		}

		log.Info(ctx, LogInitHTTPServer)
		server := http.NewApp(cfg.HTTP, http.Dependencies{
			Notes:   noteUseCase,
			Auth:    authUseCase,
			Health:  store.notes,
			Limiter: limiter,
		})

		serverErr := make(chan error, 1)
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				serverErr <- err
			}
		}()

		waitCtx, cancelWait := context.WithCancel(ctx)
		defer cancelWait()
		go func() {
			select {
			case <-serverErr:
				exitCode = 1
				cancelWait()
			case <-waitCtx.Done():
			}
		}()

		hooks := []shutdown.Hook{
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
			func(context.Context) error {
				stopLimiter()
				return nil
			},
		}
		hooks = append(hooks, store.closers...)

		if err := shutdown.Wait(waitCtx, cfg.Shutdown.Timeout, hooks...); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
