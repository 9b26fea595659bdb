// Package server holds the application container: configuration, loggers
// and the shared PostgreSQL, Redis and background job resources, plus the
// HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fitquest/backend/internal/config"
	"github.com/fitquest/backend/internal/database"
	"github.com/fitquest/backend/internal/lib/job"
	loggerPkg "github.com/fitquest/backend/internal/logger"
	"github.com/fitquest/backend/internal/metrics"
)

const redisPingTimeout = 5 * time.Second

// Server is the dependency container handed to services and handlers.
type Server struct {
	// Config is the validated application config.
	Config *config.Config

	// Logger is the root logger. Request scoped loggers derive from it.
	Logger *zerolog.Logger

	// LoggerService owns the New Relic application, nil-safe when disabled.
	LoggerService *loggerPkg.LoggerService

	// DB wraps the pgx pool shared by every repository.
	DB *database.Database

	// Redis is the shared client pinged by /status. Asynq dials its own.
	Redis *redis.Client

	// Job enqueues and runs background tasks such as article notifications.
	Job *job.JobService

	// Metrics is the Prometheus registry served on /metrics.
	Metrics *metrics.Metrics

	httpServer *http.Server
}

// closer is a named resource released during shutdown or failed startup.
type closer struct {
	name  string
	close func() error
}

// New connects to PostgreSQL and Redis and starts the job worker.
//
// Behavior:
//   - Open the pgx pool; an unreachable database aborts startup
//   - Create the Redis client and attach the New Relic hook when enabled
//   - Ping Redis; a failure is only logged and /status reports it as down
//   - Register job handlers and start the asynq worker
//   - If the worker fails to start: close Redis and the pool, log each
//     close error, and return the start error
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis, continuing without redis")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		closeErr := closeAll(logger,
			closer{name: "redis", close: redisClient.Close},
			closer{name: "database", close: db.Close},
		)
		return nil, errors.Join(fmt.Errorf("failed to start job server: %w", err), closeErr)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
		Metrics:       metrics.New(),
	}, nil
}

// closeAll releases resources in order. Every failure is logged and the
// joined errors are returned.
func closeAll(logger *zerolog.Logger, closers ...closer) error {
	var closeErr error
	for _, c := range closers {
		if err := c.close(); err != nil {
			logger.Error().Err(err).Str("resource", c.name).Msg("failed to close resource")
			closeErr = errors.Join(closeErr, fmt.Errorf("failed to close %s: %w", c.name, err))
		}
	}
	return closeErr
}

// SetupHTTPServer wraps handler in an http.Server using the configured
// port and timeouts.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then releases every shared resource.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	var closers []closer
	if s.DB != nil {
		closers = append(closers, closer{name: "database", close: s.DB.Close})
	}
	if s.Redis != nil {
		closers = append(closers, closer{name: "redis", close: s.Redis.Close})
	}
	shutdownErr = errors.Join(shutdownErr, closeAll(s.Logger, closers...))

	s.LoggerService.Shutdown()

	return shutdownErr
}
