// Package job runs background work on asynq, backed by the shared Redis.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/fitquest/backend/internal/config"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"

	workerConcurrency = 10
)

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	mailer   articleMailer
	notifyTo string
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redis := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	j := &JobService{
		Client: asynq.NewClient(redis),
		logger: logger,
	}

	j.server = asynq.NewServer(redis, asynq.Config{
		Concurrency: workerConcurrency,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
		Logger:       newAsynqLogger(logger),
		ErrorHandler: asynq.ErrorHandlerFunc(j.reportTaskFailure),
	})

	return j
}

// Start registers the task handlers and runs the workers in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskArticleCreated, j.handleArticleCreatedTask)

	j.logger.Info().Int("concurrency", workerConcurrency).Msg("starting background job server")

	return j.server.Start(mux)
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

func (j *JobService) reportTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	j.logger.Error().
		Err(err).
		Str("task", task.Type()).
		Int("retry", retried).
		Int("max_retry", maxRetry).
		Msg("background task failed")
}
