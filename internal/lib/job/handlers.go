package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/fitquest/backend/internal/config"
	"github.com/fitquest/backend/internal/lib/email"
)

type articleMailer interface {
	SendArticleCreatedEmail(to string, articleID, authorID int, title string) error
}

// InitHandlers wires the e-mail client used by the task handlers. Without
// Resend credentials or a recipient the handlers acknowledge tasks
// without sending anything.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("article notifications disabled")
		return
	}

	j.mailer = email.NewClient(cfg, logger)
	j.notifyTo = cfg.Integration.NotifyEmail
}

func (j *JobService) handleArticleCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p ArticleCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal article created payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.mailer == nil {
		j.logger.Debug().Int("article_id", p.ArticleID).Msg("skipping article notification")
		return nil
	}

	j.logger.Info().
		Str("type", TaskArticleCreated).
		Int("article_id", p.ArticleID).
		Msg("processing article notification")

	if err := j.mailer.SendArticleCreatedEmail(j.notifyTo, p.ArticleID, p.UserID, p.Title); err != nil {
		j.logger.Error().
			Str("type", TaskArticleCreated).
			Int("article_id", p.ArticleID).
			Err(err).
			Msg("failed to send article notification")
		return err
	}

	j.logger.Info().
		Str("type", TaskArticleCreated).
		Int("article_id", p.ArticleID).
		Msg("sent article notification")

	return nil
}
