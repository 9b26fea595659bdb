package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TaskArticleCreated = "article:created"

type ArticleCreatedPayload struct {
	ArticleID int    `json:"article_id"`
	UserID    int    `json:"user_id"`
	Title     string `json:"title"`
}

func NewArticleCreatedTask(p ArticleCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskArticleCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueArticleCreated schedules the editorial notification for a new article.
func (j *JobService) EnqueueArticleCreated(ctx context.Context, articleID, userID int, title string) error {
	task, err := NewArticleCreatedTask(ArticleCreatedPayload{
		ArticleID: articleID,
		UserID:    userID,
		Title:     title,
	})
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskArticleCreated, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskArticleCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int("article_id", articleID).
		Msg("enqueued article notification")

	return nil
}
