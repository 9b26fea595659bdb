package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/backend/internal/config"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendArticleCreatedEmail(to string, articleID, authorID int, title string) error {
	args := m.Called(to, articleID, authorID, title)
	return args.Error(0)
}

func newTestJobService(mailer articleMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, notifyTo: "editor@fitquest.test"}
}

func TestNewArticleCreatedTask(t *testing.T) {
	task, err := NewArticleCreatedTask(ArticleCreatedPayload{ArticleID: 3, UserID: 42, Title: "Deadlifts"})
	require.NoError(t, err)

	assert.Equal(t, TaskArticleCreated, task.Type())

	var p ArticleCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, 42, p.UserID)
}

func TestHandleArticleCreatedTaskSends(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendArticleCreatedEmail", "editor@fitquest.test", 3, 42, "Deadlifts").Return(nil)

	task, err := NewArticleCreatedTask(ArticleCreatedPayload{ArticleID: 3, UserID: 42, Title: "Deadlifts"})
	require.NoError(t, err)

	require.NoError(t, newTestJobService(mailer).handleArticleCreatedTask(context.Background(), task))
	mailer.AssertExpectations(t)
}

func TestHandleArticleCreatedTaskReturnsSendError(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendArticleCreatedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("provider down"))

	task, err := NewArticleCreatedTask(ArticleCreatedPayload{ArticleID: 3})
	require.NoError(t, err)

	assert.EqualError(t, newTestJobService(mailer).handleArticleCreatedTask(context.Background(), task), "provider down")
}

func TestHandleArticleCreatedTaskBadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TaskArticleCreated, []byte("{"))

	err := newTestJobService(&mockMailer{}).handleArticleCreatedTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestInitHandlersWithoutCredentials(t *testing.T) {
	j := newTestJobService(nil)
	j.InitHandlers(&config.Config{}, j.logger)
	assert.Nil(t, j.mailer)

	task, err := NewArticleCreatedTask(ArticleCreatedPayload{ArticleID: 1})
	require.NoError(t, err)
	assert.NoError(t, j.handleArticleCreatedTask(context.Background(), task))
}
