// Package testutil provides mocks and a lightweight server container for
// unit tests. Nothing here opens network connections.
package testutil

import (
	"bytes"
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/fitquest/backend/internal/config"
	"github.com/fitquest/backend/internal/metrics"
	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
)

// SafeBuffer is a bytes.Buffer safe for concurrent log writes.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestConfig returns a valid config for a local environment without
// auth, rate limiting or notifications.
func NewTestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.Logging.Format = "console"

	return &config.Config{
		Primary: config.Primary{Env: "test", Locale: "en"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			ShutdownTimeout:    5,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
		},
		Observability: obs,
	}
}

// NewTestServer builds a server container whose logger writes JSON to the
// returned buffer.
func NewTestServer(cfg *config.Config) (*server.Server, *SafeBuffer) {
	if cfg == nil {
		cfg = NewTestConfig()
	}

	buf := &SafeBuffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	return &server.Server{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics.New(),
	}, buf
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoriesByUser(ctx context.Context, userID int) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) CreateArticle(ctx context.Context, userID int, title, content string) (*model.Article, error) {
	args := m.Called(ctx, userID, title, content)
	article, _ := args.Get(0).(*model.Article)
	return article, args.Error(1)
}

func (m *MockArticleRepository) GetArticleByID(ctx context.Context, id int) (*model.Article, error) {
	args := m.Called(ctx, id)
	article, _ := args.Get(0).(*model.Article)
	return article, args.Error(1)
}

func (m *MockArticleRepository) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.Article, int, error) {
	args := m.Called(ctx, filter)
	articles, _ := args.Get(0).([]model.Article)
	return articles, args.Int(1), args.Error(2)
}

func (m *MockArticleRepository) UpdateArticle(ctx context.Context, id int, update model.ArticleUpdate) (*model.Article, error) {
	args := m.Called(ctx, id, update)
	article, _ := args.Get(0).(*model.Article)
	return article, args.Error(1)
}

func (m *MockArticleRepository) DeleteArticle(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockArticleNotifier struct {
	mock.Mock
}

func (m *MockArticleNotifier) EnqueueArticleCreated(ctx context.Context, articleID, userID int, title string) error {
	args := m.Called(ctx, articleID, userID, title)
	return args.Error(0)
}
