package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fitquest/backend/internal/model"
	"github.com/fitquest/backend/internal/server"
)

const articleColumns = `id, user_id, title, content, created_at, updated_at`

type ArticleRepository struct {
	server *server.Server
}

func NewArticleRepository(s *server.Server) *ArticleRepository {
	return &ArticleRepository{server: s}
}

func (r *ArticleRepository) CreateArticle(ctx context.Context, userID int, title, content string) (*model.Article, error) {
	stmt := `
		INSERT INTO
			articles (user_id, title, content)
		VALUES
			(@user_id, @title, @content)
		RETURNING
			` + articleColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create article query for user %d: %w", userID, err)
	}

	article, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:articles for user %d: %w", userID, err)
	}

	return &article, nil
}

func (r *ArticleRepository) GetArticleByID(ctx context.Context, id int) (*model.Article, error) {
	stmt := `
		SELECT
			` + articleColumns + `
		FROM
			articles
		WHERE
			id = @id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get article query for id %d: %w", id, err)
	}

	article, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("article", id)
		}
		return nil, fmt.Errorf("failed to collect article %d: %w", id, err)
	}

	return &article, nil
}

// articlePageRow is one row of the list query. The page columns are NULL
// when the page is empty so the total still comes back.
type articlePageRow struct {
	Total     int        `db:"total"`
	ID        *int       `db:"id"`
	UserID    *int       `db:"user_id"`
	Title     *string    `db:"title"`
	Content   *string    `db:"content"`
	CreatedAt *time.Time `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// ListArticles returns one page of articles, newest first, and the total
// number of matching rows. Both come from a single statement so the total
// and the page see the same snapshot.
func (r *ArticleRepository) ListArticles(ctx context.Context, filter model.ArticleFilter) ([]model.Article, int, error) {
	stmt := `
		WITH
			filtered AS (
				SELECT
					` + articleColumns + `
				FROM
					articles
				WHERE
					(@user_id::INTEGER IS NULL OR user_id = @user_id::INTEGER)
			)
		SELECT
			counted.total,
			page.id,
			page.user_id,
			page.title,
			page.content,
			page.created_at,
			page.updated_at
		FROM
			(SELECT COUNT(*) AS total FROM filtered) AS counted
			LEFT JOIN (
				SELECT
					` + articleColumns + `
				FROM
					filtered
				ORDER BY
					created_at DESC,
					id DESC
				LIMIT
					@limit
				OFFSET
					@offset
			) AS page ON TRUE
		ORDER BY
			page.created_at DESC,
			page.id DESC
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": filter.UserID,
		"limit":   filter.Limit,
		"offset":  filter.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute list articles query: %w", err)
	}

	pageRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[articlePageRow])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect articles: %w", err)
	}

	total := 0
	articles := make([]model.Article, 0, len(pageRows))
	for _, row := range pageRows {
		total = row.Total
		if row.ID == nil {
			continue
		}
		articles = append(articles, model.Article{
			Base:    model.Base{ID: *row.ID, CreatedAt: *row.CreatedAt, UpdatedAt: *row.UpdatedAt},
			UserID:  *row.UserID,
			Title:   *row.Title,
			Content: *row.Content,
		})
	}

	return articles, total, nil
}

// UpdateArticle applies the non-nil fields of update.
func (r *ArticleRepository) UpdateArticle(ctx context.Context, id int, update model.ArticleUpdate) (*model.Article, error) {
	stmt := `
		UPDATE articles
		SET
			title = COALESCE(@title, title),
			content = COALESCE(@content, content),
			updated_at = now()
		WHERE
			id = @id
		RETURNING
			` + articleColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":      id,
		"title":   update.Title,
		"content": update.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update article query for id %d: %w", id, err)
	}

	article, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("article", id)
		}
		return nil, fmt.Errorf("failed to collect updated article %d: %w", id, err)
	}

	return &article, nil
}

func (r *ArticleRepository) DeleteArticle(ctx context.Context, id int) error {
	stmt := `
		DELETE FROM articles
		WHERE
			id = @id
	`

	result, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return notFound("article", id)
	}

	return nil
}
