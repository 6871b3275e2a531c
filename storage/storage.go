package storage

import (
	"context"
	"time"

	"github.com/codewith-lab/newsdesk/models"
)

// Storage is the sole mediator between the data model and the rest of the
// system. Implementations must be safe for concurrent use. Controllers depend
// on this interface, not on a concrete database, so tests can substitute a
// lighter backend.
type Storage interface {
	// Article reads. Every listing returns published articles only and
	// populates ViewCount. Empty results are an empty slice, never an error.
	GetArticles(ctx context.Context, limit, offset int) ([]models.Article, error)
	GetArticlesByCategory(ctx context.Context, category string, limit, offset int) ([]models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetFeaturedArticles(ctx context.Context, limit int) ([]models.Article, error)
	GetLatestArticles(ctx context.Context, limit int) ([]models.Article, error)
	GetMostReadArticles(ctx context.Context, limit int) ([]models.Article, error)

	// Article writes. UpdateArticle applies only the fields present in the
	// map and always refreshes updated_at. Update and delete on a missing id
	// return ErrNotFound.
	CreateArticle(ctx context.Context, article *models.Article) error
	UpdateArticle(ctx context.Context, id uint, fields map[string]interface{}) (*models.Article, error)
	DeleteArticle(ctx context.Context, id uint) error

	// View events. RecordArticleView appends one event with no visitor
	// deduplication; an unknown article id is ErrInvalidReference. Both
	// bounds of the time range are inclusive.
	RecordArticleView(ctx context.Context, articleID uint, ipAddress *string) (*models.ArticleView, error)
	GetArticleViewCount(ctx context.Context, articleID uint) (int64, error)
	GetArticleViewsByTimeRange(ctx context.Context, articleID uint, start, end time.Time) (int64, error)

	// Breaking news.
	GetActiveBreakingNews(ctx context.Context) ([]models.BreakingNews, error)
	CreateBreakingNews(ctx context.Context, content string) (*models.BreakingNews, error)
	UpdateBreakingNews(ctx context.Context, id uint, content string, active bool) (*models.BreakingNews, error)

	// Users.
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}
