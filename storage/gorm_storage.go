package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/codewith-lab/newsdesk/models"
)

// GormStorage implements Storage over a gorm connection pool. The pool is
// injected at construction; the type holds no other state and is safe for
// concurrent use. The *gorm.DB must be opened with TranslateError enabled so
// constraint violations arrive as gorm sentinel errors regardless of driver.
type GormStorage struct {
	db *gorm.DB
}

var _ Storage = (*GormStorage)(nil)

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// translate maps driver-level errors onto the storage taxonomy. dup is the
// duplicate-key sentinel appropriate for the table being written.
func translate(err, dup error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dup
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	}
	return err
}

// attachViewCounts fills ViewCount for a batch of articles with a single
// grouped aggregate instead of one count query per row.
func (s *GormStorage) attachViewCounts(ctx context.Context, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}

	var rows []struct {
		ArticleID uint
		Total     int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.ArticleView{}).
		Select("article_id, COUNT(*) AS total").
		Where("article_id IN ?", ids).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ArticleID] = r.Total
	}
	for i := range articles {
		articles[i].ViewCount = counts[articles[i].ID]
	}
	return nil
}

func (s *GormStorage) listArticles(ctx context.Context, q *gorm.DB) ([]models.Article, error) {
	articles := []models.Article{}
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}
	if err := s.attachViewCounts(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *GormStorage) GetArticles(ctx context.Context, limit, offset int) ([]models.Article, error) {
	q := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	return s.listArticles(ctx, q)
}

func (s *GormStorage) GetArticlesByCategory(ctx context.Context, category string, limit, offset int) ([]models.Article, error) {
	q := s.db.WithContext(ctx).
		Where("published = ? AND category = ?", true, category).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	return s.listArticles(ctx, q)
}

func (s *GormStorage) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, translate(err, ErrDuplicateSlug)
	}
	count, err := s.GetArticleViewCount(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	article.ViewCount = count
	return &article, nil
}

func (s *GormStorage) GetFeaturedArticles(ctx context.Context, limit int) ([]models.Article, error) {
	q := s.db.WithContext(ctx).
		Where("published = ? AND featured_order IS NOT NULL", true).
		Order("featured_order ASC").
		Limit(limit)
	return s.listArticles(ctx, q)
}

func (s *GormStorage) GetLatestArticles(ctx context.Context, limit int) ([]models.Article, error) {
	q := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(limit)
	return s.listArticles(ctx, q)
}

// GetMostReadArticles ranks published articles by total recorded views. When
// fewer than limit articles have any views at all, the remainder is filled
// with the latest published articles so the section never runs short.
func (s *GormStorage) GetMostReadArticles(ctx context.Context, limit int) ([]models.Article, error) {
	var ranked []struct {
		ArticleID uint
		Total     int64
	}
	err := s.db.WithContext(ctx).
		Table("article_views").
		Select("article_views.article_id, COUNT(*) AS total").
		Joins("JOIN articles ON articles.id = article_views.article_id").
		Where("articles.published = ?", true).
		Group("article_views.article_id").
		Order("total DESC").
		Limit(limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Article, len(ranked))
	if len(ranked) > 0 {
		ids := make([]uint, 0, len(ranked))
		for _, r := range ranked {
			ids = append(ids, r.ArticleID)
		}
		var fetched []models.Article
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&fetched).Error; err != nil {
			return nil, err
		}
		for _, a := range fetched {
			byID[a.ID] = a
		}
	}

	articles := make([]models.Article, 0, limit)
	seen := make(map[uint]bool, limit)
	for _, r := range ranked {
		a, ok := byID[r.ArticleID]
		if !ok {
			continue
		}
		a.ViewCount = r.Total
		articles = append(articles, a)
		seen[a.ID] = true
	}

	if len(articles) < limit {
		latest, err := s.GetLatestArticles(ctx, limit)
		if err != nil {
			return nil, err
		}
		for _, a := range latest {
			if len(articles) >= limit {
				break
			}
			if !seen[a.ID] {
				articles = append(articles, a)
				seen[a.ID] = true
			}
		}
	}
	return articles, nil
}

func (s *GormStorage) CreateArticle(ctx context.Context, article *models.Article) error {
	err := s.db.WithContext(ctx).Create(article).Error
	return translate(err, ErrDuplicateSlug)
}

// UpdateArticle applies only the given columns and always refreshes
// updated_at, even when fields is otherwise empty.
func (s *GormStorage) UpdateArticle(ctx context.Context, id uint, fields map[string]interface{}) (*models.Article, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	tx := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, translate(tx.Error, ErrDuplicateSlug)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translate(err, ErrDuplicateSlug)
	}
	count, err := s.GetArticleViewCount(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	article.ViewCount = count
	return &article, nil
}

func (s *GormStorage) DeleteArticle(ctx context.Context, id uint) error {
	tx := s.db.WithContext(ctx).Delete(&models.Article{}, id)
	if tx.Error != nil {
		return translate(tx.Error, ErrDuplicateSlug)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStorage) RecordArticleView(ctx context.Context, articleID uint, ipAddress *string) (*models.ArticleView, error) {
	view := models.ArticleView{
		ArticleID: articleID,
		IPAddress: ipAddress,
	}
	if err := s.db.WithContext(ctx).Create(&view).Error; err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &view, nil
}

func (s *GormStorage) GetArticleViewCount(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ArticleView{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

func (s *GormStorage) GetArticleViewsByTimeRange(ctx context.Context, articleID uint, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ArticleView{}).
		Where("article_id = ? AND viewed_at >= ? AND viewed_at <= ?", articleID, start, end).
		Count(&count).Error
	return count, err
}

func (s *GormStorage) GetActiveBreakingNews(ctx context.Context) ([]models.BreakingNews, error) {
	news := []models.BreakingNews{}
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *GormStorage) CreateBreakingNews(ctx context.Context, content string) (*models.BreakingNews, error) {
	news := models.BreakingNews{
		Content: content,
		Active:  true,
	}
	if err := s.db.WithContext(ctx).Create(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *GormStorage) UpdateBreakingNews(ctx context.Context, id uint, content string, active bool) (*models.BreakingNews, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.BreakingNews{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "active": active})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var news models.BreakingNews
	if err := s.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, translate(err, ErrNotFound)
	}
	return &news, nil
}

func (s *GormStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, ErrDuplicateUsername)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, ErrDuplicateUsername)
	}
	return &user, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	return translate(err, ErrDuplicateUsername)
}
