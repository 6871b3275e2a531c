package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/codewith-lab/newsdesk/models"
	"github.com/codewith-lab/newsdesk/storage"
)

const relatedArticleCount = 3

type ArticleController struct {
	store storage.Storage
	cache *redis.Client
}

func NewArticleController(store storage.Storage, cache *redis.Client) *ArticleController {
	return &ArticleController{store: store, cache: cache}
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer", name)
	}
	return value, nil
}

type createArticleRequest struct {
	Title          string  `json:"title" binding:"required"`
	Slug           string  `json:"slug" binding:"required"`
	Summary        string  `json:"summary" binding:"required"`
	Content        string  `json:"content" binding:"required"`
	ImageURL       string  `json:"imageUrl" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	AuthorName     string  `json:"authorName" binding:"required"`
	AuthorImageURL *string `json:"authorImageUrl"`
	Published      *bool   `json:"published"`
	FeaturedOrder  *int    `json:"featuredOrder"`
}

type updateArticleRequest struct {
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	Summary        *string `json:"summary"`
	Content        *string `json:"content"`
	ImageURL       *string `json:"imageUrl"`
	Category       *string `json:"category"`
	AuthorName     *string `json:"authorName"`
	AuthorImageURL *string `json:"authorImageUrl"`
	Published      *bool   `json:"published"`
	FeaturedOrder  *int    `json:"featuredOrder"`
}

// List handles GET /api/articles.
func (a *ArticleController) List(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	articles, err := a.store.GetArticles(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("Error fetching articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Featured handles GET /api/articles/featured. Results are sorted ascending
// by featured rank; lowest rank is most prominent.
func (a *ArticleController) Featured(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 3)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("%sfeatured:%d", articleCachePrefix, limit)

	var articles []models.Article
	if !cacheGet(ctx, a.cache, cacheKey, &articles) {
		articles, err = a.store.GetFeaturedArticles(ctx, limit)
		if err != nil {
			log.Printf("Error fetching featured articles: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch featured articles"})
			return
		}
		cacheSet(ctx, a.cache, cacheKey, articles, articleCacheTTL)
	}
	c.JSON(http.StatusOK, articles)
}

// Latest handles GET /api/articles/latest.
func (a *ArticleController) Latest(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 4)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("%slatest:%d", articleCachePrefix, limit)

	var articles []models.Article
	if !cacheGet(ctx, a.cache, cacheKey, &articles) {
		articles, err = a.store.GetLatestArticles(ctx, limit)
		if err != nil {
			log.Printf("Error fetching latest articles: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch latest articles"})
			return
		}
		cacheSet(ctx, a.cache, cacheKey, articles, articleCacheTTL)
	}
	c.JSON(http.StatusOK, articles)
}

// MostRead handles GET /api/articles/most-read, ranking published articles by
// recorded view events.
func (a *ArticleController) MostRead(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("%smost-read:%d", articleCachePrefix, limit)

	var articles []models.Article
	if !cacheGet(ctx, a.cache, cacheKey, &articles) {
		articles, err = a.store.GetMostReadArticles(ctx, limit)
		if err != nil {
			log.Printf("Error fetching most-read articles: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch most-read articles"})
			return
		}
		cacheSet(ctx, a.cache, cacheKey, articles, articleCacheTTL)
	}
	c.JSON(http.StatusOK, articles)
}

// ByCategory handles GET /api/articles/category/:category. Matching is exact
// and case-sensitive.
func (a *ArticleController) ByCategory(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	category := c.Param("category")
	articles, err := a.store.GetArticlesByCategory(c.Request.Context(), category, limit, offset)
	if err != nil {
		log.Printf("Error fetching articles for category %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch articles by category"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// BySlug handles GET /api/articles/:slug. Each render records one view event
// (fire-and-forget; a failure is logged and never fails the request) and the
// response carries the authoritative view count plus up to three related
// articles from the same category.
func (a *ArticleController) BySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	article, err := a.store.GetArticleBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		log.Printf("Error fetching article %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch article"})
		return
	}

	ip := c.ClientIP()
	if _, err := a.store.RecordArticleView(ctx, article.ID, &ip); err != nil {
		log.Printf("Error recording view for article %d: %v", article.ID, err)
	} else {
		article.ViewCount++
	}

	related, err := a.store.GetArticlesByCategory(ctx, article.Category, relatedArticleCount+1, 0)
	if err != nil {
		log.Printf("Error fetching related articles for %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch article"})
		return
	}
	filtered := make([]models.Article, 0, relatedArticleCount)
	for _, r := range related {
		if r.ID == article.ID {
			continue
		}
		if len(filtered) == relatedArticleCount {
			break
		}
		filtered = append(filtered, r)
	}

	c.JSON(http.StatusOK, gin.H{
		"article":         article,
		"relatedArticles": filtered,
	})
}

// Views handles GET /api/articles/:slug/views. With start and end (RFC 3339,
// both bounds inclusive) it counts views in the range; without them it
// returns the lifetime total.
func (a *ArticleController) Views(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	article, err := a.store.GetArticleBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		log.Printf("Error fetching article %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch article views"})
		return
	}

	count := article.ViewCount
	startRaw, endRaw := c.Query("start"), c.Query("end")
	if startRaw != "" || endRaw != "" {
		start := time.Time{}
		end := time.Now().UTC()
		if startRaw != "" {
			if start, err = time.Parse(time.RFC3339, startRaw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "start must be an RFC 3339 timestamp"})
				return
			}
		}
		if endRaw != "" {
			if end, err = time.Parse(time.RFC3339, endRaw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "end must be an RFC 3339 timestamp"})
				return
			}
		}
		count, err = a.store.GetArticleViewsByTimeRange(ctx, article.ID, start, end)
		if err != nil {
			log.Printf("Error counting views for article %d: %v", article.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch article views"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"articleId": article.ID,
		"slug":      article.Slug,
		"viewCount": count,
	})
}

// Create handles POST /api/articles. Published defaults to true when omitted;
// featuredOrder defaults to null (not featured).
func (a *ArticleController) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.FeaturedOrder != nil && *req.FeaturedOrder <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "featuredOrder must be a positive integer"})
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	article := models.Article{
		Title:          req.Title,
		Slug:           req.Slug,
		Summary:        req.Summary,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
		AuthorName:     req.AuthorName,
		AuthorImageURL: req.AuthorImageURL,
		Published:      published,
		FeaturedOrder:  req.FeaturedOrder,
	}

	if err := a.store.CreateArticle(c.Request.Context(), &article); err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			c.JSON(http.StatusConflict, gin.H{"message": "An article with this slug already exists"})
			return
		}
		log.Printf("Error creating article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create article"})
		return
	}

	cacheInvalidate(a.cache, articleCachePrefix)
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/articles/:id. Only fields present in the body are
// touched; updated_at is always refreshed. featuredOrder: 0 clears the rank
// to null (ranks are strictly positive, so 0 is unambiguous).
func (a *ArticleController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
		return
	}

	var req updateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.Summary != nil {
		fields["summary"] = *req.Summary
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.AuthorName != nil {
		fields["author_name"] = *req.AuthorName
	}
	if req.AuthorImageURL != nil {
		fields["author_image_url"] = *req.AuthorImageURL
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	if req.FeaturedOrder != nil {
		if *req.FeaturedOrder < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "featuredOrder must be a positive integer, or 0 to clear"})
			return
		}
		if *req.FeaturedOrder == 0 {
			fields["featured_order"] = nil
		} else {
			fields["featured_order"] = *req.FeaturedOrder
		}
	}

	article, err := a.store.UpdateArticle(c.Request.Context(), uint(id), fields)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		case errors.Is(err, storage.ErrDuplicateSlug):
			c.JSON(http.StatusConflict, gin.H{"message": "An article with this slug already exists"})
		default:
			log.Printf("Error updating article %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update article"})
		}
		return
	}

	cacheInvalidate(a.cache, articleCachePrefix)
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id.
func (a *ArticleController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
		return
	}

	if err := a.store.DeleteArticle(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		log.Printf("Error deleting article %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete article"})
		return
	}

	cacheInvalidate(a.cache, articleCachePrefix)
	c.Status(http.StatusNoContent)
}
