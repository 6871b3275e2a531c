package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/codewith-lab/newsdesk/models"
	"github.com/codewith-lab/newsdesk/storage"
)

// Ticker entries are one-line banners; the bound is a deliberate cap on
// free-text input, not a schema constraint.
const breakingNewsMaxLength = 500

type BreakingNewsController struct {
	store storage.Storage
	cache *redis.Client
}

func NewBreakingNewsController(store storage.Storage, cache *redis.Client) *BreakingNewsController {
	return &BreakingNewsController{store: store, cache: cache}
}

type breakingNewsRequest struct {
	Content string `json:"content" binding:"required"`
	Active  *bool  `json:"active"`
}

// List handles GET /api/breaking-news: all active entries, newest first.
func (b *BreakingNewsController) List(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := breakingNewsCachePrefix + "active"

	var news []models.BreakingNews
	if !cacheGet(ctx, b.cache, cacheKey, &news) {
		var err error
		news, err = b.store.GetActiveBreakingNews(ctx)
		if err != nil {
			log.Printf("Error fetching breaking news: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch breaking news"})
			return
		}
		cacheSet(ctx, b.cache, cacheKey, news, breakingNewsCacheTTL)
	}
	c.JSON(http.StatusOK, news)
}

// Create handles POST /api/breaking-news.
func (b *BreakingNewsController) Create(c *gin.Context) {
	var req breakingNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if len(req.Content) > breakingNewsMaxLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "content must be at most 500 characters"})
		return
	}

	news, err := b.store.CreateBreakingNews(c.Request.Context(), req.Content)
	if err != nil {
		log.Printf("Error creating breaking news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create breaking news"})
		return
	}

	cacheInvalidate(b.cache, breakingNewsCachePrefix)
	c.JSON(http.StatusCreated, news)
}

// Update handles PUT /api/breaking-news/:id; content and active are both
// required.
func (b *BreakingNewsController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be an integer"})
		return
	}

	var req breakingNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "active is required"})
		return
	}
	if len(req.Content) > breakingNewsMaxLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "content must be at most 500 characters"})
		return
	}

	news, err := b.store.UpdateBreakingNews(c.Request.Context(), uint(id), req.Content, *req.Active)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Breaking news not found"})
			return
		}
		log.Printf("Error updating breaking news %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update breaking news"})
		return
	}

	cacheInvalidate(b.cache, breakingNewsCachePrefix)
	c.JSON(http.StatusOK, news)
}
