package controllers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/codewith-lab/newsdesk/models"
	"github.com/codewith-lab/newsdesk/storage"
)

func seedArticle(t *testing.T, store storage.Storage, slug, category string, published bool, featured *int, age time.Duration) models.Article {
	t.Helper()
	article := models.Article{
		Title:         "Title " + slug,
		Slug:          slug,
		Summary:       "summary",
		Content:       "content",
		ImageURL:      "https://img.example/" + slug,
		Category:      category,
		AuthorName:    "author",
		Published:     published,
		FeaturedOrder: featured,
		CreatedAt:     time.Now().UTC().Add(-age),
	}
	if err := store.CreateArticle(context.Background(), &article); err != nil {
		t.Fatalf("seed article %s: %v", slug, err)
	}
	return article
}

func TestCreateArticleDefaults(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodPost, "/api/articles", map[string]interface{}{
		"title":      "A",
		"slug":       "a",
		"summary":    "s",
		"content":    "c",
		"imageUrl":   "u",
		"category":   "tech",
		"authorName": "x",
	})
	mustStatus(t, w, http.StatusCreated)

	var created models.Article
	decodeBody(t, w, &created)
	if created.ID == 0 {
		t.Fatalf("created article has no id")
	}
	if created.Slug != "a" {
		t.Fatalf("slug=%q want a", created.Slug)
	}
	if !created.Published {
		t.Fatalf("published should default to true")
	}
	if created.FeaturedOrder != nil {
		t.Fatalf("featuredOrder should default to null")
	}

	// Round trip through the detail endpoint.
	w = doRequest(t, r, http.MethodGet, "/api/articles/a", nil)
	mustStatus(t, w, http.StatusOK)
	var detail struct {
		Article         models.Article   `json:"article"`
		RelatedArticles []models.Article `json:"relatedArticles"`
	}
	decodeBody(t, w, &detail)
	if detail.Article.ID != created.ID {
		t.Fatalf("detail returned wrong article")
	}
	if detail.RelatedArticles == nil {
		t.Fatalf("relatedArticles must be present, possibly empty")
	}
}

func TestCreateArticleValidation(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodPost, "/api/articles", map[string]interface{}{
		"title": "missing everything else",
	})
	mustStatus(t, w, http.StatusBadRequest)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	if body.Message == "" {
		t.Fatalf("validation error must carry a message")
	}

	w = doRequest(t, r, http.MethodPost, "/api/articles", map[string]interface{}{
		"title": "A", "slug": "a", "summary": "s", "content": "c",
		"imageUrl": "u", "category": "tech", "authorName": "x",
		"featuredOrder": -1,
	})
	mustStatus(t, w, http.StatusBadRequest)
}

func TestCreateArticleDuplicateSlugConflict(t *testing.T) {
	r, store := newTestEnv(t)
	seedArticle(t, store, "taken", "tech", true, nil, time.Hour)

	w := doRequest(t, r, http.MethodPost, "/api/articles", map[string]interface{}{
		"title": "A", "slug": "taken", "summary": "s", "content": "c",
		"imageUrl": "u", "category": "tech", "authorName": "x",
	})
	mustStatus(t, w, http.StatusConflict)
}

func TestArticleDetailRecordsViewAndRelated(t *testing.T) {
	r, store := newTestEnv(t)

	main := seedArticle(t, store, "main", "tech", true, nil, 5*time.Hour)
	seedArticle(t, store, "rel-1", "tech", true, nil, 4*time.Hour)
	seedArticle(t, store, "rel-2", "tech", true, nil, 3*time.Hour)
	seedArticle(t, store, "rel-3", "tech", true, nil, 2*time.Hour)
	seedArticle(t, store, "rel-4", "tech", true, nil, time.Hour)
	seedArticle(t, store, "other", "business", true, nil, time.Hour)

	w := doRequest(t, r, http.MethodGet, "/api/articles/main", nil)
	mustStatus(t, w, http.StatusOK)

	var detail struct {
		Article         models.Article   `json:"article"`
		RelatedArticles []models.Article `json:"relatedArticles"`
	}
	decodeBody(t, w, &detail)

	if detail.Article.ViewCount != 1 {
		t.Fatalf("first render should report viewCount 1, got %d", detail.Article.ViewCount)
	}
	if len(detail.RelatedArticles) != 3 {
		t.Fatalf("expected 3 related articles, got %d", len(detail.RelatedArticles))
	}
	for _, rel := range detail.RelatedArticles {
		if rel.ID == main.ID {
			t.Fatalf("article related to itself")
		}
		if rel.Category != "tech" {
			t.Fatalf("related article from wrong category: %s", rel.Category)
		}
	}

	// Each render appends exactly one view event.
	for i := 0; i < 4; i++ {
		mustStatus(t, doRequest(t, r, http.MethodGet, "/api/articles/main", nil), http.StatusOK)
	}
	count, err := store.GetArticleViewCount(context.Background(), main.ID)
	if err != nil {
		t.Fatalf("GetArticleViewCount: %v", err)
	}
	if count != 5 {
		t.Fatalf("view count=%d want 5", count)
	}

	w = doRequest(t, r, http.MethodGet, "/api/articles/no-such", nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestArticleViewsEndpoint(t *testing.T) {
	r, store := newTestEnv(t)
	article := seedArticle(t, store, "counted", "tech", true, nil, time.Hour)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.RecordArticleView(ctx, article.ID, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/api/articles/counted/views", nil)
	mustStatus(t, w, http.StatusOK)
	var body struct {
		ViewCount int64 `json:"viewCount"`
	}
	decodeBody(t, w, &body)
	if body.ViewCount != 3 {
		t.Fatalf("viewCount=%d want 3", body.ViewCount)
	}

	// A far-future range covers nothing.
	start := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	w = doRequest(t, r, http.MethodGet, "/api/articles/counted/views?start="+start+"&end="+end, nil)
	mustStatus(t, w, http.StatusOK)
	decodeBody(t, w, &body)
	if body.ViewCount != 0 {
		t.Fatalf("future range viewCount=%d want 0", body.ViewCount)
	}

	w = doRequest(t, r, http.MethodGet, "/api/articles/counted/views?start=not-a-time", nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestListEndpoints(t *testing.T) {
	r, store := newTestEnv(t)

	for i := 0; i < 5; i++ {
		seedArticle(t, store, fmt.Sprintf("tech-%d", i), "technology", true, nil, time.Duration(5-i)*time.Hour)
	}
	seedArticle(t, store, "draft", "technology", false, nil, time.Minute)

	w := doRequest(t, r, http.MethodGet, "/api/articles/category/technology?limit=2&offset=0", nil)
	mustStatus(t, w, http.StatusOK)
	var articles []models.Article
	decodeBody(t, w, &articles)
	if len(articles) != 2 {
		t.Fatalf("expected exactly 2 results, got %d", len(articles))
	}
	if articles[0].Slug != "tech-4" || articles[1].Slug != "tech-3" {
		t.Fatalf("expected two newest technology articles, got %s, %s", articles[0].Slug, articles[1].Slug)
	}

	w = doRequest(t, r, http.MethodGet, "/api/articles?limit=bogus", nil)
	mustStatus(t, w, http.StatusBadRequest)

	// Empty category renders as an empty list, not an error.
	w = doRequest(t, r, http.MethodGet, "/api/articles/category/nothing-here", nil)
	mustStatus(t, w, http.StatusOK)
	decodeBody(t, w, &articles)
	if len(articles) != 0 {
		t.Fatalf("expected empty category list")
	}
}

func TestFeaturedEndpoint(t *testing.T) {
	r, store := newTestEnv(t)

	two, one := 2, 1
	seedArticle(t, store, "second", "tech", true, &two, 2*time.Hour)
	seedArticle(t, store, "first", "tech", true, &one, time.Hour)
	seedArticle(t, store, "plain", "tech", true, nil, time.Hour)

	w := doRequest(t, r, http.MethodGet, "/api/articles/featured", nil)
	mustStatus(t, w, http.StatusOK)
	var articles []models.Article
	decodeBody(t, w, &articles)
	if len(articles) != 2 {
		t.Fatalf("expected 2 featured, got %d", len(articles))
	}
	if articles[0].Slug != "first" || articles[1].Slug != "second" {
		t.Fatalf("featured not rank-ordered: %s, %s", articles[0].Slug, articles[1].Slug)
	}
}

func TestUpdateArticleEndpoint(t *testing.T) {
	r, store := newTestEnv(t)
	article := seedArticle(t, store, "mutable", "tech", true, nil, time.Hour)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/articles/%d", article.ID), map[string]interface{}{
		"title": "Renamed",
	})
	mustStatus(t, w, http.StatusOK)
	var updated models.Article
	decodeBody(t, w, &updated)
	if updated.Title != "Renamed" || updated.Slug != "mutable" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	w = doRequest(t, r, http.MethodPut, "/api/articles/999999", map[string]interface{}{"title": "x"})
	mustStatus(t, w, http.StatusNotFound)

	w = doRequest(t, r, http.MethodPut, "/api/articles/not-a-number", map[string]interface{}{"title": "x"})
	mustStatus(t, w, http.StatusBadRequest)
}

func TestDeleteArticleEndpoint(t *testing.T) {
	r, store := newTestEnv(t)
	article := seedArticle(t, store, "doomed", "tech", true, nil, time.Hour)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", article.ID), nil)
	mustStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Fatalf("204 must have no body, got %q", w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", article.ID), nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestMostReadEndpoint(t *testing.T) {
	r, store := newTestEnv(t)

	quiet := seedArticle(t, store, "quiet", "tech", true, nil, 2*time.Hour)
	popular := seedArticle(t, store, "popular", "tech", true, nil, time.Hour)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.RecordArticleView(ctx, popular.ID, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/api/articles/most-read?limit=2", nil)
	mustStatus(t, w, http.StatusOK)
	var articles []models.Article
	decodeBody(t, w, &articles)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != popular.ID || articles[1].ID != quiet.ID {
		t.Fatalf("most-read misordered: %s, %s", articles[0].Slug, articles[1].Slug)
	}
}
