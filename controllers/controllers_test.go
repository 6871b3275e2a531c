package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codewith-lab/newsdesk/models"
	"github.com/codewith-lab/newsdesk/storage"
)

func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Article{}, &models.ArticleView{}, &models.BreakingNews{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return storage.NewGormStorage(db)
}

// newTestEnv wires the controllers onto a bare engine, uncached and
// unguarded, mirroring the production route table.
func newTestEnv(t *testing.T) (*gin.Engine, storage.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newTestStore(t)

	articles := NewArticleController(store, nil)
	breaking := NewBreakingNewsController(store, nil)

	r := gin.New()
	r.GET("/api/articles", articles.List)
	r.GET("/api/articles/featured", articles.Featured)
	r.GET("/api/articles/latest", articles.Latest)
	r.GET("/api/articles/most-read", articles.MostRead)
	r.GET("/api/articles/category/:category", articles.ByCategory)
	r.GET("/api/articles/:slug", articles.BySlug)
	r.GET("/api/articles/:slug/views", articles.Views)
	r.POST("/api/articles", articles.Create)
	r.PUT("/api/articles/:id", articles.Update)
	r.DELETE("/api/articles/:id", articles.Delete)
	r.GET("/api/breaking-news", breaking.List)
	r.POST("/api/breaking-news", breaking.Create)
	r.PUT("/api/breaking-news/:id", breaking.Update)
	return r, store
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
