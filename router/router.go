package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/codewith-lab/newsdesk/controllers"
	"github.com/codewith-lab/newsdesk/middlewares"
	"github.com/codewith-lab/newsdesk/storage"
)

// Options carries everything the route table depends on, so tests can build
// a router over an in-memory store with guards on or off.
type Options struct {
	Store            storage.Storage
	Cache            *redis.Client
	AuthEnabled      bool
	AuthSecret       []byte
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
}

func InitRouter(opts Options) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:8080"}
	if raw := os.Getenv("FRONTEND_ORIGINS"); raw != "" {
		split := strings.Split(raw, ",")
		allowedOrigins = allowedOrigins[:0]
		for _, v := range split {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
		if len(allowedOrigins) == 0 {
			allowedOrigins = []string{"*"}
		}
	}

	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	if opts.RateLimitEnabled {
		r.Use(middlewares.RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	articles := controllers.NewArticleController(opts.Store, opts.Cache)
	breaking := controllers.NewBreakingNewsController(opts.Store, opts.Cache)
	auth := controllers.NewAuthController(opts.Store, opts.AuthSecret)

	r.GET("/api/health", controllers.Health)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
	}

	api := r.Group("/api")
	{
		api.GET("/articles", articles.List)
		api.GET("/articles/featured", articles.Featured)
		api.GET("/articles/latest", articles.Latest)
		api.GET("/articles/most-read", articles.MostRead)
		api.GET("/articles/category/:category", articles.ByCategory)
		api.GET("/articles/:slug", articles.BySlug)
		api.GET("/articles/:slug/views", articles.Views)
		api.GET("/breaking-news", breaking.List)
	}

	// Administrative writes; guarded only when auth is enabled.
	admin := r.Group("/api")
	if opts.AuthEnabled {
		admin.Use(middlewares.AuthMiddleware(opts.Store, opts.AuthSecret))
	}
	{
		admin.POST("/articles", articles.Create)
		admin.PUT("/articles/:id", articles.Update)
		admin.DELETE("/articles/:id", articles.Delete)
		admin.POST("/breaking-news", breaking.Create)
		admin.PUT("/breaking-news/:id", breaking.Update)
	}

	return r
}
