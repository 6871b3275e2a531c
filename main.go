package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codewith-lab/newsdesk/config"
	"github.com/codewith-lab/newsdesk/global"
	"github.com/codewith-lab/newsdesk/router"
	"github.com/codewith-lab/newsdesk/storage"
)

func main() {
	config.InitConfig()
	config.MigrateDB()

	if config.AppConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.InitRouter(router.Options{
		Store:            storage.NewGormStorage(global.DB),
		Cache:            global.RedisDB,
		AuthEnabled:      config.AppConfig.Auth.Enabled,
		AuthSecret:       []byte(config.AppConfig.Auth.Secret),
		RateLimitEnabled: config.AppConfig.RateLimit.Enabled,
		RateLimitRPS:     config.AppConfig.RateLimit.RPS,
		RateLimitBurst:   config.AppConfig.RateLimit.Burst,
	})

	port := config.AppConfig.App.Port
	if port == "" {
		port = ":8080"
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
