package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codewith-lab/newsdesk/global"
)

// connectWithRetry runs ping until it succeeds, waiting delay between
// attempts, for at most attempts tries. sleep is injectable so tests can run
// without wall-clock waits.
func connectWithRetry(ping func() error, attempts int, delay time.Duration, sleep func(time.Duration)) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = ping(); err == nil {
			return nil
		}
		log.Printf("Database connection attempt %d failed: %v", i, err)
		if i < attempts {
			log.Printf("Retrying in %s...", delay)
			sleep(delay)
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func initDB() {
	dbConf := AppConfig.Database

	gormLogger := logger.Default
	if AppConfig.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dbConf.URL), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxIdleConns(dbConf.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConf.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Fail fast after the retry budget rather than serving requests against
	// a broken connection.
	ping := func() error {
		return db.Exec("SELECT 1").Error
	}
	if err := connectWithRetry(ping, dbConf.ConnectAttempts, dbConf.ConnectDelay, time.Sleep); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("Database connected successfully")

	global.DB = db
}
