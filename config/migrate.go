package config

import (
	"log"

	"github.com/codewith-lab/newsdesk/global"
	"github.com/codewith-lab/newsdesk/models"
)

// MigrateDB creates or updates the schema for all tables.
func MigrateDB() {
	err := global.DB.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.ArticleView{},
		&models.BreakingNews{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")
}
