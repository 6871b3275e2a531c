package models

import "time"

// ArticleView is one append-only record of an article being rendered to a
// reader. Rows are never updated or deleted; counts are aggregated over them.
type ArticleView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"articleId"`
	Article   Article   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ViewedAt  time.Time `gorm:"autoCreateTime;index" json:"viewedAt"`
	IPAddress *string   `json:"ipAddress"`
}
