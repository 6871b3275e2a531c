package models

import "time"

// BreakingNews is one short announcement in the rotating ticker. Several rows
// may be active at once; the ticker shows all active rows, newest first.
type BreakingNews struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	Active    bool      `gorm:"not null;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName keeps the table name plural-correct; gorm would otherwise
// pluralize to "breaking_newses".
func (BreakingNews) TableName() string {
	return "breaking_news"
}
