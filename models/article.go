package models

import "time"

// Article is a news story. Slug is the public identifier used in URLs,
// distinct from the surrogate key. FeaturedOrder positions the story in the
// curated hero list; nil means not featured.
type Article struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Summary        string    `gorm:"not null" json:"summary"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       string    `gorm:"not null" json:"imageUrl"`
	Category       string    `gorm:"index;not null" json:"category"`
	AuthorName     string    `gorm:"not null" json:"authorName"`
	AuthorImageURL *string   `json:"authorImageUrl"`
	Published      bool      `gorm:"not null" json:"published"`
	FeaturedOrder  *int      `gorm:"index" json:"featuredOrder"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Aggregated from article_views; not a column.
	ViewCount int64 `gorm:"-" json:"viewCount"`
}
