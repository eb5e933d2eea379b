// File: /models/blog_post.go
package models

import (
	"time"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPending   = "pending"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

type BlogPost struct {
	ID          string      `json:"id" gorm:"primaryKey;size:64"`
	Title       string      `json:"title" gorm:"not null;size:255"`
	Slug        string      `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Excerpt     string      `json:"excerpt" gorm:"type:text"`
	Content     string      `json:"content" gorm:"not null;type:longtext"`
	CoverImage  string      `json:"cover_image" gorm:"type:text"`
	Category    string      `json:"category" gorm:"size:100"`
	Tags        StringSlice `json:"tags" gorm:"type:json"`
	AuthorID    string      `json:"author_id" gorm:"not null;size:191"`
	Status      string      `json:"status" gorm:"not null;default:'draft';size:20"`
	PublishedAt *time.Time  `json:"published_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
