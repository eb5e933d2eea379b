// File: /models/user.go
package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                   string      `json:"id" gorm:"primaryKey;size:191"`
	Name                 string      `json:"name" gorm:"not null;size:255"`
	Email                string      `json:"email" gorm:"uniqueIndex;not null;size:320"`
	Password             string      `json:"-" gorm:"not null;size:255"`
	Role                 string      `json:"role" gorm:"not null;default:'user';size:20"`
	EmailVerified        bool        `json:"email_verified" gorm:"default:false"`
	UserType             string      `json:"user_type" gorm:"size:50"` // club, swimmer, federation, other
	PreferredDisciplines StringSlice `json:"preferred_disciplines" gorm:"type:json"`
	EmailConsent         *time.Time  `json:"email_consent"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`

	Submissions []EventSubmission `json:"submissions,omitempty" gorm:"foreignKey:SubmittedBy"`
}

// IsAdmin reports whether the user may perform moderation actions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFavorite links a user to a public event document in MongoDB
type UserFavorite struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;index;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191"` // Mongo event _id or canonical slug
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
