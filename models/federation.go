// File: /models/federation.go
package models

import (
	"time"
)

// Federation is seeded reference data for Spanish aquatic sports federations.
type Federation struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	Name       string    `json:"name" gorm:"not null;size:255"`
	Region     string    `json:"region" gorm:"not null;size:100"`
	Discipline string    `json:"discipline" gorm:"size:100"`
	Website    string    `json:"website" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
