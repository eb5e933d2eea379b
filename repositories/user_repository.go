// File: /repositories/user_repository.go
package repositories

import (
	"aquaevents-api/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListSubscribers returns users who consented to email alerts and whose
// preferred disciplines include the given one. No stated preference means
// the user wants alerts for every discipline.
func (r *UserRepository) ListSubscribers(discipline string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("email_consent IS NOT NULL").Find(&users).Error; err != nil {
		return nil, err
	}

	matched := users[:0]
	for _, user := range users {
		if len(user.PreferredDisciplines) == 0 {
			matched = append(matched, user)
			continue
		}
		for _, preferred := range user.PreferredDisciplines {
			if preferred == discipline {
				matched = append(matched, user)
				break
			}
		}
	}
	return matched, nil
}
