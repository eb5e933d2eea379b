// File: /repositories/submission_repository.go
package repositories

import (
	"time"

	"aquaevents-api/models"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(sub *models.EventSubmission) error {
	return r.db.Create(sub).Error
}

// GetByID returns the submission or gorm.ErrRecordNotFound.
func (r *SubmissionRepository) GetByID(id string) (*models.EventSubmission, error) {
	var sub models.EventSubmission
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update applies the given column map in a single statement. Callers that
// need the reset-to-pending semantics pass status and the review fields
// together so the transition is one atomic write.
func (r *SubmissionRepository) Update(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.EventSubmission{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubmissionRepository) Delete(id string) error {
	result := r.db.Delete(&models.EventSubmission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubmissionRepository) List() ([]models.EventSubmission, error) {
	var subs []models.EventSubmission
	err := r.db.Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByStatus(status string) ([]models.EventSubmission, error) {
	var subs []models.EventSubmission
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListBySubmitter(userID string) ([]models.EventSubmission, error) {
	var subs []models.EventSubmission
	err := r.db.Where("submitted_by = ?", userID).Order("created_at ASC").Find(&subs).Error
	return subs, err
}
