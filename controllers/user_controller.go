// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"time"

	"aquaevents-api/models"
	"aquaevents-api/repositories"
	"aquaevents-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserController struct {
	db     *gorm.DB
	events *repositories.EventRepository
}

func NewUserController(db *gorm.DB, events *repositories.EventRepository) *UserController {
	return &UserController{db: db, events: events}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name                 *string  `json:"name"`
	UserType             *string  `json:"user_type"`
	PreferredDisciplines []string `json:"preferred_disciplines"`
	EmailConsent         *bool    `json:"email_consent"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.UserType != nil {
		updates["user_type"] = *req.UserType
	}
	if req.PreferredDisciplines != nil {
		updates["preferred_disciplines"] = models.StringSlice(req.PreferredDisciplines)
	}
	if req.EmailConsent != nil {
		// Consent is stored as a timestamp so we know when it was given.
		if *req.EmailConsent {
			now := time.Now()
			updates["email_consent"] = &now
		} else {
			updates["email_consent"] = nil
		}
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to reload profile")
		return
	}
	user.Password = ""

	utils.SendSuccess(c, "Profile updated", user)
}

// AddFavorite marks a public event as a favorite of the current user.
func (uc *UserController) AddFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := uc.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event == nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	// Favorites key on the store-assigned id regardless of how the event
	// was looked up.
	eventID = event.ID.Hex()

	var existing models.UserFavorite
	if err := uc.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing).Error; err == nil {
		utils.SendSuccess(c, "Event already in favorites", existing)
		return
	}

	favorite := models.UserFavorite{
		ID:      uuid.New().String(),
		UserID:  userID,
		EventID: eventID,
	}
	if err := uc.db.Create(&favorite).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	utils.SendCreated(c, "Event added to favorites", favorite)
}

func (uc *UserController) RemoveFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	result := uc.db.Where("user_id = ? AND event_id = ?", userID, eventID).Delete(&models.UserFavorite{})
	if result.Error != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}
	if result.RowsAffected == 0 {
		utils.SendError(c, http.StatusNotFound, "Favorite not found")
		return
	}

	utils.SendSuccess(c, "Event removed from favorites", nil)
}

// GetFavorites resolves the user's favorite ids against the public calendar.
// Events that disappeared from the store are skipped.
func (uc *UserController) GetFavorites(c *gin.Context) {
	userID := c.GetString("user_id")

	var favorites []models.UserFavorite
	if err := uc.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	events := make([]interface{}, 0, len(favorites))
	for _, fav := range favorites {
		event, err := uc.events.GetByID(c.Request.Context(), fav.EventID)
		if err != nil || event == nil {
			continue
		}
		events = append(events, event)
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": events,
		"count":     len(events),
	})
}

func (uc *UserController) IsFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var count int64
	uc.db.Model(&models.UserFavorite{}).Where("user_id = ? AND event_id = ?", userID, eventID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"is_favorite": count > 0})
}
