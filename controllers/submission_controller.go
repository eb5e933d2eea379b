// File: /controllers/submission_controller.go
package controllers

import (
	"errors"
	"net/http"

	"aquaevents-api/models"
	"aquaevents-api/services"
	"aquaevents-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmissionController exposes the moderation workflow: public users submit
// and manage their own events, admins review, approve, reject and publish.
type SubmissionController struct {
	db      *gorm.DB
	service *services.SubmissionService
}

func NewSubmissionController(db *gorm.DB, service *services.SubmissionService) *SubmissionController {
	return &SubmissionController{db: db, service: service}
}

// currentUser loads the authenticated user set by the auth middleware.
func (sc *SubmissionController) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.SendError(c, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	var user models.User
	if err := sc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return &user, true
}

type SubmitEventRequest struct {
	Title                string `json:"title" binding:"required"`
	Discipline           string `json:"discipline" binding:"required"`
	Category             string `json:"category"`
	Region               string `json:"region" binding:"required"`
	City                 string `json:"city" binding:"required"`
	StartDate            string `json:"start_date" binding:"required"` // YYYY-MM-DD
	StartTime            string `json:"start_time"`                   // HH:MM
	EndDate              string `json:"end_date"`
	EndTime              string `json:"end_time"`
	ContactName          string `json:"contact_name"`
	ContactEmail         string `json:"contact_email" binding:"required,email"`
	ContactPhone         string `json:"contact_phone"`
	Website              string `json:"website"`
	Description          string `json:"description"`
	RegistrationURL      string `json:"registration_url"`
	MaxCapacity          string `json:"max_capacity"`
	CurrentRegistrations string `json:"current_registrations"`
}

func (sc *SubmissionController) Submit(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	var req SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	sub, err := sc.service.Submit(c.Request.Context(), user, services.SubmitInput{
		Title:                req.Title,
		Discipline:           req.Discipline,
		Category:             req.Category,
		Region:               req.Region,
		City:                 req.City,
		StartDate:            req.StartDate,
		StartTime:            req.StartTime,
		EndDate:              req.EndDate,
		EndTime:              req.EndTime,
		ContactName:          req.ContactName,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
		Website:              req.Website,
		Description:          req.Description,
		RegistrationURL:      req.RegistrationURL,
		MaxCapacity:          req.MaxCapacity,
		CurrentRegistrations: req.CurrentRegistrations,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailNotVerified) {
			utils.SendError(c, http.StatusForbidden, "Please verify your email before submitting events")
			return
		}
		utils.SendValidationError(c, err.Error())
		return
	}

	utils.SendCreated(c, "Event submitted for review", sub)
}

func (sc *SubmissionController) List(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	subs, err := sc.service.List(user)
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}
	utils.SendSuccess(c, "Submissions retrieved", subs)
}

func (sc *SubmissionController) Pending(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	subs, err := sc.service.Pending(user)
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}
	utils.SendSuccess(c, "Pending submissions retrieved", subs)
}

func (sc *SubmissionController) MySubmissions(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	subs, err := sc.service.MySubmissions(user)
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}
	utils.SendSuccess(c, "Submissions retrieved", subs)
}

type ReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func (sc *SubmissionController) Approve(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.SendValidationError(c, err.Error())
		return
	}

	result, err := sc.service.Approve(c.Request.Context(), user, c.Param("id"), req.AdminNotes)
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Submission approved", gin.H{"publish": result})
}

func (sc *SubmissionController) Reject(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.SendValidationError(c, err.Error())
		return
	}

	if err := sc.service.Reject(c.Request.Context(), user, c.Param("id"), req.AdminNotes); err != nil {
		sc.handleServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Submission rejected", nil)
}

func (sc *SubmissionController) Publish(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	result, err := sc.service.Publish(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type UpdateSubmissionRequest struct {
	Title                *string `json:"title"`
	Discipline           *string `json:"discipline"`
	Category             *string `json:"category"`
	Region               *string `json:"region"`
	City                 *string `json:"city"`
	StartDate            *string `json:"start_date"`
	StartTime            *string `json:"start_time"`
	EndDate              *string `json:"end_date"`
	EndTime              *string `json:"end_time"`
	ContactName          *string `json:"contact_name"`
	ContactEmail         *string `json:"contact_email"`
	ContactPhone         *string `json:"contact_phone"`
	Website              *string `json:"website"`
	Description          *string `json:"description"`
	RegistrationURL      *string `json:"registration_url"`
	MaxCapacity          *string `json:"max_capacity"`
	CurrentRegistrations *string `json:"current_registrations"`
}

func (sc *SubmissionController) Update(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	outcome, err := sc.service.Update(c.Request.Context(), user, c.Param("id"), services.UpdateInput{
		Title:                req.Title,
		Discipline:           req.Discipline,
		Category:             req.Category,
		Region:               req.Region,
		City:                 req.City,
		StartDate:            req.StartDate,
		StartTime:            req.StartTime,
		EndDate:              req.EndDate,
		EndTime:              req.EndTime,
		ContactName:          req.ContactName,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
		Website:              req.Website,
		Description:          req.Description,
		RegistrationURL:      req.RegistrationURL,
		MaxCapacity:          req.MaxCapacity,
		CurrentRegistrations: req.CurrentRegistrations,
	})
	if err != nil {
		sc.handleServiceError(c, err)
		return
	}

	message := "Submission updated"
	if outcome.RequiresReapproval {
		message = "Submission updated and sent back for review"
	}
	utils.SendSuccess(c, message, outcome)
}

func (sc *SubmissionController) Delete(c *gin.Context) {
	user, ok := sc.currentUser(c)
	if !ok {
		return
	}

	if err := sc.service.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		sc.handleServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Submission deleted", nil)
}

func (sc *SubmissionController) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		utils.SendError(c, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.SendError(c, http.StatusNotFound, "Submission not found")
	default:
		utils.SendValidationError(c, err.Error())
	}
}
