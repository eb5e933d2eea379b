// File: /controllers/federation_controller.go
package controllers

import (
	"net/http"

	"aquaevents-api/models"
	"aquaevents-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FederationController struct {
	db *gorm.DB
}

func NewFederationController(db *gorm.DB) *FederationController {
	return &FederationController{db: db}
}

// GetFederations lists the seeded federation reference data, optionally
// filtered by region or discipline.
func (fc *FederationController) GetFederations(c *gin.Context) {
	query := fc.db.Order("name ASC")
	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}
	if discipline := c.Query("discipline"); discipline != "" {
		query = query.Where("discipline = ?", discipline)
	}

	var federations []models.Federation
	if err := query.Find(&federations).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch federations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"federations": federations,
		"count":       len(federations),
	})
}
