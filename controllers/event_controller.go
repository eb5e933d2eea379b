// File: /controllers/event_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"aquaevents-api/repositories"
	"aquaevents-api/services"
	"aquaevents-api/utils"

	"github.com/gin-gonic/gin"
)

// EventController serves the public calendar out of MongoDB. Reads need no
// authentication; deleting a published event is an admin action that also
// removes the originating submission.
type EventController struct {
	events  *repositories.EventRepository
	publish *services.PublishService
}

func NewEventController(events *repositories.EventRepository, publish *services.PublishService) *EventController {
	return &EventController{events: events, publish: publish}
}

func (ec *EventController) GetEvents(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	events, err := ec.events.List(c.Request.Context(), limit, c.Query("discipline"), c.Query("region"))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	event, err := ec.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event == nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) GetStats(c *gin.Context) {
	stats, err := ec.events.Stats(c.Request.Context())
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// DeleteEvent removes a published event and cascades to its submission row.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	result := ec.publish.DeletePublicEvent(c.Request.Context(), c.Param("id"))
	if !result.Success {
		status := http.StatusUnprocessableEntity
		if result.Error == "Event not found" {
			status = http.StatusNotFound
		}
		c.JSON(status, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
