package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/farellandr/eventhub/internal/helpers"
	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/service"
)

type CreateEventRequest struct {
	Title       string           `json:"title" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Location    string           `json:"location" binding:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Image       *string          `json:"image"`
	CreatedBy   uint             `json:"created_by" binding:"required"`
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, eventResponses(events))
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), service.CreateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, event.Response())
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event.Response())
}

func (h *Handler) PatchEvent(c *gin.Context) {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var patch models.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event, err := h.events.PatchEvent(c.Request.Context(), id, patch)
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event.Response())
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.events.DeleteEvent(c.Request.Context(), id); err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func eventResponses(events []models.Event) []models.EventResponse {
	resp := make([]models.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, events[i].Response())
	}
	return resp
}
