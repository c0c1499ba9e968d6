package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/eventhub/internal/helpers"
	"github.com/farellandr/eventhub/internal/models"
)

type CreateTicketRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	EventID uint `json:"event_id" binding:"required"`
}

func (h *Handler) ListTickets(c *gin.Context) {
	tickets, err := h.tickets.ListTickets(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	resp := make([]models.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, tickets[i].Response())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ticket, err := h.tickets.CreateTicket(c.Request.Context(), req.UserID, req.EventID)
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ticket.Response())
}

func (h *Handler) DeleteTicket(c *gin.Context) {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tickets.DeleteTicket(c.Request.Context(), id); err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
