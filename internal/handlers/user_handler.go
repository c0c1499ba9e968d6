package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/eventhub/internal/helpers"
	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/service"
)

type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	resp := make([]models.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, users[i].Response())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user.Response())
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := helpers.ParamID(c, "user_id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListUserTickets(c *gin.Context) {
	userID, err := helpers.ParamID(c, "user_id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	tickets, err := h.tickets.ListUserTickets(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	resp := make([]models.UserTicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		entry := models.UserTicketResponse{
			ID:    ticket.ID,
			Price: ticket.Price,
		}
		if ticket.Event != nil {
			entry.Event = ticket.Event.Summary()
		}
		resp = append(resp, entry)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListUserEvents(c *gin.Context) {
	userID, err := helpers.ParamID(c, "user_id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.events.ListEventsByCreator(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, eventResponses(events))
}
