package handlers

import (
	"go.uber.org/zap"

	"github.com/farellandr/eventhub/internal/service"
)

type Handler struct {
	users   service.UserService
	events  service.EventService
	tickets service.TicketService
	logger  *zap.Logger
}

func NewHandler(users service.UserService, events service.EventService, tickets service.TicketService, logger *zap.Logger) *Handler {
	return &Handler{
		users:   users,
		events:  events,
		tickets: tickets,
		logger:  logger,
	}
}
