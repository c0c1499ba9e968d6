package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/repository"
)

type TicketService interface {
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	CreateTicket(ctx context.Context, userID, eventID uint) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id uint) error
	ListUserTickets(ctx context.Context, userID uint) ([]models.Ticket, error)
}

type ticketService struct {
	db      *gorm.DB
	tickets repository.TicketRepo
	events  repository.EventRepo
	users   repository.UserRepo
	logger  *zap.Logger
}

var _ TicketService = (*ticketService)(nil)

func NewTicketService(db *gorm.DB, tickets repository.TicketRepo, events repository.EventRepo, users repository.UserRepo, logger *zap.Logger) *ticketService {
	return &ticketService{
		db:      db,
		tickets: tickets,
		events:  events,
		users:   users,
		logger:  logger,
	}
}

func (s *ticketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// CreateTicket issues a ticket priced at the event's current price. Later
// changes to the event price do not touch issued tickets.
func (s *ticketService) CreateTicket(ctx context.Context, userID, eventID uint) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.events.WithTx(tx).GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: event %d", ErrNotFound, eventID)
			}
			return err
		}
		if _, err := s.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return err
		}

		ticket = &models.Ticket{
			Price:   event.Price,
			UserID:  userID,
			EventID: event.ID,
		}
		return s.tickets.WithTx(tx).Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.Uint("ticket_id", ticket.ID),
		zap.Uint("user_id", userID),
		zap.Uint("event_id", eventID),
		zap.String("price", ticket.Price.String()),
	)
	return ticket, nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, id uint) error {
	affected, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ticketService) ListUserTickets(ctx context.Context, userID uint) ([]models.Ticket, error) {
	return s.tickets.ListByUserWithEvent(ctx, userID)
}
