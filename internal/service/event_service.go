package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/repository"
)

type CreateEventInput struct {
	Title       string
	Date        string
	Location    string
	Description *string
	Price       decimal.Decimal
	Category    string
	Image       *string
	CreatedBy   uint
}

type EventService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	PatchEvent(ctx context.Context, id uint, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	ListEventsByCreator(ctx context.Context, userID uint) ([]models.Event, error)
}

type eventService struct {
	db     *gorm.DB
	events repository.EventRepo
	users  repository.UserRepo
	logger *zap.Logger
}

var _ EventService = (*eventService)(nil)

func NewEventService(db *gorm.DB, events repository.EventRepo, users repository.UserRepo, logger *zap.Logger) *eventService {
	return &eventService{
		db:     db,
		events: events,
		users:  users,
		logger: logger,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.ListAll(ctx)
}

func (s *eventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	location, err := requireText("location", in.Location)
	if err != nil {
		return nil, err
	}
	category, err := requireText("category", in.Category)
	if err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       title,
		Date:        date,
		Location:    location,
		Description: in.Description,
		Price:       in.Price,
		Category:    category,
		Image:       in.Image,
		CreatedBy:   in.CreatedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, in.CreatedBy); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: created_by %d does not reference a user", ErrValidation, in.CreatedBy)
			}
			return err
		}
		return s.events.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.Uint("event_id", event.ID), zap.Uint("created_by", event.CreatedBy))
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return event, nil
}

func (s *eventService) PatchEvent(ctx context.Context, id uint, patch models.EventPatch) (*models.Event, error) {
	var event *models.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := s.events.WithTx(tx)
		found, err := events.GetByID(ctx, id)
		if err != nil {
			return translate(err)
		}
		if err := applyPatch(found, patch); err != nil {
			return err
		}
		if err := events.Save(ctx, found); err != nil {
			return err
		}
		event = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.events.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.Uint("event_id", id))
	return nil
}

func (s *eventService) ListEventsByCreator(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.events.ListByCreator(ctx, userID)
}

func applyPatch(event *models.Event, patch models.EventPatch) error {
	if patch.Title.Set {
		title, err := requireText("title", patch.Title.Value)
		if err != nil {
			return err
		}
		event.Title = title
	}
	if patch.Date.Set {
		date, err := parseDate(patch.Date.Value)
		if err != nil {
			return err
		}
		event.Date = date
	}
	if patch.Location.Set {
		location, err := requireText("location", patch.Location.Value)
		if err != nil {
			return err
		}
		event.Location = location
	}
	if patch.Image.Set {
		event.Image = patch.Image.Value
	}
	if patch.Description.Set {
		event.Description = patch.Description.Value
	}
	if patch.Price.Set {
		if patch.Price.Value == nil {
			return fmt.Errorf("%w: price cannot be null", ErrValidation)
		}
		if err := checkPrice(*patch.Price.Value); err != nil {
			return err
		}
		event.Price = *patch.Price.Value
	}
	if patch.Category.Set {
		category, err := requireText("category", patch.Category.Value)
		if err != nil {
			return err
		}
		event.Category = category
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	date, err := models.ParseISODate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date: %v", ErrValidation, err)
	}
	return date, nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return value, nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
