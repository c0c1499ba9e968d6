package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farellandr/eventhub/internal/models"
)

type EventRepo interface {
	WithTx(tx *gorm.DB) EventRepo
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	ListByCreator(ctx context.Context, userID uint) ([]models.Event, error)
	CountByCreator(ctx context.Context, userID uint) (int64, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type eventRepoGorm struct {
	db *gorm.DB
}

var _ EventRepo = (*eventRepoGorm)(nil)

func NewEventRepoGorm(db *gorm.DB) *eventRepoGorm {
	return &eventRepoGorm{
		db: db,
	}
}

func (r *eventRepoGorm) WithTx(tx *gorm.DB) EventRepo {
	return &eventRepoGorm{
		db: tx,
	}
}

func (r *eventRepoGorm) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *eventRepoGorm) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepoGorm) ListAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepoGorm) ListByCreator(ctx context.Context, userID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepoGorm) CountByCreator(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Event{}).Where("created_by = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepoGorm) Save(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

// Delete removes the event together with its tickets.
func (r *eventRepoGorm) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("event_id = ?", id).Delete(&models.Ticket{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&models.Event{})
	return result.RowsAffected, result.Error
}
