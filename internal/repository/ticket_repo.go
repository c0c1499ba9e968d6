package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/farellandr/eventhub/internal/models"
)

type TicketRepo interface {
	WithTx(tx *gorm.DB) TicketRepo
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id uint) (*models.Ticket, error)
	ListAll(ctx context.Context) ([]models.Ticket, error)
	ListByUserWithEvent(ctx context.Context, userID uint) ([]models.Ticket, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type ticketRepoGorm struct {
	db *gorm.DB
}

var _ TicketRepo = (*ticketRepoGorm)(nil)

func NewTicketRepoGorm(db *gorm.DB) *ticketRepoGorm {
	return &ticketRepoGorm{
		db: db,
	}
}

func (r *ticketRepoGorm) WithTx(tx *gorm.DB) TicketRepo {
	return &ticketRepoGorm{
		db: tx,
	}
}

func (r *ticketRepoGorm) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

func (r *ticketRepoGorm) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepoGorm) ListAll(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.WithContext(ctx).Order("id").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepoGorm) ListByUserWithEvent(ctx context.Context, userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("id").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepoGorm) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Ticket{})
	return result.RowsAffected, result.Error
}
