package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/farellandr/eventhub/internal/models"
)

type UserRepo interface {
	WithTx(tx *gorm.DB) UserRepo
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type userRepoGorm struct {
	db *gorm.DB
}

var _ UserRepo = (*userRepoGorm)(nil)

func NewUserRepoGorm(db *gorm.DB) *userRepoGorm {
	return &userRepoGorm{
		db: db,
	}
}

func (r *userRepoGorm) WithTx(tx *gorm.DB) UserRepo {
	return &userRepoGorm{
		db: tx,
	}
}

func (r *userRepoGorm) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Tickets").Create(user).Error
}

func (r *userRepoGorm) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user together with its tickets.
func (r *userRepoGorm) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", id).Delete(&models.Ticket{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&models.User{})
	return result.RowsAffected, result.Error
}
