package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farellandr/eventhub/internal/models"
	"github.com/farellandr/eventhub/internal/repository"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	db        *gorm.DB
	users     repository.UserRepo
	events    repository.EventRepo
	logger    *zap.Logger
	hashCost  int
	dummyHash []byte
}

var _ UserService = (*userService)(nil)

func NewUserService(db *gorm.DB, users repository.UserRepo, events repository.EventRepo, logger *zap.Logger, hashCost int) *userService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	// Compared against when the email is unknown so both login failure
	// paths cost one bcrypt verification.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("unused-password"), hashCost)
	return &userService{
		db:        db,
		users:     users,
		events:    events,
		logger:    logger,
		hashCost:  hashCost,
		dummyHash: dummy,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be admin or customer", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if _, err := users.GetByEmail(ctx, in.Email); err == nil {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(translate(err), ErrConflict) {
				return fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role.String()))
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes a user and its tickets. Users that still own events
// cannot be deleted.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, id); err != nil {
			return translate(err)
		}
		created, err := s.events.WithTx(tx).CountByCreator(ctx, id)
		if err != nil {
			return err
		}
		if created > 0 {
			return fmt.Errorf("%w: user created %d event(s)", ErrConflict, created)
		}
		affected, err := s.users.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return translate(err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id))
	return nil
}
