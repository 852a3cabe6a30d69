package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/orm"
)

// ErrEmailTaken is returned by Create when the email already has an account.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := orm.New(ctx, r.db).Where("email = ?", email).First(&user); err != nil {
		return models.User{}, fmt.Errorf("users: find by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := orm.New(ctx, r.db).Where("id = ?", id).First(&user); err != nil {
		return models.User{}, fmt.Errorf("users: find %d: %w", id, err)
	}
	return user, nil
}

// Create persists a new user. Email uniqueness is checked first so every
// driver reports the same error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("users: create: %w", ErrEmailTaken)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}
