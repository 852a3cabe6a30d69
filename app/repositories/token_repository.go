package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/orm"
)

// AccessTokenRepository stores issued tokens by digest.
type AccessTokenRepository struct {
	db *gorm.DB
}

func NewAccessTokenRepository(db *gorm.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(token).Error; err != nil {
		return fmt.Errorf("tokens: create: %w", err)
	}
	return nil
}

// FindByDigest loads the token with its owner; e.ErrNotFound when unknown.
func (r *AccessTokenRepository) FindByDigest(ctx context.Context, digest string) (models.AccessToken, error) {
	var token models.AccessToken
	err := orm.New(ctx, r.db.Preload("User")).Where("value = ?", digest).First(&token)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("tokens: find: %w", err)
	}
	return token, nil
}
