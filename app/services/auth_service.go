package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

const tokenCachePrefix = "auth:token:"

// AuthService logs users in and resolves the bearer tokens it issued.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *repositories.AccessTokenRepository
	issuer auth.TokenIssuer
	cache  *cache.Store
	ttl    time.Duration
}

// NewAuthService wires the service. store may be nil; ttl 0 disables the
// token cache.
func NewAuthService(
	users *repositories.UserRepository,
	tokens *repositories.AccessTokenRepository,
	issuer auth.TokenIssuer,
	store *cache.Store,
	ttl time.Duration,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, issuer: issuer, cache: store, ttl: ttl}
}

// Authenticate checks the credentials and issues a new bearer token.
// An unknown email and a wrong password both return e.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, e.ErrNotFound) {
		// Still pay for a bcrypt comparison so both failures take as long.
		auth.CheckPassword(dummyHash(), password)
		metrics.AuthAttempts.WithLabelValues("failed").Inc()
		return "", e.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("auth: authenticate: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failed").Inc()
		return "", e.ErrUnauthorized
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth: issue: %w", err)
	}
	record := models.AccessToken{UserID: user.ID, Name: email, Value: auth.Digest(token)}
	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("auth: authenticate: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	logger.WithCtx(ctx).Info("token issued", "user_id", user.ID)
	return token, nil
}

// UserFromToken resolves a bearer string to its owner. Any failure to do
// so is e.ErrUnauthenticated; store errors are returned as is.
func (s *AuthService) UserFromToken(ctx context.Context, bearer string) (*models.User, error) {
	if bearer == "" || s.issuer.Check(bearer) != nil {
		metrics.AuthAttempts.WithLabelValues("invalid").Inc()
		return nil, e.ErrUnauthenticated
	}

	digest := auth.Digest(bearer)
	key := tokenCachePrefix + digest

	if s.ttl > 0 && s.cache.Available() {
		var user models.User
		hit := s.cache.Get(ctx, key, &user)
		metrics.CacheLookup("auth_token", hit)
		if hit {
			return &user, nil
		}
	}

	token, err := s.tokens.FindByDigest(ctx, digest)
	if errors.Is(err, e.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("invalid").Inc()
		return nil, e.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("auth: resolve token: %w", err)
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, token.User, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("token cache write failed", "error", err)
		}
	}
	return &token.User, nil
}

// Resolve adapts UserFromToken to middleware.IdentityResolver.
func (s *AuthService) Resolve(ctx context.Context, bearer string) (auth.Identity, error) {
	user, err := s.UserFromToken(ctx, bearer)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: user.ID, Email: user.Email}, nil
}

// dummyHash is compared against when the email is unknown.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := auth.HashPassword("catalog-no-such-user")
	return hash
})
