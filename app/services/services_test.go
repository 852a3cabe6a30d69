package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/internal/testdb"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/e"
)

func newProductService(t *testing.T) *services.ProductService {
	t.Helper()
	return services.NewProductService(repositories.NewProductRepository(testdb.New(t)), 15, 100)
}

func TestProductCreate(t *testing.T) {
	svc := newProductService(t)

	p, err := svc.Create(context.Background(), services.ProductInput{Name: "Acme Inc", Price: json.Number("42")})
	require.NoError(t, err)
	assert.Equal(t, "acme-inc", p.Slug)
	assert.Equal(t, "42", p.Price.String())

	p, err = svc.Create(context.Background(), services.ProductInput{Name: "Cents", Price: "10.456"})
	require.NoError(t, err)
	assert.Equal(t, "10.46", p.Price.String())
}

func TestProductCreateValidation(t *testing.T) {
	svc := newProductService(t)

	cases := map[string]struct {
		in     services.ProductInput
		fields []string
	}{
		"empty":          {services.ProductInput{}, []string{"name", "price"}},
		"blank name":     {services.ProductInput{Name: "   ", Price: json.Number("1")}, []string{"name"}},
		"negative price": {services.ProductInput{Name: "x", Price: json.Number("-1")}, []string{"price"}},
		"text price":     {services.ProductInput{Name: "x", Price: "cheap"}, []string{"price"}},
		"bool price":     {services.ProductInput{Name: "x", Price: true}, []string{"price"}},
		"huge price":     {services.ProductInput{Name: "x", Price: json.Number("1e30")}, []string{"price"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			var verr *e.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tc.fields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tc.fields))
		})
	}
}

func TestProductUpdate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, services.ProductInput{Name: "Old", Price: json.Number("1")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, services.ProductInput{Name: "My new nice name", Price: json.Number("77")})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "my-new-nice-name", updated.Slug)
	assert.True(t, p.CreatedAt.Equal(updated.CreatedAt))

	_, err = svc.Update(ctx, 9999, services.ProductInput{})
	assert.ErrorIs(t, err, e.ErrNotFound, "missing product wins over invalid input")

	_, err = svc.Update(ctx, p.ID, services.ProductInput{})
	assert.ErrorIs(t, err, e.ErrValidationFailed)
}

func TestProductListCapsPerPage(t *testing.T) {
	svc := services.NewProductService(repositories.NewProductRepository(testdb.New(t)), 2, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, services.ProductInput{Name: "p", Price: json.Number("1")})
		require.NoError(t, err)
	}

	items, p, err := svc.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, p.PerPage)

	items, p, err = svc.List(ctx, 1, 50)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 3, p.PerPage)
}

func TestProductDelete(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, services.ProductInput{Name: "Gone", Price: json.Number("1")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Find(ctx, p.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), e.ErrNotFound)
}

type authFixture struct {
	svc    *services.AuthService
	user   models.User
	issuer auth.TokenIssuer
}

func newAuthFixture(t *testing.T, driver string) authFixture {
	t.Helper()

	db := testdb.New(t)
	users := repositories.NewUserRepository(db)

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	user := models.User{Email: "ada@example.com", Password: hash}
	require.NoError(t, users.Create(context.Background(), &user))

	issuer := auth.NewIssuer(driver, "test-secret")
	svc := services.NewAuthService(users, repositories.NewAccessTokenRepository(db), issuer, nil, 0)
	return authFixture{svc: svc, user: user, issuer: issuer}
}

func TestAuthenticate(t *testing.T) {
	for _, driver := range []string{"opaque", "jwt"} {
		t.Run(driver, func(t *testing.T) {
			f := newAuthFixture(t, driver)
			ctx := context.Background()

			token, err := f.svc.Authenticate(ctx, "ada@example.com", "secret")
			require.NoError(t, err)
			require.NotEmpty(t, token)

			user, err := f.svc.UserFromToken(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, f.user.ID, user.ID)

			id, err := f.svc.Resolve(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, auth.Identity{UserID: f.user.ID, Email: "ada@example.com"}, id)
		})
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t, "opaque")
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	_, err = f.svc.Authenticate(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestUserFromTokenRejectsUnknownTokens(t *testing.T) {
	f := newAuthFixture(t, "opaque")
	ctx := context.Background()

	minted, err := f.issuer.Issue(f.user.ID)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":     "",
		"malformed": "not-a-token",
		"not saved": minted,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.UserFromToken(ctx, token)
			assert.ErrorIs(t, err, e.ErrUnauthenticated)
		})
	}
}

func TestEachLoginIssuesADistinctToken(t *testing.T) {
	f := newAuthFixture(t, "opaque")
	ctx := context.Background()

	a, err := f.svc.Authenticate(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	b, err := f.svc.Authenticate(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = f.svc.UserFromToken(ctx, a)
	assert.NoError(t, err)
}
