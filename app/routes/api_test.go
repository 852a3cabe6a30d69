package routes_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/resources"
	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/internal/testdb"
	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/testkit"
)

type apiSuite struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newSuite(t *testing.T) *apiSuite {
	t.Helper()

	a := app.New().Routes(routes.API)
	a.DB = testdb.New(t)
	return &apiSuite{t: t, db: a.DB, handler: a.Handler()}
}

func (s *apiSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *apiSuite) createUser(email, password string) models.User {
	s.t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(s.t, err)
	user := models.User{Email: email, Password: hash}
	require.NoError(s.t, repositories.NewUserRepository(s.db).Create(context.Background(), &user))
	return user
}

// login creates a user and returns a bearer token issued through the API.
func (s *apiSuite) login() string {
	s.t.Helper()

	s.createUser("tester@example.com", "password")
	rec := s.do(http.MethodPost, "/auth/token", "", `{"email":"tester@example.com","password":"password"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct{ Token string }
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func (s *apiSuite) createProduct(name string, price int64) models.Product {
	s.t.Helper()

	p := models.Product{Name: name, Price: decimal.NewFromInt(price)}
	require.NoError(s.t, repositories.NewProductRepository(s.db).Create(context.Background(), &p))
	return p
}

func (s *apiSuite) findProduct(id uint) (models.Product, error) {
	return repositories.NewProductRepository(s.db).FindByID(context.Background(), id)
}

func (s *apiSuite) countProducts() int64 {
	s.t.Helper()

	var n int64
	require.NoError(s.t, s.db.Model(&models.Product{}).Count(&n).Error)
	return n
}

func TestProductEndpointsRequireAuthentication(t *testing.T) {
	s := newSuite(t)
	p := s.createProduct("Acme Inc", 42)
	item := fmt.Sprintf("/api/products/%d", p.ID)
	body := `{"name":"Intruder","price":1}`

	for _, c := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/products", ""},
		{http.MethodPost, "/api/products", body},
		{http.MethodGet, item, ""},
		{http.MethodPut, item, body},
		{http.MethodDelete, item, ""},
		{http.MethodGet, "/api/products/-1", ""},
	} {
		rec := s.do(c.method, c.path, "", c.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", c.method, c.path)
		assert.JSONEq(t, `{"status":401,"message":"Unauthenticated"}`, rec.Body.String())
	}

	rec := s.do(http.MethodGet, "/api/products", strings.Repeat("ab", 32), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unknown token")

	assert.EqualValues(t, 1, s.countProducts())
	stored, err := s.findProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", stored.Name)
}

// TestAPIScenarios drives the endpoint tables in testdata/. None of the
// scenarios may change the stored product.
func TestAPIScenarios(t *testing.T) {
	s := newSuite(t)
	token := s.login()
	p := s.createProduct("Acme Inc", 42)
	stored, err := s.findProduct(p.ID)
	require.NoError(t, err)

	testkit.RunSuite(t, "testdata/test_scenarios.json", s.handler, testkit.Vars{
		"token":      token,
		"email":      "tester@example.com",
		"password":   "password",
		"id":         fmt.Sprint(p.ID),
		"created_at": stored.CreatedAt.UTC().Format(resources.TimeFormat),
	})

	assert.EqualValues(t, 1, s.countProducts())
	after, err := s.findProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Name, after.Name)
	assert.True(t, stored.Price.Equal(after.Price))
	assert.True(t, stored.UpdatedAt.Equal(after.UpdatedAt))
}

func TestListProducts(t *testing.T) {
	s := newSuite(t)
	token := s.login()
	for i := 1; i <= 3; i++ {
		s.createProduct(fmt.Sprintf("Product %d", i), int64(i*10))
	}

	rec := s.do(http.MethodGet, "/api/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data  []map[string]any `json:"data"`
		Links map[string]any   `json:"links"`
		Meta  map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	require.Len(t, out.Data, 3)
	for _, item := range out.Data {
		assert.Len(t, item, 5)
		for _, key := range []string{"id", "name", "slug", "price", "created_at"} {
			assert.Contains(t, item, key)
		}
	}
	assert.Equal(t, "Product 1", out.Data[0]["name"])
	for _, key := range []string{"first", "last", "prev", "next"} {
		assert.Contains(t, out.Links, key)
	}
	assert.EqualValues(t, 3, out.Meta["total"])
	assert.EqualValues(t, 15, out.Meta["per_page"])
	assert.Equal(t, "/api/products", out.Meta["path"])
}

func TestListProductsEmpty(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	rec := s.do(http.MethodGet, "/api/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestCreateProduct(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	rec := s.do(http.MethodPost, "/api/products", token, `{"name":"Acme Inc","price":42}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Regexp(t, `^/api/products/\d+$`, rec.Header().Get("Location"))

	var out struct {
		Data struct {
			ID    uint        `json:"id"`
			Name  string      `json:"name"`
			Slug  string      `json:"slug"`
			Price json.Number `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Acme Inc", out.Data.Name)
	assert.Equal(t, "acme-inc", out.Data.Slug)
	assert.Equal(t, json.Number("42"), out.Data.Price)

	stored, err := s.findProduct(out.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme-inc", stored.Slug)
	assert.True(t, decimal.NewFromInt(42).Equal(stored.Price))
}

func TestCreateProductIgnoresClientSlug(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	rec := s.do(http.MethodPost, "/api/products", token, `{"name":"Acme Inc","price":1,"slug":"hacked"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"acme-inc"`)
}

func TestCreateProductValidation(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	rec := s.do(http.MethodPost, "/api/products", token, `{"price":-5}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var out struct {
		Status int               `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 422, out.Status)
	assert.Contains(t, out.Errors, "name")
	assert.Contains(t, out.Errors, "price")

	rec = s.do(http.MethodPost, "/api/products", token, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowProduct(t *testing.T) {
	s := newSuite(t)
	token := s.login()
	p := s.createProduct("Globex Corporation", 55)
	stored, err := s.findProduct(p.ID)
	require.NoError(t, err)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, fmt.Sprintf(`{"data":{
		"id": %d,
		"name": "Globex Corporation",
		"slug": "globex-corporation",
		"price": 55,
		"created_at": %q
	}}`, p.ID, stored.CreatedAt.UTC().Format(resources.TimeFormat)), rec.Body.String())
}

func TestMissingProductIs404(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	for _, c := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/products/-1", ""},
		{http.MethodPut, "/api/products/-1", ""},
		{http.MethodDelete, "/api/products/-1", ""},
		{http.MethodGet, "/api/products/abc", ""},
		{http.MethodPut, "/api/products/999", `{"name":"x","price":1}`},
		{http.MethodPut, "/api/products/999", `{}`},
		{http.MethodPut, "/api/products/999", `{"name":`},
		{http.MethodPut, "/api/products/999", `{"name":"x","price":"abc"}`},
	} {
		rec := s.do(c.method, c.path, token, c.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s %s", c.method, c.path, c.body)
	}
}

func TestUpdateProduct(t *testing.T) {
	s := newSuite(t)
	token := s.login()
	p := s.createProduct("Old name", 10)
	before, err := s.findProduct(p.ID)
	require.NoError(t, err)

	rec := s.do(http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token, `{"name":"My new nice name","price":77}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	after, err := s.findProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "My new nice name", after.Name)
	assert.Equal(t, "my-new-nice-name", after.Slug)
	assert.True(t, decimal.NewFromInt(77).Equal(after.Price))
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))

	assert.JSONEq(t, fmt.Sprintf(`{"data":{
		"id": %d,
		"name": "My new nice name",
		"slug": "my-new-nice-name",
		"price": 77,
		"created_at": %q
	}}`, p.ID, after.CreatedAt.UTC().Format(resources.TimeFormat)), rec.Body.String())

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token, `{"name":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	s := newSuite(t)
	token := s.login()
	p := s.createProduct("Doomed", 1)
	path := fmt.Sprintf("/api/products/%d", p.ID)

	rec := s.do(http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err := s.findProduct(p.ID)
	assert.Error(t, err)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, token, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, token, "").Code)
}

func TestLogin(t *testing.T) {
	s := newSuite(t)
	s.createUser("ada@example.com", "s3cret")

	rec := s.do(http.MethodPost, "/auth/token", "", `{"email":"ada@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var ok map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.NotEmpty(t, ok["token"])

	var stored models.AccessToken
	require.NoError(t, s.db.Where("value = ?", auth.Digest(ok["token"])).First(&stored).Error)
	assert.Equal(t, "ada@example.com", stored.Name)

	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"s3cret"}`,
		`{"email":"nobody","password":"s3cret"}`,
		`{"email":"admin@localhost","password":"s3cret"}`,
	} {
		rec := s.do(http.MethodPost, "/auth/token", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.JSONEq(t, `{"status":401,"message":"Invalid credentials"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "token")
	}

	rec = s.do(http.MethodPost, "/auth/token", "", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestIssuedTokenAuthenticates(t *testing.T) {
	s := newSuite(t)
	token := s.login()

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/products", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/products", token+"x", "").Code)
}

func TestGraphQLRequiresAuthentication(t *testing.T) {
	s := newSuite(t)

	rec := s.do(http.MethodPost, "/api/graphql", "", `{"query":"{ products { total } }"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login()
	s.createProduct("Acme Inc", 3)
	rec = s.do(http.MethodPost, "/api/graphql", token, `{"query":"{ products { total data { slug } } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"products":{"total":1,"data":[{"slug":"acme-inc"}]}}}`, rec.Body.String())
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s := newSuite(t)

	rec := s.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newSuite(t)

	rec := s.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}
