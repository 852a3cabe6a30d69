package bind

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/e"
)

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type priceInput struct {
	Price any `json:"price" validate:"required,numeric"`
}

func TestJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.io","password":"x"}`))

	var in loginInput
	require.NoError(t, JSON(r, &in))
	assert.Equal(t, "a@b.io", in.Email)
}

func TestJSONValidationFailure(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.io"}`))

	var in loginInput
	err := JSON(r, &in)
	require.ErrorIs(t, err, e.ErrValidationFailed)

	var ve *e.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")
}

func TestEmptyBodyIsZeroInput(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))

	var in loginInput
	err := JSON(r, &in)
	require.ErrorIs(t, err, e.ErrValidationFailed, "empty body behaves as {} and fails validation")
}

func TestMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))

	var in loginInput
	assert.ErrorIs(t, JSON(r, &in), e.ErrBadRequest)
}

func TestWrongTypeIsValidationError(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":42,"password":"x"}`))

	var in loginInput
	err := JSON(r, &in)

	var ve *e.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "The email field must be a string.", ve.Fields["email"])
}

func TestNumbersKeptExact(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"price":19.990}`))

	var in priceInput
	require.NoError(t, JSON(r, &in))
	assert.Equal(t, json.Number("19.990"), in.Price)
}

func TestBodyTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", 16)
	t.Cleanup(func() { config.Set("MAX_BODY_BYTES", 4<<20) })

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"`+strings.Repeat("a", 64)+`@b.io"}`))

	var in loginInput
	assert.ErrorIs(t, JSON(r, &in), e.ErrTooLarge)
}
