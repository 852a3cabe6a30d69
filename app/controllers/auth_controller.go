package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
)

// LoginRequest is the body of POST /auth/token. Email carries no format
// rule: an address that matches no user is answered with 401 like any other.
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"demo@example.com"`
	Password string `json:"password" validate:"required" example:"password"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login issues a bearer token.
//
//	@Summary	Issue a bearer token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	TokenResponse
//	@Failure	401		{object}	ErrorResponse	"Invalid credentials"
//	@Failure	422		{object}	ErrorResponse	"Validation failed"
//	@Router		/auth/token [post]
func (ac *AuthController) Login(c *ctx.Context) {
	var in LoginRequest
	if !c.BindJSON(&in) {
		return
	}

	token, err := ac.service.Authenticate(c.Context(), in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
