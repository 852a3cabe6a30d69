// Package routes wires controllers to URLs.
package routes

import (
	"fmt"

	"github.com/shashiranjanraj/catalog/app/controllers"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/schema"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/graphql"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// API registers the login endpoint and the authenticated /api group.
func API(r *router.Router, a *app.Application) {
	users := repositories.NewUserRepository(a.DB)
	tokens := repositories.NewAccessTokenRepository(a.DB)
	products := repositories.NewProductRepository(a.DB)

	authService := services.NewAuthService(users, tokens,
		auth.NewIssuer(config.TokenDriver(), config.JWTSecret()),
		a.Cache, config.TokenCacheTTL())
	productService := services.NewProductService(products, config.PerPage(), config.MaxPerPage())

	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(productService, r.URL)

	r.Post("/auth/token", "auth.token", ctx.Wrap(authController.Login))

	api := r.Group("/api", middleware.Authenticate(authService.Resolve))
	api.Get("/products", "products.index", ctx.Wrap(productController.Index))
	api.Post("/products", "products.store", ctx.Wrap(productController.Store))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))
	api.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update))
	api.Delete("/products/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	gqlSchema, err := schema.New(productService)
	if err != nil {
		// The schema is static; failing to build it is a programming error.
		panic(fmt.Sprintf("routes: graphql schema: %v", err))
	}
	api.Post("/graphql", "graphql", graphql.Handler(gqlSchema))
}
