// Package controllers adapts HTTP requests to the services.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/resources"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/resource"
)

// ErrorResponse documents the error envelope.
type ErrorResponse struct {
	Status  int               `json:"status" example:"404"`
	Message string            `json:"message" example:"Not found"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// URLFunc builds the path of a named route, see router.Router.URL.
type URLFunc func(name string, params map[string]string) (string, error)

type ProductController struct {
	service *services.ProductService
	url     URLFunc
}

func NewProductController(service *services.ProductService, url URLFunc) *ProductController {
	return &ProductController{service: service, url: url}
}

// Index lists products.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		per_page	query		int	false	"Page size"		default(15)
//	@Success	200			{object}	map[string]interface{}
//	@Failure	401			{object}	ErrorResponse
//	@Router		/api/products [get]
func (pc *ProductController) Index(c *ctx.Context) {
	products, page, err := pc.service.List(c.Context(), c.QueryInt("page", 1), c.QueryInt("per_page", 0))
	if err != nil {
		c.Fail(err)
		return
	}

	resource.CollectionOf[models.Product](resources.ProductResource{}, products).
		WithPagination(page, c.Path()).
		Respond(c.W)
}

// Store creates a product.
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		services.ProductInput	true	"Product"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	401		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/api/products [post]
func (pc *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if err := c.Decode(&in); err != nil {
		c.Fail(err)
		return
	}

	product, err := pc.service.Create(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}

	if caller, ok := c.Identity(); ok {
		logger.WithCtx(c.Context()).Info("product created", "id", product.ID, "user_id", caller.UserID)
	}
	if pc.url != nil {
		if loc, err := pc.url("products.show", map[string]string{"id": strconv.FormatUint(uint64(product.ID), 10)}); err == nil {
			c.W.Header().Set("Location", loc)
		}
	}

	resource.New[models.Product](resources.ProductResource{}, product).
		WithStatus(http.StatusCreated).
		Respond(c.W)
}

// Show returns one product.
//
//	@Summary	Show a product
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Product id"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [get]
func (pc *ProductController) Show(c *ctx.Context) {
	id, err := c.ParamID("id")
	if err != nil {
		c.Fail(err)
		return
	}

	product, err := pc.service.Find(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}

	resource.New[models.Product](resources.ProductResource{}, product).Respond(c.W)
}

// Update replaces name and price. A missing product is reported before
// the body is read.
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int						true	"Product id"
//	@Param		body	body		services.ProductInput	true	"Product"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/api/products/{id} [put]
func (pc *ProductController) Update(c *ctx.Context) {
	id, err := c.ParamID("id")
	if err != nil {
		c.Fail(err)
		return
	}

	if _, err := pc.service.Find(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}

	var in services.ProductInput
	if err := c.Decode(&in); err != nil {
		c.Fail(err)
		return
	}

	product, err := pc.service.Update(c.Context(), id, in)
	if err != nil {
		c.Fail(err)
		return
	}

	resource.New[models.Product](resources.ProductResource{}, product).Respond(c.W)
}

// Destroy deletes a product.
//
//	@Summary	Delete a product
//	@Tags		products
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Product id"
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [delete]
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, err := c.ParamID("id")
	if err != nil {
		c.Fail(err)
		return
	}

	if err := pc.service.Delete(c.Context(), id); err != nil {
		c.Fail(err)
		return
	}
	if caller, ok := c.Identity(); ok {
		logger.WithCtx(c.Context()).Info("product deleted", "id", id, "user_id", caller.UserID)
	}
	c.NoContent()
}
