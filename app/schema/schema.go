// Package schema is the read-only GraphQL view of the catalogue, served on
// POST /api/graphql:
//
//	{ products(page: 1, perPage: 5) { data { id name price } total lastPage } }
//	{ product(id: 3) { name slug createdAt } }
package schema

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/resources"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/e"
	gql "github.com/shashiranjanraj/catalog/pkg/graphql"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

var (
	errProductNotFound = errors.New("product not found")
	errInternal        = errors.New("internal server error")
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"slug": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		// Exact decimal, e.g. "19.90".
		"price":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var productPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductPage",
	Fields: graphql.Fields{
		"data":        &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType)))},
		"currentPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"perPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"lastPage":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"total":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

// New builds the schema over products.
func New(products *services.ProductService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(productPageType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					perPage, _ := p.Args["perPage"].(int)

					items, pg, err := products.List(p.Context, page, perPage)
					if err != nil {
						return nil, internal(p, err)
					}

					data := make([]map[string]interface{}, 0, len(items))
					for _, item := range items {
						data = append(data, productFields(item))
					}
					return map[string]interface{}{
						"data":        data,
						"currentPage": pg.Page,
						"perPage":     pg.PerPage,
						"lastPage":    pg.LastPage,
						"total":       int(pg.Total),
					}, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, errProductNotFound
					}

					product, err := products.Find(p.Context, uint(id))
					if errors.Is(err, e.ErrNotFound) {
						return nil, errProductNotFound
					}
					if err != nil {
						return nil, internal(p, err)
					}
					return productFields(product), nil
				},
			},
		},
	})

	return gql.NewSchema(query)
}

// internal logs err and hides it from the client.
func internal(p graphql.ResolveParams, err error) error {
	logger.WithCtx(p.Context).Error("graphql resolve failed", "field", p.Info.FieldName, "error", err)
	return errInternal
}

func productFields(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":        int(p.ID),
		"name":      p.Name,
		"slug":      p.Slug,
		"price":     p.Price.StringFixed(2),
		"createdAt": p.CreatedAt.UTC().Format(resources.TimeFormat),
	}
}
