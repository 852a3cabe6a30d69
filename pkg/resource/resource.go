// Package resource provides Laravel-style API Resource transformers.
//
// A transformer controls exactly which keys a model exposes:
//
//	type ProductResource struct{}
//	func (ProductResource) ToArray(p models.Product) resource.Map {
//	    return resource.Map{"id": p.ID, "name": p.Name}
//	}
//
// Respond:
//
//	resource.New[models.Product](ProductResource{}, product).Respond(w)
//	resource.CollectionOf[models.Product](ProductResource{}, products).
//	    WithPagination(page, "/api/products").Respond(w)
package resource

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/orm"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

type Map = map[string]interface{}

// Transformer converts one model into its public shape.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// ------------------- Single resource -------------------

type Resource[T any] struct {
	transformer Transformer[T]
	data        T
	status      int
}

func New[T any](t Transformer[T], data T) *Resource[T] {
	return &Resource[T]{transformer: t, data: data, status: http.StatusOK}
}

// WithStatus overrides the default 200, e.g. 201 after a create.
func (r *Resource[T]) WithStatus(code int) *Resource[T] {
	r.status = code
	return r
}

// Map returns the transformed model without the data wrapper.
func (r *Resource[T]) Map() Map {
	return r.transformer.ToArray(r.data)
}

// Respond writes {"data":{...}}.
func (r *Resource[T]) Respond(w http.ResponseWriter) {
	response.JSON(w, r.status, Map{"data": r.Map()})
}

// ------------------- Collection resource -------------------

type Collection[T any] struct {
	transformer Transformer[T]
	items       []T
	pagination  *orm.Pagination
	path        string
}

func CollectionOf[T any](t Transformer[T], items []T) *Collection[T] {
	return &Collection[T]{transformer: t, items: items}
}

// WithPagination adds links and meta built from p; path is the listing URL
// without query string.
func (c *Collection[T]) WithPagination(p orm.Pagination, path string) *Collection[T] {
	c.pagination = &p
	c.path = path
	return c
}

// Items returns every transformed model; never nil.
func (c *Collection[T]) Items() []Map {
	out := make([]Map, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, c.transformer.ToArray(item))
	}
	return out
}

// Respond writes {"data":[...]} plus links and meta when paginated.
func (c *Collection[T]) Respond(w http.ResponseWriter) {
	out := Map{"data": c.Items()}
	if c.pagination != nil {
		out["links"] = links(*c.pagination, c.path)
		out["meta"] = meta(*c.pagination, c.path)
	}
	response.JSON(w, http.StatusOK, out)
}

func pageURL(path string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", path, page, perPage)
}

func links(p orm.Pagination, path string) Map {
	l := Map{
		"first": pageURL(path, 1, p.PerPage),
		"last":  pageURL(path, p.LastPage, p.PerPage),
		"prev":  nil,
		"next":  nil,
	}
	if p.Page > 1 {
		l["prev"] = pageURL(path, min(p.Page-1, p.LastPage), p.PerPage)
	}
	if p.Page < p.LastPage {
		l["next"] = pageURL(path, p.Page+1, p.PerPage)
	}
	return l
}

func meta(p orm.Pagination, path string) Map {
	m := Map{
		"current_page": p.Page,
		"from":         nil,
		"last_page":    p.LastPage,
		"path":         path,
		"per_page":     p.PerPage,
		"to":           nil,
		"total":        p.Total,
	}
	if p.From > 0 {
		m["from"] = p.From
		m["to"] = p.To
	}
	return m
}
