// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helper methods:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id, err := c.ParamID("id")
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    ...
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair. It is only valid inside the
// handler it was passed to.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a path parameter as a positive id. Anything else cannot
// name a row, so it is e.ErrNotFound.
func (c *Context) ParamID(key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, e.ErrNotFound
	}
	return uint(n), nil
}

func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt returns the query value as an int, or def when absent or not a
// positive integer.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the authenticated caller set by the Authenticate middleware.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.IdentityFromCtx(c.R.Context())
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// Decode reads the JSON body into dest without validating.
func (c *Context) Decode(dest any) error {
	return bind.Decode(c.R, dest)
}

// BindJSON decodes and validates the body. On failure it writes the error
// response and returns false:
//
//	var in LoginRequest
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	if err := bind.JSON(c.R, dest); err != nil {
		c.Fail(err)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

func (c *Context) NoContent() {
	response.NoContent(c.W)
}

// Fail writes the response matching err (see response.FromError).
func (c *Context) Fail(err error) {
	response.FromError(c.W, c.R, err)
}
