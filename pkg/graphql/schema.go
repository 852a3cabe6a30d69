// Package graphql serves a graphql-go schema over HTTP.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/catalog/pkg/bind"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// NewSchema builds a read-only schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes POSTed queries against schema. Resolvers receive the
// request context, so values set by middleware (the caller identity) are
// visible to them. GraphQL errors are reported in the body with status 200.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := bind.Decode(r, &req); err != nil {
			response.FromError(w, r, err)
			return
		}
		if req.Query == "" {
			response.Error(w, http.StatusBadRequest, "Missing query")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: normalize(req.Variables),
			Context:        r.Context(),
		})

		response.JSON(w, http.StatusOK, result)
	}
}

// normalize turns json.Number variables (bind.Decode keeps numbers exact)
// into int or float64, the forms graphql-go's scalars coerce.
func normalize(vars map[string]interface{}) map[string]interface{} {
	for k, v := range vars {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			vars[k] = int(i)
		} else if f, err := n.Float64(); err == nil {
			vars[k] = f
		}
	}
	return vars
}
