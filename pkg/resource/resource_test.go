package resource

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/orm"
)

type widget struct {
	ID     uint
	Secret string
}

type widgetResource struct{}

func (widgetResource) ToArray(w widget) Map {
	return Map{"id": w.ID}
}

func TestSingleResource(t *testing.T) {
	rec := httptest.NewRecorder()
	New[widget](widgetResource{}, widget{ID: 5, Secret: "x"}).WithStatus(http.StatusCreated).Respond(rec)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":5}}`, rec.Body.String())
}

func TestEmptyCollectionIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	CollectionOf[widget](widgetResource{}, nil).Respond(rec)

	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestPaginatedCollection(t *testing.T) {
	rec := httptest.NewRecorder()
	p := orm.Pagination{Page: 2, PerPage: 2, Total: 5, LastPage: 3, From: 3, To: 4}
	CollectionOf[widget](widgetResource{}, []widget{{ID: 3}, {ID: 4}}).
		WithPagination(p, "/api/products").
		Respond(rec)

	assert.JSONEq(t, `{
		"data": [{"id":3},{"id":4}],
		"links": {
			"first": "/api/products?page=1&per_page=2",
			"last":  "/api/products?page=3&per_page=2",
			"prev":  "/api/products?page=1&per_page=2",
			"next":  "/api/products?page=3&per_page=2"
		},
		"meta": {
			"current_page": 2, "from": 3, "last_page": 3, "path": "/api/products",
			"per_page": 2, "to": 4, "total": 5
		}
	}`, rec.Body.String())
}

func TestPaginationEdges(t *testing.T) {
	rec := httptest.NewRecorder()
	p := orm.Pagination{Page: 1, PerPage: 15, Total: 0, LastPage: 1}
	CollectionOf[widget](widgetResource{}, []widget{}).WithPagination(p, "/api/products").Respond(rec)

	var body struct {
		Links map[string]*string `json:"links"`
		Meta  map[string]any     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Nil(t, body.Links["prev"])
	assert.Nil(t, body.Links["next"])
	assert.Nil(t, body.Meta["from"])
	assert.Nil(t, body.Meta["to"])
	assert.EqualValues(t, 0, body.Meta["total"])
}
