// Package resources holds the public JSON shapes of the models.
package resources

import (
	"encoding/json"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/resource"
)

// TimeFormat is how timestamps are rendered, always in UTC.
const TimeFormat = "2006-01-02 15:04:05"

// ProductResource exposes exactly id, name, slug, price and created_at.
type ProductResource struct{}

func (ProductResource) ToArray(p models.Product) resource.Map {
	return resource.Map{
		"id":         p.ID,
		"name":       p.Name,
		"slug":       p.Slug,
		"price":      json.Number(p.Price.String()),
		"created_at": p.CreatedAt.UTC().Format(TimeFormat),
	}
}
