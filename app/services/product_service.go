package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/orm"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// ProductInput is the writable part of a product. Price is decoded with
// UseNumber, so it arrives as a json.Number or a numeric string. Its upper
// bound is the largest value a decimal(12,2) column holds.
type ProductInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Price any    `json:"price" validate:"required,numeric,gte=0,lte=9999999999.99"`
}

// ProductService holds the product use cases.
type ProductService struct {
	products   *repositories.ProductRepository
	perPage    int
	maxPerPage int
}

func NewProductService(products *repositories.ProductRepository, perPage, maxPerPage int) *ProductService {
	if maxPerPage < 1 {
		maxPerPage = 100
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = min(15, maxPerPage)
	}
	return &ProductService{products: products, perPage: perPage, maxPerPage: maxPerPage}
}

// List returns one page ordered by id. perPage 0 means the default;
// anything above the maximum is capped.
func (s *ProductService) List(ctx context.Context, page, perPage int) ([]models.Product, orm.Pagination, error) {
	if perPage < 1 {
		perPage = s.perPage
	}
	perPage = min(perPage, s.maxPerPage)
	return s.products.Paginate(ctx, page, perPage)
}

func (s *ProductService) Find(ctx context.Context, id uint) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create validates in and stores a new product. The slug is derived by
// the model, never taken from input.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	price, err := parseInput(in)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{Name: strings.TrimSpace(in.Name), Price: price}
	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces name and price of an existing product. A missing
// product is reported before the input is validated.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	price, err := parseInput(in)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Price = price
	if err := s.products.Update(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

// parseInput validates in and returns its price rounded to cents.
func parseInput(in ProductInput) (decimal.Decimal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Check(&in); err != nil {
		return decimal.Decimal{}, err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(in.Price)))
	if err != nil {
		return decimal.Decimal{}, e.NewValidationError(map[string]string{
			"price": "The price field must be a number.",
		})
	}
	return price.Round(2), nil
}
