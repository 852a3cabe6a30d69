package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Paginate returns one page of products ordered by id.
func (r *ProductRepository) Paginate(ctx context.Context, page, perPage int) ([]models.Product, orm.Pagination, error) {
	products := []models.Product{}
	p, err := orm.New(ctx, r.db).Model(&models.Product{}).Paginate(page, perPage, "id asc", &products)
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("products: paginate: %w", err)
	}
	return products, p, nil
}

// FindByID returns e.ErrNotFound when no row has id.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	if err := orm.New(ctx, r.db).Where("id = ?", id).First(&product); err != nil {
		return models.Product{}, fmt.Errorf("products: find %d: %w", id, err)
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("products: create: %w", err)
	}
	return nil
}

// Update writes name, slug, price and updated_at of an existing row. It
// never inserts: a row deleted since it was loaded is e.ErrNotFound.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("Name", "Slug", "Price", "UpdatedAt").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("products: update %d: %w", product.ID, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL counts changed rows, not matched ones.
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID).Count(&n).Error; err != nil {
		return fmt.Errorf("products: update %d: %w", product.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("products: update %d: %w", product.ID, e.ErrNotFound)
	}
	return nil
}

// Delete removes the row; e.ErrNotFound when nothing matched.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("products: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("products: delete %d: %w", id, e.ErrNotFound)
	}
	return nil
}
