package seeders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/auth"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
}

// SeedUsers creates the demo login unless it exists.
func SeedUsers(_ context.Context, db *gorm.DB) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	user := models.User{Email: DemoEmail}
	return db.Where(models.User{Email: DemoEmail}).
		Attrs(models.User{Password: hash}).
		FirstOrCreate(&user).Error
}

// SeedProducts fills an empty products table with a few rows.
func SeedProducts(_ context.Context, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Acme Inc Anvil", Price: decimal.RequireFromString("149.99")},
		{Name: "Rocket Skates", Price: decimal.RequireFromString("89.50")},
		{Name: "Giant Magnet", Price: decimal.RequireFromString("42")},
		{Name: "Portable Hole", Price: decimal.RequireFromString("19.95")},
		{Name: "Bird Seed (Jumbo)", Price: decimal.RequireFromString("4.25")},
	}
	return db.Create(&products).Error
}
