package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/pkg/str"
)

// Product is a catalogue entry. Slug always mirrors Name.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	Slug      string          `gorm:"size:255;not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeSave derives Slug on every create and update.
func (p *Product) BeforeSave(*gorm.DB) error {
	p.Slug = str.Slug(p.Name)
	return nil
}
