package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

func init() {
	migration.Register("20260101000002_create_access_tokens_table", &CreateAccessTokensTable{})
}

// CreateAccessTokensTable depends on users for the cascading foreign key.
type CreateAccessTokensTable struct{}

func (m *CreateAccessTokensTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.AccessToken{})
}

func (m *CreateAccessTokensTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("access_tokens")
}
