package models

import "time"

// User can log in and own access tokens. Users are provisioned with
// `catalog user:create` or the seeder.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessToken is an issued bearer token. Only the SHA-256 digest of the
// token is stored; Name records the email it was issued to.
type AccessToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Name      string `gorm:"size:255;not null"`
	Value     string `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time
}
