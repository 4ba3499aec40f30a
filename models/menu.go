package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu is the legacy flat menu table (no category, inventory count
// instead of a featured flag). Kept for the public /menu endpoints.
type Menu struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"type:varchar(255);not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Inventory int             `gorm:"not null;default:0" json:"inventory"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
