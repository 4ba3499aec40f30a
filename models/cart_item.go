package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one pending line in a user's cart. UnitPrice is a
// snapshot of the menu item price at insertion time, not a live link;
// Price is always Quantity x UnitPrice.
type CartItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	User       User            `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	MenuItemID uint            `gorm:"not null" json:"menuitem_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnDelete:RESTRICT" json:"menuitem"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
