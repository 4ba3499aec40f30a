package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	Order      Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint            `gorm:"not null" json:"menuitem_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnDelete:RESTRICT" json:"menuitem"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
