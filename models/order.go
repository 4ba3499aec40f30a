package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is created once per checkout. Total is the sum of the cart
// line prices at checkout time and is not recomputed from the items
// afterwards. Status is the delivered flag.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID;references:ID" json:"-"`
	DeliveryCrewID *uint           `gorm:"index" json:"delivery_crew_id"`
	DeliveryCrew   *User           `gorm:"foreignKey:DeliveryCrewID;references:ID" json:"delivery_crew,omitempty"`
	Status         bool            `gorm:"not null;default:false;index" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Date           time.Time       `gorm:"not null" json:"date"`
	OrderItems     []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
