package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Title      string          `gorm:"type:varchar(255);not null" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Featured   bool            `gorm:"not null;default:false;index" json:"featured"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
	Category   Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
