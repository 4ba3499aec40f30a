package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(255);unique;not null" json:"slug"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
