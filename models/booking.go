package models

import "time"

// Booking is a standalone reservation record with no relation to
// orders and no ownership scoping.
type Booking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Reference   string    `gorm:"type:varchar(36);unique;not null" json:"reference"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	NoOfGuests  int       `gorm:"not null" json:"no_of_guests"`
	BookingDate time.Time `gorm:"not null" json:"booking_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
